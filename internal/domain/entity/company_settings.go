package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettingsID la tabla company_settings tiene una única fila.
const CompanySettingsID = 1

// CompanySettings datos de marca y contacto de la empresa (fila única).
// Alimenta la cabecera de facturas y reportes.
type CompanySettings struct {
	ID            int
	Name          string
	TaxID         string
	Address       string
	Phone         string
	Email         string
	Website       string
	LogoURL       string
	Currency      string          // código ISO 4217, ej. "USD"
	TaxRate       decimal.Decimal // porcentaje 0–100 aplicado a cada venta
	InvoicePrefix string          // ej. "INV"
	InvoiceFooter string
	UpdatedAt     time.Time
}

// DefaultCompanySettings valores iniciales sembrados por la migración.
func DefaultCompanySettings() *CompanySettings {
	return &CompanySettings{
		ID:            CompanySettingsID,
		Name:          "Mi Empresa",
		Currency:      "USD",
		TaxRate:       decimal.Zero,
		InvoicePrefix: "INV",
	}
}

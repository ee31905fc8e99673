package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest cambios parciales sobre company_settings.
type UpdateSettingsRequest struct {
	Name          *string          `json:"name"`
	TaxID         *string          `json:"tax_id"`
	Address       *string          `json:"address"`
	Phone         *string          `json:"phone"`
	Email         *string          `json:"email"`
	Website       *string          `json:"website"`
	LogoURL       *string          `json:"logo_url"`
	Currency      *string          `json:"currency"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	InvoicePrefix *string          `json:"invoice_prefix"`
	InvoiceFooter *string          `json:"invoice_footer"`
}

// SettingsResponse datos de la empresa.
type SettingsResponse struct {
	Name          string          `json:"name"`
	TaxID         string          `json:"tax_id"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Website       string          `json:"website"`
	LogoURL       string          `json:"logo_url"`
	Currency      string          `json:"currency"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	InvoicePrefix string          `json:"invoice_prefix"`
	InvoiceFooter string          `json:"invoice_footer"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

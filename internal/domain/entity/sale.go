package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
)

// Sale representa la cabecera de una venta.
type Sale struct {
	ID         string
	Number     int64  // consecutivo asignado por la secuencia sale_number_seq
	CustomerID string // vacío = venta de mostrador
	IssuerID   string // usuario que registró la venta
	Subtotal   decimal.Decimal
	TaxRate    decimal.Decimal // porcentaje vigente al momento de la venta
	TaxTotal   decimal.Decimal
	Total      decimal.Decimal
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []*SaleItem
}

// InvoiceNumber arma el número visible de factura, ej. "INV-000042".
func (s *Sale) InvoiceNumber(prefix string) string {
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%06d", prefix, s.Number)
}

// ValidSaleStatus informa si status es un estado conocido.
func ValidSaleStatus(status string) bool {
	switch status {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

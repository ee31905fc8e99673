package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id,omitempty"` // vacío = venta de mostrador
	Status     string            `json:"status,omitempty"`      // completed (default) | pending
	Notes      string            `json:"notes,omitempty"`
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemRequest línea de venta. UnitPrice solo lo puede fijar un admin;
// si va vacío se usa el precio vigente del producto.
type SaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpdateSaleStatusRequest body para PATCH /api/sales/:id/status.
type UpdateSaleStatusRequest struct {
	Status string `json:"status"`
}

// SaleListRequest filtros del historial (query string).
type SaleListRequest struct {
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
	IssuerID   string `query:"issuer_id"`
	Search     string `query:"search"`
	From       string `query:"from"` // YYYY-MM-DD
	To         string `query:"to"`   // YYYY-MM-DD (inclusive)
	PageRequest
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse venta con detalle.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        int64              `json:"number"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    string             `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name,omitempty"`
	IssuerID      string             `json:"issuer_id"`
	IssuerName    string             `json:"issuer_name,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	TaxTotal      decimal.Decimal    `json:"tax_total"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// SaleSummaryResponse agregados del historial filtrado.
type SaleSummaryResponse struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Pending     int             `json:"pending"`
	Completed   int             `json:"completed"`
	Cancelled   int             `json:"cancelled"`
}

// SaleListResponse historial paginado con resumen.
type SaleListResponse struct {
	Items   []SaleResponse      `json:"items"`
	Summary SaleSummaryResponse `json:"summary"`
	Page    PageResponse        `json:"page"`
}

// EmailInvoiceRequest body para POST /api/sales/:id/email.
type EmailInvoiceRequest struct {
	To string `json:"to,omitempty"` // vacío = email del cliente
}

// EmailInvoiceResponse confirmación del envío.
type EmailInvoiceResponse struct {
	SaleID string `json:"sale_id"`
	To     string `json:"to"`
	Sent   bool   `json:"sent"`
}

package entity

import "github.com/shopspring/decimal"

// SaleItem línea de una venta. Guarda una foto del producto (SKU, nombre y precio)
// para que la factura no cambie si el catálogo se modifica después.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string // vacío si el producto fue eliminado
	ProductSKU  string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // Quantity * UnitPrice
}

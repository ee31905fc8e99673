package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock se descuenta al registrar ventas y se repone al cancelarlas.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta vigente
	Stock       int
	Active      bool // inactivo = no se puede vender (borrado lógico)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

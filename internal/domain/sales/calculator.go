// Package sales contiene las reglas puras de una venta: totales y transiciones de estado.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineTotal = Cantidad * PrecioUnitario, redondeado a 2 decimales.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Totals calcula subtotal, impuesto y total de un conjunto de líneas.
// taxRate es un porcentaje (19 = 19%).
//
//	Subtotal = Σ Total de cada línea
//	Impuesto = round(Subtotal * taxRate / 100, 2)
//	Total    = Subtotal + Impuesto
func Totals(items []*entity.SaleItem, taxRate decimal.Decimal) (subtotal, taxTotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	taxTotal = subtotal.Mul(taxRate).Div(hundred).Round(2)
	total = subtotal.Add(taxTotal)
	return subtotal, taxTotal, total
}

// transitions estados alcanzables desde cada estado. cancelled es terminal.
var transitions = map[string][]string{
	entity.SaleStatusPending:   {entity.SaleStatusCompleted, entity.SaleStatusCancelled},
	entity.SaleStatusCompleted: {entity.SaleStatusCancelled},
}

// CanTransition informa si una venta puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// RestocksOnTransition informa si el cambio de estado devuelve las unidades al inventario.
func RestocksOnTransition(from, to string) bool {
	return to == entity.SaleStatusCancelled && from != entity.SaleStatusCancelled
}

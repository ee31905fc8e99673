package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/sales"
)

func item(qty int, price string) *entity.SaleItem {
	p := decimal.RequireFromString(price)
	return &entity.SaleItem{Quantity: qty, UnitPrice: p, Total: sales.LineTotal(qty, p)}
}

func TestLineTotal_Redondea(t *testing.T) {
	got := sales.LineTotal(3, decimal.RequireFromString("0.335"))
	assert.Equal(t, "1.01", got.StringFixed(2))
}

func TestTotals_ConImpuesto(t *testing.T) {
	items := []*entity.SaleItem{item(2, "10.00"), item(1, "5.50")}

	subtotal, tax, total := sales.Totals(items, decimal.NewFromInt(19))

	assert.Equal(t, "25.50", subtotal.StringFixed(2))
	assert.Equal(t, "4.85", tax.StringFixed(2), "25.50 * 19% = 4.845 → 4.85")
	assert.Equal(t, "30.35", total.StringFixed(2))
}

func TestTotals_SinLineas(t *testing.T) {
	subtotal, tax, total := sales.Totals(nil, decimal.NewFromInt(10))
	assert.True(t, subtotal.IsZero())
	assert.True(t, tax.IsZero())
	assert.True(t, total.IsZero())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, sales.CanTransition(entity.SaleStatusPending, entity.SaleStatusCompleted))
	assert.True(t, sales.CanTransition(entity.SaleStatusPending, entity.SaleStatusCancelled))
	assert.True(t, sales.CanTransition(entity.SaleStatusCompleted, entity.SaleStatusCancelled))

	assert.False(t, sales.CanTransition(entity.SaleStatusCompleted, entity.SaleStatusPending))
	assert.False(t, sales.CanTransition(entity.SaleStatusCancelled, entity.SaleStatusCompleted))
	assert.False(t, sales.CanTransition(entity.SaleStatusPending, entity.SaleStatusPending))
	assert.False(t, sales.CanTransition("archived", entity.SaleStatusCancelled))
}

func TestRestocksOnTransition(t *testing.T) {
	assert.True(t, sales.RestocksOnTransition(entity.SaleStatusCompleted, entity.SaleStatusCancelled))
	assert.True(t, sales.RestocksOnTransition(entity.SaleStatusPending, entity.SaleStatusCancelled))
	assert.False(t, sales.RestocksOnTransition(entity.SaleStatusPending, entity.SaleStatusCompleted))
}

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(t *testing.T) *DashboardUseCase {
	s := newStore(t)
	uc := NewDashboardUseCase(s, 5)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestDashboard_Admin(t *testing.T) {
	uc := newDashboard(t)

	got, err := uc.GetSummary(context.Background(), adminActor)
	require.NoError(t, err)

	assert.Equal(t, "25.00", got.TodaySales.StringFixed(2))
	assert.Equal(t, 2, got.TodayCount)
	assert.Equal(t, "35.00", got.MonthlySales.StringFixed(2), "la venta cancelada no suma")
	assert.Equal(t, 3, got.MonthlyCount)
	assert.Equal(t, "Marzo 2026", got.DateLabel)

	require.Len(t, got.TopProducts, 2)
	assert.Equal(t, "A", got.TopProducts[0].SKU)
	assert.Equal(t, 3, got.TopProducts[0].QuantitySold)
	assert.Equal(t, "30.00", got.TopProducts[0].Revenue.StringFixed(2))

	require.Len(t, got.LowStock, 1)
	assert.Equal(t, "p-a", got.LowStock[0].ID)
}

func TestDashboard_StaffSoloSusVentas(t *testing.T) {
	uc := newDashboard(t)

	got, err := uc.GetSummary(context.Background(), staffActor)
	require.NoError(t, err)

	assert.Equal(t, "20.00", got.TodaySales.StringFixed(2))
	assert.Equal(t, 1, got.TodayCount)
	assert.Equal(t, "30.00", got.MonthlySales.StringFixed(2))
	assert.Equal(t, 2, got.MonthlyCount)
	require.Len(t, got.TopProducts, 1)
	assert.Equal(t, "A", got.TopProducts[0].SKU)
	assert.Empty(t, got.LowStock, "staff no ve stock bajo")
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Enero 2025", monthLabel(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Diciembre 2026", monthLabel(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
}

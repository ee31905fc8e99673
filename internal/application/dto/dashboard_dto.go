package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Para staff todas las cifras se limitan a sus propias ventas.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – 23:59)
	TodaySales decimal.Decimal `json:"today_sales"`
	TodayCount int             `json:"today_count"`

	// Métricas del mes en curso (día 1 – hoy)
	MonthlySales decimal.Decimal `json:"monthly_sales"`
	MonthlyCount int             `json:"monthly_count"`

	// Top 5 productos por ingreso del mes
	TopProducts []TopProductDTO `json:"top_products"`

	// Productos con stock bajo (solo admin)
	LowStock []ProductResponse `json:"low_stock,omitempty"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// TopProductDTO producto en rankings.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

package dto

import "github.com/shopspring/decimal"

// SalesReportRequest parámetros de GET /api/reports/sales.
type SalesReportRequest struct {
	From     string `query:"from"` // YYYY-MM-DD, default primer día del mes
	To       string `query:"to"`   // YYYY-MM-DD, default hoy
	IssuerID string `query:"issuer_id"`
	TopN     int    `query:"top_n"`
}

// DailySalesDTO ventas de un día.
type DailySalesDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// IssuerSalesDTO ventas por vendedor.
type IssuerSalesDTO struct {
	IssuerID   string          `json:"issuer_id"`
	IssuerName string          `json:"issuer_name"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Share      decimal.Decimal `json:"share"` // % del ingreso total del período
}

// SalesReportDTO reporte agregado del período.
type SalesReportDTO struct {
	From         string           `json:"from"`
	To           string           `json:"to"`
	IssuerID     string           `json:"issuer_id,omitempty"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	SalesCount   int              `json:"sales_count"`
	AverageSale  decimal.Decimal  `json:"average_sale"`
	Daily        []DailySalesDTO  `json:"daily"`
	TopProducts  []TopProductDTO  `json:"top_products"`
	ByIssuer     []IssuerSalesDTO `json:"by_issuer,omitempty"`
}

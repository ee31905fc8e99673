package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResult ventas agregadas de un día.
type DailySalesResult struct {
	Day     time.Time
	Count   int
	Revenue decimal.Decimal
}

// TopProductResult producto más vendido en el período.
type TopProductResult struct {
	ProductID    string
	SKU          string
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// IssuerSalesResult ventas agregadas por vendedor.
type IssuerSalesResult struct {
	IssuerID   string
	IssuerName string
	Count      int
	Revenue    decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
// Todas excluyen ventas canceladas. issuerID vacío = todos los vendedores.
type ReportRepository interface {
	GetSalesMetrics(ctx context.Context, issuerID string, from, to time.Time) (revenue decimal.Decimal, count int, err error)
	GetDailySales(ctx context.Context, issuerID string, from, to time.Time) ([]DailySalesResult, error)
	GetTopProducts(ctx context.Context, issuerID string, from, to time.Time, limit int) ([]TopProductResult, error)
	GetSalesByIssuer(ctx context.Context, from, to time.Time) ([]IssuerSalesResult, error)
}

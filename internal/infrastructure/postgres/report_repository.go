package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard (pool o tx).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSalesMetrics devuelve ingreso total y cantidad de ventas del período [from, to).
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *ReportRepo) GetSalesMetrics(ctx context.Context, issuerID string, from, to time.Time) (revenue decimal.Decimal, count int, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total), 0) AS revenue,
	    COUNT(*)                  AS sales_count
	FROM sales s
	WHERE s.status <> 'cancelled'
	  AND s.created_at >= $1 AND s.created_at < $2
	  AND ($3 = '' OR s.issuer_id::text = $3)`

	err = r.q.QueryRow(ctx, query, from, to, issuerID).Scan(&revenue, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("reports.GetSalesMetrics: %w", err)
	}
	return revenue, count, nil
}

// GetDailySales agrupa ventas por día calendario (UTC).
func (r *ReportRepo) GetDailySales(ctx context.Context, issuerID string, from, to time.Time) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT
	    date_trunc('day', s.created_at AT TIME ZONE 'UTC') AS day,
	    COUNT(*)                                        AS sales_count,
	    COALESCE(SUM(s.total), 0)                       AS revenue
	FROM sales s
	WHERE s.status <> 'cancelled'
	  AND s.created_at >= $1 AND s.created_at < $2
	  AND ($3 = '' OR s.issuer_id::text = $3)
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, from, to, issuerID)
	if err != nil {
		return nil, fmt.Errorf("reports.GetDailySales: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.Count, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.GetDailySales scan: %w", err)
		}
		row.Day = time.Date(row.Day.Year(), row.Day.Month(), row.Day.Day(), 0, 0, 0, 0, time.UTC)
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts devuelve los `limit` productos con mayor ingreso en el período.
// Agrupa por SKU de la foto guardada en la línea, así cuentan también productos ya eliminados.
func (r *ReportRepo) GetTopProducts(ctx context.Context, issuerID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    COALESCE(MAX(d.product_id::text), '') AS product_id,
	    d.product_sku,
	    MAX(d.product_name)                   AS product_name,
	    SUM(d.quantity)                       AS quantity_sold,
	    SUM(d.total)                          AS revenue
	FROM sale_items d
	JOIN sales s ON s.id = d.sale_id
	WHERE s.status <> 'cancelled'
	  AND s.created_at >= $1 AND s.created_at < $2
	  AND ($3 = '' OR s.issuer_id::text = $3)
	GROUP BY d.product_sku
	ORDER BY revenue DESC, quantity_sold DESC, d.product_sku
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, from, to, issuerID, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.QuantitySold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSalesByIssuer agrupa ingresos por vendedor, mayor ingreso primero.
func (r *ReportRepo) GetSalesByIssuer(ctx context.Context, from, to time.Time) ([]repository.IssuerSalesResult, error) {
	const query = `
	SELECT
	    u.id::text,
	    COALESCE(NULLIF(u.name, ''), u.email) AS issuer_name,
	    COUNT(s.id)                           AS sales_count,
	    COALESCE(SUM(s.total), 0)             AS revenue
	FROM sales s
	JOIN users u ON u.id = s.issuer_id
	WHERE s.status <> 'cancelled'
	  AND s.created_at >= $1 AND s.created_at < $2
	GROUP BY u.id, u.name, u.email
	ORDER BY revenue DESC, issuer_name`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesByIssuer: %w", err)
	}
	defer rows.Close()

	var results []repository.IssuerSalesResult
	for rows.Next() {
		var row repository.IssuerSalesResult
		if err := rows.Scan(&row.IssuerID, &row.IssuerName, &row.Count, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.GetSalesByIssuer scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

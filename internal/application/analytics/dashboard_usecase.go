// Package analytics contiene los casos de uso para reportes de ventas y el
// resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

const (
	dashboardTopProducts = 5  // número de productos en el widget del dashboard
	dashboardLowStock    = 10 // máximo de productos con stock bajo listados
)

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
//
// Fuente de datos: ReportRepository y el catálogo para stock bajo, cada consulta en su
// propia transacción de solo lectura con el actor (RLS).
type DashboardUseCase struct {
	tx                repository.TxRunner
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(tx repository.TxRunner, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{
		tx:                tx,
		lowStockThreshold: lowStockThreshold,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// GetSummary construye el DashboardSummaryDTO. Para staff las cifras son solo de sus ventas
// y no incluye stock bajo.
//
// Consultas en paralelo:
//  1. GetSalesMetrics(hoy)        → TodaySales + TodayCount
//  2. GetSalesMetrics(mes)        → MonthlySales + MonthlyCount
//  3. GetTopProducts(mes, top 5)  → TopProducts
//  4. ListLowStock (solo admin)   → LowStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor entity.Actor) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	issuerID := ""
	if !seesAll(actor) {
		issuerID = actor.UserID
	}

	// ── Rangos de fecha (fin exclusivo) ───────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type metricsResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type lowStockResult struct {
		rows []*entity.Product
		err  error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		var r metricsResult
		r.err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
			r.revenue, r.count, err = tx.Reports.GetSalesMetrics(ctx, issuerID, todayStart, todayEnd)
			return err
		})
		todayCh <- r
	}()
	go func() {
		var r metricsResult
		r.err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
			r.revenue, r.count, err = tx.Reports.GetSalesMetrics(ctx, issuerID, monthStart, todayEnd)
			return err
		})
		monthCh <- r
	}()
	go func() {
		var r topResult
		r.err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
			r.rows, err = tx.Reports.GetTopProducts(ctx, issuerID, monthStart, todayEnd, dashboardTopProducts)
			return err
		})
		topCh <- r
	}()
	go func() {
		var r lowStockResult
		if seesAll(actor) {
			r.err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
				r.rows, err = tx.Products.ListLowStock(ctx, uc.lowStockThreshold, dashboardLowStock)
				return err
			})
		}
		lowCh <- r
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	out := &dto.DashboardSummaryDTO{
		TodaySales:   today.revenue.Round(2),
		TodayCount:   today.count,
		MonthlySales: month.revenue.Round(2),
		MonthlyCount: month.count,
		TopProducts:  toTopProducts(top.rows),
		DateLabel:    monthLabel(now),
	}
	for _, p := range low.rows {
		out.LowStock = append(out.LowStock, dto.ProductFromEntity(p))
	}
	return out, nil
}

func toTopProducts(rows []repository.TopProductResult) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			ProductName:  r.ProductName,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.Round(2),
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

// seesAll: admin y el rol de servicio (CLI) ven las ventas de todos los vendedores.
func seesAll(actor entity.Actor) bool {
	return actor.IsAdmin() || actor.IsService()
}

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

const (
	defaultTopN   = 10
	maxTopN       = 100
	maxReportDays = 366
)

var hundred = decimal.NewFromInt(100)

// ReportPDFGenerator puerto para imprimir el reporte de ventas.
type ReportPDFGenerator interface {
	RenderSalesReport(doc dto.SalesReportDocument) ([]byte, error)
}

// ReportUseCase reporte agregado de ventas por período: totales, serie diaria,
// productos más vendidos y ventas por vendedor.
type ReportUseCase struct {
	tx  repository.TxRunner
	pdf ReportPDFGenerator
	now func() time.Time
}

// NewReportUseCase construye el caso de uso. Las consultas corren con TxRunner.ReadAs.
func NewReportUseCase(tx repository.TxRunner, pdf ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{
		tx:  tx,
		pdf: pdf,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// parsePeriod convierte from/to (YYYY-MM-DD, to inclusivo) a [start, end).
// Por defecto: desde el día 1 del mes en curso hasta hoy.
func parsePeriod(now time.Time, from, to string) (time.Time, time.Time, error) {
	start, end, err := dto.ParseDayRange(from, to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if end == nil {
		e := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		end = &e
	}
	if start == nil {
		last := end.AddDate(0, 0, -1)
		s := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = &s
	}
	if !start.Before(*end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from es posterior al fin del período (to, u hoy si no se indica)", domain.ErrInvalidInput)
	}
	if end.Sub(*start) > maxReportDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: el período no puede superar %d días", domain.ErrInvalidInput, maxReportDays)
	}
	return *start, *end, nil
}

// SalesReport genera el reporte del período. staff solo ve sus propias ventas y no recibe
// el desglose por vendedor.
func (uc *ReportUseCase) SalesReport(ctx context.Context, actor entity.Actor, req dto.SalesReportRequest) (*dto.SalesReportDTO, error) {
	start, end, err := parsePeriod(uc.now(), req.From, req.To)
	if err != nil {
		return nil, err
	}
	issuerID := req.IssuerID
	if !seesAll(actor) {
		issuerID = actor.UserID
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	// Consultas independientes en paralelo
	type metricsResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}
	type dailyResult struct {
		rows []repository.DailySalesResult
		err  error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type issuerResult struct {
		rows []repository.IssuerSalesResult
		err  error
	}
	metricsCh := make(chan metricsResult, 1)
	dailyCh := make(chan dailyResult, 1)
	topCh := make(chan topResult, 1)
	issuerCh := make(chan issuerResult, 1)

	go func() {
		var r metricsResult
		r.err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
			r.revenue, r.count, err = tx.Reports.GetSalesMetrics(ctx, issuerID, start, end)
			return err
		})
		metricsCh <- r
	}()
	go func() {
		var r dailyResult
		r.err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
			r.rows, err = tx.Reports.GetDailySales(ctx, issuerID, start, end)
			return err
		})
		dailyCh <- r
	}()
	go func() {
		var r topResult
		r.err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
			r.rows, err = tx.Reports.GetTopProducts(ctx, issuerID, start, end, topN)
			return err
		})
		topCh <- r
	}()
	go func() {
		var r issuerResult
		if seesAll(actor) {
			r.err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
				r.rows, err = tx.Reports.GetSalesByIssuer(ctx, start, end)
				return err
			})
		}
		issuerCh <- r
	}()

	metrics := <-metricsCh
	daily := <-dailyCh
	top := <-topCh
	issuers := <-issuerCh

	if metrics.err != nil {
		return nil, fmt.Errorf("reporte: métricas: %w", metrics.err)
	}
	if daily.err != nil {
		return nil, fmt.Errorf("reporte: ventas diarias: %w", daily.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("reporte: top productos: %w", top.err)
	}
	if issuers.err != nil {
		return nil, fmt.Errorf("reporte: vendedores: %w", issuers.err)
	}

	out := &dto.SalesReportDTO{
		From:         start.Format(dto.DateLayout),
		To:           end.AddDate(0, 0, -1).Format(dto.DateLayout),
		IssuerID:     issuerID,
		TotalRevenue: metrics.revenue.Round(2),
		SalesCount:   metrics.count,
		AverageSale:  decimal.Zero,
		Daily:        fillDays(start, end, daily.rows),
		TopProducts:  toTopProducts(top.rows),
	}
	if metrics.count > 0 {
		out.AverageSale = metrics.revenue.Div(decimal.NewFromInt(int64(metrics.count))).Round(2)
	}

	// Participación de cada vendedor sobre el total de todos los vendedores del período.
	total := decimal.Zero
	for _, r := range issuers.rows {
		total = total.Add(r.Revenue)
	}
	for _, r := range issuers.rows {
		if issuerID != "" && r.IssuerID != issuerID {
			continue
		}
		share := decimal.Zero
		if total.IsPositive() {
			share = r.Revenue.Div(total).Mul(hundred).Round(2)
		}
		out.ByIssuer = append(out.ByIssuer, dto.IssuerSalesDTO{
			IssuerID:   r.IssuerID,
			IssuerName: r.IssuerName,
			Count:      r.Count,
			Revenue:    r.Revenue.Round(2),
			Share:      share,
		})
	}
	return out, nil
}

// SalesReportPDF imprime el mismo reporte. Devuelve el PDF y un nombre de archivo sugerido.
func (uc *ReportUseCase) SalesReportPDF(ctx context.Context, actor entity.Actor, req dto.SalesReportRequest) ([]byte, string, error) {
	report, err := uc.SalesReport(ctx, actor, req)
	if err != nil {
		return nil, "", err
	}
	var settings *entity.CompanySettings
	err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
		settings, err = tx.Settings.Get(ctx)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.pdf.RenderSalesReport(dto.SalesReportDocument{
		Company:     dto.SettingsFromEntity(settings),
		Report:      *report,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("generar reporte: %w", err)
	}
	return pdf, fmt.Sprintf("ventas_%s_%s.pdf", report.From, report.To), nil
}

// fillDays devuelve un punto por día del período; los días sin ventas van en cero.
func fillDays(start, end time.Time, rows []repository.DailySalesResult) []dto.DailySalesDTO {
	byDay := make(map[string]repository.DailySalesResult, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format(dto.DateLayout)] = r
	}
	var out []dto.DailySalesDTO
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dto.DateLayout)
		point := dto.DailySalesDTO{Date: key, Revenue: decimal.Zero}
		if r, ok := byDay[key]; ok {
			point.Count = r.Count
			point.Revenue = r.Revenue.Round(2)
		}
		out = append(out, point)
	}
	return out
}

package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

type fakeReportPDF struct {
	doc dto.SalesReportDocument
	err error
}

func (f *fakeReportPDF) RenderSalesReport(doc dto.SalesReportDocument) ([]byte, error) {
	f.doc = doc
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func newReports(t *testing.T) (*ReportUseCase, *fakeReportPDF) {
	s := newStore(t)
	pdf := &fakeReportPDF{}
	uc := NewReportUseCase(s, pdf)
	uc.now = func() time.Time { return fixedNow }
	return uc, pdf
}

func TestParsePeriod(t *testing.T) {
	start, end, err := parsePeriod(fixedNow, "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), end)

	start, _, err = parsePeriod(fixedNow, "", "2026-01-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start, "sin from arranca el mes de to")

	_, _, err = parsePeriod(fixedNow, "2026-03-10", "2026-03-01")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "posterior al fin del período")

	_, _, err = parsePeriod(fixedNow, "2026-04-01", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "from en el futuro sin to")
	assert.Contains(t, err.Error(), "posterior al fin del período")

	_, _, err = parsePeriod(fixedNow, "2024-01-01", "2026-01-01")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "más de un año")

	_, _, err = parsePeriod(fixedNow, "15/03/2026", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSalesReport_AdminMesEnCurso(t *testing.T) {
	uc, _ := newReports(t)

	rep, err := uc.SalesReport(context.Background(), adminActor, dto.SalesReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", rep.From)
	assert.Equal(t, "2026-03-15", rep.To)
	assert.Equal(t, "35.00", rep.TotalRevenue.StringFixed(2))
	assert.Equal(t, 3, rep.SalesCount)
	assert.Equal(t, "11.67", rep.AverageSale.StringFixed(2))

	require.Len(t, rep.Daily, 15, "un punto por día, incluidos los días sin ventas")
	assert.Equal(t, "2026-03-02", rep.Daily[1].Date)
	assert.Equal(t, "10.00", rep.Daily[1].Revenue.StringFixed(2))
	assert.Equal(t, 0, rep.Daily[9].Count, "el día de la venta cancelada queda en cero")
	assert.Equal(t, 2, rep.Daily[14].Count)

	require.Len(t, rep.ByIssuer, 2)
	assert.Equal(t, "staff-1", rep.ByIssuer[0].IssuerID)
	assert.Equal(t, "Ana", rep.ByIssuer[0].IssuerName)
	assert.Equal(t, "85.71", rep.ByIssuer[0].Share.StringFixed(2))
	assert.Equal(t, "14.29", rep.ByIssuer[1].Share.StringFixed(2))
}

func TestSalesReport_FiltroVendedorYPeriodo(t *testing.T) {
	uc, _ := newReports(t)
	ctx := context.Background()

	rep, err := uc.SalesReport(ctx, adminActor, dto.SalesReportRequest{From: "2026-02-01", To: "2026-02-28"})
	require.NoError(t, err)
	assert.Equal(t, "10.00", rep.TotalRevenue.StringFixed(2))
	assert.Equal(t, 1, rep.SalesCount)

	rep, err = uc.SalesReport(ctx, adminActor, dto.SalesReportRequest{IssuerID: "staff-2"})
	require.NoError(t, err)
	assert.Equal(t, "5.00", rep.TotalRevenue.StringFixed(2))
	require.Len(t, rep.ByIssuer, 1)
	assert.Equal(t, "staff-2", rep.ByIssuer[0].IssuerID)
	assert.Equal(t, "14.29", rep.ByIssuer[0].Share.StringFixed(2), "participación sobre el total del período")
}

func TestSalesReport_StaffForzadoASusVentas(t *testing.T) {
	uc, _ := newReports(t)

	rep, err := uc.SalesReport(context.Background(), staffActor, dto.SalesReportRequest{IssuerID: "staff-2", TopN: 500})
	require.NoError(t, err)
	assert.Equal(t, "staff-1", rep.IssuerID)
	assert.Equal(t, "30.00", rep.TotalRevenue.StringFixed(2))
	assert.Empty(t, rep.ByIssuer)
}

func TestSalesReportPDF(t *testing.T) {
	uc, pdf := newReports(t)

	out, name, err := uc.SalesReportPDF(context.Background(), adminActor, dto.SalesReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Equal(t, "ventas_2026-03-01_2026-03-15.pdf", name)
	assert.Equal(t, "Mi Empresa", pdf.doc.Company.Name)
	assert.Equal(t, 3, pdf.doc.Report.SalesCount)
	assert.Equal(t, fixedNow, pdf.doc.GeneratedAt)

	pdf.err = errors.New("boom")
	_, _, err = uc.SalesReportPDF(context.Background(), adminActor, dto.SalesReportRequest{})
	assert.Error(t, err)
}

package pdf

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// RenderSalesReport imprime el reporte de ventas: KPIs, serie diaria, top productos
// y ventas por vendedor (si el reporte las trae).
func (g *MarotoPDFGenerator) RenderSalesReport(doc dto.SalesReportDocument) ([]byte, error) {
	company := doc.Company
	rep := doc.Report
	cur := company.Currency

	m := newDocument("Reporte de ventas", nonEmpty(company.Name, "Ventas"))

	m.AddRows(row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("REPORTE DE VENTAS", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Período: %s a %s", rep.From, rep.To), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// KPIs
	m.AddRows(row.New(16).Add(
		kpiCol("Ingresos", g.money.Format(cur, rep.TotalRevenue)),
		kpiCol("Ventas", g.money.Number(rep.SalesCount)),
		kpiCol("Ticket promedio", g.money.Format(cur, rep.AverageSale)),
	))

	// Serie diaria: solo los días con movimiento
	m.AddRows(sectionTitle("VENTAS POR DÍA"))
	m.AddRows(tableHeaderRow(
		headerCell{"Fecha", 4, align.Left},
		headerCell{"Ventas", 3, align.Right},
		headerCell{"Ingresos", 5, align.Right},
	))
	days := 0
	for _, d := range rep.Daily {
		if d.Count == 0 {
			continue
		}
		days++
		m.AddRows(row.New(6).Add(
			col.New(4).Add(cellText(d.Date, align.Left)),
			col.New(3).Add(cellText(g.money.Number(d.Count), align.Right)),
			col.New(5).Add(cellText(g.money.Format(cur, d.Revenue), align.Right)),
		))
	}
	if days == 0 {
		m.AddRows(emptyRow("Sin ventas en el período."))
	}

	// Top productos
	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(tableHeaderRow(
		headerCell{"#", 1, align.Center},
		headerCell{"SKU", 2, align.Left},
		headerCell{"Producto", 4, align.Left},
		headerCell{"Cant.", 2, align.Right},
		headerCell{"Ingresos", 3, align.Right},
	))
	for i, p := range rep.TopProducts {
		m.AddRows(row.New(6).Add(
			col.New(1).Add(cellText(strconv.Itoa(i+1), align.Center)),
			col.New(2).Add(cellText(p.SKU, align.Left)),
			col.New(4).Add(cellText(p.ProductName, align.Left)),
			col.New(2).Add(cellText(g.money.Number(p.QuantitySold), align.Right)),
			col.New(3).Add(cellText(g.money.Format(cur, p.Revenue), align.Right)),
		))
	}
	if len(rep.TopProducts) == 0 {
		m.AddRows(emptyRow("Sin productos vendidos."))
	}

	if len(rep.ByIssuer) > 0 {
		m.AddRows(sectionTitle("VENTAS POR VENDEDOR"))
		m.AddRows(tableHeaderRow(
			headerCell{"Vendedor", 5, align.Left},
			headerCell{"Ventas", 2, align.Right},
			headerCell{"Ingresos", 3, align.Right},
			headerCell{"% del total", 2, align.Right},
		))
		for _, r := range rep.ByIssuer {
			m.AddRows(row.New(6).Add(
				col.New(5).Add(cellText(nonEmpty(r.IssuerName, r.IssuerID), align.Left)),
				col.New(2).Add(cellText(g.money.Number(r.Count), align.Right)),
				col.New(3).Add(cellText(g.money.Format(cur, r.Revenue), align.Right)),
				col.New(2).Add(cellText(g.money.Percent(r.Share), align.Right)),
			))
		}
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Las ventas anuladas no se incluyen en este reporte.", props.Text{
			Size: 7, Color: colorGray, Align: align.Center,
		}),
	)))

	return generate(m)
}

func kpiCol(label, value string) core.Col {
	return col.New(4).Add(
		text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 8,
		}),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 4}),
	))
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

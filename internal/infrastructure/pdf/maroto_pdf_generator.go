// Package pdf implementa la impresión de facturas de venta y del reporte de ventas
// con Maroto v2. Existe un único renderizador por documento: la descarga HTTP, el
// envío por correo y el CLI producen exactamente el mismo PDF.
//
// Layout de la factura (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT        │  N° Factura + Fecha + Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email / Web                       │
//	│  CLIENTE: Nombre + NIT/CC + contacto (o "Mostrador")         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Descripción | P.Unit | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto (x%) / TOTAL                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Notas + pie de factura configurable                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/pkg/money"
)

var (
	_ sales.InvoicePDFGenerator     = (*MarotoPDFGenerator)(nil)
	_ analytics.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 235, Green: 241, Blue: 247}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los puertos de impresión de factura y reporte.
type MarotoPDFGenerator struct {
	money *money.Formatter
}

// NewMarotoPDFGenerator construye el generador. locale define separadores de miles y decimales.
func NewMarotoPDFGenerator(locale string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{money: money.NewFormatter(locale)}
}

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderInvoice genera la factura de una venta y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderInvoice(doc dto.InvoiceDocument) ([]byte, error) {
	company := doc.Company
	sale := doc.Sale

	m := newDocument("Factura "+sale.InvoiceNumber, nonEmpty(company.Name, "Ventas"))

	m.AddRows(invoiceHeaderRow(company, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(company))
	m.AddRows(customerRow(doc.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de detalles
	m.AddRows(tableHeaderRow(
		headerCell{"Cant.", 1, align.Center},
		headerCell{"SKU", 2, align.Left},
		headerCell{"Descripción", 4, align.Left},
		headerCell{"Precio Unit.", 2, align.Right},
		headerCell{"Total", 3, align.Right},
	))
	for _, it := range sale.Items {
		m.AddRows(row.New(7).Add(
			col.New(1).Add(cellText(strconv.Itoa(it.Quantity), align.Center)),
			col.New(2).Add(cellText(it.ProductSKU, align.Left)),
			col.New(4).Add(cellText(it.ProductName, align.Left)),
			col.New(2).Add(cellText(g.money.Format(company.Currency, it.UnitPrice), align.Right)),
			col.New(3).Add(cellText(g.money.Format(company.Currency, it.Total), align.Right)),
		))
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.invoiceTotalsRow(company.Currency, sale))

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(invoiceFooterRows(company, sale)...)

	return generate(m)
}

// ── Secciones de la factura ───────────────────────────────────────────────────

// invoiceHeaderRow: empresa + NIT (izq) y N° factura + fecha + estado (der).
func invoiceHeaderRow(company dto.SettingsResponse, sale dto.SaleResponse) core.Row {
	status := props.Text{Size: 8, Align: align.Right, Top: 19, Color: colorGray}
	if sale.Status == "cancelled" {
		status.Color = colorDanger
		status.Style = fontstyle.Bold
	}
	return row.New(24).Add(
		col.New(7).Add(
			text.New(nonEmpty(company.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(company.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Estado: "+statusLabel(sale.Status), status),
		),
	)
}

// emisorRow: datos de la empresa.
func emisorRow(company dto.SettingsResponse) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s   |   Web: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
				nonEmpty(company.Website, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// customerRow: datos del cliente. nil = venta de mostrador.
func customerRow(customer *dto.CustomerResponse) core.Row {
	title := text.New("CLIENTE", props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
	})
	if customer == nil {
		return row.New(12).Add(col.New(12).Add(
			title,
			text.New("Venta de mostrador", props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		))
	}
	return row.New(20).Add(
		col.New(12).Add(
			title,
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.TaxID, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New("Dirección: "+nonEmpty(customer.Address, "—"), props.Text{
				Size: 8, Top: 16, Color: colorGray,
			}),
		),
	)
}

// invoiceTotalsRow: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) invoiceTotalsRow(currency string, sale dto.SaleResponse) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Top: 14,
	}

	return row.New(22).Add(
		col.New(4), // espacio izquierdo
		col.New(4).Add(
			label("Subtotal:", 2),
			label(fmt.Sprintf("Impuesto (%s):", g.money.Percent(sale.TaxRate)), 8),
			text.New("TOTAL:", grand),
		),
		col.New(4).Add(
			value(g.money.Format(currency, sale.Subtotal), 2),
			value(g.money.Format(currency, sale.TaxTotal), 8),
			text.New(g.money.Format(currency, sale.Total), grand),
		),
	)
}

// invoiceFooterRows: notas de la venta, vendedor y pie configurable.
func invoiceFooterRows(company dto.SettingsResponse, sale dto.SaleResponse) []core.Row {
	var rows []core.Row
	if sale.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Notas: "+sale.Notes, props.Text{Size: 8, Top: 2}),
		)))
	}
	if sale.IssuerName != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Atendido por: "+sale.IssuerName, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	footer := nonEmpty(company.InvoiceFooter, "Gracias por su compra.")
	rows = append(rows, row.New(10).Add(col.New(12).Add(
		text.New(footer, props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 3,
		}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

type headerCell struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla sobre fondo claro.
func tableHeaderRow(cells ...headerCell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

func cellText(s string, a align.Type) core.Component {
	return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1})
}

func statusLabel(status string) string {
	switch status {
	case "pending":
		return "Pendiente"
	case "completed":
		return "Completada"
	case "cancelled":
		return "ANULADA"
	}
	return status
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

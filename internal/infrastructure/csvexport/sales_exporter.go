// Package csvexport escribe el historial de ventas en CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
)

var _ sales.SalesExporter = (*SalesExporter)(nil)

var header = []string{
	"invoice_number", "created_at", "status", "customer", "issuer", "items",
	"subtotal", "tax_rate", "tax_total", "total", "currency", "notes",
}

// SalesExporter una fila por venta. Los importes van sin separador de miles
// para que las hojas de cálculo los lean como números.
type SalesExporter struct{}

// NewSalesExporter construye el exportador.
func NewSalesExporter() *SalesExporter { return &SalesExporter{} }

// WriteSales escribe cabecera + filas y hace flush al final.
func (e *SalesExporter) WriteSales(w io.Writer, currency string, list []dto.SaleResponse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, s := range list {
		rec := []string{
			s.InvoiceNumber,
			s.CreatedAt.UTC().Format(time.RFC3339),
			s.Status,
			safeText(s.CustomerName),
			safeText(s.IssuerName),
			strconv.Itoa(len(s.Items)),
			s.Subtotal.StringFixed(2),
			s.TaxRate.StringFixed(2),
			s.TaxTotal.StringFixed(2),
			s.Total.StringFixed(2),
			currency,
			safeText(s.Notes),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: venta %s: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// safeText evita que una hoja de cálculo interprete el texto libre como fórmula.
func safeText(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

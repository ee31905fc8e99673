// Package sales contiene los casos de uso de ventas: registro, historial,
// cambios de estado, exportación y facturas.
package sales

import (
	"context"
	"io"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// InvoicePDFGenerator puerto para generar el PDF de una factura.
type InvoicePDFGenerator interface {
	RenderInvoice(doc dto.InvoiceDocument) ([]byte, error)
}

// SalesExporter escribe el historial en un formato tabular (CSV).
type SalesExporter interface {
	WriteSales(w io.Writer, currency string, sales []dto.SaleResponse) error
}

// InvoiceEmail mensaje con la factura adjunta.
type InvoiceEmail struct {
	To         string
	Subject    string
	Body       string
	FileName   string
	Attachment []byte
}

// MailSender puerto de envío de correo.
type MailSender interface {
	Enabled() bool
	SendInvoice(ctx context.Context, msg InvoiceEmail) error
}

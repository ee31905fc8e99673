package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// InvoiceUseCase arma el documento de factura y lo entrega como PDF (descarga) o por correo.
type InvoiceUseCase struct {
	sales  *SalesUseCase
	pdf    InvoicePDFGenerator
	mailer MailSender
	log    zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso. mailer puede ser nil (envío deshabilitado).
func NewInvoiceUseCase(sales *SalesUseCase, pdf InvoicePDFGenerator, mailer MailSender, log zerolog.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{sales: sales, pdf: pdf, mailer: mailer, log: log}
}

// Document reúne empresa, venta y cliente. Respeta la visibilidad de la venta para el actor.
func (uc *InvoiceUseCase) Document(ctx context.Context, actor entity.Actor, saleID string) (*dto.InvoiceDocument, error) {
	var doc *dto.InvoiceDocument
	err := uc.sales.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) error {
		sale, settings, err := uc.sales.load(ctx, tx, actor, saleID)
		if err != nil {
			return err
		}
		doc = &dto.InvoiceDocument{Company: dto.SettingsFromEntity(settings), Sale: *sale}
		if sale.CustomerID == "" {
			return nil
		}
		c, err := tx.Customers.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return err
		}
		if c != nil {
			cr := dto.CustomerFromEntity(c)
			doc.Customer = &cr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Render genera el PDF de la factura. Devuelve el contenido y un nombre de archivo sugerido.
func (uc *InvoiceUseCase) Render(ctx context.Context, actor entity.Actor, saleID string) ([]byte, string, error) {
	doc, err := uc.Document(ctx, actor, saleID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.pdf.RenderInvoice(*doc)
	if err != nil {
		return nil, "", fmt.Errorf("generar factura %s: %w", doc.Sale.InvoiceNumber, err)
	}
	return pdf, doc.Sale.InvoiceNumber + ".pdf", nil
}

// Email envía la factura como adjunto. Sin destinatario explícito se usa el email del cliente.
func (uc *InvoiceUseCase) Email(ctx context.Context, actor entity.Actor, saleID string, in dto.EmailInvoiceRequest) (*dto.EmailInvoiceResponse, error) {
	if uc.mailer == nil || !uc.mailer.Enabled() {
		return nil, domain.ErrMailDisabled
	}
	doc, err := uc.Document(ctx, actor, saleID)
	if err != nil {
		return nil, err
	}
	to := strings.TrimSpace(in.To)
	if to == "" && doc.Customer != nil {
		to = doc.Customer.Email
	}
	if to == "" {
		return nil, fmt.Errorf("%w: la venta no tiene cliente con email; indique destinatario", domain.ErrInvalidInput)
	}
	if !strings.Contains(to, "@") {
		return nil, fmt.Errorf("%w: destinatario %q", domain.ErrInvalidInput, to)
	}

	pdf, err := uc.pdf.RenderInvoice(*doc)
	if err != nil {
		return nil, fmt.Errorf("generar factura %s: %w", doc.Sale.InvoiceNumber, err)
	}
	company := doc.Company.Name
	if company == "" {
		company = "Factura"
	}
	msg := InvoiceEmail{
		To:         to,
		Subject:    fmt.Sprintf("%s - Factura %s", company, doc.Sale.InvoiceNumber),
		Body:       invoiceEmailBody(doc),
		FileName:   doc.Sale.InvoiceNumber + ".pdf",
		Attachment: pdf,
	}
	if err := uc.mailer.SendInvoice(ctx, msg); err != nil {
		uc.log.Error().Err(err).Str("sale_id", saleID).Str("to", to).Msg("error enviando factura")
		return nil, fmt.Errorf("enviar factura: %w", err)
	}
	uc.log.Info().Str("sale_id", saleID).Str("to", to).Msg("factura enviada")
	return &dto.EmailInvoiceResponse{SaleID: saleID, To: to, Sent: true}, nil
}

func invoiceEmailBody(doc *dto.InvoiceDocument) string {
	var b strings.Builder
	name := "cliente"
	if doc.Customer != nil && doc.Customer.Name != "" {
		name = doc.Customer.Name
	}
	fmt.Fprintf(&b, "Hola %s,\n\n", name)
	fmt.Fprintf(&b, "Adjuntamos la factura %s por un total de %s %s.\n\n",
		doc.Sale.InvoiceNumber, doc.Sale.Total.StringFixed(2), doc.Company.Currency)
	if doc.Company.InvoiceFooter != "" {
		b.WriteString(doc.Company.InvoiceFooter)
		b.WriteString("\n\n")
	}
	b.WriteString(doc.Company.Name)
	return b.String()
}

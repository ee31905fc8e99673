// Package mail envía facturas por correo vía SMTP (gomail).
package mail

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/pkg/config"
)

var _ sales.MailSender = (*SMTPSender)(nil)

// dialer abstrae gomail.Dialer para poder probar sin servidor SMTP.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender implementa sales.MailSender. Sin SMTP_HOST queda deshabilitado.
type SMTPSender struct {
	cfg    config.SMTPConfig
	dialer dialer
	log    zerolog.Logger
}

// NewSMTPSender construye el sender a partir de la configuración SMTP.
func NewSMTPSender(cfg config.SMTPConfig, log zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		log:    log,
	}
}

// Enabled informa si hay servidor configurado.
func (s *SMTPSender) Enabled() bool { return s.cfg.Enabled() }

// SendInvoice arma el mensaje con el PDF adjunto y lo entrega.
func (s *SMTPSender) SendInvoice(ctx context.Context, msg sales.InvoiceEmail) error {
	if !s.Enabled() {
		return fmt.Errorf("mail: servidor SMTP no configurado")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := buildMessage(s.cfg.From, msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", msg.To, err)
	}
	s.log.Info().Str("to", msg.To).Str("file", msg.FileName).Msg("Factura enviada por correo")
	return nil
}

func buildMessage(from string, msg sales.InvoiceEmail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if len(msg.Attachment) > 0 {
		data := msg.Attachment
		m.Attach(msg.FileName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		)
	}
	return m
}

package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/pkg/config"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func newSender(cfg config.SMTPConfig) (*SMTPSender, *fakeDialer) {
	s := NewSMTPSender(cfg, zerolog.Nop())
	d := &fakeDialer{}
	s.dialer = d
	return s, d
}

func invoiceMail() sales.InvoiceEmail {
	return sales.InvoiceEmail{
		To:         "juan@mail.com",
		Subject:    "Factura INV-000001",
		Body:       "Adjuntamos su factura.",
		FileName:   "INV-000001.pdf",
		Attachment: []byte("%PDF-1.3 fake"),
	}
}

func TestSendInvoice(t *testing.T) {
	s, d := newSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "ventas@example.com"})
	require.True(t, s.Enabled())

	require.NoError(t, s.SendInvoice(context.Background(), invoiceMail()))
	require.Len(t, d.sent, 1)

	var raw bytes.Buffer
	_, err := d.sent[0].WriteTo(&raw)
	require.NoError(t, err)
	out := raw.String()
	assert.Contains(t, out, "To: juan@mail.com")
	assert.Contains(t, out, "From: ventas@example.com")
	assert.Contains(t, out, "Subject: Factura INV-000001")
	assert.Contains(t, out, `filename="INV-000001.pdf"`)
	assert.Contains(t, out, "application/pdf")
}

func TestSendInvoice_Deshabilitado(t *testing.T) {
	s, d := newSender(config.SMTPConfig{})
	assert.False(t, s.Enabled())
	assert.Error(t, s.SendInvoice(context.Background(), invoiceMail()))
	assert.Empty(t, d.sent)
}

func TestSendInvoice_ErrorSMTP(t *testing.T) {
	s, d := newSender(config.SMTPConfig{Host: "smtp.example.com", From: "ventas@example.com"})
	d.err = errors.New("connection refused")
	err := s.SendInvoice(context.Background(), invoiceMail())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "juan@mail.com")
}

func TestSendInvoice_ContextoCancelado(t *testing.T) {
	s, d := newSender(config.SMTPConfig{Host: "smtp.example.com", From: "ventas@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendInvoice(ctx, invoiceMail()), context.Canceled)
	assert.Empty(t, d.sent)
}

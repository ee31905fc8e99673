package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo persistencia de la fila única company_settings.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de company_settings.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración de la empresa. La migración siembra la fila, así que
// su ausencia es un error.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.CompanySettings, error) {
	query := `
		SELECT id, name, tax_id, address, phone, email, website, logo_url, currency, tax_rate,
		       invoice_prefix, invoice_footer, updated_at
		FROM company_settings WHERE id = $1`
	var s entity.CompanySettings
	err := r.q.QueryRow(ctx, query, entity.CompanySettingsID).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Address, &s.Phone, &s.Email, &s.Website, &s.LogoURL,
		&s.Currency, &s.TaxRate, &s.InvoicePrefix, &s.InvoiceFooter, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("company settings: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	return &s, nil
}

// Update reemplaza todos los campos editables.
func (r *SettingsRepo) Update(ctx context.Context, s *entity.CompanySettings) error {
	query := `
		UPDATE company_settings SET
			name = $2, tax_id = $3, address = $4, phone = $5, email = $6, website = $7, logo_url = $8,
			currency = $9, tax_rate = $10, invoice_prefix = $11, invoice_footer = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		entity.CompanySettingsID, s.Name, s.TaxID, s.Address, s.Phone, s.Email, s.Website, s.LogoURL,
		s.Currency, s.TaxRate, s.InvoicePrefix, s.InvoiceFooter, s.UpdatedAt,
	)
	if err != nil {
		return mapError("update company settings", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update company settings: %w", domain.ErrForbidden)
	}
	return nil
}

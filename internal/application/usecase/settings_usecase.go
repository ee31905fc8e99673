package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var maxTaxRate = decimal.NewFromInt(100)

// SettingsUseCase lectura y edición de los datos de la empresa.
type SettingsUseCase struct {
	repo repository.SettingsRepository
	tx   repository.TxRunner
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, tx repository.TxRunner) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, tx: tx}
}

// Get devuelve la configuración vigente (cualquier usuario autenticado).
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := dto.SettingsFromEntity(s)
	return &out, nil
}

// Update aplica cambios parciales (solo admin). tax_rate en [0, 100]; currency debe ser ISO 4217.
func (uc *SettingsUseCase) Update(ctx context.Context, actor entity.Actor, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.TaxRate != nil && (in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(maxTaxRate)) {
		return nil, fmt.Errorf("%w: tax_rate debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	var code string
	if in.Currency != nil {
		unit, err := currency.ParseISO(strings.TrimSpace(*in.Currency))
		if err != nil {
			return nil, fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, *in.Currency)
		}
		code = unit.String()
	}

	var updated *entity.CompanySettings
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		s, err := tx.Settings.Get(ctx)
		if err != nil {
			return err
		}
		setIf(&s.Name, in.Name)
		setIf(&s.TaxID, in.TaxID)
		setIf(&s.Address, in.Address)
		setIf(&s.Phone, in.Phone)
		setIf(&s.Email, in.Email)
		setIf(&s.Website, in.Website)
		setIf(&s.LogoURL, in.LogoURL)
		setIf(&s.InvoicePrefix, in.InvoicePrefix)
		setIf(&s.InvoiceFooter, in.InvoiceFooter)
		if code != "" {
			s.Currency = code
		}
		if in.TaxRate != nil {
			s.TaxRate = in.TaxRate.Round(2)
		}
		s.UpdatedAt = time.Now().UTC()
		if err := tx.Settings.Update(ctx, s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.SettingsFromEntity(updated)
	return &out, nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

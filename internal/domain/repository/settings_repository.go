package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SettingsRepository persistencia de la fila única company_settings.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Update(ctx context.Context, settings *entity.CompanySettings) error
}

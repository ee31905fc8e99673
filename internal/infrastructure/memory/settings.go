package memory

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo fila única de company_settings.
type SettingsRepo struct{ v *view }

func (r *SettingsRepo) Get(ctx context.Context) (*entity.CompanySettings, error) {
	var out entity.CompanySettings
	err := r.v.do(func(st *state) error {
		out = st.settings
		return nil
	})
	return &out, err
}

func (r *SettingsRepo) Update(ctx context.Context, s *entity.CompanySettings) error {
	return r.v.do(func(st *state) error {
		if !r.v.privileged() {
			return forbidden()
		}
		old := st.settings
		updated := *s
		updated.ID = entity.CompanySettingsID
		st.settings = updated
		r.v.record(st, entity.AuditActionUpdate, "company_settings", settingsID(), toSettingsRow(old), toSettingsRow(updated))
		return nil
	})
}

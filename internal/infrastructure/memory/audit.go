package memory

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo lectura de la bitácora en memoria.
type AuditLogRepo struct{ v *view }

func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	var out []*entity.AuditLog
	total := 0
	err := r.v.do(func(st *state) error {
		if !r.v.privileged() {
			return nil // audit_logs_select: solo admin
		}
		var list []entity.AuditLog
		// más reciente primero: el slice está en orden de inserción
		for i := len(st.audit) - 1; i >= 0; i-- {
			l := st.audit[i]
			if f.EntityType != "" && l.EntityType != f.EntityType {
				continue
			}
			if f.EntityID != "" && l.EntityID != f.EntityID {
				continue
			}
			if f.Action != "" && l.Action != f.Action {
				continue
			}
			if f.ActorID != "" && l.ActorID != f.ActorID {
				continue
			}
			if f.From != nil && l.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && !l.CreatedAt.Before(*f.To) {
				continue
			}
			list = append(list, l)
		}
		total = len(list)
		for _, l := range page(list, f.Limit, f.Offset) {
			l := l
			out = append(out, &l)
		}
		return nil
	})
	return out, total, err
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo lectura de audit_logs.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de la bitácora.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// List devuelve la página pedida, más reciente primero, y el total filtrado.
func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	var c conditions
	if f.EntityType != "" {
		c.add("entity_type = $%d", f.EntityType)
	}
	if f.EntityID != "" {
		c.add("entity_id = $%d", f.EntityID)
	}
	if f.Action != "" {
		c.add("action = $%d", f.Action)
	}
	if f.ActorID != "" {
		c.add("actor_id::text = $%d", f.ActorID)
	}
	if f.From != nil {
		c.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		c.add("created_at < $%d", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	suffix, args := c.page(f.Limit, f.Offset)
	query := `SELECT id, actor_id::text, action, entity_type, entity_id, old_data, new_data, created_at
		FROM audit_logs` + c.where() + ` ORDER BY created_at DESC, id DESC` + suffix
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var actor *string
		var oldData, newData []byte
		if err := rows.Scan(&l.ID, &actor, &l.Action, &l.EntityType, &l.EntityID, &oldData, &newData, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		l.ActorID = derefStr(actor)
		l.OldData = oldData
		l.NewData = newData
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// AuditFilter filtros de la bitácora.
type AuditFilter struct {
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// AuditLogRepository lectura de la bitácora (la escriben los triggers).
type AuditLogRepository interface {
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditLog, int, error)
}

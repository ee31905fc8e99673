package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// AuditUseCase consulta de la bitácora (solo admin, solo lectura).
type AuditUseCase struct {
	tx repository.TxRunner
}

// NewAuditUseCase construye el caso de uso. La lectura corre con TxRunner.ReadAs.
func NewAuditUseCase(tx repository.TxRunner) *AuditUseCase {
	return &AuditUseCase{tx: tx}
}

// List devuelve la bitácora filtrada, más reciente primero.
func (uc *AuditUseCase) List(ctx context.Context, actor entity.Actor, in dto.AuditListRequest) (*dto.AuditListResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	from, to, err := dto.ParseDayRange(in.From, in.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	action := strings.ToUpper(strings.TrimSpace(in.Action))
	switch action {
	case "", entity.AuditActionInsert, entity.AuditActionUpdate, entity.AuditActionDelete:
	default:
		return nil, fmt.Errorf("%w: acción %q", domain.ErrInvalidInput, in.Action)
	}
	page := in.PageRequest
	page.Normalize()

	var (
		list  []*entity.AuditLog
		total int
	)
	err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) (err error) {
		list, total, err = tx.AuditLogs.List(ctx, repository.AuditFilter{
			EntityType: in.EntityType,
			EntityID:   in.EntityID,
			Action:     action,
			ActorID:    in.ActorID,
			From:       from,
			To:         to,
			Limit:      page.Limit,
			Offset:     page.Offset,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.AuditListResponse{
		Items: make([]dto.AuditLogResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, l := range list {
		out.Items = append(out.Items, dto.AuditLogFromEntity(l))
	}
	return out, nil
}

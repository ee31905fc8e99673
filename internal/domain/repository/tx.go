package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Users     UserRepository
	Settings  SettingsRepository
	Customers CustomerRepository
	Products  ProductRepository
	Sales     SaleRepository
	Reports   ReportRepository
	AuditLogs AuditLogRepository
}

// TxRunner ejecuta fn dentro de una transacción identificando al actor.
type TxRunner interface {
	// RunAs: si fn devuelve error se hace rollback; si no, commit.
	RunAs(ctx context.Context, actor entity.Actor, fn func(tx TxRepos) error) error
	// ReadAs abre una transacción de solo lectura con el actor, para que las políticas
	// por fila filtren lo que ve. Los repos no deben usarse desde varias goroutines a la vez.
	ReadAs(ctx context.Context, actor entity.Actor, fn func(tx TxRepos) error) error
}

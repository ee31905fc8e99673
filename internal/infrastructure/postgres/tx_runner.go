package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAs inicia una transacción, fija app.user_id / app.user_role (los leen los triggers de
// auditoría y las políticas RLS), ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Con un Actor vacío la tx corre como rol de servicio.
func (r *TxRunner) RunAs(ctx context.Context, actor entity.Actor, fn func(tx repository.TxRepos) error) error {
	return r.run(ctx, pgx.TxOptions{}, actor, fn)
}

// ReadAs igual que RunAs pero READ ONLY: las lecturas del API pasan por las políticas RLS
// del actor en lugar de correr como rol de servicio sobre el pool.
func (r *TxRunner) ReadAs(ctx context.Context, actor entity.Actor, fn func(tx repository.TxRepos) error) error {
	return r.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, actor, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, actor entity.Actor, fn func(tx repository.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if !actor.IsService() {
		const setActor = `SELECT set_config('app.user_id', $1, true), set_config('app.user_role', $2, true)`
		if _, err := tx.Exec(ctx, setActor, actor.UserID, actor.Role); err != nil {
			return fmt.Errorf("set actor: %w", err)
		}
	}

	repos := repository.TxRepos{
		Users:     NewUserRepository(tx),
		Settings:  NewSettingsRepository(tx),
		Customers: NewCustomerRepository(tx),
		Products:  NewProductRepository(tx),
		Sales:     NewSaleRepository(tx),
		Reports:   NewReportRepository(tx),
		AuditLogs: NewAuditLogRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}

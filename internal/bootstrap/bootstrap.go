// Package bootstrap arma el almacenamiento y los casos de uso a partir de la
// configuración. Lo comparten la API (cmd/api) y el CLI (cmd/ventasctl).
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/csvexport"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/mail"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
)

// Storage repositorios de lectura de catálogo + runner transaccional de un mismo backend.
// Ventas, reportes y auditoría se leen siempre con Tx.ReadAs (RLS por actor).
type Storage struct {
	Driver    string
	Users     repository.UserRepository
	Settings  repository.SettingsRepository
	Customers repository.CustomerRepository
	Products  repository.ProductRepository
	Tx        repository.TxRunner

	Pool *pgxpool.Pool // nil con el driver memory
}

// OpenStorage abre PostgreSQL (aplicando migraciones si RUN_MIGRATIONS) o el store en memoria.
func OpenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	switch cfg.App.Storage {
	case "memory":
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return NewMemoryStorage(memory.New()), nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.App.RunMigrations {
			if _, err := postgres.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
		}
		return NewPostgresStorage(pool), nil
	}
	return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.App.Storage)
}

// NewPostgresStorage repositorios sobre el pool. Las escrituras pasan por TxRunner.
func NewPostgresStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		Driver:    "postgres",
		Users:     postgres.NewUserRepository(pool),
		Settings:  postgres.NewSettingsRepository(pool),
		Customers: postgres.NewCustomerRepository(pool),
		Products:  postgres.NewProductRepository(pool),
		Tx:        postgres.NewTxRunner(pool),
		Pool:      pool,
	}
}

// NewMemoryStorage repositorios sobre el store en memoria (demo y tests).
func NewMemoryStorage(s *memory.Store) *Storage {
	return &Storage{
		Driver:    "memory",
		Users:     s.Users(),
		Settings:  s.Settings(),
		Customers: s.Customers(),
		Products:  s.Products(),
		Tx:        s,
	}
}

// Ping comprueba la base de datos; en memoria siempre responde bien.
func (s *Storage) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return nil
	}
	return s.Pool.Ping(ctx)
}

// Close libera el pool si existe.
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// Services casos de uso listos para los adaptadores (HTTP y CLI).
type Services struct {
	Auth      *auth.AuthUseCase
	Users     *usecase.UserUseCase
	Settings  *usecase.SettingsUseCase
	Customers *usecase.CustomerUseCase
	Products  *usecase.ProductUseCase
	Audit     *usecase.AuditUseCase
	Sales     *sales.SalesUseCase
	Invoices  *sales.InvoiceUseCase
	Dashboard *appanalytics.DashboardUseCase
	Reports   *appanalytics.ReportUseCase
}

// NewServices instancia los casos de uso con un único renderizador PDF compartido.
func NewServices(cfg *config.Config, st *Storage, log zerolog.Logger) *Services {
	pdf := infrapdf.NewMarotoPDFGenerator(cfg.Reports.Locale)
	mailer := mail.NewSMTPSender(cfg.SMTP, log.With().Str("component", "mail").Logger())
	salesLog := log.With().Str("component", "sales").Logger()

	salesUC := sales.NewSalesUseCase(st.Tx, csvexport.NewSalesExporter(), salesLog)

	return &Services{
		Auth: auth.NewAuthUseCase(st.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		Users:     usecase.NewUserUseCase(st.Users, st.Tx),
		Settings:  usecase.NewSettingsUseCase(st.Settings, st.Tx),
		Customers: usecase.NewCustomerUseCase(st.Customers, st.Tx),
		Products:  usecase.NewProductUseCase(st.Products, st.Tx, log.With().Str("component", "products").Logger()),
		Audit:     usecase.NewAuditUseCase(st.Tx),
		Sales:     salesUC,
		Invoices:  sales.NewInvoiceUseCase(salesUC, pdf, mailer, salesLog),
		Dashboard: appanalytics.NewDashboardUseCase(st.Tx, cfg.Reports.LowStockThreshold),
		Reports:   appanalytics.NewReportUseCase(st.Tx, pdf),
	}
}

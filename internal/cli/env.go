package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/Ventas-api/internal/bootstrap"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// Env dependencias abiertas para un comando.
type Env struct {
	Config   *config.Config
	Storage  *bootstrap.Storage
	Services *bootstrap.Services
	Log      *logger.Logger
}

// Close libera el almacenamiento.
func (e *Env) Close() {
	if e.Storage != nil {
		e.Storage.Close()
	}
}

// Opener abre el entorno de un comando. Los tests inyectan uno en memoria.
type Opener func(ctx context.Context, opts *RootOptions, logOut io.Writer) (*Env, error)

// OpenEnv carga la configuración y abre el almacenamiento configurado.
// El CLI nunca migra implícitamente: para eso está `ventasctl migrate`.
func OpenEnv(ctx context.Context, opts *RootOptions, logOut io.Writer) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if opts.Storage != "" {
		cfg.App.Storage = opts.Storage
	}
	cfg.App.RunMigrations = false

	log := newLogger(cfg, opts, logOut)
	st, err := bootstrap.OpenStorage(ctx, cfg, log.Component("storage"))
	if err != nil {
		return nil, err
	}
	return &Env{
		Config:   cfg,
		Storage:  st,
		Services: bootstrap.NewServices(cfg, st, log.Zerolog()),
		Log:      log,
	}, nil
}

func newLogger(cfg *config.Config, opts *RootOptions, out io.Writer) *logger.Logger {
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: out})
}

func (o *RootOptions) openEnv(ctx context.Context, logOut io.Writer) (*Env, error) {
	open := o.open
	if open == nil {
		open = OpenEnv
	}
	return open(ctx, o, logOut)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
)

// MigrateResult salida de `migrate`.
type MigrateResult struct {
	Available []string `json:"available,omitempty"`
	Applied   []string `json:"applied"`
}

// NewMigrateCommand crea el comando migrate.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes de PostgreSQL",
		Long: `Aplica en orden las migraciones embebidas (tablas, triggers de auditoría y
políticas RLS) que todavía no figuran en schema_migrations.

Ejemplo:
  ventasctl migrate
  ventasctl migrate --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				names, err := postgres.MigrationNames()
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), rootOpts.Format, MigrateResult{Available: names, Applied: []string{}}, names...)
			}
			return runMigrate(rootOpts, cmd)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "solo lista las migraciones embebidas, sin conectarse")
	return cmd
}

func runMigrate(opts *RootOptions, cmd *cobra.Command) error {
	env, err := opts.openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "abrir almacenamiento", err)
	}
	defer env.Close()

	if env.Storage.Pool == nil {
		return &ExitError{Code: ExitCommandError, Message: "migrate requiere STORAGE_DRIVER=postgres"}
	}
	applied, err := postgres.Migrate(cmd.Context(), env.Storage.Pool, env.Log.Component("migrate"))
	if err != nil {
		return WrapExitError(ExitFailure, "migraciones", err)
	}
	if applied == nil {
		applied = []string{}
	}

	lines := []string{fmt.Sprintf("%d migraciones aplicadas", len(applied))}
	lines = append(lines, applied...)
	return printResult(cmd.OutOrStdout(), opts.Format, MigrateResult{Applied: applied}, lines...)
}

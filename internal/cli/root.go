// Package cli implementa ventasctl, la herramienta de operación de Ventas API:
// migraciones, administrador inicial, carga de catálogo, exportaciones y facturas.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions flags globales de todos los comandos.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json"
	Storage string // sobrescribe STORAGE_DRIVER

	open Opener
}

// ValidFormats formatos de salida permitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz leyendo la configuración del entorno.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{open: OpenEnv})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ventasctl",
		Short: "Operación de Ventas API",
		Long: `Herramienta de línea de comandos para operar Ventas API.

Usa la misma configuración que la API (variables de entorno, .env o config.env).
Las operaciones se ejecutan como servicio: no requieren token ni usuario.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("formato inválido %q: debe ser uno de %v", opts.Format, ValidFormats)
			}
			if opts.Storage != "" && opts.Storage != "postgres" && opts.Storage != "memory" {
				return fmt.Errorf("storage inválido %q (postgres|memory)", opts.Storage)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "logs detallados en stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Storage, "storage", "", "almacenamiento (postgres|memory); por defecto STORAGE_DRIVER")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCreateAdminCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewInvoiceCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

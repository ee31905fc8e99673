package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// NewExportCommand crea el comando export y sus subcomandos.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta datos a CSV",
	}
	cmd.AddCommand(newExportSalesCommand(rootOpts))
	return cmd
}

func newExportSalesCommand(rootOpts *RootOptions) *cobra.Command {
	var out string
	var filter dto.SaleListRequest

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Exporta el historial de ventas en CSV",
		Long: `Escribe el historial de ventas (mismos filtros que GET /api/sales/export) en CSV.
Sin --out el CSV va a la salida estándar.

Ejemplo:
  ventasctl export sales --from 2026-03-01 --to 2026-03-31 --out marzo.csv
  ventasctl export sales --status cancelled > anuladas.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return WrapExitError(ExitCommandError, "abrir almacenamiento", err)
			}
			defer env.Close()

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return WrapExitError(ExitCommandError, "crear archivo", err)
				}
				defer f.Close()
				w = f
			}

			if err := env.Services.Sales.Export(cmd.Context(), entity.Actor{}, filter, w); err != nil {
				return WrapExitError(ExitFailure, "exportar ventas", err)
			}
			if w != cmd.OutOrStdout() {
				fmt.Fprintf(cmd.ErrOrStderr(), "ventas exportadas a %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "archivo de salida (por defecto stdout)")
	cmd.Flags().StringVar(&filter.Status, "status", "", "pending|completed|cancelled")
	cmd.Flags().StringVar(&filter.CustomerID, "customer-id", "", "id de cliente")
	cmd.Flags().StringVar(&filter.IssuerID, "issuer-id", "", "id del vendedor")
	cmd.Flags().StringVar(&filter.Search, "search", "", "texto en número, notas o nombre del cliente")
	cmd.Flags().StringVar(&filter.From, "from", "", "desde (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.To, "to", "", "hasta inclusive (YYYY-MM-DD)")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CreateAdminResult salida de `create-admin`.
type CreateAdminResult struct {
	Email   string `json:"email"`
	Created bool   `json:"created"`
}

// NewCreateAdminCommand crea el comando create-admin.
func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea un usuario administrador si el email no existe",
		Long: `Crea un usuario con rol admin. Si el email ya está registrado no modifica nada.

Ejemplo:
  ventasctl create-admin --email admin@tienda.com --password 'clave-segura'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return WrapExitError(ExitCommandError, "abrir almacenamiento", err)
			}
			defer env.Close()

			created, err := env.Services.Users.EnsureAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return WrapExitError(ExitFailure, "crear administrador", err)
			}
			msg := fmt.Sprintf("administrador %s creado", email)
			if !created {
				msg = fmt.Sprintf("el usuario %s ya existe, sin cambios", email)
			}
			return printResult(cmd.OutOrStdout(), rootOpts.Format, CreateAdminResult{Email: email, Created: created}, msg)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email del administrador (requerido)")
	cmd.Flags().StringVar(&password, "password", "", "contraseña, mínimo 8 caracteres (requerido)")
	cmd.Flags().StringVar(&name, "name", "Administrador", "nombre visible")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rental-admin/internal/service"
)

func newLoginCmd(rt *runtime) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesion",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = rt.prompt("Email: "); err != nil {
					return fmt.Errorf("read email: %w", err)
				}
			}
			if password == "" {
				if password, err = rt.prompt("Password: "); err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}
			if email == "" || password == "" {
				return fmt.Errorf("email y password son obligatorios")
			}
			return rt.login(cmd, email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email del administrador (se pide si falta)")
	cmd.Flags().StringVar(&password, "password", "", "Password (se pide si falta)")
	return cmd
}

func (rt *runtime) login(cmd *cobra.Command, email, password string) error {
	if _, err := rt.app.Auth.Login(cmd.Context(), email, password); err != nil {
		return userMessage(err, service.MsgLoginFailed)
	}
	fmt.Fprintf(rt.out, "Sesion iniciada como %s. Se cierra tras %s de inactividad.\n", email, rt.app.Monitor.Timeout())
	return nil
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesion",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.app.Auth.Logout(cmd.Context())
			fmt.Fprintln(rt.out, "Sesion cerrada.")
			return nil
		},
	}
}

func newStatusCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Estado de la sesion",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.printStatus(cmd)
			return nil
		},
	}
}

func (rt *runtime) printStatus(cmd *cobra.Command) {
	info := rt.app.Auth.Session(cmd.Context())
	fmt.Fprintf(rt.out, "Autenticado:  %t\n", info.IsAuthenticated)
	fmt.Fprintf(rt.out, "Activa:       %t\n", info.IsActive)
	fmt.Fprintf(rt.out, "Valida:       %t\n", info.IsValid)
	fmt.Fprintf(rt.out, "Restante:     %dm (%ds)\n", info.RemainingMinutes, info.RemainingSeconds)
	if info.IsAboutToExpire {
		fmt.Fprintln(rt.out, "Aviso:        la sesion expira en menos de un minuto")
	}
	if info.TokenExpiresAt != nil {
		fmt.Fprintf(rt.out, "Token expira: %s\n", info.TokenExpiresAt.Local().Format(time.RFC3339))
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rental-admin/internal/app"
	"rental-admin/internal/backend"
	"rental-admin/internal/config"
	"rental-admin/internal/service"
)

// Opener construye la aplicacion; los tests inyectan una sobre almacenamiento en memoria.
type Opener func(ctx context.Context, verbose bool) (*app.App, error)

// runtime es el estado compartido por los subcomandos.
type runtime struct {
	open    Opener
	app     *app.App
	in      *bufio.Reader
	out     io.Writer
	verbose bool
}

// OpenFromEnv carga .env y la configuracion y abre el almacenamiento configurado.
func OpenFromEnv(ctx context.Context, verbose bool) (*app.App, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := zap.NewNop()
	if verbose {
		logger = zap.NewExample()
	}
	return app.New(ctx, cfg, logger)
}

// NewRootCmd crea el comando raiz de la consola.
func NewRootCmd() *cobra.Command {
	return newRootCmd(OpenFromEnv, os.Stdin, os.Stdout)
}

func newRootCmd(open Opener, in io.Reader, out io.Writer) *cobra.Command {
	rt := &runtime{open: open, in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:   "rental-console",
		Short: "Consola de administracion de alquileres",
		Long:  "Administra habitaciones, ubicaciones, usuarios y reservas con cierre de sesion por inactividad.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd.Context(), rt.verbose)
			if err != nil {
				return err
			}
			rt.app = a
			if err := a.Auth.Start(cmd.Context()); errors.Is(err, service.ErrSessionExpired) {
				fmt.Fprintln(rt.out, "La sesion guardada expiro por inactividad.")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.app != nil {
				rt.app.Close()
			}
		},
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetIn(in)
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Log estructurado a stderr")

	root.AddCommand(
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newStatusCmd(rt),
		newRoomsCmd(rt),
		newLocationsCmd(rt),
		newUsersCmd(rt),
		newBookingsCmd(rt),
		newProfileCmd(rt),
		newConsoleCmd(rt),
	)
	return root
}

// prompt imprime label y lee una linea. io.EOF sin datos se devuelve como error.
func (rt *runtime) prompt(label string) (string, error) {
	fmt.Fprint(rt.out, label)
	line, err := rt.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// requireSession falla si no hay login o si la sesion ya expiro.
func (rt *runtime) requireSession() error {
	if !rt.app.Monitor.IsAuthenticated() {
		return errors.New(service.MsgNotLoggedIn)
	}
	if !rt.app.Monitor.IsSessionValid() {
		return errors.New(backend.MsgUnauthorized)
	}
	return nil
}

func userMessage(err error, fallback string) error {
	return errors.New(backend.Message(err, fallback))
}

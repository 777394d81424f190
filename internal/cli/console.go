package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rental-admin/internal/activity"
	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
	"rental-admin/internal/service"
	"rental-admin/internal/state"
)

// errAutoLogout corta el menu cuando el monitor cierra la sesion.
var errAutoLogout = errors.New("auto logout")

const msgAutoLogout = "Sesion cerrada por inactividad. Vuelve a iniciar sesion."

func newConsoleCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Menu interactivo con cierre de sesion por inactividad",
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runConsole(cmd)
		},
	}
}

// consoleInput entrega las lineas de stdin y avisa cuando el monitor despacha logout.
type consoleInput struct {
	lines   chan string
	readErr chan error
	logout  chan struct{}
	done    chan struct{}
}

func (rt *runtime) startInput() *consoleInput {
	in := &consoleInput{
		lines:   make(chan string),
		readErr: make(chan error, 1),
		logout:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	rt.app.State.Subscribe(func(s state.LoginState) {
		if !s.IsAuthenticated {
			select {
			case in.logout <- struct{}{}:
			default:
			}
		}
	})
	go func() {
		for {
			line, err := rt.in.ReadString('\n')
			if line != "" {
				select {
				case in.lines <- strings.TrimSpace(line):
				case <-in.done:
					return
				}
			}
			if err != nil {
				in.readErr <- err
				return
			}
		}
	}()
	return in
}

// next espera la proxima linea. Cada linea cuenta como una tecla presionada.
func (rt *runtime) next(in *consoleInput, label string) (string, error) {
	fmt.Fprint(rt.out, label)
	select {
	case line := <-in.lines:
		rt.app.Hub.Publish(activity.Event{Kind: activity.KeyPress})
		return line, nil
	case err := <-in.readErr:
		return "", err
	case <-in.logout:
		return "", errAutoLogout
	}
}

func (rt *runtime) runConsole(cmd *cobra.Command) error {
	ctx := cmd.Context()
	in := rt.startInput()
	defer close(in.done)

	if !rt.app.Monitor.IsAuthenticated() {
		fmt.Fprintln(rt.out, "===== Login =====")
		email, err := rt.next(in, "Email: ")
		if err != nil {
			return rt.consoleExit(err)
		}
		password, err := rt.next(in, "Password: ")
		if err != nil {
			return rt.consoleExit(err)
		}
		if err := rt.login(cmd, email, password); err != nil {
			return err
		}
	}

	rooms := service.NewListState()
	locations := service.NewListState()
	users := service.NewListState()

	for {
		fmt.Fprintln(rt.out, "\n===== Administracion =====")
		fmt.Fprintln(rt.out, "[1] Habitaciones")
		fmt.Fprintln(rt.out, "[2] Ubicaciones")
		fmt.Fprintln(rt.out, "[3] Usuarios")
		fmt.Fprintln(rt.out, "[4] Reservas de un usuario")
		fmt.Fprintln(rt.out, "[5] Mi perfil")
		fmt.Fprintln(rt.out, "[6] Estado de sesion")
		fmt.Fprintln(rt.out, "[7] Logout")
		fmt.Fprintln(rt.out, "[0] Salir")

		choice, err := rt.next(in, "Opcion: ")
		if err != nil {
			return rt.consoleExit(err)
		}

		switch choice {
		case "1":
			err = browse(ctx, rt, in, rooms, rt.app.Rooms.Page, rt.printRooms, service.MsgRoomsFailed)
		case "2":
			err = browse(ctx, rt, in, locations, rt.app.Locations.Page, rt.printLocations, service.MsgLocationsFailed)
		case "3":
			err = browse(ctx, rt, in, users, rt.app.Users.Page, rt.printUsers, service.MsgUsersFailed)
		case "4":
			err = rt.consoleBookings(ctx, in)
		case "5":
			err = rt.printProfile(ctx)
		case "6":
			rt.printStatus(cmd)
		case "7":
			rt.app.Auth.Logout(ctx)
			fmt.Fprintln(rt.out, "Sesion cerrada.")
			return nil
		case "0", "q":
			return nil
		default:
			fmt.Fprintln(rt.out, "Opcion invalida.")
		}

		if err != nil {
			if errors.Is(err, errAutoLogout) || errors.Is(err, io.EOF) {
				return rt.consoleExit(err)
			}
			fmt.Fprintf(rt.out, "Error: %v\n", err)
		}
	}
}

func (rt *runtime) consoleExit(err error) error {
	switch {
	case errors.Is(err, errAutoLogout):
		fmt.Fprintln(rt.out, "\n"+msgAutoLogout)
		return nil
	case errors.Is(err, io.EOF):
		return nil
	}
	return err
}

func (rt *runtime) consoleBookings(ctx context.Context, in *consoleInput) error {
	raw, err := rt.next(in, "Id de usuario: ")
	if err != nil {
		return err
	}
	userID, err := strconv.Atoi(raw)
	if err != nil || userID <= 0 {
		return fmt.Errorf("invalid user id %q", raw)
	}
	bookings, err := rt.app.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return userMessage(err, service.MsgBookingsFailed)
	}
	rt.printBookings(bookings)
	return nil
}

// browse muestra una lista paginada: n siguiente, p anterior, /texto busca, enter vuelve.
func browse[T any](
	ctx context.Context,
	rt *runtime,
	in *consoleInput,
	st *service.ListState,
	fetch func(context.Context, domain.Pagination) (backend.Page[T], error),
	show func([]T),
	fallback string,
) error {
	for {
		items, p, err := fetchPage(ctx, st, fetch, fallback)
		if err != nil {
			return err
		}
		show(items)
		rt.printFooter(p)

		action, err := rt.next(in, "[n] siguiente  [p] anterior  [/texto] buscar  [enter] volver: ")
		if err != nil {
			return err
		}
		switch {
		case action == "":
			return nil
		case action == "n" && p.PageIndex < p.TotalPages:
			st.SetPage(p.PageIndex+1, p.Keyword)
		case action == "p" && p.PageIndex > 1:
			st.SetPage(p.PageIndex-1, p.Keyword)
		case strings.HasPrefix(action, "/"):
			st.SetPage(1, strings.TrimSpace(strings.TrimPrefix(action, "/")))
		}
	}
}

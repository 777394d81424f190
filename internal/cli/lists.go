package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
	"rental-admin/internal/service"
)

type pageFlags struct {
	page    int
	size    int
	keyword string
}

func (f *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "Pagina")
	cmd.Flags().IntVar(&f.size, "size", 10, "Tamano de pagina")
	cmd.Flags().StringVar(&f.keyword, "keyword", "", "Filtro por texto")
}

func (f *pageFlags) state() *service.ListState {
	st := service.NewListState()
	st.SetPageSize(f.size)
	st.SetPage(f.page, f.keyword)
	return st
}

// fetchPage consulta una pagina y actualiza el estado con el total devuelto.
func fetchPage[T any](
	ctx context.Context,
	st *service.ListState,
	fetch func(context.Context, domain.Pagination) (backend.Page[T], error),
	fallback string,
) ([]T, domain.Pagination, error) {
	page, err := fetch(ctx, st.Params())
	if err != nil {
		return nil, domain.Pagination{}, userMessage(err, fallback)
	}
	return page.Data, st.Apply(page.TotalRow), nil
}

func (rt *runtime) printFooter(p domain.Pagination) {
	fmt.Fprintf(rt.out, "\nPagina %d de %d (%d registros)\n", p.PageIndex, p.TotalPages, p.TotalRow)
}

func (rt *runtime) printRooms(rooms []domain.Room) {
	if len(rooms) == 0 {
		fmt.Fprintln(rt.out, "No hay habitaciones.")
		return
	}
	fmt.Fprintf(rt.out, "%-6s  %-40s  %-6s  %-10s  %s\n", "ID", "NOMBRE", "HUESP", "PRECIO", "UBICACION")
	for _, r := range rooms {
		fmt.Fprintf(rt.out, "%-6d  %-40s  %-6d  %-10d  %d\n", r.ID, r.TenPhong, r.Khach, r.GiaTien, r.MaViTri)
	}
}

func (rt *runtime) printLocations(locs []domain.Location) {
	if len(locs) == 0 {
		fmt.Fprintln(rt.out, "No hay ubicaciones.")
		return
	}
	fmt.Fprintf(rt.out, "%-6s  %-30s  %-20s  %s\n", "ID", "NOMBRE", "PROVINCIA", "PAIS")
	for _, l := range locs {
		fmt.Fprintf(rt.out, "%-6d  %-30s  %-20s  %s\n", l.ID, l.TenViTri, l.TinhThanh, l.QuocGia)
	}
}

func (rt *runtime) printUsers(users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(rt.out, "No hay usuarios.")
		return
	}
	fmt.Fprintf(rt.out, "%-6s  %-30s  %-30s  %s\n", "ID", "NOMBRE", "EMAIL", "ROL")
	for _, u := range users {
		fmt.Fprintf(rt.out, "%-6d  %-30s  %-30s  %s\n", u.ID, u.Name, u.Email, u.Role)
	}
}

func (rt *runtime) printBookings(bookings []domain.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(rt.out, "No hay reservas.")
		return
	}
	fmt.Fprintf(rt.out, "%-6s  %-8s  %-22s  %-22s  %s\n", "ID", "HAB", "LLEGADA", "SALIDA", "HUESP")
	for _, b := range bookings {
		fmt.Fprintf(rt.out, "%-6d  %-8d  %-22s  %-22s  %d\n", b.ID, b.MaPhong, b.NgayDen, b.NgayDi, b.SoLuongKhach)
	}
}

func newRoomsCmd(rt *runtime) *cobra.Command {
	var flags pageFlags
	var location int
	var all bool

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Listar y administrar habitaciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			if all {
				rooms, err := rt.app.Rooms.List(cmd.Context())
				if err != nil {
					return userMessage(err, service.MsgRoomsFailed)
				}
				rt.printRooms(rooms)
				return nil
			}
			if location > 0 {
				rooms, err := rt.app.Rooms.ListByLocation(cmd.Context(), location)
				if err != nil {
					return userMessage(err, service.MsgRoomsFailed)
				}
				rt.printRooms(rooms)
				return nil
			}
			rooms, p, err := fetchPage(cmd.Context(), flags.state(), rt.app.Rooms.Page, service.MsgRoomsFailed)
			if err != nil {
				return err
			}
			rt.printRooms(rooms)
			rt.printFooter(p)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().IntVar(&location, "location", 0, "Filtrar por id de ubicacion (maViTri)")
	cmd.Flags().BoolVar(&all, "all", false, "Listado completo sin paginar")

	// rt.app se abre en PersistentPreRunE; los subcomandos lo resuelven al ejecutar.
	cmd.AddCommand(
		newGetCmd(rt, "Detalle de una habitacion",
			func(ctx context.Context, id int) (domain.Room, error) { return rt.app.Rooms.Get(ctx, id) },
			service.MsgGeneric),
		newCreateCmd(rt, "Crear habitacion",
			func(ctx context.Context, form domain.RoomForm) (domain.Room, error) {
				return rt.app.Rooms.Create(ctx, form)
			},
			service.MsgRoomCreate, service.MsgRoomCreated),
		newUpdateCmd(rt, "Editar habitacion",
			func(ctx context.Context, id int, form domain.RoomForm) (domain.Room, error) {
				return rt.app.Rooms.Update(ctx, id, form)
			},
			service.MsgRoomUpdate, service.MsgRoomUpdated),
		newDeleteCmd(rt, "Eliminar habitacion",
			func(ctx context.Context, id int) (string, error) { return rt.app.Rooms.Delete(ctx, id) },
			service.MsgRoomDelete, service.MsgDeleted),
	)
	return cmd
}

func newLocationsCmd(rt *runtime) *cobra.Command {
	var flags pageFlags
	var all bool

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Listar y administrar ubicaciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			if all {
				locs, err := rt.app.Locations.List(cmd.Context())
				if err != nil {
					return userMessage(err, service.MsgLocationsFailed)
				}
				rt.printLocations(locs)
				return nil
			}
			locs, p, err := fetchPage(cmd.Context(), flags.state(), rt.app.Locations.Page, service.MsgLocationsFailed)
			if err != nil {
				return err
			}
			rt.printLocations(locs)
			rt.printFooter(p)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Listado completo sin paginar")

	cmd.AddCommand(
		newGetCmd(rt, "Detalle de una ubicacion",
			func(ctx context.Context, id int) (domain.Location, error) { return rt.app.Locations.Get(ctx, id) },
			service.MsgGeneric),
		newCreateCmd(rt, "Crear ubicacion",
			func(ctx context.Context, form domain.LocationForm) (domain.Location, error) {
				return rt.app.Locations.Create(ctx, form)
			},
			service.MsgGeneric, service.MsgLocationCreated),
		newUpdateCmd(rt, "Editar ubicacion",
			func(ctx context.Context, id int, form domain.LocationForm) (domain.Location, error) {
				return rt.app.Locations.Update(ctx, domain.Location{ID: id, LocationForm: form})
			},
			service.MsgGeneric, service.MsgLocationUpdated),
		newDeleteCmd(rt, "Eliminar ubicacion",
			func(ctx context.Context, id int) (string, error) { return rt.app.Locations.Delete(ctx, id) },
			service.MsgGeneric, service.MsgDeleted),
	)
	return cmd
}

func newUsersCmd(rt *runtime) *cobra.Command {
	var flags pageFlags
	var name string
	var all bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Listar y administrar usuarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			if all {
				users, err := rt.app.Users.List(cmd.Context())
				if err != nil {
					return userMessage(err, service.MsgUsersFailed)
				}
				rt.printUsers(users)
				return nil
			}
			if name != "" {
				users, err := rt.app.Users.Search(cmd.Context(), name)
				if err != nil {
					return userMessage(err, service.MsgUsersFailed)
				}
				rt.printUsers(users)
				return nil
			}
			users, p, err := fetchPage(cmd.Context(), flags.state(), rt.app.Users.Page, service.MsgUsersFailed)
			if err != nil {
				return err
			}
			rt.printUsers(users)
			rt.printFooter(p)
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Buscar por nombre")
	cmd.Flags().BoolVar(&all, "all", false, "Listado completo sin paginar")

	cmd.AddCommand(
		newGetCmd(rt, "Detalle de un usuario",
			func(ctx context.Context, id int) (domain.User, error) { return rt.app.Users.Get(ctx, id) },
			service.MsgGeneric),
		newCreateCmd(rt, "Crear usuario",
			func(ctx context.Context, form domain.UserForm) (domain.User, error) {
				return rt.app.Users.Create(ctx, form)
			},
			service.MsgGeneric, service.MsgUserCreated),
		newUpdateCmd(rt, "Editar usuario",
			func(ctx context.Context, id int, form domain.UserForm) (domain.User, error) {
				return rt.app.Users.Update(ctx, domain.User{ID: id, UserForm: form})
			},
			service.MsgGeneric, service.MsgUserUpdated),
		newDeleteCmd(rt, "Eliminar usuario",
			func(ctx context.Context, id int) (string, error) { return rt.app.Users.Delete(ctx, id) },
			service.MsgGeneric, service.MsgDeleted),
	)
	return cmd
}

func newBookingsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings [user_id]",
		Short: "Reservas de un usuario, o todas sin argumento",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			if len(args) == 0 {
				bookings, err := rt.app.Bookings.List(cmd.Context())
				if err != nil {
					return userMessage(err, service.MsgBookingsFailed)
				}
				rt.printBookings(bookings)
				return nil
			}
			userID, err := strconv.Atoi(args[0])
			if err != nil || userID <= 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			bookings, err := rt.app.Bookings.ListByUser(cmd.Context(), userID)
			if err != nil {
				return userMessage(err, service.MsgBookingsFailed)
			}
			rt.printBookings(bookings)
			return nil
		},
	}

	cmd.AddCommand(
		newBookCmd(rt),
		newDeleteCmd(rt, "Cancelar una reserva",
			func(ctx context.Context, id int) (string, error) { return rt.app.Bookings.Delete(ctx, id) },
			service.MsgGeneric, service.MsgDeleted),
	)
	return cmd
}

// newBookCmd reserva una habitacion. El mensaje del backend tiene prioridad.
func newBookCmd(rt *runtime) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create --file <form>",
		Short: "Reservar una habitacion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			var form domain.BookingForm
			if err := rt.readForm(file, &form); err != nil {
				return err
			}
			booking, msg, err := rt.app.Bookings.Create(cmd.Context(), form)
			if err != nil {
				return userMessage(err, service.MsgBookRoom)
			}
			if msg == "" {
				msg = service.MsgBooked
			}
			fmt.Fprintln(rt.out, msg)
			return rt.printJSON(booking)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Formulario JSON o YAML (- para stdin)")
	return cmd
}

func newProfileCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Perfil del usuario autenticado",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireSession(); err != nil {
				return err
			}
			return rt.printProfile(cmd.Context())
		},
	}
}

func (rt *runtime) printProfile(ctx context.Context) error {
	p, err := rt.app.Profiles.Fetch(ctx)
	if err != nil {
		return userMessage(err, service.MsgProfileLoad)
	}
	fmt.Fprintf(rt.out, "ID:       %d\n", p.ID)
	fmt.Fprintf(rt.out, "Nombre:   %s\n", p.Name)
	fmt.Fprintf(rt.out, "Email:    %s\n", p.Email)
	if p.Phone != "" {
		fmt.Fprintf(rt.out, "Telefono: %s\n", p.Phone)
	}
	if p.Birthday != "" {
		fmt.Fprintf(rt.out, "Nacido:   %s\n", p.Birthday)
	}
	return nil
}

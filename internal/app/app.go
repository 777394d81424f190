package app

import (
	"context"

	"go.uber.org/zap"

	"rental-admin/internal/activity"
	"rental-admin/internal/auth"
	"rental-admin/internal/backend"
	"rental-admin/internal/config"
	"rental-admin/internal/db"
	"rental-admin/internal/repository"
	"rental-admin/internal/service"
	"rental-admin/internal/session"
	"rental-admin/internal/state"
	"rental-admin/internal/storage"
)

// App agrupa los componentes compartidos por la API y la consola.
type App struct {
	Logger   *zap.Logger
	Hub      *activity.Hub
	Monitor  *session.Monitor
	State    *state.Store
	Records  *auth.Repository
	Client   *backend.Client
	Auth     *service.AuthService
	Profiles *service.ProfileService

	Rooms     *repository.APIRoomRepository
	Locations *repository.APILocationRepository
	Users     *repository.APIUserRepository
	Bookings  *repository.APIBookingRepository

	closeStore func()
}

// New abre el almacenamiento y cablea monitor, store de estado, cliente y servicios.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store, closeStore, err := db.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return Wire(cfg, store, logger, closeStore), nil
}

// Wire arma la aplicacion sobre un Store ya abierto.
func Wire(cfg *config.Config, store storage.Store, logger *zap.Logger, closeStore func()) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if closeStore == nil {
		closeStore = func() {}
	}

	hub := activity.NewHub()
	monitor := session.NewMonitor(store, session.Options{
		Timeout:       cfg.SessionTimeout(),
		CheckInterval: cfg.SessionCheckInterval,
		Activity:      hub,
		Logger:        logger,
	})
	records := auth.NewRepository(storage.NewLenient(store, logger))
	stateStore := state.NewStore(service.LogoutHooks(records, monitor))

	client := backend.NewClient(backend.Config{
		BaseURL:        cfg.APIBaseURL,
		TokenCybersoft: cfg.TokenCybersoft,
		Timeout:        cfg.APITimeout,
		RateLimit:      cfg.APIRateLimit,
		Burst:          cfg.APIBurst,
	}, logger)
	client.SetTokenSource(records)
	client.OnSuccess(monitor.ExtendSession)

	return &App{
		Logger:     logger,
		Hub:        hub,
		Monitor:    monitor,
		State:      stateStore,
		Records:    records,
		Client:     client,
		Auth:       service.NewAuthService(logger, repository.NewAPIAuthRepository(client), records, monitor, stateStore),
		Profiles:   service.NewProfileService(logger, repository.NewAPIProfileRepository(client), stateStore, records),
		Rooms:      repository.NewAPIRoomRepository(client),
		Locations:  repository.NewAPILocationRepository(client),
		Users:      repository.NewAPIUserRepository(client),
		Bookings:   repository.NewAPIBookingRepository(client),
		closeStore: closeStore,
	}
}

// Close detiene el monitor y libera el almacenamiento.
func (a *App) Close() {
	a.Monitor.StopSession()
	a.closeStore()
}

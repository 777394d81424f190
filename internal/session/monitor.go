package session

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rental-admin/internal/activity"
	"rental-admin/internal/state"
	"rental-admin/internal/storage"
)

const (
	DefaultTimeout       = 5 * time.Minute
	DefaultCheckInterval = 10 * time.Second
	// ExpiryWarning es la ventana final en la que la sesion se considera "por expirar".
	ExpiryWarning  = 60 * time.Second
	storageTimeout = 2 * time.Second
)

// Options configura un Monitor. Los campos vacios toman valores por defecto.
type Options struct {
	Timeout       time.Duration
	CheckInterval time.Duration
	Clock         Clock
	Scheduler     Scheduler
	Activity      ActivitySource
	Logger        *zap.Logger
}

// Status es una foto del estado de la sesion.
type Status struct {
	IsActive         bool  `json:"isActive"`
	IsAuthenticated  bool  `json:"isAuthenticated"`
	IsValid          bool  `json:"isValid"`
	RemainingMinutes int64 `json:"remainingMinutes"`
	RemainingSeconds int64 `json:"remainingSeconds"`
	IsAboutToExpire  bool  `json:"isAboutToExpire"`
}

// Monitor mantiene fresco el marcador de ultima actividad mientras el usuario
// interactua y fuerza el logout cuando el marcador queda viejo.
//
// Todas las mutaciones se serializan con mu. El dispatcher se invoca siempre
// fuera del lock porque el reducer de logout vuelve a llamar a StopSession.
// Los errores de almacenamiento nunca salen de sus operaciones publicas.
type Monitor struct {
	mu            sync.Mutex
	id            string
	store         *storage.Lenient
	clock         Clock
	scheduler     Scheduler
	source        ActivitySource
	logger        *zap.Logger
	dispatcher    state.Dispatcher
	timeout       time.Duration
	checkInterval time.Duration

	active      bool
	generation  uint64
	cancelTimer func()
	unsubscribe func()
}

func NewMonitor(store storage.Store, opts Options) *Monitor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = DefaultCheckInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TickerScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	id := uuid.NewString()
	logger := opts.Logger.With(zap.String("session_monitor", id))
	return &Monitor{
		id:            id,
		store:         storage.NewLenient(store, logger),
		clock:         opts.Clock,
		scheduler:     opts.Scheduler,
		source:        opts.Activity,
		logger:        logger,
		timeout:       opts.Timeout,
		checkInterval: opts.CheckInterval,
	}
}

// SetStore registra la capacidad de despacho usada por el auto-logout.
func (m *Monitor) SetStore(d state.Dispatcher) {
	m.mu.Lock()
	m.dispatcher = d
	m.mu.Unlock()
}

// InitSession arranca el seguimiento si hay un AuthRecord guardado. Si el
// marcador existente ya expiro, dispara el auto-logout. Llamarlo varias veces
// re-arma el timer y la suscripcion sin duplicarlos.
func (m *Monitor) InitSession() {
	ctx, cancel := m.ctx()
	defer cancel()

	m.mu.Lock()
	if !m.authPresentLocked(ctx) {
		m.mu.Unlock()
		return
	}
	m.active = true

	marker := m.store.Get(ctx, storage.KeyLastActivity)
	if marker == "" || m.validLocked(ctx) {
		m.writeMarkerLocked(ctx)
		m.armLocked()
		m.mu.Unlock()
		m.logger.Debug("session started", zap.Duration("timeout", m.timeout))
		return
	}

	d := m.autoLogoutLocked(ctx)
	m.mu.Unlock()
	m.dispatchLogout(d)
}

// UpdateLastActivity sobrescribe el marcador con la hora actual.
func (m *Monitor) UpdateLastActivity() {
	ctx, cancel := m.ctx()
	defer cancel()
	m.mu.Lock()
	m.writeMarkerLocked(ctx)
	m.mu.Unlock()
}

// ExtendSession extiende la sesion, por ejemplo tras una llamada exitosa a la API.
func (m *Monitor) ExtendSession() {
	m.UpdateLastActivity()
}

// IsSessionValid es true si no paso el timeout desde la ultima actividad, o si
// no hay marcador pero si hay datos de autenticacion (sesion restaurada).
func (m *Monitor) IsSessionValid() bool {
	ctx, cancel := m.ctx()
	defer cancel()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validLocked(ctx)
}

// IsSessionAboutToExpire es true cuando quedan entre 1 y 60 segundos.
func (m *Monitor) IsSessionAboutToExpire() bool {
	secs := m.RemainingTimeSeconds()
	return secs > 0 && secs <= int64(ExpiryWarning/time.Second)
}

// RemainingTime devuelve los minutos enteros restantes, nunca negativos.
func (m *Monitor) RemainingTime() int64 {
	return int64(m.remaining() / time.Minute)
}

// RemainingTimeSeconds devuelve los segundos enteros restantes, nunca negativos.
func (m *Monitor) RemainingTimeSeconds() int64 {
	return int64(m.remaining() / time.Second)
}

// IsAuthenticated indica si hay un AuthRecord guardado.
func (m *Monitor) IsAuthenticated() bool {
	ctx, cancel := m.ctx()
	defer cancel()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authPresentLocked(ctx)
}

// Logout desactiva la sesion, cancela timers y borra el marcador.
// No limpia el AuthRecord.
func (m *Monitor) Logout() {
	ctx, cancel := m.ctx()
	defer cancel()
	m.mu.Lock()
	m.logoutLocked(ctx)
	m.mu.Unlock()
}

// StopSession cancela timers y desactiva la sesion conservando el marcador.
func (m *Monitor) StopSession() {
	m.mu.Lock()
	m.active = false
	m.disarmLocked()
	m.mu.Unlock()
}

// SetSessionTimeout cambia la ventana para las verificaciones siguientes.
// Valores no positivos se ignoran.
func (m *Monitor) SetSessionTimeout(minutes int) {
	if minutes <= 0 {
		m.logger.Warn("ignoring non-positive session timeout", zap.Int("minutes", minutes))
		return
	}
	m.mu.Lock()
	m.timeout = time.Duration(minutes) * time.Minute
	m.mu.Unlock()
}

func (m *Monitor) Timeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout
}

func (m *Monitor) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Monitor) Status() Status {
	secs := m.RemainingTimeSeconds()
	return Status{
		IsActive:         m.IsActive(),
		IsAuthenticated:  m.IsAuthenticated(),
		IsValid:          m.IsSessionValid(),
		RemainingMinutes: m.RemainingTime(),
		RemainingSeconds: secs,
		IsAboutToExpire:  secs > 0 && secs <= int64(ExpiryWarning/time.Second),
	}
}

// check es la verificacion periodica.
func (m *Monitor) check(gen uint64) {
	ctx, cancel := m.ctx()
	defer cancel()

	m.mu.Lock()
	if gen != m.generation || !m.active || m.validLocked(ctx) {
		m.mu.Unlock()
		return
	}
	d := m.autoLogoutLocked(ctx)
	m.mu.Unlock()
	m.dispatchLogout(d)
}

func (m *Monitor) onActivity(gen uint64) func(activity.Event) {
	return func(activity.Event) {
		ctx, cancel := m.ctx()
		defer cancel()
		m.mu.Lock()
		if gen == m.generation && m.active {
			m.writeMarkerLocked(ctx)
		}
		m.mu.Unlock()
	}
}

func (m *Monitor) armLocked() {
	m.disarmLocked()
	m.generation++
	gen := m.generation
	if m.source != nil {
		m.unsubscribe = m.source.Subscribe(m.onActivity(gen))
	}
	m.cancelTimer = m.scheduler.Every(m.checkInterval, func() { m.check(gen) })
}

func (m *Monitor) disarmLocked() {
	if m.cancelTimer != nil {
		m.cancelTimer()
		m.cancelTimer = nil
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Monitor) logoutLocked(ctx context.Context) {
	m.active = false
	m.disarmLocked()
	m.store.Delete(ctx, storage.KeyLastActivity)
}

// autoLogoutLocked devuelve el dispatcher a notificar, o nil si la sesion ya no estaba activa.
func (m *Monitor) autoLogoutLocked(ctx context.Context) state.Dispatcher {
	if !m.active {
		return nil
	}
	m.logger.Info("session expired - auto logout")
	m.logoutLocked(ctx)
	if m.dispatcher == nil {
		return nil
	}
	return m.dispatcher
}

func (m *Monitor) dispatchLogout(d state.Dispatcher) {
	if d == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("logout dispatch failed", zap.Any("panic", r))
		}
	}()
	d.Dispatch(state.Action{Type: state.ActionLogout})
}

func (m *Monitor) validLocked(ctx context.Context) bool {
	marker := m.store.Get(ctx, storage.KeyLastActivity)
	if marker == "" {
		return m.authPresentLocked(ctx)
	}
	last, ok := parseMarker(marker)
	if !ok {
		return false
	}
	return elapsedSince(m.clock.Now().UnixMilli(), last) < m.timeout.Milliseconds()
}

func (m *Monitor) remaining() time.Duration {
	ctx, cancel := m.ctx()
	defer cancel()
	m.mu.Lock()
	defer m.mu.Unlock()

	last, ok := parseMarker(m.store.Get(ctx, storage.KeyLastActivity))
	if !ok {
		return 0
	}
	elapsed := elapsedSince(m.clock.Now().UnixMilli(), last)
	window := m.timeout.Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= window {
		return 0
	}
	return time.Duration(window-elapsed) * time.Millisecond
}

func (m *Monitor) authPresentLocked(ctx context.Context) bool {
	return m.store.Get(ctx, storage.KeyAuthIsAuthenticated) == "true" &&
		m.store.Get(ctx, storage.KeyAuthUser) != ""
}

func (m *Monitor) writeMarkerLocked(ctx context.Context) {
	m.store.Set(ctx, storage.KeyLastActivity, strconv.FormatInt(m.clock.Now().UnixMilli(), 10))
}

func (m *Monitor) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storageTimeout)
}

// elapsedSince resta en milisegundos saturando en los extremos de int64,
// asi un marcador corrupto pero numerico no desborda.
func elapsedSince(now, last int64) int64 {
	d := now - last
	switch {
	case last < 0 && d < now:
		return math.MaxInt64
	case last > 0 && d > now:
		return math.MinInt64
	}
	return d
}

func parseMarker(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

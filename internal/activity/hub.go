package activity

import (
	"sync"
	"time"
)

// Kind identifica el tipo de interaccion del usuario.
type Kind string

const (
	PointerDown Kind = "mousedown"
	PointerMove Kind = "mousemove"
	KeyPress    Kind = "keypress"
	Scroll      Kind = "scroll"
	TouchStart  Kind = "touchstart"
	Click       Kind = "click"
	Request     Kind = "request"
)

// Event es una interaccion detectada.
type Event struct {
	Kind Kind
	At   time.Time
}

// Hub reparte eventos de actividad entre suscriptores.
// Cada Subscribe devuelve su propia funcion de baja; llamarla dos veces es seguro.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(Event))}
}

func (h *Hub) Subscribe(fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish notifica a todos los suscriptores de forma sincrona.
func (h *Hub) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

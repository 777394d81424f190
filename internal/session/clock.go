package session

import (
	"sync"
	"time"

	"rental-admin/internal/activity"
)

// Clock entrega la hora actual.
type Clock interface {
	Now() time.Time
}

// Scheduler ejecuta fn cada interval hasta que se llame a cancel.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// ActivitySource emite interacciones del usuario.
type ActivitySource interface {
	Subscribe(fn func(activity.Event)) (unsubscribe func())
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TickerScheduler implementa Scheduler con una goroutine y un time.Ticker por tarea.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	// cancel puede llamarse desde dentro de fn (auto-logout), por eso no espera a la goroutine.
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

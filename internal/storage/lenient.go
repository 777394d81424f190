package storage

import (
	"context"

	"go.uber.org/zap"
)

// Lenient envuelve un Store con la politica "fail open": cualquier error del
// almacenamiento se registra en debug y se trata como ausencia de datos en
// lecturas, o se ignora en escrituras y borrados. Ninguna operacion devuelve error.
//
// Un almacenamiento corrupto o inaccesible no rompe la consola, pero puede
// ocultar el estado real de la sesion: una lectura fallida se ve igual que
// "no hay datos" y no como "estado desconocido".
type Lenient struct {
	store  Store
	logger *zap.Logger
}

func NewLenient(store Store, logger *zap.Logger) *Lenient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lenient{store: store, logger: logger}
}

// Get devuelve "" cuando la clave no existe o el almacenamiento falla.
func (l *Lenient) Get(ctx context.Context, key string) string {
	if l == nil || l.store == nil {
		return ""
	}
	v, ok, err := l.store.Get(ctx, key)
	if err != nil {
		l.logger.Debug("storage read ignored", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (l *Lenient) Set(ctx context.Context, key, value string) {
	if l == nil || l.store == nil {
		return
	}
	if err := l.store.Set(ctx, key, value); err != nil {
		l.logger.Debug("storage write ignored", zap.String("key", key), zap.Error(err))
	}
}

func (l *Lenient) Delete(ctx context.Context, keys ...string) {
	if l == nil || l.store == nil {
		return
	}
	if err := l.store.Delete(ctx, keys...); err != nil {
		l.logger.Debug("storage delete ignored", zap.Strings("keys", keys), zap.Error(err))
	}
}

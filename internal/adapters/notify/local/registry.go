package local

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"med-companion/internal/platform/logger"
	"med-companion/internal/ports/notify"
)

var (
	ErrNotStarted = errors.New("notification registry not started")
	ErrNotFound   = errors.New("trigger not found")
)

// Registry es la implementación in-process de notify.Scheduler: un
// registro de triggers en memoria con lifecycle explícito. Nada de
// estado global: se construye en bootstrap, se inyecta, y se apaga con
// Shutdown.
//
// Sirve para dev y tests; en producción el router usa el adapter pushgw
// si está configurado.
type Registry struct {
	log logger.Logger

	mu      sync.Mutex
	started bool
	byID    map[string]notify.Trigger
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		log:  log,
		byID: make(map[string]notify.Trigger),
	}
}

// Init deja el registro operativo. Acá colgaría también el job nocturno
// que marque dosis como missed, si producto alguna vez lo define; hoy no
// existe ninguna transición automática.
func (r *Registry) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return nil
	}
	r.started = true
	r.log.Info("notification registry started", nil)
	return nil
}

func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil
	}
	r.started = false
	r.log.Info("notification registry stopped", map[string]any{
		"triggers": len(r.byID),
	})
	return nil
}

func (r *Registry) Schedule(ctx context.Context, req notify.TriggerRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return "", ErrNotStarted
	}

	id := uuid.NewString()
	r.byID[id] = notify.Trigger{
		ID:         id,
		Time:       req.Time,
		Recurrence: req.Recurrence,
		Day:        req.Day,
		Payload:    req.Payload,
	}
	return id, nil
}

func (r *Registry) Cancel(ctx context.Context, triggerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return ErrNotStarted
	}
	if _, ok := r.byID[triggerID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, triggerID)
	return nil
}

func (r *Registry) ListAll(ctx context.Context) ([]notify.Trigger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil, ErrNotStarted
	}

	out := make([]notify.Trigger, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out, nil
}

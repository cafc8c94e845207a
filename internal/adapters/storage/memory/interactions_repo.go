package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"med-companion/internal/domain/interactions"
)

type interactionsRepo struct {
	mu   sync.RWMutex
	byID map[string]interactions.CheckRecord
}

func NewInteractionsRepo() interactions.Repository {
	return &interactionsRepo{
		byID: make(map[string]interactions.CheckRecord),
	}
}

func (r *interactionsRepo) Create(ctx context.Context, rec interactions.CheckRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("check record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("check record already exists")
	}

	r.byID[rec.ID] = rec
	return nil
}

func (r *interactionsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]interactions.CheckRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]interactions.CheckRecord, 0)
	for _, rec := range r.byID {
		if rec.UserID != userID {
			continue
		}
		out = append(out, rec)
	}

	// Más reciente primero: un set nuevo supersede al anterior
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckedAt.After(out[j].CheckedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

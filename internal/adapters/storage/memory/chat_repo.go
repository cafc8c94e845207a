package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"med-companion/internal/domain/chat"
)

type chatRepo struct {
	mu   sync.RWMutex
	byID map[string]chat.Turn
}

func NewChatRepo() chat.Repository {
	return &chatRepo{
		byID: make(map[string]chat.Turn),
	}
}

func (r *chatRepo) Create(ctx context.Context, t chat.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		return errors.New("turn id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("turn already exists")
	}

	r.byID[t.ID] = t
	return nil
}

func (r *chatRepo) ListByUser(ctx context.Context, userID string, limit int) ([]chat.Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]chat.Turn, 0)
	for _, t := range r.byID {
		if t.UserID != userID {
			continue
		}
		out = append(out, t)
	}

	// Cronológico; si piden límite, se recortan los más viejos
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}

	return out, nil
}

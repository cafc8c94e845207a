package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"med-companion/internal/domain/adherence"
)

type adherenceRepo struct {
	mu   sync.RWMutex
	byID map[string]adherence.DoseLog
}

func NewAdherenceRepo() adherence.Repository {
	return &adherenceRepo{
		byID: make(map[string]adherence.DoseLog),
	}
}

func (r *adherenceRepo) Create(ctx context.Context, e adherence.DoseLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("dose log id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("dose log already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *adherenceRepo) Update(ctx context.Context, e adherence.DoseLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID]; !ok {
		return ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *adherenceRepo) GetByID(ctx context.Context, id string) (adherence.DoseLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return adherence.DoseLog{}, ErrNotFound
	}
	return e, nil
}

func (r *adherenceRepo) ListByMedication(ctx context.Context, medicationID string, filter adherence.ListFilter) ([]adherence.DoseLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adherence.DoseLog, 0)
	for _, e := range r.byID {
		if e.MedicationID != medicationID {
			continue
		}
		if filter.From != nil && e.ScheduledTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.ScheduledTime.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime.After(out[j].ScheduledTime)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

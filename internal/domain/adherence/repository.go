package adherence

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e DoseLog) error
	Update(ctx context.Context, e DoseLog) error
	GetByID(ctx context.Context, id string) (DoseLog, error)
	ListByMedication(ctx context.Context, medicationID string, filter ListFilter) ([]DoseLog, error)
}

type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

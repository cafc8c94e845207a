package chat

import "context"

type Repository interface {
	Create(ctx context.Context, t Turn) error
	// ListByUser devuelve los últimos turnos en orden cronológico.
	ListByUser(ctx context.Context, userID string, limit int) ([]Turn, error)
}

package interactions

import "context"

type Repository interface {
	Create(ctx context.Context, rec CheckRecord) error
	// ListByUser devuelve registros más reciente primero.
	ListByUser(ctx context.Context, userID string, limit int) ([]CheckRecord, error)
}

package postgres

import (
	"context"
	"database/sql"

	"med-companion/internal/domain/chat"
)

type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) Create(ctx context.Context, t chat.Turn) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_turns (id, user_id, role, content, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		t.ID,
		t.UserID,
		string(t.Role),
		t.Content,
		t.CreatedAt,
	)
	return classify(err)
}

func (r *ChatRepo) ListByUser(ctx context.Context, userID string, limit int) ([]chat.Turn, error) {
	if limit <= 0 {
		limit = 50
	}

	// Los últimos N, devueltos en orden cronológico
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, role, content, created_at FROM (
			SELECT id, user_id, role, content, created_at
			FROM chat_turns
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) latest
		ORDER BY created_at ASC
	`, userID, limit)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := make([]chat.Turn, 0)
	for rows.Next() {
		var t chat.Turn
		var role string
		if err := rows.Scan(&t.ID, &t.UserID, &role, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Role = chat.Role(role)
		out = append(out, t)
	}

	return out, classify(rows.Err())
}

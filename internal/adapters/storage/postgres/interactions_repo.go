package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"med-companion/internal/domain/interactions"
)

type InteractionsRepo struct {
	db *sql.DB
}

func NewInteractionsRepo(db *sql.DB) *InteractionsRepo {
	return &InteractionsRepo{db: db}
}

func (r *InteractionsRepo) Create(ctx context.Context, rec interactions.CheckRecord) error {
	ids, err := json.Marshal(rec.MedicationIDs)
	if err != nil {
		return err
	}
	report, err := json.Marshal(rec.Report)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO interaction_checks (
			id, user_id, medication_ids, report, severity, checked_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		rec.ID,
		rec.UserID,
		ids,
		report,
		rec.Severity,
		rec.CheckedAt,
	)
	return classify(err)
}

func (r *InteractionsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]interactions.CheckRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, medication_ids, report, severity, checked_at
		FROM interaction_checks
		WHERE user_id = $1
		ORDER BY checked_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := make([]interactions.CheckRecord, 0)
	for rows.Next() {
		rec, err := scanCheckRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, classify(rows.Err())
}

func scanCheckRecord(rows *sql.Rows) (interactions.CheckRecord, error) {
	var rec interactions.CheckRecord
	var ids, report []byte

	if err := rows.Scan(
		&rec.ID,
		&rec.UserID,
		&ids,
		&report,
		&rec.Severity,
		&rec.CheckedAt,
	); err != nil {
		return interactions.CheckRecord{}, err
	}

	if err := json.Unmarshal(ids, &rec.MedicationIDs); err != nil {
		return interactions.CheckRecord{}, err
	}
	if err := json.Unmarshal(report, &rec.Report); err != nil {
		return interactions.CheckRecord{}, err
	}

	return rec, nil
}

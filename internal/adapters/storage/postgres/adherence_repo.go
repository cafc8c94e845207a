package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"med-companion/internal/domain/adherence"
)

type AdherenceRepo struct {
	db *sql.DB
}

func NewAdherenceRepo(db *sql.DB) *AdherenceRepo {
	return &AdherenceRepo{db: db}
}

func (r *AdherenceRepo) Create(ctx context.Context, e adherence.DoseLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_logs (
			id, user_id, medication_id,
			scheduled_time, taken_at,
			status, confirmed_via,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.UserID,
		e.MedicationID,
		e.ScheduledTime,
		e.TakenAt,
		string(e.Status),
		string(e.ConfirmedVia),
		e.CreatedAt,
		e.UpdatedAt,
	)
	return classify(err)
}

func (r *AdherenceRepo) Update(ctx context.Context, e adherence.DoseLog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dose_logs SET
			taken_at = $2, status = $3, confirmed_via = $4, updated_at = $5
		WHERE id = $1
	`,
		e.ID,
		e.TakenAt,
		string(e.Status),
		string(e.ConfirmedVia),
		e.UpdatedAt,
	)
	if err != nil {
		return classify(err)
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdherenceRepo) GetByID(ctx context.Context, id string) (adherence.DoseLog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adherence.DoseLog{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, medication_id,
			scheduled_time, taken_at,
			status, confirmed_via,
			created_at, updated_at
		FROM dose_logs
		WHERE id = $1
	`, id)

	e, err := scanDoseLog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adherence.DoseLog{}, ErrNotFound
		}
		return adherence.DoseLog{}, classify(err)
	}
	return e, nil
}

func (r *AdherenceRepo) ListByMedication(ctx context.Context, medicationID string, filter adherence.ListFilter) ([]adherence.DoseLog, error) {
	medicationID = strings.TrimSpace(medicationID)
	if medicationID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, user_id, medication_id,
			scheduled_time, taken_at,
			status, confirmed_via,
			created_at, updated_at
		FROM dose_logs
		WHERE medication_id = $1
	`)

	args := []any{medicationID}
	argN := 2

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND scheduled_time >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND scheduled_time <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	sb.WriteString(" ORDER BY scheduled_time DESC")

	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := make([]adherence.DoseLog, 0)
	for rows.Next() {
		e, err := scanDoseLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, classify(rows.Err())
}

func scanDoseLog(row rowScanner) (adherence.DoseLog, error) {
	var e adherence.DoseLog
	var status, via string

	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.MedicationID,
		&e.ScheduledTime,
		&e.TakenAt,
		&status,
		&via,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return adherence.DoseLog{}, err
	}

	e.Status = adherence.Status(status)
	e.ConfirmedVia = adherence.ConfirmedVia(via)
	return e, nil
}

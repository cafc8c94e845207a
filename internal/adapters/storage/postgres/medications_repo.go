package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"med-companion/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	times, days, err := marshalReminderConfig(m)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, user_id,
			name, dosage, schedule, description, category,
			reminder_times, reminder_frequency, reminder_days,
			active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		m.Schedule,
		m.Description,
		string(m.Category),
		times,
		string(m.ReminderFrequency),
		days,
		m.Active,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return classify(err)
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	times, days, err := marshalReminderConfig(m)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE medications SET
			name = $2, dosage = $3, schedule = $4, description = $5, category = $6,
			reminder_times = $7, reminder_frequency = $8, reminder_days = $9,
			active = $10, updated_at = $11
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		m.Schedule,
		m.Description,
		string(m.Category),
		times,
		string(m.ReminderFrequency),
		days,
		m.Active,
		m.UpdatedAt,
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

const medicationColumns = `
	id, user_id,
	name, dosage, schedule, description, category,
	reminder_times, reminder_frequency, reminder_days,
	active,
	created_at, updated_at
`

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE id = $1
	`, id)

	m, err := scanMedication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return medications.Medication{}, ErrNotFound
		}
		return medications.Medication{}, classify(err)
	}
	return m, nil
}

func (r *MedicationsRepo) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]medications.Medication, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	q := `
		SELECT ` + medicationColumns + `
		FROM medications
		WHERE user_id = $1
	`
	if !includeInactive {
		q += " AND active = TRUE"
	}
	q += " ORDER BY name ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, classify(rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedication(row rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var category, freq string
	var times, days []byte

	if err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Dosage,
		&m.Schedule,
		&m.Description,
		&category,
		&times,
		&freq,
		&days,
		&m.Active,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	m.Category = medications.Category(category)
	m.ReminderFrequency = medications.Frequency(freq)

	if err := json.Unmarshal(times, &m.ReminderTimes); err != nil {
		return medications.Medication{}, err
	}
	if err := json.Unmarshal(days, &m.ReminderDays); err != nil {
		return medications.Medication{}, err
	}

	return m, nil
}

// marshalReminderConfig serializa times/days como jsonb; vacío se guarda
// como [] (no NULL) para que el scan de vuelta sea directo.
func marshalReminderConfig(m medications.Medication) ([]byte, []byte, error) {
	timesSrc := m.ReminderTimes
	if timesSrc == nil {
		timesSrc = []string{}
	}
	daysSrc := m.ReminderDays
	if daysSrc == nil {
		daysSrc = []int{}
	}

	times, err := json.Marshal(timesSrc)
	if err != nil {
		return nil, nil, err
	}
	days, err := json.Marshal(daysSrc)
	if err != nil {
		return nil, nil, err
	}
	return times, days, nil
}

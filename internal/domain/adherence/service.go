package adherence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"med-companion/internal/domain/medications"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// MedicationsReader es lo que el ledger necesita del módulo de
// medicamentos (lo satisface *medications.Service).
type MedicationsReader interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}

type Service struct {
	repo Repository
	meds MedicationsReader
	now  func() time.Time
}

func NewService(repo Repository, meds MedicationsReader) *Service {
	return &Service{
		repo: repo,
		meds: meds,
		now:  time.Now,
	}
}

// DayBucket trunca un instante a la medianoche de su día calendario,
// preservando la zona horaria.
func DayBucket(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay compara por día calendario, ignorando la hora.
func SameDay(a, b time.Time) bool {
	return DayBucket(a).Equal(DayBucket(b))
}

// ResolveTodayEntry busca, en el historial del medicamento, la entrada
// cuyo bucket de día coincide con el de today. Scan lineal a propósito:
// la comparación es por fecha, nunca por timestamp exacto.
func ResolveTodayEntry(entries []DoseLog, today time.Time) (DoseLog, bool) {
	for _, e := range entries {
		if SameDay(e.ScheduledTime, today) {
			return e, true
		}
	}
	return DoseLog{}, false
}

// Confirm marca la dosis de hoy como tomada. Si ya existe la entrada del
// día la actualiza en su lugar (taken ↔ skipped se sobreescriben); si no,
// inserta una nueva con ScheduledTime = hoy a la hora primaria de
// recordatorio (o inicio del día). Nunca produce dos filas para el mismo
// día.
func (s *Service) Confirm(ctx context.Context, userID, medicationID string, via ConfirmedVia) (DoseLog, error) {
	return s.upsertToday(ctx, userID, medicationID, StatusTaken, via)
}

// Skip marca la dosis de hoy como saltada (TakenAt queda en nil).
func (s *Service) Skip(ctx context.Context, userID, medicationID string, via ConfirmedVia) (DoseLog, error) {
	return s.upsertToday(ctx, userID, medicationID, StatusSkipped, via)
}

func (s *Service) upsertToday(ctx context.Context, userID, medicationID string, status Status, via ConfirmedVia) (DoseLog, error) {
	userID = strings.TrimSpace(userID)
	medicationID = strings.TrimSpace(medicationID)
	if userID == "" || medicationID == "" {
		return DoseLog{}, ErrInvalidInput
	}
	if via == "" {
		via = ViaManual
	}
	if !ValidVia(via) {
		return DoseLog{}, ErrInvalidInput
	}

	med, err := s.meds.GetByID(ctx, medicationID)
	if err != nil {
		return DoseLog{}, ErrNotFound
	}
	if med.UserID != userID {
		return DoseLog{}, ErrForbidden
	}

	now := s.now()

	entries, err := s.repo.ListByMedication(ctx, medicationID, ListFilter{})
	if err != nil {
		return DoseLog{}, err
	}

	var takenAt *time.Time
	if status == StatusTaken {
		t := now
		takenAt = &t
	}

	if e, ok := ResolveTodayEntry(entries, now); ok {
		e.Status = status
		e.TakenAt = takenAt
		e.ConfirmedVia = via
		e.UpdatedAt = now

		if err := s.repo.Update(ctx, e); err != nil {
			return DoseLog{}, err
		}
		return e, nil
	}

	e := DoseLog{
		ID:            uuid.NewString(),
		UserID:        userID,
		MedicationID:  medicationID,
		ScheduledTime: scheduledTimeFor(med, now),
		TakenAt:       takenAt,
		Status:        status,
		ConfirmedVia:  via,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return DoseLog{}, err
	}
	return e, nil
}

// Today devuelve la entrada del día actual si existe.
func (s *Service) Today(ctx context.Context, userID, medicationID string) (DoseLog, bool, error) {
	entries, err := s.History(ctx, userID, medicationID, ListFilter{})
	if err != nil {
		return DoseLog{}, false, err
	}
	e, ok := ResolveTodayEntry(entries, s.now())
	return e, ok, nil
}

// History lista el log de dosis del medicamento (más reciente primero,
// eso lo garantiza el repo).
func (s *Service) History(ctx context.Context, userID, medicationID string, filter ListFilter) ([]DoseLog, error) {
	userID = strings.TrimSpace(userID)
	medicationID = strings.TrimSpace(medicationID)
	if userID == "" || medicationID == "" {
		return nil, ErrInvalidInput
	}

	med, err := s.meds.GetByID(ctx, medicationID)
	if err != nil {
		return nil, ErrNotFound
	}
	if med.UserID != userID {
		return nil, ErrForbidden
	}

	return s.repo.ListByMedication(ctx, medicationID, filter)
}

// scheduledTimeFor arma el ScheduledTime de una entrada nueva: hoy a la
// hora primaria de recordatorio del medicamento, o inicio del día si no
// tiene recordatorios.
func scheduledTimeFor(med medications.Medication, now time.Time) time.Time {
	day := DayBucket(now)

	hhmm := med.PrimaryReminderTime()
	if hhmm == "" {
		return day
	}

	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

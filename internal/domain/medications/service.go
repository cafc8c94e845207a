package medications

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Dosage      string
	Schedule    string
	Description string
	Category    string

	ReminderTimes     []string
	ReminderFrequency string
	ReminderDays      []int
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}

	times, freq, days, err := normalizeReminderConfig(in.ReminderTimes, in.ReminderFrequency, in.ReminderDays)
	if err != nil {
		return Medication{}, err
	}

	now := s.now()
	m := Medication{
		ID:                uuid.NewString(),
		UserID:            userID,
		Name:              strings.TrimSpace(in.Name),
		Dosage:            strings.TrimSpace(in.Dosage),
		Schedule:          strings.TrimSpace(in.Schedule),
		Description:       strings.TrimSpace(in.Description),
		Category:          normalizeCategory(in.Category),
		ReminderTimes:     times,
		ReminderFrequency: freq,
		ReminderDays:      days,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Dosage      *string
	Schedule    *string
	Description *string
	Category    *string
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Medication, error) {
	m, err := s.ownedByID(ctx, userID, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Medication{}, ErrInvalidInput
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Schedule != nil {
		m.Schedule = strings.TrimSpace(*in.Schedule)
	}
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		m.Category = normalizeCategory(*in.Category)
	}

	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// SetReminders reemplaza la configuración de recordatorios completa.
// El caller (handler) corre el scheduler después; guardar nunca depende
// de que el scheduling funcione.
func (s *Service) SetReminders(ctx context.Context, userID, id string, times []string, frequency string, days []int) (Medication, error) {
	m, err := s.ownedByID(ctx, userID, id)
	if err != nil {
		return Medication{}, err
	}

	nt, freq, nd, err := normalizeReminderConfig(times, frequency, days)
	if err != nil {
		return Medication{}, err
	}

	m.ReminderTimes = nt
	m.ReminderFrequency = freq
	m.ReminderDays = nd
	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// Archive desactiva el medicamento (no se borra; su historial de dosis
// sigue existiendo). Idempotente.
func (s *Service) Archive(ctx context.Context, userID, id string) (Medication, error) {
	m, err := s.ownedByID(ctx, userID, id)
	if err != nil {
		return Medication{}, err
	}

	if !m.Active {
		return m, nil
	}

	m.Active = false
	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]Medication, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID, includeInactive)
}

// ActiveIDs devuelve los ids de medicamentos activos del usuario,
// ordenados ascendente. Es la llave con la que se cachean los checks
// de interacciones.
func (s *Service) ActiveIDs(ctx context.Context, userID string) ([]string, error) {
	items, err := s.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, m := range items {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Service) ownedByID(ctx context.Context, userID, id string) (Medication, error) {
	userID = strings.TrimSpace(userID)
	id = strings.TrimSpace(id)
	if userID == "" || id == "" {
		return Medication{}, ErrInvalidInput
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, ErrNotFound
	}
	if m.UserID != userID {
		return Medication{}, ErrForbidden
	}
	return m, nil
}

// normalizeReminderConfig valida y normaliza (times, frequency, days):
// - times: formato HH:MM, deduplicadas, ascendentes
// - frequency: daily/weekly/monthly (default daily)
// - days: weekday 0-6 si weekly, 1-31 si monthly, vacío si daily
// Invariante: si frequency != daily y hay times, days no puede ser vacío.
func normalizeReminderConfig(times []string, frequency string, days []int) ([]string, Frequency, []int, error) {
	freq := Frequency(strings.ToLower(strings.TrimSpace(frequency)))
	if freq == "" {
		freq = FrequencyDaily
	}
	switch freq {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return nil, "", nil, ErrInvalidInput
	}

	seen := map[string]struct{}{}
	nt := make([]string, 0, len(times))
	for _, raw := range times {
		t := strings.TrimSpace(raw)
		if t == "" {
			continue
		}
		if !timeRe.MatchString(t) {
			return nil, "", nil, ErrInvalidInput
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		nt = append(nt, t)
	}
	sort.Strings(nt)

	nd, err := normalizeDays(freq, days)
	if err != nil {
		return nil, "", nil, err
	}

	if freq != FrequencyDaily && len(nt) > 0 && len(nd) == 0 {
		return nil, "", nil, ErrInvalidInput
	}

	return nt, freq, nd, nil
}

func normalizeDays(freq Frequency, days []int) ([]int, error) {
	if freq == FrequencyDaily {
		// daily ignora days; se normaliza a vacío
		return []int{}, nil
	}

	min, max := 0, 6 // weekly
	if freq == FrequencyMonthly {
		min, max = 1, 31
	}

	seen := map[int]struct{}{}
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < min || d > max {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}

func normalizeCategory(raw string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryPrescription:
		return CategoryPrescription
	case CategoryOTC:
		return CategoryOTC
	case CategorySupplement:
		return CategorySupplement
	case "":
		return CategoryOther
	default:
		return CategoryOther
	}
}

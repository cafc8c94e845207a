package medications

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, errRepoNotFound
	}
	return m, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.UserID != userID {
			continue
		}
		if !includeInactive && !m.Active {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_NormalizesReminderTimes(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "  Aspirin  ",
		ReminderTimes: []string{"21:00", "08:00", "08:00", " 13:30 "},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if m.Name != "Aspirin" {
		t.Fatalf("expected trimmed name, got %q", m.Name)
	}
	// deduplicadas y ascendentes
	want := []string{"08:00", "13:30", "21:00"}
	if len(m.ReminderTimes) != len(want) {
		t.Fatalf("expected %d times, got %#v", len(want), m.ReminderTimes)
	}
	for i := range want {
		if m.ReminderTimes[i] != want[i] {
			t.Fatalf("expected times %v, got %v", want, m.ReminderTimes)
		}
	}
	if m.ReminderFrequency != FrequencyDaily {
		t.Fatalf("expected default frequency daily, got %s", m.ReminderFrequency)
	}
	if m.Category != CategoryOther {
		t.Fatalf("expected default category other, got %s", m.Category)
	}
	if !m.Active {
		t.Fatalf("expected new medication active")
	}
	if m.CreatedAt != now || m.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_RejectsBadTimeFormat(t *testing.T) {
	svc := NewService(newTestRepo())

	for _, bad := range []string{"25:00", "8:00", "08:60", "0800", "mediodía"} {
		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			Name:          "Aspirin",
			ReminderTimes: []string{bad},
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("time %q: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestService_Create_WeeklyRequiresDays(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:              "Aspirin",
		ReminderTimes:     []string{"08:00"},
		ReminderFrequency: "weekly",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for weekly without days, got %v", err)
	}

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:              "Aspirin",
		ReminderTimes:     []string{"08:00"},
		ReminderFrequency: "weekly",
		ReminderDays:      []int{5, 1, 1},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(m.ReminderDays) != 2 || m.ReminderDays[0] != 1 || m.ReminderDays[1] != 5 {
		t.Fatalf("expected days deduped and sorted [1 5], got %v", m.ReminderDays)
	}
}

func TestService_Create_DayRanges(t *testing.T) {
	svc := NewService(newTestRepo())

	// weekly: weekday 0-6
	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:              "A",
		ReminderTimes:     []string{"08:00"},
		ReminderFrequency: "weekly",
		ReminderDays:      []int{7},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for weekday 7, got %v", err)
	}

	// monthly: 1-31
	_, err = svc.Create(context.Background(), "user-1", CreateInput{
		Name:              "A",
		ReminderTimes:     []string{"08:00"},
		ReminderFrequency: "monthly",
		ReminderDays:      []int{0},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for month day 0, got %v", err)
	}

	// daily ignora days: se normaliza a vacío
	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "A",
		ReminderTimes: []string{"08:00"},
		ReminderDays:  []int{3},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(m.ReminderDays) != 0 {
		t.Fatalf("expected daily to drop days, got %v", m.ReminderDays)
	}
}

func TestService_Update_PatchSemantics(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:   "Aspirin",
		Dosage: "100mg",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newDosage := "200mg"
	updated, err := svc.Update(context.Background(), "user-1", m.ID, UpdateInput{
		Dosage: &newDosage,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Dosage != "200mg" {
		t.Fatalf("expected dosage updated, got %q", updated.Dosage)
	}
	if updated.Name != "Aspirin" {
		t.Fatalf("expected untouched name, got %q", updated.Name)
	}

	// name vacío en PATCH es inválido (nil sería "no tocar")
	empty := "   "
	_, err = svc.Update(context.Background(), "user-1", m.ID, UpdateInput{Name: &empty})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestService_Update_OwnershipAndNotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	m, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "Aspirin"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	name := "X"
	if _, err := svc.Update(context.Background(), "user-2", m.ID, UpdateInput{Name: &name}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "user-1", "nope", UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestService_SetReminders_ReplacesConfig(t *testing.T) {
	svc := NewService(newTestRepo())

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Aspirin",
		ReminderTimes: []string{"08:00", "20:00"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.SetReminders(context.Background(), "user-1", m.ID,
		[]string{"09:30"}, "weekly", []int{1, 3})
	if err != nil {
		t.Fatalf("SetReminders returned error: %v", err)
	}
	if len(updated.ReminderTimes) != 1 || updated.ReminderTimes[0] != "09:30" {
		t.Fatalf("expected replaced times, got %v", updated.ReminderTimes)
	}
	if updated.ReminderFrequency != FrequencyWeekly {
		t.Fatalf("expected weekly, got %s", updated.ReminderFrequency)
	}
	if len(updated.ReminderDays) != 2 {
		t.Fatalf("expected 2 days, got %v", updated.ReminderDays)
	}
}

func TestService_Archive_IdempotentAndKeepsRecord(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	m, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "Aspirin"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	archived, err := svc.Archive(context.Background(), "user-1", m.ID)
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	if archived.Active {
		t.Fatalf("expected inactive after archive")
	}

	// idempotente
	archived2, err := svc.Archive(context.Background(), "user-1", m.ID)
	if err != nil {
		t.Fatalf("Archive #2 returned error: %v", err)
	}
	if archived2.Active {
		t.Fatalf("expected inactive after second archive")
	}

	// no se borra: sigue recuperable por id
	if _, err := svc.GetByID(context.Background(), m.ID); err != nil {
		t.Fatalf("expected archived medication still readable, got %v", err)
	}
}

func TestService_ActiveIDs_SortedAndExcludesArchived(t *testing.T) {
	svc := NewService(newTestRepo())

	a, _ := svc.Create(context.Background(), "user-1", CreateInput{Name: "A"})
	b, _ := svc.Create(context.Background(), "user-1", CreateInput{Name: "B"})
	c, _ := svc.Create(context.Background(), "user-1", CreateInput{Name: "C"})

	if _, err := svc.Archive(context.Background(), "user-1", b.ID); err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}

	ids, err := svc.ActiveIDs(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ActiveIDs returned error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 active ids, got %v", ids)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("expected ascending ids, got %v", ids)
		}
	}
	for _, id := range ids {
		if id == b.ID {
			t.Fatalf("expected archived id excluded, got %v", ids)
		}
		if id != a.ID && id != c.ID {
			t.Fatalf("unexpected id %s in %v", id, ids)
		}
	}
}

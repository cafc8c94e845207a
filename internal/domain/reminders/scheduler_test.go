package reminders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"med-companion/internal/domain/medications"
	"med-companion/internal/platform/logger"
	"med-companion/internal/ports/notify"
)

// -------------------------
// Fake notifier
// -------------------------

type fakeNotifier struct {
	byID map[string]notify.Trigger
	seq  int

	failNext int // cuántos Schedule seguidos deben fallar
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{byID: map[string]notify.Trigger{}}
}

func (f *fakeNotifier) Schedule(ctx context.Context, req notify.TriggerRequest) (string, error) {
	if f.failNext > 0 {
		f.failNext--
		return "", errors.New("notifier: scheduling rejected")
	}
	f.seq++
	id := fmt.Sprintf("trig-%d", f.seq)
	f.byID[id] = notify.Trigger{
		ID:         id,
		Time:       req.Time,
		Recurrence: req.Recurrence,
		Day:        req.Day,
		Payload:    req.Payload,
	}
	return id, nil
}

func (f *fakeNotifier) Cancel(ctx context.Context, triggerID string) error {
	if _, ok := f.byID[triggerID]; !ok {
		return errors.New("notifier: not found")
	}
	delete(f.byID, triggerID)
	return nil
}

func (f *fakeNotifier) ListAll(ctx context.Context) ([]notify.Trigger, error) {
	out := make([]notify.Trigger, 0, len(f.byID))
	for _, tr := range f.byID {
		out = append(out, tr)
	}
	return out, nil
}

func (f *fakeNotifier) countFor(medicationID string) int {
	n := 0
	for _, tr := range f.byID {
		if tr.Payload.MedicationID == medicationID {
			n++
		}
	}
	return n
}

func testLogger() logger.Logger {
	return logger.New(logger.Options{Level: logger.Error})
}

// -------------------------
// ExpandPlan
// -------------------------

func TestExpandPlan_Daily(t *testing.T) {
	plan := ExpandPlan([]string{"08:00", "20:00"}, medications.FrequencyDaily, nil)

	if len(plan) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(plan))
	}
	for i, want := range []string{"08:00", "20:00"} {
		if plan[i].Time != want {
			t.Fatalf("expected time %s at %d, got %s", want, i, plan[i].Time)
		}
		if plan[i].Recurrence != notify.RecurrenceDaily {
			t.Fatalf("expected daily recurrence, got %s", plan[i].Recurrence)
		}
		if plan[i].Day != -1 {
			t.Fatalf("expected day -1 for daily, got %d", plan[i].Day)
		}
	}
}

func TestExpandPlan_Weekly_CrossProduct(t *testing.T) {
	plan := ExpandPlan([]string{"08:00", "13:00", "20:00"}, medications.FrequencyWeekly, []int{1, 4})

	if len(plan) != 6 {
		t.Fatalf("expected 2 days x 3 times = 6 triggers, got %d", len(plan))
	}
	// orden determinístico: day externo, hora interna
	want := []struct {
		day  int
		time string
	}{
		{1, "08:00"}, {1, "13:00"}, {1, "20:00"},
		{4, "08:00"}, {4, "13:00"}, {4, "20:00"},
	}
	for i, w := range want {
		if plan[i].Day != w.day || plan[i].Time != w.time {
			t.Fatalf("at %d expected (%d, %s), got (%d, %s)", i, w.day, w.time, plan[i].Day, plan[i].Time)
		}
		if plan[i].Recurrence != notify.RecurrenceWeekly {
			t.Fatalf("expected weekly recurrence, got %s", plan[i].Recurrence)
		}
	}
}

func TestExpandPlan_Monthly(t *testing.T) {
	plan := ExpandPlan([]string{"09:00"}, medications.FrequencyMonthly, []int{1, 15})

	if len(plan) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(plan))
	}
	if plan[0].Day != 1 || plan[1].Day != 15 {
		t.Fatalf("expected month days [1 15], got [%d %d]", plan[0].Day, plan[1].Day)
	}
	if plan[0].Recurrence != notify.RecurrenceMonthly {
		t.Fatalf("expected monthly recurrence, got %s", plan[0].Recurrence)
	}
}

func TestExpandPlan_NoTimes(t *testing.T) {
	if plan := ExpandPlan(nil, medications.FrequencyWeekly, []int{1}); len(plan) != 0 {
		t.Fatalf("expected empty plan without times, got %d", len(plan))
	}
}

// -------------------------
// Scheduler
// -------------------------

func med(id string, times []string, freq medications.Frequency, days []int) medications.Medication {
	return medications.Medication{
		ID:                id,
		UserID:            "user-1",
		Name:              "Aspirin",
		ReminderTimes:     times,
		ReminderFrequency: freq,
		ReminderDays:      days,
		Active:            true,
	}
}

func TestScheduler_Apply_TagsTriggersWithMedication(t *testing.T) {
	notifier := newFakeNotifier()
	s := NewScheduler(notifier, testLogger())

	out := s.Apply(context.Background(), med("med-1", []string{"08:00", "20:00"}, medications.FrequencyDaily, nil))

	if out.Warning != "" {
		t.Fatalf("unexpected warning: %s", out.Warning)
	}
	if len(out.TriggerIDs) != 2 {
		t.Fatalf("expected 2 trigger ids, got %v", out.TriggerIDs)
	}
	if notifier.countFor("med-1") != 2 {
		t.Fatalf("expected 2 tagged triggers, got %d", notifier.countFor("med-1"))
	}
	for _, tr := range notifier.byID {
		if tr.Payload.MedicationName != "Aspirin" {
			t.Fatalf("expected payload name, got %q", tr.Payload.MedicationName)
		}
	}
}

func TestScheduler_Apply_IsIdempotent(t *testing.T) {
	notifier := newFakeNotifier()
	s := NewScheduler(notifier, testLogger())

	m := med("med-1", []string{"08:00"}, medications.FrequencyWeekly, []int{1, 3})

	for i := 0; i < 3; i++ {
		s.Apply(context.Background(), m)
	}

	// re-aplicar N veces deja el mismo set, sin duplicados
	if notifier.countFor("med-1") != 2 {
		t.Fatalf("expected 2 triggers after repeated apply, got %d", notifier.countFor("med-1"))
	}
}

func TestScheduler_Apply_DoesNotTouchOtherMedications(t *testing.T) {
	notifier := newFakeNotifier()
	s := NewScheduler(notifier, testLogger())

	s.Apply(context.Background(), med("med-1", []string{"08:00"}, medications.FrequencyDaily, nil))
	s.Apply(context.Background(), med("med-2", []string{"09:00"}, medications.FrequencyDaily, nil))
	s.Apply(context.Background(), med("med-1", []string{"10:00"}, medications.FrequencyDaily, nil))

	if notifier.countFor("med-1") != 1 {
		t.Fatalf("expected 1 trigger for med-1, got %d", notifier.countFor("med-1"))
	}
	if notifier.countFor("med-2") != 1 {
		t.Fatalf("expected med-2 untouched, got %d", notifier.countFor("med-2"))
	}
}

func TestScheduler_Apply_InactiveCancelsEverything(t *testing.T) {
	notifier := newFakeNotifier()
	s := NewScheduler(notifier, testLogger())

	m := med("med-1", []string{"08:00", "20:00"}, medications.FrequencyDaily, nil)
	s.Apply(context.Background(), m)

	m.Active = false
	out := s.Apply(context.Background(), m)

	if len(out.TriggerIDs) != 0 {
		t.Fatalf("expected no triggers for inactive medication, got %v", out.TriggerIDs)
	}
	if notifier.countFor("med-1") != 0 {
		t.Fatalf("expected all triggers cancelled, got %d", notifier.countFor("med-1"))
	}
}

func TestScheduler_Apply_PartialFailureWarnsButKeepsRest(t *testing.T) {
	notifier := newFakeNotifier()
	s := NewScheduler(notifier, testLogger())

	notifier.failNext = 1
	out := s.Apply(context.Background(), med("med-1", []string{"08:00", "20:00"}, medications.FrequencyDaily, nil))

	if len(out.TriggerIDs) != 1 {
		t.Fatalf("expected 1 surviving trigger, got %v", out.TriggerIDs)
	}
	if out.Warning == "" {
		t.Fatalf("expected warning on partial failure")
	}
}

func TestScheduler_Remove_CancelsOnlyThatMedication(t *testing.T) {
	notifier := newFakeNotifier()
	s := NewScheduler(notifier, testLogger())

	s.Apply(context.Background(), med("med-1", []string{"08:00"}, medications.FrequencyDaily, nil))
	s.Apply(context.Background(), med("med-2", []string{"09:00"}, medications.FrequencyDaily, nil))

	s.Remove(context.Background(), "med-1")

	if notifier.countFor("med-1") != 0 {
		t.Fatalf("expected med-1 triggers cancelled, got %d", notifier.countFor("med-1"))
	}
	if notifier.countFor("med-2") != 1 {
		t.Fatalf("expected med-2 untouched, got %d", notifier.countFor("med-2"))
	}
}

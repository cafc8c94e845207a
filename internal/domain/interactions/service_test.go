package interactions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"med-companion/internal/domain/medications"
	"med-companion/internal/platform/logger"
	"med-companion/internal/ports/ai"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	recs       []CheckRecord // orden de inserción
	failCreate bool
}

func (r *testRepo) Create(ctx context.Context, rec CheckRecord) error {
	if r.failCreate {
		return errors.New("repo: insert failed")
	}
	r.recs = append(r.recs, rec)
	return nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string, limit int) ([]CheckRecord, error) {
	out := make([]CheckRecord, 0)
	for i := len(r.recs) - 1; i >= 0; i-- {
		if r.recs[i].UserID != userID {
			continue
		}
		out = append(out, r.recs[i])
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type testMeds struct {
	mu    sync.Mutex
	items []medications.Medication
}

func (m *testMeds) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]medications.Medication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]medications.Medication, 0)
	for _, it := range m.items {
		if it.UserID == userID && it.Active {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *testMeds) set(items ...medications.Medication) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
}

type countingAssistant struct {
	mu     sync.Mutex
	calls  int
	report ai.InteractionReport
	err    error
	block  chan struct{} // si no es nil, CheckInteractions espera acá
}

func (a *countingAssistant) CheckInteractions(ctx context.Context, meds []ai.MedicationSummary, patient ai.PatientContext) (ai.InteractionReport, error) {
	a.mu.Lock()
	a.calls++
	block := a.block
	a.mu.Unlock()

	if block != nil {
		<-block
	}
	if a.err != nil {
		return ai.InteractionReport{}, a.err
	}
	return a.report, nil
}

func (a *countingAssistant) Chat(ctx context.Context, turns []ai.ChatTurn, meds []ai.MedicationSummary, patient ai.PatientContext) (string, error) {
	return "", errors.New("not used")
}

func (a *countingAssistant) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func medFor(id, userID string) medications.Medication {
	return medications.Medication{ID: id, UserID: userID, Name: "med " + id, Active: true}
}

func testLogger() logger.Logger {
	return logger.New(logger.Options{Level: logger.Error})
}

// -------------------------
// Tests
// -------------------------

func TestService_EnsureChecked_SingleMedicationSynthesizesSafe(t *testing.T) {
	assistant := &countingAssistant{}
	meds := &testMeds{}
	meds.set(medFor("a", "user-1"))
	repo := &testRepo{}
	svc := NewService(repo, meds, assistant, testLogger())

	res, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if err != nil {
		t.Fatalf("EnsureChecked returned error: %v", err)
	}
	if !res.Synthesized {
		t.Fatalf("expected synthesized result")
	}
	if !res.Report.Safe || res.Severity != "none" {
		t.Fatalf("expected safe/none, got safe=%v severity=%s", res.Report.Safe, res.Severity)
	}
	if assistant.callCount() != 0 {
		t.Fatalf("expected no assistant calls, got %d", assistant.callCount())
	}
	// sintetizado no se persiste
	if len(repo.recs) != 0 {
		t.Fatalf("expected nothing persisted, got %d records", len(repo.recs))
	}
}

func TestService_EnsureChecked_SetChangeLifecycle(t *testing.T) {
	assistant := &countingAssistant{
		report: ai.InteractionReport{
			Safe: false,
			Interactions: []ai.Finding{
				{Medications: []string{"med a", "med b"}, Severity: "moderate", Description: "x"},
			},
		},
	}
	meds := &testMeds{}
	repo := &testRepo{}
	svc := NewService(repo, meds, assistant, testLogger())

	// 1) solo A: sintetizado, sin llamadas
	meds.set(medFor("a", "user-1"))
	if _, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{}); err != nil {
		t.Fatalf("step 1 error: %v", err)
	}
	if assistant.callCount() != 0 {
		t.Fatalf("step 1: expected 0 calls, got %d", assistant.callCount())
	}

	// 2) agrega B: el set cambió, corre un check y se persiste
	meds.set(medFor("a", "user-1"), medFor("b", "user-1"))
	res, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if err != nil {
		t.Fatalf("step 2 error: %v", err)
	}
	if assistant.callCount() != 1 {
		t.Fatalf("step 2: expected 1 call, got %d", assistant.callCount())
	}
	if res.Cached || res.Synthesized {
		t.Fatalf("step 2: expected fresh result, got %+v", res)
	}
	if res.Severity != "moderate" {
		t.Fatalf("step 2: expected moderate, got %s", res.Severity)
	}
	if len(repo.recs) != 1 {
		t.Fatalf("step 2: expected 1 persisted record, got %d", len(repo.recs))
	}

	// 3) revisita sin cambios: reutiliza, nada de llamadas nuevas
	res, err = svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if err != nil {
		t.Fatalf("step 3 error: %v", err)
	}
	if assistant.callCount() != 1 {
		t.Fatalf("step 3: expected still 1 call, got %d", assistant.callCount())
	}
	if !res.Cached {
		t.Fatalf("step 3: expected cached result")
	}

	// 4) saca B: queda un solo medicamento, corto circuito sin llamada
	meds.set(medFor("a", "user-1"))
	res, err = svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if err != nil {
		t.Fatalf("step 4 error: %v", err)
	}
	if assistant.callCount() != 1 {
		t.Fatalf("step 4: expected still 1 call, got %d", assistant.callCount())
	}
	if !res.Synthesized {
		t.Fatalf("step 4: expected synthesized result")
	}
}

func TestService_EnsureChecked_InitialLoadReusesPersistedExactMatch(t *testing.T) {
	assistant := &countingAssistant{report: ai.InteractionReport{Safe: true}}
	meds := &testMeds{}
	meds.set(medFor("a", "user-1"), medFor("b", "user-1"))
	repo := &testRepo{}

	// primera "sesión": corre y persiste
	svc1 := NewService(repo, meds, assistant, testLogger())
	if _, err := svc1.EnsureChecked(context.Background(), "user-1", ai.PatientContext{}); err != nil {
		t.Fatalf("session 1 error: %v", err)
	}
	if assistant.callCount() != 1 {
		t.Fatalf("session 1: expected 1 call, got %d", assistant.callCount())
	}

	// sesión nueva (proceso nuevo), mismo repo: primera carga con match
	// exacto reutiliza el registro persistido sin llamar al asistente
	svc2 := NewService(repo, meds, assistant, testLogger())
	res, err := svc2.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if err != nil {
		t.Fatalf("session 2 error: %v", err)
	}
	if assistant.callCount() != 1 {
		t.Fatalf("session 2: expected no new calls, got %d", assistant.callCount())
	}
	if !res.Cached {
		t.Fatalf("session 2: expected cached result")
	}
}

func TestService_EnsureChecked_InitialLoadStaleCacheRechecks(t *testing.T) {
	assistant := &countingAssistant{report: ai.InteractionReport{Safe: true}}
	meds := &testMeds{}
	meds.set(medFor("a", "user-1"), medFor("b", "user-1"))

	// cache persistido de un set viejo (A solo con C)
	repo := &testRepo{recs: []CheckRecord{{
		ID:            "old",
		UserID:        "user-1",
		MedicationIDs: []string{"a", "c"},
		Severity:      "none",
		CheckedAt:     time.Now().Add(-time.Hour),
	}}}

	svc := NewService(repo, meds, assistant, testLogger())
	res, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if err != nil {
		t.Fatalf("EnsureChecked returned error: %v", err)
	}
	if assistant.callCount() != 1 {
		t.Fatalf("expected a fresh check against stale cache, got %d calls", assistant.callCount())
	}
	if res.Cached {
		t.Fatalf("expected fresh result, got cached")
	}
}

func TestService_EnsureChecked_InProgressGuard(t *testing.T) {
	block := make(chan struct{})
	assistant := &countingAssistant{
		report: ai.InteractionReport{Safe: true},
		block:  block,
	}
	meds := &testMeds{}
	meds.set(medFor("a", "user-1"), medFor("b", "user-1"))
	svc := NewService(&testRepo{}, meds, assistant, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
		done <- err
	}()

	// espera a que el primer check esté adentro del asistente
	deadline := time.After(2 * time.Second)
	for assistant.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatalf("first check never reached the assistant")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	if _, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{}); !errors.Is(err, ErrCheckInProgress) {
		t.Fatalf("expected ErrCheckInProgress, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first check returned error: %v", err)
	}
}

func TestService_EnsureChecked_PersistFailureStillReturnsResult(t *testing.T) {
	assistant := &countingAssistant{report: ai.InteractionReport{Safe: true}}
	meds := &testMeds{}
	meds.set(medFor("a", "user-1"), medFor("b", "user-1"))
	repo := &testRepo{failCreate: true}

	svc := NewService(repo, meds, assistant, testLogger())
	res, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if err != nil {
		t.Fatalf("expected result despite persist failure, got %v", err)
	}
	if !res.Report.Safe {
		t.Fatalf("expected the assistant report back")
	}
}

func TestService_EnsureChecked_AssistantFailureWrapsErrAssistant(t *testing.T) {
	assistant := &countingAssistant{err: errors.New("rate limited")}
	meds := &testMeds{}
	meds.set(medFor("a", "user-1"), medFor("b", "user-1"))

	svc := NewService(&testRepo{}, meds, assistant, testLogger())
	_, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if !errors.Is(err, ErrAssistant) {
		t.Fatalf("expected ErrAssistant, got %v", err)
	}
}

func TestService_EnsureChecked_PersistFailureRevisitReusesSessionResult(t *testing.T) {
	assistant := &countingAssistant{report: ai.InteractionReport{Safe: true}}
	meds := &testMeds{}
	meds.set(medFor("a", "user-1"), medFor("b", "user-1"))
	repo := &testRepo{failCreate: true}

	svc := NewService(repo, meds, assistant, testLogger())
	if _, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{}); err != nil {
		t.Fatalf("first check error: %v", err)
	}
	if assistant.callCount() != 1 {
		t.Fatalf("expected 1 call, got %d", assistant.callCount())
	}

	// mismo set, no primera carga, cache persistido vacío: la sesión
	// retiene el último resultado en memoria y no vuelve al asistente
	res, err := svc.EnsureChecked(context.Background(), "user-1", ai.PatientContext{})
	if err != nil {
		t.Fatalf("revisit error: %v", err)
	}
	if assistant.callCount() != 1 {
		t.Fatalf("expected still 1 call, got %d", assistant.callCount())
	}
	if !res.Cached {
		t.Fatalf("expected cached result from session memory")
	}
	if !res.Report.Safe {
		t.Fatalf("expected the retained report back")
	}
}

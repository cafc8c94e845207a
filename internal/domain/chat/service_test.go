package chat

import (
	"context"
	"errors"
	"sort"
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
	turns []Turn
}

func (r *testRepo) Create(ctx context.Context, t Turn) error {
	r.turns = append(r.turns, t)
	return nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Turn, error) {
	out := make([]Turn, 0)
	for _, t := range r.turns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type testMeds struct {
	items []medications.Medication
	err   error
}

func (m *testMeds) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]medications.Medication, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

type scriptedAssistant struct {
	reply string
	err   error

	gotTurns []ai.ChatTurn
	gotMeds  []ai.MedicationSummary
}

func (a *scriptedAssistant) CheckInteractions(ctx context.Context, meds []ai.MedicationSummary, patient ai.PatientContext) (ai.InteractionReport, error) {
	return ai.InteractionReport{}, errors.New("not used")
}

func (a *scriptedAssistant) Chat(ctx context.Context, turns []ai.ChatTurn, meds []ai.MedicationSummary, patient ai.PatientContext) (string, error) {
	a.gotTurns = turns
	a.gotMeds = meds
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

func testLogger() logger.Logger {
	return logger.New(logger.Options{Level: logger.Error})
}

// -------------------------
// Tests
// -------------------------

func TestService_Send_PersistsBothTurnsInOrder(t *testing.T) {
	repo := &testRepo{}
	assistant := &scriptedAssistant{reply: "Take it with food."}
	svc := NewService(repo, &testMeds{}, assistant, testLogger())

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	res, err := svc.Send(context.Background(), "user-1", "How should I take aspirin?", ai.PatientContext{})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if res.Reply != "Take it with food." {
		t.Fatalf("expected assistant reply, got %q", res.Reply)
	}
	if res.Draft != nil {
		t.Fatalf("expected no draft for plain reply, got %+v", res.Draft)
	}

	turns, err := svc.History(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 persisted turns, got %d", len(turns))
	}
	if turns[0].Role != RoleUser || turns[1].Role != RoleAssistant {
		t.Fatalf("expected user then assistant, got %s then %s", turns[0].Role, turns[1].Role)
	}
	if !turns[1].CreatedAt.After(turns[0].CreatedAt) {
		t.Fatalf("expected assistant turn ordered after user turn")
	}
}

func TestService_Send_ExtractsDraftAndStoresCleanText(t *testing.T) {
	repo := &testRepo{}
	assistant := &scriptedAssistant{
		reply: `{"action":"add_medication","medication":{"name":"Aspirin","dosage":"100mg"}}`,
	}
	svc := NewService(repo, &testMeds{}, assistant, testLogger())

	res, err := svc.Send(context.Background(), "user-1", "add aspirin 100mg", ai.PatientContext{})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if res.Draft == nil || res.Draft.Name != "Aspirin" {
		t.Fatalf("expected Aspirin draft, got %+v", res.Draft)
	}

	// lo persistido es el texto limpio, nunca el raw del asistente
	turns, _ := svc.History(context.Background(), "user-1", 0)
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[1].Content != res.Reply {
		t.Fatalf("expected stored content to match the reply, got %q vs %q", turns[1].Content, res.Reply)
	}
}

func TestService_Send_AssistantFailureIsFatalAndPersistsNothing(t *testing.T) {
	repo := &testRepo{}
	assistant := &scriptedAssistant{err: errors.New("rate limited")}
	svc := NewService(repo, &testMeds{}, assistant, testLogger())

	_, err := svc.Send(context.Background(), "user-1", "hello", ai.PatientContext{})
	if !errors.Is(err, ErrAssistant) {
		t.Fatalf("expected ErrAssistant, got %v", err)
	}
	if len(repo.turns) != 0 {
		t.Fatalf("expected nothing persisted on failure, got %d turns", len(repo.turns))
	}
}

func TestService_Send_MedContextFailureDoesNotBlockChat(t *testing.T) {
	repo := &testRepo{}
	assistant := &scriptedAssistant{reply: "all good"}
	svc := NewService(repo, &testMeds{err: errors.New("db down")}, assistant, testLogger())

	res, err := svc.Send(context.Background(), "user-1", "hello", ai.PatientContext{})
	if err != nil {
		t.Fatalf("expected chat to survive med context failure, got %v", err)
	}
	if res.Reply != "all good" {
		t.Fatalf("expected reply, got %q", res.Reply)
	}
	if len(assistant.gotMeds) != 0 {
		t.Fatalf("expected no medication context, got %d", len(assistant.gotMeds))
	}
}

func TestService_Send_SendsHistoryWindowToAssistant(t *testing.T) {
	repo := &testRepo{}
	assistant := &scriptedAssistant{reply: "ok"}
	svc := NewService(repo, &testMeds{}, assistant, testLogger())

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		repo.turns = append(repo.turns, Turn{
			ID:        "t" + string(rune('a'+i)),
			UserID:    "user-1",
			Role:      RoleUser,
			Content:   "earlier",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	if _, err := svc.Send(context.Background(), "user-1", "now", ai.PatientContext{}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	// 3 previos + el mensaje actual
	if len(assistant.gotTurns) != 4 {
		t.Fatalf("expected 4 turns sent to assistant, got %d", len(assistant.gotTurns))
	}
	if assistant.gotTurns[3].Content != "now" {
		t.Fatalf("expected current message last, got %q", assistant.gotTurns[3].Content)
	}
}

func TestService_Send_ValidatesInput(t *testing.T) {
	svc := NewService(&testRepo{}, &testMeds{}, &scriptedAssistant{reply: "ok"}, testLogger())

	if _, err := svc.Send(context.Background(), "user-1", "   ", ai.PatientContext{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank message, got %v", err)
	}
	if _, err := svc.Send(context.Background(), "", "hello", ai.PatientContext{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank user, got %v", err)
	}
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"med-companion/internal/domain/medications"
	"med-companion/internal/platform/logger"
	"med-companion/internal/ports/ai"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrAssistant envuelve toda falla de la llamada al asistente; los
	// handlers lo traducen a 502.
	ErrAssistant = errors.New("assistant unavailable")
)

// historyWindow limita cuántos turnos previos viajan al asistente.
const historyWindow = 20

// MedicationsLister es lo que el chat necesita del módulo de
// medicamentos (lo satisface *medications.Service).
type MedicationsLister interface {
	ListByUser(ctx context.Context, userID string, includeInactive bool) ([]medications.Medication, error)
}

type Service struct {
	repo Repository
	meds MedicationsLister
	ai   ai.Assistant
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, meds MedicationsLister, assistant ai.Assistant, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		meds: meds,
		ai:   assistant,
		log:  log,
		now:  time.Now,
	}
}

// SendResult es la respuesta de un turno de chat: el texto a mostrar y,
// si el asistente emitió un comando add_medication, el draft extraído
// (transitorio; el caller decide si lo convierte en medicamento).
type SendResult struct {
	Reply string
	Draft *Draft
}

// Send procesa un mensaje del usuario: arma el historial + contexto de
// medicamentos, llama al asistente y pasa la respuesta por el extractor.
// Una falla del asistente acá ES fatal para el envío (el usuario mandó
// el mensaje explícitamente y tiene que poder reintentar); nada se
// persiste en ese caso. Las fallas del extractor no existen: siempre
// degrada a texto plano.
func (s *Service) Send(ctx context.Context, userID, message string, patient ai.PatientContext) (SendResult, error) {
	userID = strings.TrimSpace(userID)
	message = strings.TrimSpace(message)
	if userID == "" || message == "" {
		return SendResult{}, ErrInvalidInput
	}

	history, err := s.repo.ListByUser(ctx, userID, historyWindow)
	if err != nil {
		return SendResult{}, err
	}

	turns := make([]ai.ChatTurn, 0, len(history)+1)
	for _, t := range history {
		turns = append(turns, ai.ChatTurn{Role: string(t.Role), Content: t.Content})
	}
	turns = append(turns, ai.ChatTurn{Role: string(RoleUser), Content: message})

	// El contexto de medicamentos es enriquecimiento opcional: si la
	// lectura falla, el chat igual tiene que funcionar.
	var summaries []ai.MedicationSummary
	if meds, err := s.meds.ListByUser(ctx, userID, false); err == nil {
		for _, m := range meds {
			summaries = append(summaries, ai.MedicationSummary{
				ID:        m.ID,
				Name:      m.Name,
				Dosage:    m.Dosage,
				Frequency: m.Schedule,
			})
		}
	} else {
		s.log.Warn("chat medication context unavailable", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	raw, err := s.ai.Chat(ctx, turns, summaries, patient)
	if err != nil {
		return SendResult{}, fmt.Errorf("assistant chat: %w: %w", ErrAssistant, err)
	}

	res := Extract(raw)

	now := s.now()
	userTurn := Turn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      RoleUser,
		Content:   message,
		CreatedAt: now,
	}
	assistantTurn := Turn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      RoleAssistant,
		Content:   res.DisplayText,
		CreatedAt: now.Add(time.Millisecond), // preserva orden en listados
	}

	if err := s.repo.Create(ctx, userTurn); err != nil {
		return SendResult{}, err
	}
	if err := s.repo.Create(ctx, assistantTurn); err != nil {
		return SendResult{}, err
	}

	return SendResult{Reply: res.DisplayText, Draft: res.Draft}, nil
}

// History devuelve los últimos turnos en orden cronológico.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Turn, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

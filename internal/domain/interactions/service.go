package interactions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"med-companion/internal/domain/medications"
	"med-companion/internal/platform/logger"
	"med-companion/internal/ports/ai"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrCheckInProgress = errors.New("interaction check already in progress")

	// ErrAssistant envuelve toda falla de la llamada al asistente; los
	// handlers lo traducen a 502.
	ErrAssistant = errors.New("assistant unavailable")
)

// MedicationsLister es lo que el cache necesita del módulo de
// medicamentos (lo satisface *medications.Service).
type MedicationsLister interface {
	ListByUser(ctx context.Context, userID string, includeInactive bool) ([]medications.Medication, error)
}

// userState es el estado de sesión por usuario: último set observado,
// si ya hubo una primera carga, el flag de check en curso, y el último
// resultado retenido en memoria (respaldo cuando la persistencia del
// check falló).
//
// Decisión deliberada: el guard de in-progress vive en la instancia del
// Service. Como el router construye un Service por proceso, dos requests
// simultáneos del mismo usuario quedan serializados a nivel proceso.
// Entre procesos no hay guard.
type userState struct {
	seen       bool
	lastIDs    []string
	inProgress bool
	lastRec    *CheckRecord
}

type Service struct {
	repo Repository
	meds MedicationsLister
	ai   ai.Assistant
	log  logger.Logger
	now  func() time.Time

	mu    sync.Mutex
	state map[string]*userState
}

func NewService(repo Repository, meds MedicationsLister, assistant ai.Assistant, log logger.Logger) *Service {
	return &Service{
		repo:  repo,
		meds:  meds,
		ai:    assistant,
		log:   log,
		now:   time.Now,
		state: make(map[string]*userState),
	}
}

// Result es lo que ve el caller: el reporte más los metadatos de cómo se
// obtuvo (cacheado, sintetizado, o recién chequeado).
type Result struct {
	Report        ai.InteractionReport
	Severity      string
	MedicationIDs []string
	CheckedAt     time.Time
	Cached        bool
	Synthesized   bool
}

// EnsureChecked aplica la regla de decisión completa:
//
//   - <2 medicamentos activos: sintetiza el resultado seguro sin llamar
//     al asistente ni persistir nada.
//   - Primera carga: reutiliza el registro persistido si su set coincide
//     exacto con el actual; si no, corre un check nuevo.
//   - Set cambiado: check nuevo.
//   - Mismo set, no primera carga: reutiliza.
//
// Exactamente una llamada al asistente por decisión de recheck; si ya
// hay una en vuelo para el usuario devuelve ErrCheckInProgress.
func (s *Service) EnsureChecked(ctx context.Context, userID string, patient ai.PatientContext) (Result, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Result{}, ErrInvalidInput
	}

	meds, err := s.meds.ListByUser(ctx, userID, false)
	if err != nil {
		return Result{}, err
	}

	ids := make([]string, 0, len(meds))
	summaries := make([]ai.MedicationSummary, 0, len(meds))
	for _, m := range meds {
		ids = append(ids, m.ID)
		summaries = append(summaries, ai.MedicationSummary{
			ID:        m.ID,
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Schedule,
		})
	}
	sort.Strings(ids)

	if len(ids) < 2 {
		s.observe(userID, ids)
		return Result{
			Report: ai.InteractionReport{
				Safe:         true,
				Interactions: []ai.Finding{},
				Warnings:     []string{},
			},
			Severity:      "none",
			MedicationIDs: ids,
			CheckedAt:     s.now(),
			Synthesized:   true,
		}, nil
	}

	s.mu.Lock()
	st := s.stateFor(userID)
	initial := !st.seen
	recheck := ShouldRecheck(ids, st.lastIDs, initial)
	s.mu.Unlock()

	// Antes de pagar una llamada al asistente, el cache persistido manda:
	// tanto "mismo set, no primera carga" como "primera carga con match
	// exacto" se resuelven acá.
	if !recheck || initial {
		if rec, ok := s.loadCached(ctx, userID, ids); ok {
			s.retain(userID, rec)
			s.observe(userID, ids)
			return Result{
				Report:        rec.Report,
				Severity:      rec.Severity,
				MedicationIDs: rec.MedicationIDs,
				CheckedAt:     rec.CheckedAt,
				Cached:        true,
			}, nil
		}

		// Si el último check no llegó a persistirse, la sesión lo retiene
		// en memoria; con el mismo set se reutiliza igual en vez de pagar
		// otra llamada al asistente.
		s.mu.Lock()
		last := st.lastRec
		s.mu.Unlock()
		if last != nil && SameIDSet(last.MedicationIDs, ids) {
			s.observe(userID, ids)
			return Result{
				Report:        last.Report,
				Severity:      last.Severity,
				MedicationIDs: last.MedicationIDs,
				CheckedAt:     last.CheckedAt,
				Cached:        true,
			}, nil
		}
	}

	s.mu.Lock()
	if st.inProgress {
		s.mu.Unlock()
		return Result{}, ErrCheckInProgress
	}
	st.inProgress = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		st.inProgress = false
		s.mu.Unlock()
	}()

	report, err := s.ai.CheckInteractions(ctx, summaries, patient)
	if err != nil {
		return Result{}, fmt.Errorf("interaction check: %w: %w", ErrAssistant, err)
	}

	now := s.now()
	rec := CheckRecord{
		ID:            uuid.NewString(),
		UserID:        userID,
		MedicationIDs: ids,
		Report:        report,
		Severity:      OverallSeverity(report),
		CheckedAt:     now,
	}

	// El registro es cache: si no se puede persistir, el resultado igual
	// vuelve al usuario.
	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Warn("interaction check persist failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	s.retain(userID, rec)
	s.observe(userID, ids)

	return Result{
		Report:        report,
		Severity:      rec.Severity,
		MedicationIDs: ids,
		CheckedAt:     now,
	}, nil
}

// History lista los registros de checks del usuario, más reciente primero.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]CheckRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

// loadCached solo devuelve hit si el registro MÁS RECIENTE tiene match
// exacto de set; nunca por superset/subset.
func (s *Service) loadCached(ctx context.Context, userID string, ids []string) (CheckRecord, bool) {
	recs, err := s.repo.ListByUser(ctx, userID, 1)
	if err != nil || len(recs) == 0 {
		return CheckRecord{}, false
	}
	if !SameIDSet(recs[0].MedicationIDs, ids) {
		return CheckRecord{}, false
	}
	return recs[0], true
}

func (s *Service) retain(userID string, rec CheckRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stateFor(userID).lastRec = &rec
}

func (s *Service) observe(userID string, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateFor(userID)
	st.seen = true
	st.lastIDs = ids
}

// stateFor requiere s.mu tomado.
func (s *Service) stateFor(userID string) *userState {
	st, ok := s.state[userID]
	if !ok {
		st = &userState{}
		s.state[userID] = st
	}
	return st
}

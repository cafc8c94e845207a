package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"med-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, applier ReminderApplier) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc, applier))
		mr.Get("/", listMedicationsHandler(svc))
		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Patch("/{medicationID}", updateMedicationHandler(svc))

		// Reemplaza la configuración de recordatorios y recalcula triggers
		mr.Put("/{medicationID}/reminders", setRemindersHandler(svc, applier))

		// Archivar (no se borra: el historial de dosis se conserva)
		mr.Post("/{medicationID}/archive", archiveMedicationHandler(svc, applier))
	})
}

type createMedicationRequest struct {
	Name        string `json:"name"`
	Dosage      string `json:"dosage"`
	Schedule    string `json:"schedule"`
	Description string `json:"description"`
	Category    string `json:"category" enums:"prescription,otc,supplement,other"`

	ReminderTimes     []string `json:"reminder_times"`     // "HH:MM"
	ReminderFrequency string   `json:"reminder_frequency"` // daily|weekly|monthly
	ReminderDays      []int    `json:"reminder_days"`
}

type updateMedicationRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string `json:"name"`
	Dosage      *string `json:"dosage"`
	Schedule    *string `json:"schedule"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type setRemindersRequest struct {
	ReminderTimes     []string `json:"reminder_times"`
	ReminderFrequency string   `json:"reminder_frequency"`
	ReminderDays      []int    `json:"reminder_days"`
}

// medicationResponse representa un medicamento devuelto por la API.
type medicationResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Dosage      string `json:"dosage"`
	Schedule    string `json:"schedule"`
	Description string `json:"description"`
	Category    string `json:"category"`

	ReminderTimes     []string `json:"reminder_times"`
	ReminderFrequency string   `json:"reminder_frequency"`
	ReminderDays      []int    `json:"reminder_days"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// savedMedicationResponse agrega al medicamento el resultado del
// scheduling. Warning presente = los recordatorios no quedaron completos
// pero el medicamento SÍ se guardó.
type savedMedicationResponse struct {
	Medication medicationResponse `json:"medication"`
	TriggerIDs []string           `json:"trigger_ids"`
	Warning    string             `json:"warning,omitempty"`
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Description Registra un medicamento del usuario autenticado y programa sus recordatorios. Si el scheduling falla, el medicamento igual se guarda y la respuesta incluye un warning. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMedicationRequest true "Datos del medicamento; reminder_times en formato HH:MM"
// @Success 201 {object} savedMedicationResponse
// @Failure 400 {string} string "invalid json / configuración de recordatorios inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /medications [post]
func createMedicationHandler(svc *Service, applier ReminderApplier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:              req.Name,
			Dosage:            req.Dosage,
			Schedule:          req.Schedule,
			Description:       req.Description,
			Category:          req.Category,
			ReminderTimes:     req.ReminderTimes,
			ReminderFrequency: req.ReminderFrequency,
			ReminderDays:      req.ReminderDays,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		outcome := applier.Apply(r.Context(), m)

		writeJSON(w, http.StatusCreated, savedMedicationResponse{
			Medication: toMedicationResponse(m),
			TriggerIDs: outcome.TriggerIDs,
			Warning:    outcome.Warning,
		})
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Description Lista los medicamentos del usuario autenticado. Por defecto solo activos; `include_inactive=true` incluye archivados.
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param include_inactive query bool false "Incluir medicamentos archivados"
// @Success 200 {array} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		includeInactive := strings.EqualFold(r.URL.Query().Get("include_inactive"), "true")

		items, err := svc.ListByUser(r.Context(), claims.UserID, includeInactive)
		if err != nil {
			storageError(w, err)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicamento
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil || m.UserID != claims.UserID {
			// 404 también cuando es de otro usuario, para no filtrar existencia
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Actualizar medicamento
// @Description PATCH de los campos de display. La configuración de recordatorios se cambia por PUT /medications/{medicationID}/reminders.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Param payload body updateMedicationRequest true "Campos a modificar (los no enviados no se tocan)"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [patch]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"), UpdateInput{
			Name:        req.Name,
			Dosage:      req.Dosage,
			Schedule:    req.Schedule,
			Description: req.Description,
			Category:    req.Category,
		})
		if err != nil {
			domainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// setRemindersHandler godoc
// @Summary Reemplazar recordatorios
// @Description Reemplaza la configuración completa de recordatorios y recalcula los triggers (cancelar todo + crear el set nuevo; re-aplicar la misma config no duplica). Si el scheduling falla, la config igual queda guardada y la respuesta incluye un warning.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Param payload body setRemindersRequest true "Configuración nueva; weekly exige reminder_days 0-6, monthly 1-31"
// @Success 200 {object} savedMedicationResponse
// @Failure 400 {string} string "configuración inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/reminders [put]
func setRemindersHandler(svc *Service, applier ReminderApplier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setRemindersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.SetReminders(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"),
			req.ReminderTimes, req.ReminderFrequency, req.ReminderDays)
		if err != nil {
			domainError(w, err)
			return
		}

		outcome := applier.Apply(r.Context(), m)

		writeJSON(w, http.StatusOK, savedMedicationResponse{
			Medication: toMedicationResponse(m),
			TriggerIDs: outcome.TriggerIDs,
			Warning:    outcome.Warning,
		})
	}
}

// archiveMedicationHandler godoc
// @Summary Archivar medicamento
// @Description Desactiva el medicamento y cancela todos sus triggers. Idempotente.
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/archive [post]
func archiveMedicationHandler(svc *Service, applier ReminderApplier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.Archive(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"))
		if err != nil {
			domainError(w, err)
			return
		}

		applier.Remove(r.Context(), m.ID)

		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

func domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotFound):
		// 404 también para forbidden: no filtrar existencia de ids ajenos
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		storageError(w, err)
	}
}

func storageError(w http.ResponseWriter, err error) {
	http.Error(w, "internal error: "+err.Error(), http.StatusInternalServerError)
}

func toMedicationResponse(m Medication) medicationResponse {
	times := m.ReminderTimes
	if times == nil {
		times = []string{}
	}
	days := m.ReminderDays
	if days == nil {
		days = []int{}
	}

	return medicationResponse{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		Dosage:            m.Dosage,
		Schedule:          m.Schedule,
		Description:       m.Description,
		Category:          string(m.Category),
		ReminderTimes:     times,
		ReminderFrequency: string(m.ReminderFrequency),
		ReminderDays:      days,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

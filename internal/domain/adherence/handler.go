package adherence

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"med-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications/{medicationID}/doses", func(dr chi.Router) {
		dr.Post("/confirm", confirmDoseHandler(svc))
		dr.Post("/skip", skipDoseHandler(svc))
		dr.Get("/", listDosesHandler(svc))
		dr.Get("/today", todayDoseHandler(svc))
	})
}

type markDoseRequest struct {
	// Cómo se registró la toma: manual|notification|auto. Vacío = manual.
	ConfirmedVia string `json:"confirmed_via"`
}

type doseLogResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	MedicationID  string     `json:"medication_id"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	TakenAt       *time.Time `json:"taken_at"`
	Status        string     `json:"status"`
	ConfirmedVia  string     `json:"confirmed_via"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type todayDoseResponse struct {
	// Logged indica si hoy ya hay una entrada; si es false, Entry es null.
	Logged bool             `json:"logged"`
	Entry  *doseLogResponse `json:"entry"`
}

// confirmDoseHandler godoc
// @Summary Confirmar dosis de hoy
// @Description Marca la dosis de hoy como tomada. Si el día ya tiene entrada la sobreescribe (taken ↔ skipped), nunca crea una segunda fila para el mismo día.
// @Tags adherence
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Param payload body markDoseRequest false "Origen de la confirmación"
// @Success 200 {object} doseLogResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/doses/confirm [post]
func confirmDoseHandler(svc *Service) http.HandlerFunc {
	return markDoseHandler(svc, StatusTaken)
}

// skipDoseHandler godoc
// @Summary Saltar dosis de hoy
// @Description Marca la dosis de hoy como saltada (taken_at queda en null). Mismas reglas de upsert por día que confirm.
// @Tags adherence
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Param payload body markDoseRequest false "Origen de la confirmación"
// @Success 200 {object} doseLogResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/doses/skip [post]
func skipDoseHandler(svc *Service) http.HandlerFunc {
	return markDoseHandler(svc, StatusSkipped)
}

func markDoseHandler(svc *Service, status Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Body opcional: sin payload se asume confirmación manual.
		var req markDoseRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		medID := chi.URLParam(r, "medicationID")
		via := ConfirmedVia(strings.TrimSpace(req.ConfirmedVia))

		var (
			e   DoseLog
			err error
		)
		if status == StatusTaken {
			e, err = svc.Confirm(r.Context(), claims.UserID, medID, via)
		} else {
			e, err = svc.Skip(r.Context(), claims.UserID, medID, via)
		}
		if err != nil {
			doseError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDoseLogResponse(e))
	}
}

// listDosesHandler godoc
// @Summary Historial de dosis
// @Description Lista el log de dosis del medicamento, más reciente primero. Filtros opcionales from/to (RFC3339) y limit.
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Param from query string false "Desde (RFC3339)"
// @Param to query string false "Hasta (RFC3339)"
// @Param limit query int false "Máximo de entradas"
// @Success 200 {array} doseLogResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/doses [get]
func listDosesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		entries, err := svc.History(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"), filter)
		if err != nil {
			doseError(w, err)
			return
		}

		out := make([]doseLogResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, toDoseLogResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// todayDoseHandler godoc
// @Summary Dosis de hoy
// @Description Devuelve la entrada del día calendario actual si existe. La resolución es por fecha, no por timestamp exacto.
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} todayDoseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/doses/today [get]
func todayDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, ok, err := svc.Today(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"))
		if err != nil {
			doseError(w, err)
			return
		}

		resp := todayDoseResponse{Logged: ok}
		if ok {
			entry := toDoseLogResponse(e)
			resp.Entry = &entry
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	var f ListFilter
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("invalid 'from' timestamp")
		}
		f.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("invalid 'to' timestamp")
		}
		f.To = &t
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return ListFilter{}, errors.New("invalid 'limit'")
		}
		f.Limit = n
	}
	return f, nil
}

func doseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error: "+err.Error(), http.StatusInternalServerError)
	}
}

func toDoseLogResponse(e DoseLog) doseLogResponse {
	return doseLogResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		MedicationID:  e.MedicationID,
		ScheduledTime: e.ScheduledTime,
		TakenAt:       e.TakenAt,
		Status:        string(e.Status),
		ConfirmedVia:  string(e.ConfirmedVia),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

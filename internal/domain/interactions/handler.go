package interactions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"med-companion/internal/middleware"
	"med-companion/internal/platform/storage"
	"med-companion/internal/ports/ai"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/interactions", func(ir chi.Router) {
		ir.Get("/", checkInteractionsHandler(svc))
		ir.Get("/history", interactionHistoryHandler(svc))
	})
}

type interactionResultResponse struct {
	Safe          bool         `json:"safe"`
	Severity      string       `json:"severity"`
	Interactions  []ai.Finding `json:"interactions"`
	Warnings      []string     `json:"warnings"`
	MedicationIDs []string     `json:"medication_ids"`
	CheckedAt     time.Time    `json:"checked_at"`
	Cached        bool         `json:"cached"`
	Synthesized   bool         `json:"synthesized"`
}

type checkRecordResponse struct {
	ID            string               `json:"id"`
	MedicationIDs []string             `json:"medication_ids"`
	Report        ai.InteractionReport `json:"report"`
	Severity      string               `json:"severity"`
	CheckedAt     time.Time            `json:"checked_at"`
}

// checkInteractionsHandler godoc
// @Summary Verificar interacciones
// @Description Devuelve el análisis de interacciones del set de medicamentos activos del usuario. Reutiliza el último check persistido cuando el set no cambió; con menos de dos medicamentos activos responde safe sin consultar al asistente. Si ya hay un check en curso para el usuario responde 409.
// @Tags interactions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} interactionResultResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "check already in progress"
// @Failure 500 {string} string "internal error"
// @Failure 502 {string} string "assistant unavailable"
// @Router /interactions [get]
func checkInteractionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := svc.EnsureChecked(r.Context(), claims.UserID, ai.PatientContext{})
		if err != nil {
			checkError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResultResponse(res))
	}
}

// interactionHistoryHandler godoc
// @Summary Historial de checks
// @Description Lista los checks de interacciones persistidos del usuario, más reciente primero.
// @Tags interactions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit query int false "Máximo de registros (default 20, tope 100)"
// @Success 200 {array} checkRecordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /interactions/history [get]
func interactionHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		recs, err := svc.History(r.Context(), claims.UserID, limit)
		if err != nil {
			checkError(w, err)
			return
		}

		out := make([]checkRecordResponse, 0, len(recs))
		for _, rec := range recs {
			out = append(out, checkRecordResponse{
				ID:            rec.ID,
				MedicationIDs: rec.MedicationIDs,
				Report:        rec.Report,
				Severity:      rec.Severity,
				CheckedAt:     rec.CheckedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// checkError distingue causa de despliegue de causa de usuario: tablas
// sin migrar o permisos de DB son problema del operador, no del request.
func checkError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrCheckInProgress):
		http.Error(w, "an interaction check is already in progress", http.StatusConflict)
	case errors.Is(err, storage.ErrNotProvisioned):
		http.Error(w, "database schema not provisioned; run migrations", http.StatusInternalServerError)
	case errors.Is(err, storage.ErrPermissionDenied):
		http.Error(w, "database permissions misconfigured; check the service role grants", http.StatusInternalServerError)
	case errors.Is(err, ErrAssistant):
		http.Error(w, "assistant unavailable, try again later", http.StatusBadGateway)
	default:
		http.Error(w, "internal error: "+err.Error(), http.StatusInternalServerError)
	}
}

func toResultResponse(res Result) interactionResultResponse {
	findings := res.Report.Interactions
	if findings == nil {
		findings = []ai.Finding{}
	}
	warnings := res.Report.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	ids := res.MedicationIDs
	if ids == nil {
		ids = []string{}
	}

	return interactionResultResponse{
		Safe:          res.Report.Safe,
		Severity:      res.Severity,
		Interactions:  findings,
		Warnings:      warnings,
		MedicationIDs: ids,
		CheckedAt:     res.CheckedAt,
		Cached:        res.Cached,
		Synthesized:   res.Synthesized,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

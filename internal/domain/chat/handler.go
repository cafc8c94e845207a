package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"med-companion/internal/middleware"
	"med-companion/internal/ports/ai"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/chat", func(cr chi.Router) {
		cr.Post("/", sendMessageHandler(svc))
		cr.Get("/history", chatHistoryHandler(svc))
	})
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type sendMessageResponse struct {
	Reply string `json:"reply"`
	// Draft presente = el asistente propuso agregar un medicamento; el
	// cliente lo muestra para revisión y lo confirma vía POST /medications.
	Draft *Draft `json:"draft,omitempty"`
}

type chatTurnResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// sendMessageHandler godoc
// @Summary Enviar mensaje al asistente
// @Description Procesa un turno de chat: responde con texto limpio (sin JSON embebido) y, si el asistente emitió un comando add_medication, incluye el draft extraído. Si el asistente no responde, nada se persiste y el cliente puede reintentar.
// @Tags chat
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body sendMessageRequest true "Mensaje del usuario"
// @Success 200 {object} sendMessageResponse
// @Failure 400 {string} string "invalid json / mensaje vacío"
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "assistant unavailable"
// @Router /chat [post]
func sendMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Send(r.Context(), claims.UserID, req.Message, ai.PatientContext{})
		if err != nil {
			chatError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sendMessageResponse{
			Reply: res.Reply,
			Draft: res.Draft,
		})
	}
}

// chatHistoryHandler godoc
// @Summary Historial de chat
// @Description Devuelve los últimos turnos de la conversación en orden cronológico.
// @Tags chat
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit query int false "Máximo de turnos (default 50, tope 200)"
// @Success 200 {array} chatTurnResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /chat/history [get]
func chatHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		turns, err := svc.History(r.Context(), claims.UserID, limit)
		if err != nil {
			chatError(w, err)
			return
		}

		out := make([]chatTurnResponse, 0, len(turns))
		for _, t := range turns {
			out = append(out, chatTurnResponse{
				ID:        t.ID,
				Role:      string(t.Role),
				Content:   t.Content,
				CreatedAt: t.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func chatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAssistant):
		http.Error(w, "assistant unavailable, try again later", http.StatusBadGateway)
	default:
		http.Error(w, "internal error: "+err.Error(), http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

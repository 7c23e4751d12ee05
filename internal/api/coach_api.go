package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lifeforge/lifeforge/internal/app/coach"
	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/infra/metrics"
)

// ─── Coach (/api/coach) ─────────────────────────────────────────────────────

func (s *Server) handleCoachModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"modes": coach.Modes()})
}

type coachChatRequest struct {
	Mode     string          `json:"mode"`
	Topic    string          `json:"topic,omitempty"` // custom mode only
	Messages []coach.Message `json:"messages"`
}

// handleCoachChat proxies one exchange to the coach backend. When no
// backend is configured the route answers 503 rather than failing at
// startup: the rest of the app works without an API key.
func (s *Server) handleCoachChat(w http.ResponseWriter, r *http.Request) {
	if s.coach == nil {
		writeError(w, http.StatusServiceUnavailable, "coach is not configured")
		return
	}

	var req coachChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Mode == "" {
		req.Mode = coach.ModeProfessional
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	start := time.Now()
	reply, err := s.coach.Chat(r.Context(), req.Mode, req.Topic, req.Messages)
	metrics.CoachLatency.Observe(time.Since(start).Seconds())
	metrics.CoachRequests.WithLabelValues(req.Mode).Inc()

	switch {
	case errors.Is(err, domain.ErrUnknownCoachMode):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCoachUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]string{
			"role":    "assistant",
			"content": reply,
		})
	}
}

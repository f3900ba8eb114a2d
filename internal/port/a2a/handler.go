package a2a

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler serves the A2A discovery endpoint.
type Handler struct {
	baseURL string
}

// NewHandler creates an A2A handler.
func NewHandler(baseURL string) *Handler {
	return &Handler{baseURL: baseURL}
}

// MountRoutes registers the A2A routes on the given chi router.
// These are mounted at the root level, not under /api.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/.well-known/agent.json", h.handleAgentCard)
}

func (h *Handler) handleAgentCard(w http.ResponseWriter, _ *http.Request) {
	card := BuildAgentCard(h.baseURL)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(card)
}

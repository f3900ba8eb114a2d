package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skydeck/skydeck/internal/domain"
	"github.com/skydeck/skydeck/internal/domain/chat"
	"github.com/skydeck/skydeck/internal/port/database"
)

// Exchanger runs a chat exchange through the orchestration loop.
type Exchanger interface {
	Exchange(ctx context.Context, req chat.Request) *chat.Response
}

// ToolExecutor runs a named tool with decoded arguments.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args map[string]any) (any, error)
}

// Pinger reports database connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers bundles the HTTP handler dependencies.
type Handlers struct {
	Chat      Exchanger
	Exec      ToolExecutor
	Store     database.Store
	DB        Pinger
	BodyLimit int64
}

// HandleChat runs one chat exchange. A failed exchange returns 500 with the
// error and the activity log recorded up to the failure.
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[chat.Request](w, r, h.BodyLimit)
	if !ok {
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	resp := h.Chat.Exchange(r.Context(), req)
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

// toolResponse is the envelope for direct tool invocations.
type toolResponse struct {
	Success bool           `json:"success"`
	Tool    string         `json:"tool"`
	Args    map[string]any `json:"args"`
	Result  any            `json:"result"`
}

// HandleTool invokes a single tool directly, bypassing the model.
func (h *Handlers) HandleTool(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "tool")

	var args map[string]any
	r.Body = http.MaxBytesReader(w, r.Body, h.BodyLimit)
	if err := readBodyJSON(r, &args); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if args == nil {
		args = map[string]any{}
	}

	result, err := h.Exec.Execute(r.Context(), name, args)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toolResponse{
		Success: true,
		Tool:    name,
		Args:    args,
		Result:  result,
	})
}

// readBodyJSON decodes the body into v, treating an empty body as no arguments.
func readBodyJSON(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// ListFlights returns all flights, optionally filtered by route.
func (h *Handlers) ListFlights(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(r.URL.Query().Get("from"))
	to := strings.ToUpper(r.URL.Query().Get("to"))

	flights, err := h.Store.ListFlights(r.Context(), from, to)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flights)
}

// GetFlight returns one flight by code.
func (h *Handlers) GetFlight(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(urlParam(r, "code"))

	f, err := h.Store.GetFlightByCode(r.Context(), code)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Flight not found")
		return
	}
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// ListAirports returns all known airports.
func (h *Handlers) ListAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := h.Store.ListAirports(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, airports)
}

// ListWeather returns the weather at all known airports.
func (h *Handlers) ListWeather(w http.ResponseWriter, r *http.Request) {
	weather, err := h.Store.ListWeather(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weather)
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth reports service and database health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:    "ok",
		Database:  "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK
	if err := h.DB.Ping(ctx); err != nil {
		resp.Status = "error"
		resp.Database = "disconnected"
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

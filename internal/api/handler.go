package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/san-kum/odesim/internal/config"
	"github.com/san-kum/odesim/internal/export"
	"github.com/san-kum/odesim/internal/sim"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	sim *sim.Simulator
	log *slog.Logger
}

func NewHandler(s *sim.Simulator, log *slog.Logger) *Handler {
	return &Handler{sim: s, log: log}
}

// Routes builds the router with request ids and panic recovery.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", h.Solve)
		r.Get("/presets", h.ListPresets)
		r.Get("/presets/{name}", h.GetPreset)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	req := config.DefaultConfig().ToRequest()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.respondError(w, r, &sim.ValidationError{Field: "body", Reason: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	res, err := h.sim.Solve(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	doc, err := export.NewDocument(res)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]string)
	for _, g := range config.ListGroups() {
		out[g] = config.ListPresets(g)
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cfg, _ := config.FindPreset(name)
	if cfg == nil {
		h.respondError(w, r, fmt.Errorf("%w: %s", ErrPresetNotFound, name))
		return
	}
	respondJSON(w, http.StatusOK, cfg.ToRequest())
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	attrs := []any{
		"status", status,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", attrs...)
	} else {
		h.log.Debug("request rejected", attrs...)
	}
	respondJSON(w, status, errorBody(err))
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

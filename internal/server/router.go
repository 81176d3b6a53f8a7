package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/orgball2608/social-post-fetcher/internal/dispatcher"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

// maxBodyBytes bounds the URL list accepted by the fetch endpoints.
const maxBodyBytes = 1 << 20

const welcomeMessage = "Welcome to social post fetcher"

func NewRouter(d dispatcher.Client, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	h := &handler{dispatcher: d, logger: log}
	r.Get("/", h.root)
	r.Get("/healthz", h.healthz)
	r.Post("/fetch", h.fetch)
	r.Post("/api/fetch", h.fetch)

	return r
}

type handler struct {
	dispatcher dispatcher.Client
	logger     logger.Logger
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

// fetch answers 200 with one result per recognized URL, even when every fetch failed.
func (h *handler) fetch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("Failed to read request body", "error", err)
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return
	}

	results := h.dispatcher.Dispatch(r.Context(), string(body))
	h.writeJSON(w, http.StatusOK, results)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

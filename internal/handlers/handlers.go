package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/cache"
	"github.com/sirupsen/logrus"
)

// SnapshotSource serves the serialized sports snapshot
type SnapshotSource interface {
	Snapshot(ctx context.Context) ([]byte, cache.Status, error)
}

// Pinger reports backend health
type Pinger interface {
	Ping(ctx context.Context) error
	Name() string
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	source SnapshotSource
	store  Pinger
	logger logrus.FieldLogger
}

// NewHandler creates a new handler with dependencies
func NewHandler(source SnapshotSource, store Pinger, logger logrus.FieldLogger) *Handler {
	return &Handler{
		source: source,
		store:  store,
		logger: logger.WithField("component", "http"),
	}
}

// GetSnapshot returns the aggregated schedule document.
// X-Cache reports whether it was served from the cache (HIT) or rebuilt (MISS).
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	payload, status, err := h.source.Snapshot(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Cache", string(status))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(payload); err != nil {
		h.logger.Debugf("Client went away while writing snapshot: %v", err)
	}
}

// HealthCheck returns the health status of the service and its cache backend
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.respondError(w, http.StatusServiceUnavailable, h.store.Name()+" cache unhealthy", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "sports-aggregator",
		"cache":     h.store.Name(),
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorf("Error encoding response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		h.logger.WithField("status", status).Errorf("%s: %v", message, err)
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	h.respondJSON(w, status, map[string]string{"error": message})
}

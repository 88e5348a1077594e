package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"

	"github.com/gorilla/mux"
)

// Resolver defines the single operation this service exposes per league
type Resolver interface {
	ResolvePendingGames(ctx context.Context, league models.League) (*models.ResolutionSummary, error)
}

// ResolutionHandler exposes the on-demand resolution trigger and health check
type ResolutionHandler struct {
	resolver Resolver
	logger   *logging.Logger
}

// NewResolutionHandler creates a new resolution handler
func NewResolutionHandler(resolver Resolver) *ResolutionHandler {
	return &ResolutionHandler{
		resolver: resolver,
		logger:   logging.WithPrefix("resolution_handler"),
	}
}

// TriggerResolve runs a resolution batch for the league in the request path
// and returns the run summary. Feed and configuration failures surface as a
// 502; per-game failures are already folded into the summary counts.
func (h *ResolutionHandler) TriggerResolve(w http.ResponseWriter, r *http.Request) {
	league, err := models.ParseLeague(mux.Vars(r)["league"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	h.logger.Infof("Manual resolution run triggered for %s", league)

	summary, err := h.resolver.ResolvePendingGames(r.Context(), league)
	if err != nil {
		h.logger.Errorf("Resolution run failed for %s: %v", league, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Health reports service liveness
func (h *ResolutionHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

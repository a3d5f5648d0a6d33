/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Populates the engine with realistic data for demos and development.
  Each scenario replaces the request collection and (re)seeds the demo
  accounts.

AVAILABLE SCENARIOS:
  starter-team: Three demo accounts plus Mariam's two requests
  clean:        Demo accounts only, empty request collection

NOTE:
  Scenarios replace the request collection. Only use in development and
  demo environments.

SEE ALSO:
  - leave/seed.go: Demo request data
  - identity/seed.go: Demo accounts
*/
package api

import (
	"net/http"

	"github.com/edhr/leave-engine/leave"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "starter-team",
		Name:        "Starter Team",
		Description: "Three demo accounts with one approved and one pending request",
	},
	{
		ID:          "clean",
		Name:        "Clean Slate",
		Description: "Demo accounts only, no requests",
	},
}

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario replaces the engine state with a scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	var requests []leave.Request
	switch req.ScenarioID {
	case "starter-team":
		requests = leave.SeedRequests()
	case "clean":
		requests = nil
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err := h.Directory.Seed(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed accounts", err)
		return
	}
	if err := h.Store.Replace(r.Context(), requests); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.Logger.Info().Str("scenario", req.ScenarioID).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario": req.ScenarioID,
		"requests": len(requests),
	})
}

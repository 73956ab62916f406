package handlers

import (
	"net/http"

	"p9e.in/tankinspect/models"
	"p9e.in/tankinspect/pkg/logging"
)

type goalInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Metadata is the static reference data the entry forms are built from.
type Metadata struct {
	Methods     []string                   `json:"methods"`
	Goals       []goalInfo                 `json:"goals"`
	TankChoices map[string][]models.Choice `json:"tank_choices"`
}

func buildMetadata() Metadata {
	goals := make([]goalInfo, 0, len(models.GoalKeyChoices))
	for _, c := range models.GoalKeyChoices {
		goals = append(goals, goalInfo{Key: c.Value, Label: c.Label})
	}
	return Metadata{
		Methods: models.InspectionMethods,
		Goals:   goals,
		TankChoices: map[string][]models.Choice{
			"facility_type":    models.FacilityTypeChoices,
			"foundation":       models.FoundationChoices,
			"access_structure": models.AccessStructureChoices,
			"comment_types":    models.CommentTypeChoices,
			"visual_areas":     models.VisualAreaChoices,
			"ut_categories":    models.UTCategoryChoices,
		},
	}
}

// Metadata godoc
// @Summary Choice lists and the inspection method checklist
// @Tags Metadata
// @Produce json
// @Success 200 {object} Metadata
// @Router /api/metadata [get]
func (h *Handler) Metadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildMetadata())
}

// Health godoc
// @Summary Liveness and database check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Database ping failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "ok"})
}

package handlers

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"p9e.in/tankinspect/models"
	"p9e.in/tankinspect/pkg/validation"
)

// UpsertGoalResult godoc
// @Summary Create or replace the goal result for a tank
// @Description The tank and goal come from the path; any tank or goal_key in the body is ignored.
// @Tags Goals
// @Accept json
// @Produce json
// @Param id path string true "Tank UUID"
// @Param goal_key path string true "Goal key (goal_1 .. goal_8)"
// @Success 200 {object} models.GoalResult
// @Success 201 {object} models.GoalResult
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/tanks/{id}/goal-results/{goal_key} [put]
func (h *Handler) UpsertGoalResult(w http.ResponseWriter, r *http.Request) {
	id, ok := tankID(r)
	if !ok {
		notFound(w, r)
		return
	}
	goal := models.GoalKey(mux.Vars(r)["goal_key"])
	if !goal.Valid() {
		notFound(w, r)
		return
	}
	if _, err := h.svc.GetTank(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	obj, err := validation.DecodeObject(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	obj["tank"], _ = json.Marshal(id)
	obj["goal_key"], _ = json.Marshal(goal)
	payload, err := json.Marshal(obj)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := validation.ParseGoalResult(payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.svc.UpsertGoalResult(r.Context(), result)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

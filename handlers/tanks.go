package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/tankinspect/pkg/validation"
)

func tankID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

// ListTanks godoc
// @Summary List tanks
// @Tags Tanks
// @Produce json
// @Success 200 {array} models.Tank
// @Router /api/tanks [get]
func (h *Handler) ListTanks(w http.ResponseWriter, r *http.Request) {
	tanks, err := h.svc.ListTanks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tanks)
}

// CreateTank godoc
// @Summary Create a tank
// @Tags Tanks
// @Accept json
// @Produce json
// @Param tank body models.Tank true "Tank attributes"
// @Success 201 {object} models.Tank
// @Failure 400 {object} ErrorBody
// @Router /api/tanks [post]
func (h *Handler) CreateTank(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tank, err := validation.ParseTank(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.CreateTank(r.Context(), tank); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tank)
}

// GetTank godoc
// @Summary Tank with all of its findings
// @Description Returns the tank attributes plus every dependent collection. Same document as /summary.
// @Tags Tanks
// @Produce json
// @Param id path string true "Tank UUID"
// @Success 200 {object} inspection.TankSummary
// @Failure 404 {object} ErrorBody
// @Router /api/tanks/{id} [get]
func (h *Handler) GetTank(w http.ResponseWriter, r *http.Request) {
	h.TankSummary(w, r)
}

// TankSummary godoc
// @Summary Tank summary
// @Tags Tanks
// @Produce json
// @Param id path string true "Tank UUID"
// @Success 200 {object} inspection.TankSummary
// @Failure 404 {object} ErrorBody
// @Router /api/tanks/{id}/summary [get]
func (h *Handler) TankSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := tankID(r)
	if !ok {
		notFound(w, r)
		return
	}
	summary, err := h.svc.Summary(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// UpdateTank godoc
// @Summary Replace a tank's attributes
// @Tags Tanks
// @Accept json
// @Produce json
// @Param id path string true "Tank UUID"
// @Param tank body models.Tank true "Tank attributes"
// @Success 200 {object} models.Tank
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/tanks/{id} [put]
func (h *Handler) UpdateTank(w http.ResponseWriter, r *http.Request) {
	id, ok := tankID(r)
	if !ok {
		notFound(w, r)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.replaceTank(w, r, id, body)
}

// PatchTank godoc
// @Summary Update some of a tank's attributes
// @Tags Tanks
// @Accept json
// @Produce json
// @Param id path string true "Tank UUID"
// @Success 200 {object} models.Tank
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /api/tanks/{id} [patch]
func (h *Handler) PatchTank(w http.ResponseWriter, r *http.Request) {
	id, ok := tankID(r)
	if !ok {
		notFound(w, r)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	current, err := h.svc.GetTank(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	merged, err := mergePatch(current, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.replaceTank(w, r, id, merged)
}

func (h *Handler) replaceTank(w http.ResponseWriter, r *http.Request, id uuid.UUID, body []byte) {
	tank, err := validation.ParseTank(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.ReplaceTank(r.Context(), id, tank); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tank)
}

// DeleteTank godoc
// @Summary Delete a tank and all of its findings
// @Tags Tanks
// @Param id path string true "Tank UUID"
// @Success 204
// @Failure 404 {object} ErrorBody
// @Router /api/tanks/{id} [delete]
func (h *Handler) DeleteTank(w http.ResponseWriter, r *http.Request) {
	id, ok := tankID(r)
	if !ok {
		notFound(w, r)
		return
	}
	if err := h.svc.DeleteTank(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

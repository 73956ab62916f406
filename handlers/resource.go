package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/tankinspect/models"
	"p9e.in/tankinspect/pkg/inspection"
	"p9e.in/tankinspect/pkg/validation"
)

// QueryFilter maps a list query parameter onto a column. An empty parameter
// is ignored; Check returns the column value, or a message when the
// parameter is unusable.
type QueryFilter struct {
	Param  string
	Column string
	Check  func(string) (any, string)
}

func byTank() QueryFilter {
	return QueryFilter{Param: "tank_id", Column: "tank_id", Check: func(s string) (any, string) {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Sprintf("%q is not a valid UUID.", s)
		}
		return id, ""
	}}
}

func byChoice[C interface {
	~string
	Valid() bool
}](param string) QueryFilter {
	return QueryFilter{Param: param, Column: param, Check: func(s string) (any, string) {
		if c := C(s); c.Valid() {
			return c, ""
		}
		return nil, fmt.Sprintf("%q is not a valid choice.", s)
	}}
}

// Resource serves the CRUD endpoints of one finding or reference
// collection. Request bodies go through parse, which applies the entity's
// validation and normalization rules.
type Resource[T any, P inspection.Record[T]] struct {
	store   *inspection.Collection[T, P]
	parse   func([]byte) (P, error)
	filters []QueryFilter
}

func NewResource[T any, P inspection.Record[T]](store *inspection.Collection[T, P], parse func([]byte) (P, error), filters ...QueryFilter) *Resource[T, P] {
	return &Resource[T, P]{store: store, parse: parse, filters: filters}
}

func (res *Resource[T, P]) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filters []inspection.Filter
	fe := validation.FieldErrors{}
	for _, f := range res.filters {
		raw := q.Get(f.Param)
		if raw == "" {
			continue
		}
		v, msg := f.Check(raw)
		if msg != "" {
			fe.Add(f.Param, msg)
			continue
		}
		filters = append(filters, inspection.Filter{Column: f.Column, Value: v})
	}
	if err := fe.AsError(); err != nil {
		writeError(w, r, err)
		return
	}

	items, err := res.store.List(r.Context(), filters...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (res *Resource[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := res.parse(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := res.store.Create(r.Context(), rec); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (res *Resource[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		notFound(w, r)
		return
	}
	rec, err := res.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Update replaces the record with a complete, re-validated payload.
func (res *Resource[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		notFound(w, r)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res.replace(w, r, id, body)
}

// Patch merges the supplied keys over the stored record and validates the
// result as a full payload.
func (res *Resource[T, P]) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		notFound(w, r)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	current, err := res.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	merged, err := mergePatch(current, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res.replace(w, r, id, merged)
}

func (res *Resource[T, P]) replace(w http.ResponseWriter, r *http.Request, id uint, body []byte) {
	rec, err := res.parse(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := res.store.Replace(r.Context(), id, rec); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (res *Resource[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		notFound(w, r)
		return
	}
	if err := res.store.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func recordID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Resources groups the per-collection endpoints.
type Resources struct {
	Surveys        *Resource[models.ShellSettlementSurvey, *models.ShellSettlementSurvey]
	UTResults      *Resource[models.UTResult, *models.UTResult]
	EdgeChecks     *Resource[models.EdgeSettlementCheck, *models.EdgeSettlementCheck]
	PlumbChecks    *Resource[models.ColumnPlumbnessCheck, *models.ColumnPlumbnessCheck]
	VisualFindings *Resource[models.VisualFinding, *models.VisualFinding]
	OtherNDE       *Resource[models.OtherNDE, *models.OtherNDE]
	GoalResults    *Resource[models.GoalResult, *models.GoalResult]
	Templates      *Resource[models.GoalQuestionTemplate, *models.GoalQuestionTemplate]
}

func (h *Handler) Resources() Resources {
	s := h.svc
	return Resources{
		Surveys:        NewResource(s.Surveys, validation.ParseShellSettlementSurvey, byTank()),
		UTResults:      NewResource(s.UTResults, validation.ParseUTResult, byTank(), byChoice[models.UTCategory]("category")),
		EdgeChecks:     NewResource(s.EdgeChecks, validation.ParseEdgeSettlementCheck, byTank()),
		PlumbChecks:    NewResource(s.PlumbChecks, validation.ParseColumnPlumbnessCheck, byTank()),
		VisualFindings: NewResource(s.VisualFindings, validation.ParseVisualFinding, byTank()),
		OtherNDE:       NewResource(s.OtherNDE, validation.ParseOtherNDE, byTank()),
		GoalResults:    NewResource(s.GoalResults, validation.ParseGoalResult, byTank(), byChoice[models.GoalKey]("goal_key")),
		Templates:      NewResource(s.Templates, validation.ParseGoalQuestionTemplate, byChoice[models.GoalKey]("goal_key")),
	}
}

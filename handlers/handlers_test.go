package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/tankinspect/config"
	"p9e.in/tankinspect/pkg/inspection"
	"p9e.in/tankinspect/pkg/logging"
	"p9e.in/tankinspect/pkg/validation"
)

const tankBody = `{
	"tank_name": "T-101", "owner": "Acme", "facility_type": "terminal",
	"city": "Houston", "state": "TX", "design_standard": "API 650",
	"product_stored": "Crude", "foundation": "ringwall", "anchors": "None",
	"shell_weld_type": "Butt", "insulation": "None", "shell_manway": "24in",
	"access_structure": "stair", "bottom_type": "Cone up",
	"secondary_containment_type": "Dike", "diameter_ft": "120.50",
	"construction_annotations": {"standard": {"shell": {"color": "red", "ve": 1}}}
}`

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	db, err := config.Connect(config.DatabaseConfig{URL: "sqlite://:memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, config.Migrations(db))

	h := New(inspection.NewService(db))
	res := h.Resources()
	r := mux.NewRouter()
	r.HandleFunc("/api/tanks", h.ListTanks).Methods("GET")
	r.HandleFunc("/api/tanks", h.CreateTank).Methods("POST")
	r.HandleFunc("/api/tanks/{id}", h.GetTank).Methods("GET")
	r.HandleFunc("/api/tanks/{id}", h.UpdateTank).Methods("PUT")
	r.HandleFunc("/api/tanks/{id}", h.PatchTank).Methods("PATCH")
	r.HandleFunc("/api/tanks/{id}", h.DeleteTank).Methods("DELETE")
	r.HandleFunc("/api/tanks/{id}/goal-results/{goal_key}", h.UpsertGoalResult).Methods("PUT")
	r.HandleFunc("/api/ut-results", res.UTResults.List).Methods("GET")
	r.HandleFunc("/api/ut-results", res.UTResults.Create).Methods("POST")
	r.HandleFunc("/api/ut-results/{id}", res.UTResults.Get).Methods("GET")
	r.HandleFunc("/api/ut-results/{id}", res.UTResults.Patch).Methods("PATCH")
	r.HandleFunc("/api/ut-results/{id}", res.UTResults.Delete).Methods("DELETE")
	r.HandleFunc("/api/goal-results", res.GoalResults.Create).Methods("POST")
	r.HandleFunc("/api/metadata", h.Metadata).Methods("GET")
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func createTank(t *testing.T, r http.Handler) string {
	t.Helper()
	rec, out := do(t, r, http.MethodPost, "/api/tanks", tankBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return out["tank_unique_id"].(string)
}

func errorOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error envelope in %v", body)
	return e
}

func TestCreateTankNormalizesAnnotations(t *testing.T) {
	r := newTestRouter(t)

	rec, out := do(t, r, http.MethodPost, "/api/tanks", tankBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "120.5", out["diameter_ft"])

	ann := out["construction_annotations"].(map[string]any)
	shell := ann["standard"].(map[string]any)["shell"].(map[string]any)
	assert.Equal(t, "red", shell["color"])
	assert.Equal(t, true, shell["ve"])
	assert.Equal(t, false, shell["ut"])
	assert.Equal(t, "", shell["comment"])
	assert.Equal(t, []any{}, ann["additional"])
}

func TestCreateTankValidationEnvelope(t *testing.T) {
	r := newTestRouter(t)

	rec, out := do(t, r, http.MethodPost, "/api/tanks", `{"tank_name": "x", "construction_annotations": {"additional": [{"color": "pink"}]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e := errorOf(t, out)
	assert.Equal(t, "VALIDATION_FAILED", e["code"])
	fields := e["fields"].(map[string]any)
	assert.Equal(t, "This field is required.", fields["owner"])
	assert.Equal(t, map[string]any{"0": "Color must be red, blue, yellow, green, or null."}, fields["construction_annotations"])
}

func TestCreateTankEmptyStringAnnotations(t *testing.T) {
	r := newTestRouter(t)

	body := strings.Replace(tankBody, `{"standard": {"shell": {"color": "red", "ve": 1}}}`, `""`, 1)
	rec, out := do(t, r, http.MethodPost, "/api/tanks", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]any{"standard": map[string]any{}, "additional": []any{}}, out["construction_annotations"])
}

func TestMalformedBody(t *testing.T) {
	r := newTestRouter(t)

	for _, body := range []string{`{"tank_name": `, `[]`, ``} {
		rec, out := do(t, r, http.MethodPost, "/api/tanks", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		fields := errorOf(t, out)["fields"].(map[string]any)
		assert.Contains(t, fields, "body", body)
	}
}

func TestGetTankReturnsSummary(t *testing.T) {
	r := newTestRouter(t)
	id := createTank(t, r)

	rec, out := do(t, r, http.MethodGet, "/api/tanks/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, out["tank_unique_id"])
	for _, key := range []string{"shell_settlement_surveys", "ut_results", "edge_settlement_checks",
		"column_plumbness_checks", "visual_findings", "other_nde", "goal_results"} {
		assert.Equal(t, []any{}, out[key], key)
	}

	rec, out = do(t, r, http.MethodGet, "/api/tanks/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorOf(t, out)["code"])

	rec, _ = do(t, r, http.MethodGet, "/api/tanks/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchTankKeepsUntouchedFields(t *testing.T) {
	r := newTestRouter(t)
	id := createTank(t, r)

	rec, out := do(t, r, http.MethodPatch, "/api/tanks/"+id, `{"city": "  Tulsa ", "state": "OK"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Tulsa", out["city"])
	assert.Equal(t, "T-101", out["tank_name"])
	assert.Equal(t, "120.5", out["diameter_ft"])
	assert.Equal(t, id, out["tank_unique_id"])

	rec, out = do(t, r, http.MethodPatch, "/api/tanks/"+id, `{"facility_type": "warehouse"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, out)["fields"], "facility_type")
}

func TestUTResultFlow(t *testing.T) {
	r := newTestRouter(t)
	id := createTank(t, r)

	rec, out := do(t, r, http.MethodPost, "/api/ut-results", `{"tank": "`+id+`", "category": "shell", "location": "N1", "thickness_in": 0.3125}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, out)["fields"], "course")

	rec, out = do(t, r, http.MethodPost, "/api/ut-results", `{"tank": "`+id+`", "category": "shell", "location": "N1", "thickness_in": 0.3125, "course": 3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	utID := out["id"].(float64)
	assert.Equal(t, "0.3125", out["thickness_in"])

	rec, out = do(t, r, http.MethodPatch, "/api/ut-results/"+jsonNumber(utID), `{"course": null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, out)["fields"], "course")

	rec, out = do(t, r, http.MethodPatch, "/api/ut-results/"+jsonNumber(utID), `{"category": "roof", "course": null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, out["course"])

	rec, _ = do(t, r, http.MethodGet, "/api/ut-results?tank_id="+id+"&category=roof", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	rec, out = do(t, r, http.MethodGet, "/api/ut-results?tank_id=nope&category=walls", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := errorOf(t, out)["fields"].(map[string]any)
	assert.Contains(t, fields, "tank_id")
	assert.Equal(t, `"walls" is not a valid choice.`, fields["category"])

	rec, out = do(t, r, http.MethodPost, "/api/ut-results", `{"tank": "`+uuid.NewString()+`", "category": "bottom", "location": "C", "thickness_in": 0.25}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorOf(t, out)["fields"].(map[string]any)["tank"], "object does not exist")

	rec, _ = do(t, r, http.MethodDelete, "/api/ut-results/"+jsonNumber(utID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, r, http.MethodGet, "/api/ut-results/"+jsonNumber(utID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGoalResultConflictAndUpsert(t *testing.T) {
	r := newTestRouter(t)
	id := createTank(t, r)

	body := `{"tank": "` + id + `", "goal_key": "goal_2", "standard_responses": {"shell_ut_nominal": false}}`
	rec, out := do(t, r, http.MethodPost, "/api/goal-results", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Identify future leak risks", out["goal_key_display"])
	assert.Equal(t, map[string]any{
		"shell_ut_nominal":      false,
		"shell_ut_notes":        "",
		"damaged_appurtenances": false,
		"appurtenance_notes":    "",
	}, out["standard_responses"])

	rec, out = do(t, r, http.MethodPost, "/api/goal-results", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorOf(t, out)["code"])

	rec, out = do(t, r, http.MethodPut, "/api/tanks/"+id+"/goal-results/goal_2", `{"methods": ["Document with digital camera"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []any{"Document with digital camera"}, out["methods"])
	assert.Equal(t, true, out["standard_responses"].(map[string]any)["shell_ut_nominal"])

	rec, _ = do(t, r, http.MethodPut, "/api/tanks/"+id+"/goal-results/goal_5", `{}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, r, http.MethodPut, "/api/tanks/"+id+"/goal-results/goal_9", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, r, http.MethodPut, "/api/tanks/"+uuid.NewString()+"/goal-results/goal_1", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTank(t *testing.T) {
	r := newTestRouter(t)
	id := createTank(t, r)

	rec, _ := do(t, r, http.MethodPost, "/api/ut-results", `{"tank": "`+id+`", "category": "bottom", "location": "C", "thickness_in": 0.25}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, r, http.MethodDelete, "/api/tanks/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/api/ut-results?tank_id="+id, "")
	assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))

	rec, _ = do(t, r, http.MethodDelete, "/api/tanks/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetadata(t *testing.T) {
	r := newTestRouter(t)

	rec, out := do(t, r, http.MethodGet, "/api/metadata", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out["methods"], 16)
	goals := out["goals"].([]any)
	require.Len(t, goals, 8)
	assert.Equal(t, map[string]any{"key": "goal_1", "label": "Identify leak paths"}, goals[0])

	choices := out["tank_choices"].(map[string]any)
	assert.Contains(t, choices["foundation"], []any{"piles", "Pile supported"})
	for _, key := range []string{"facility_type", "foundation", "access_structure", "comment_types", "visual_areas", "ut_categories"} {
		assert.Contains(t, choices, key)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	rec, out := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
}

func TestHealthDatabaseUnavailable(t *testing.T) {
	db, err := config.Connect(config.DatabaseConfig{URL: "sqlite://:memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	h := New(inspection.NewService(db))
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status": "unavailable", "database": "unavailable"}`, rec.Body.String())
}

func TestWriteErrorStorageHidesDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tanks", nil)
	req = req.WithContext(logging.ContextWithRequestID(context.Background(), "req-7"))
	rec := httptest.NewRecorder()

	writeError(rec, req, &inspection.StorageError{Op: "tank list", Err: errors.New("password authentication failed")})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	var out ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "DATABASE_ERROR", out.Error.Code)
	assert.Equal(t, "req-7", out.Error.RequestID)
}

func TestMergePatch(t *testing.T) {
	merged, err := mergePatch(map[string]any{"a": 1, "b": "x"}, []byte(`{"b": null, "c": true}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1, "b": null, "c": true}`, string(merged))

	_, err = mergePatch(map[string]any{}, []byte(`[1]`))
	_, ok := validation.FieldsOf(err)
	assert.True(t, ok)
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(uint(f))
	return string(b)
}

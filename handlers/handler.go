// Package handlers exposes the inspection service over HTTP.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"p9e.in/tankinspect/pkg/inspection"
	"p9e.in/tankinspect/pkg/logging"
	"p9e.in/tankinspect/pkg/validation"
)

// maxBodyBytes caps request bodies. Tank documents with annotations are the
// largest payloads and stay well below it.
const maxBodyBytes = 1 << 20

// Handler holds the dependencies shared by every endpoint.
type Handler struct {
	svc *inspection.Service
}

func New(svc *inspection.Service) *Handler {
	return &Handler{svc: svc}
}

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Fields    validation.FieldErrors `json:"fields,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps err onto a status code and the error envelope. Storage
// failures are logged; their details stay out of the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	detail := ErrorDetail{RequestID: logging.RequestIDFromContext(r.Context())}
	status := http.StatusInternalServerError

	var conflict *inspection.ConflictError
	if fields, ok := validation.FieldsOf(err); ok {
		status = http.StatusBadRequest
		detail.Code = "VALIDATION_FAILED"
		detail.Message = "Request validation failed."
		detail.Fields = fields
	} else if errors.Is(err, inspection.ErrNotFound) {
		status = http.StatusNotFound
		detail.Code = "NOT_FOUND"
		detail.Message = "Not found."
	} else if errors.As(err, &conflict) {
		status = http.StatusConflict
		detail.Code = "CONFLICT"
		detail.Message = conflict.Message
	} else {
		detail.Code = "DATABASE_ERROR"
		detail.Message = "The request could not be completed."
		logging.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}

	writeJSON(w, status, ErrorBody{Error: detail})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, inspection.ErrNotFound)
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) { notFound(w, r) }

// MethodNotAllowed answers a known path requested with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: ErrorDetail{
		Code:      "METHOD_NOT_ALLOWED",
		Message:   fmt.Sprintf("Method %q not allowed.", r.Method),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}})
}

// readBody returns the raw request body, bounded by maxBodyBytes.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, validation.Single("body", "Unable to read request body.")
	}
	if len(body) > maxBodyBytes {
		return nil, validation.Single("body", "Request body is too large.")
	}
	return body, nil
}

// mergePatch overlays the keys of patch onto the JSON form of current and
// returns the merged document for full re-validation.
func mergePatch(current any, patch []byte) ([]byte, error) {
	changes, err := validation.DecodeObject(patch)
	if err != nil {
		return nil, err
	}
	stored, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(stored, &merged); err != nil {
		return nil, err
	}
	for k, v := range changes {
		merged[k] = v
	}
	return json.Marshal(merged)
}

package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field name, map key or list index to either a message
// string or a nested FieldErrors for the elements of that field.
type FieldErrors map[string]any

// Add records msg for field unless the field already has an error.
func (fe FieldErrors) Add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// Nest attaches inner under field when inner holds anything.
func (fe FieldErrors) Nest(field string, inner FieldErrors) {
	if len(inner) > 0 {
		fe[field] = inner
	}
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Flatten returns dotted paths to every message, sorted.
func (fe FieldErrors) Flatten() []string {
	var out []string
	fe.flatten("", &out)
	sort.Strings(out)
	return out
}

func (fe FieldErrors) flatten(prefix string, out *[]string) {
	for k, v := range fe {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch m := v.(type) {
		case FieldErrors:
			m.flatten(path, out)
		default:
			*out = append(*out, fmt.Sprintf("%s: %v", path, m))
		}
	}
}

// Error is returned when a write payload does not satisfy its entity rules.
// No part of the payload is accepted when Error is returned.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	if e == nil || e.Fields.Empty() {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Fields.Flatten(), "; ")
}

// AsError returns nil for an empty set so callers can return it directly.
func (fe FieldErrors) AsError() error {
	if fe.Empty() {
		return nil
	}
	return &Error{Fields: fe}
}

// FieldsOf extracts the field map from err when it is a validation error.
func FieldsOf(err error) (FieldErrors, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}

// Single builds a one-field validation error.
func Single(field, msg string) error {
	return &Error{Fields: FieldErrors{field: msg}}
}

package validation

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"p9e.in/tankinspect/models"
)

const colorMessage = "Color must be red, blue, yellow, green, or null."

// NormalizeConstructionAnnotations turns the raw annotation document into its
// canonical form. Absent, null or empty-string input yields the empty
// document. Every offending standard key or additional index is reported by
// name. Normalizing an already normalized document is a no-op.
func NormalizeConstructionAnnotations(raw json.RawMessage) (models.ConstructionAnnotations, FieldErrors) {
	out := models.EmptyConstructionAnnotations()
	fe := FieldErrors{}
	if isNull(raw) || bytes.Equal(bytes.TrimSpace(raw), []byte(`""`)) {
		return out, fe
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		fe.Add("non_field_errors", "Construction annotations must be an object.")
		return out, fe
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		fe.Add("non_field_errors", "Construction annotations must be an object.")
		return out, fe
	}

	switch standard := obj["standard"].(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(standard))
		for k := range standard {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			entry, ok := standard[key].(map[string]any)
			if !ok {
				fe.Add(key, "Annotation must be an object.")
				continue
			}
			a, msg := normalizeAnnotation(entry)
			if msg != "" {
				fe.Add(key, msg)
				continue
			}
			out.Standard[key] = a
		}
	default:
		fe.Add("standard", "Must be an object keyed by field id.")
	}

	switch additional := obj["additional"].(type) {
	case nil:
	case []any:
		for i, item := range additional {
			idx := strconv.Itoa(i)
			entry, ok := item.(map[string]any)
			if !ok {
				fe.Add(idx, "Each additional item must be an object.")
				continue
			}
			a, msg := normalizeAnnotation(entry)
			if msg != "" {
				fe.Add(idx, msg)
				continue
			}
			label, lok := optionalString(entry["label"])
			value, vok := optionalString(entry["value"])
			if !lok || !vok {
				fe.Add(idx, "Label and value must be strings.")
				continue
			}
			out.Additional = append(out.Additional, models.AdditionalAnnotation{
				Label:   label,
				Value:   value,
				Color:   a.Color,
				VE:      a.VE,
				UT:      a.UT,
				Comment: a.Comment,
			})
		}
	default:
		fe.Add("additional", "Must be a list of custom entries.")
	}

	if !fe.Empty() {
		return models.EmptyConstructionAnnotations(), fe
	}
	return out, fe
}

// normalizeAnnotation applies the shared colour, flag and comment rules. A
// non-empty message means the entry is rejected.
func normalizeAnnotation(entry map[string]any) (models.Annotation, string) {
	var a models.Annotation

	switch c := entry["color"].(type) {
	case nil:
	case string:
		color := models.AnnotationColor(c)
		if !color.Valid() {
			return a, colorMessage
		}
		a.Color = &color
	default:
		return a, colorMessage
	}

	a.VE = truthy(entry["ve"])
	a.UT = truthy(entry["ut"])

	comment, ok := optionalString(entry["comment"])
	if !ok {
		return a, "Comment must be a string."
	}
	a.Comment = comment
	return a, ""
}

// truthy follows JSON truthiness: false, null, 0, "" and empty containers
// are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

func optionalString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	default:
		return "", false
	}
}

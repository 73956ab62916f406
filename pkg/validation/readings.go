package validation

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"

	"p9e.in/tankinspect/models"
)

// NormalizeReadings validates a settlement survey's station list. Any bad
// element rejects the whole list; messages are keyed by element index.
func NormalizeReadings(raw json.RawMessage) ([]models.SettlementReading, FieldErrors) {
	fe := FieldErrors{}
	if isNull(raw) {
		fe.Add("non_field_errors", "This field is required.")
		return nil, fe
	}

	trimmed := bytes.TrimSpace(raw)
	var items []json.RawMessage
	if trimmed[0] != '[' || json.Unmarshal(trimmed, &items) != nil {
		fe.Add("non_field_errors", "Readings must be a list of station measurements.")
		return nil, fe
	}

	readings := make([]models.SettlementReading, 0, len(items))
	for i, item := range items {
		idx := strconv.Itoa(i)

		var obj map[string]json.RawMessage
		if t := bytes.TrimSpace(item); len(t) == 0 || t[0] != '{' || json.Unmarshal(t, &obj) != nil {
			fe.Add(idx, "Each reading must be an object.")
			continue
		}

		labelRaw, hasLabel := obj["station_label"]
		measureRaw, hasMeasure := obj["measurement_in"]
		if !hasLabel || !hasMeasure || isNull(labelRaw) || isNull(measureRaw) {
			fe.Add(idx, "Each reading must include station_label and measurement_in.")
			continue
		}

		var r models.SettlementReading
		if err := json.Unmarshal(labelRaw, &r.StationLabel); err != nil {
			fe.Add(idx, "station_label must be a string.")
			continue
		}
		if err := json.Unmarshal(bytes.TrimSpace(measureRaw), &r.MeasurementIn); err != nil {
			fe.Add(idx, "measurement_in must be a number.")
			continue
		}
		readings = append(readings, r)
	}

	if !fe.Empty() {
		return nil, fe
	}
	return readings, fe
}

package validation

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"p9e.in/tankinspect/models"
)

var (
	dateType    = reflect.TypeOf(models.Date{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	rawType     = reflect.TypeOf(json.RawMessage{})
)

// DecodeObject parses body as a JSON object.
func DecodeObject(body []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, Single("body", "Request body must be a JSON object.")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, Single("body", "Malformed JSON.")
	}
	return obj, nil
}

// DecodeFields fills the exported, json-tagged fields of dst (a struct
// pointer) from obj one field at a time, so a type mismatch is reported
// against that field instead of failing the whole payload. Keys dst does not
// declare are ignored. Strings are trimmed.
func DecodeFields(obj map[string]json.RawMessage, dst any) FieldErrors {
	fe := FieldErrors{}
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		raw, ok := obj[name]
		if !ok {
			continue
		}

		fv := v.Field(i)
		if err := json.Unmarshal(raw, fv.Addr().Interface()); err != nil {
			fe.Add(name, typeMessage(sf.Type))
			fv.Set(reflect.Zero(sf.Type))
			continue
		}
		trimString(fv)
	}
	return fe
}

func trimString(fv reflect.Value) {
	switch {
	case fv.Kind() == reflect.String:
		fv.SetString(strings.TrimSpace(fv.String()))
	case fv.Kind() == reflect.Ptr && !fv.IsNil() && fv.Elem().Kind() == reflect.String:
		fv.Elem().SetString(strings.TrimSpace(fv.Elem().String()))
	}
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t {
	case dateType:
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case decimalType:
		return "A valid number is required."
	case uuidType:
		return "Must be a valid UUID."
	case rawType:
		return "Invalid value."
	}
	switch t.Kind() {
	case reflect.String:
		return "Not a valid string."
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	default:
		return "Invalid value."
	}
}

// isNull reports whether raw is absent or the JSON literal null.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AnnotationColor is the highlight applied to a construction field on the
// inspection form. The zero value means "no colour".
type AnnotationColor string

const (
	ColorRed    AnnotationColor = "red"
	ColorBlue   AnnotationColor = "blue"
	ColorYellow AnnotationColor = "yellow"
	ColorGreen  AnnotationColor = "green"
)

func (c AnnotationColor) Valid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorYellow, ColorGreen:
		return true
	}
	return false
}

// Annotation marks one standard construction field.
type Annotation struct {
	Color   *AnnotationColor `json:"color"`
	VE      bool             `json:"ve"`
	UT      bool             `json:"ut"`
	Comment string           `json:"comment"`
}

// AdditionalAnnotation is a free-form construction row added by the inspector.
type AdditionalAnnotation struct {
	Label   string           `json:"label"`
	Value   string           `json:"value"`
	Color   *AnnotationColor `json:"color"`
	VE      bool             `json:"ve"`
	UT      bool             `json:"ut"`
	Comment string           `json:"comment"`
}

// ConstructionAnnotations is the normalized form stored on every tank. Both
// keys are always present once normalized.
type ConstructionAnnotations struct {
	Standard   map[string]Annotation  `json:"standard"`
	Additional []AdditionalAnnotation `json:"additional"`
}

// EmptyConstructionAnnotations returns the normalized value for an absent payload.
func EmptyConstructionAnnotations() ConstructionAnnotations {
	return ConstructionAnnotations{
		Standard:   map[string]Annotation{},
		Additional: []AdditionalAnnotation{},
	}
}

// Measurement is a fixed-precision reading that encodes as a bare JSON number.
type Measurement struct {
	decimal.Decimal
}

func NewMeasurement(s string) (Measurement, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{d}, nil
}

func (m Measurement) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON only accepts number tokens; quoted numbers are rejected.
func (m *Measurement) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || !(b[0] == '-' || (b[0] >= '0' && b[0] <= '9')) {
		return fmt.Errorf("measurement must be a number, got %s", b)
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	m.Decimal = d
	return nil
}

// SettlementReading is one station of a shell settlement survey.
type SettlementReading struct {
	StationLabel  string      `json:"station_label"`
	MeasurementIn Measurement `json:"measurement_in"`
}

// CustomResponse is an inspector-authored question and answer on a goal.
type CustomResponse struct {
	Prompt     string `json:"prompt"`
	Answer     string `json:"answer"`
	TemplateID *uint  `json:"template_id,omitempty"`
}

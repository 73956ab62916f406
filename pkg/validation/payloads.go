package validation

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"p9e.in/tankinspect/models"
)

// Write payloads. Each type lists the client-writable fields of one entity
// with their rules; keys, owner-independent timestamps and display fields are
// never read from the client.

type tankInput struct {
	TankName       string              `json:"tank_name"       validate:"required,max=255"`
	Owner          string              `json:"owner"           validate:"required,max=255"`
	FacilityType   models.FacilityType `json:"facility_type"   validate:"required,choice"`
	City           string              `json:"city"            validate:"required,max=255"`
	State          string              `json:"state"           validate:"required,max=64"`
	YearBuilt      *int                `json:"year_built"      validate:"omitempty,min=0"`
	DesignStandard string              `json:"design_standard" validate:"required,max=128"`
	Manufacturer   *string             `json:"manufacturer"    validate:"omitempty,max=255"`
	ProductStored  string              `json:"product_stored"  validate:"required,max=255"`
	InspectionType string              `json:"inspection_type" validate:"max=128"`
	ClientName     string              `json:"client_name"     validate:"max=255"`
	ExactAddress   string              `json:"exact_address"   validate:"max=255"`
	PONumber       string              `json:"po_number"       validate:"max=128"`

	InspectionDate         *models.Date `json:"inspection_date"`
	ConstructionDate       *models.Date `json:"construction_date"`
	ExternalInspectionDate *models.Date `json:"external_inspection_date"`
	InternalInspectionDate *models.Date `json:"internal_inspection_date"`
	UTInspectionDate       *models.Date `json:"ut_inspection_date"`
	NextInspectionDueDate  *models.Date `json:"next_inspection_due_date"`

	NameplatePresent  bool             `json:"nameplate_present"`
	DiameterFt        *decimal.Decimal `json:"diameter_ft"         validate:"omitempty,decimal=8:2"`
	HeightFt          *decimal.Decimal `json:"height_ft"           validate:"omitempty,decimal=8:2"`
	CapacityBbl       *decimal.Decimal `json:"capacity_bbl"        validate:"omitempty,decimal=12:2"`
	OperatingHeightFt *decimal.Decimal `json:"operating_height_ft" validate:"omitempty,decimal=8:2"`

	Foundation           models.Foundation `json:"foundation"              validate:"required,choice"`
	Anchors              string            `json:"anchors"                 validate:"required,max=255"`
	ShellWeldType        string            `json:"shell_weld_type"         validate:"required,max=255"`
	ShellNumberOfCourses *int              `json:"shell_number_of_courses" validate:"omitempty,min=0"`
	Insulation           string            `json:"insulation"              validate:"required,max=255"`
	ShellManway          string            `json:"shell_manway"            validate:"required,max=255"`
	Drain                *string           `json:"drain"                   validate:"omitempty,max=255"`
	LevelGaugeType       *string           `json:"level_gauge_type"        validate:"omitempty,max=255"`

	AccessStructure      models.AccessStructure `json:"access_structure"       validate:"required,choice"`
	BottomType           string                 `json:"bottom_type"            validate:"required,max=255"`
	BottomWeld           *string                `json:"bottom_weld"            validate:"omitempty,max=255"`
	AnnularPlate         *string                `json:"annular_plate"          validate:"omitempty,max=255"`
	FixedRoofType        *string                `json:"fixed_roof_type"        validate:"omitempty,max=255"`
	FloatingRoofType     *string                `json:"floating_roof_type"     validate:"omitempty,max=255"`
	PrimarySeal          *string                `json:"primary_seal"           validate:"omitempty,max=255"`
	SecondarySeal        *string                `json:"secondary_seal"         validate:"omitempty,max=255"`
	AntiRotationDevice   *string                `json:"anti_rotation_device"   validate:"omitempty,max=255"`
	VentTypeAndNumber    *string                `json:"vent_type_and_number"   validate:"omitempty,max=255"`
	EmergencyVentingType *string                `json:"emergency_venting_type" validate:"omitempty,max=255"`
	RoofManwayOrHatch    *string                `json:"roof_manway_or_hatch"   validate:"omitempty,max=255"`

	InletSizeIn    *decimal.Decimal `json:"inlet_size_in"     validate:"omitempty,decimal=6:2"`
	OutletSizeIn   *decimal.Decimal `json:"outlet_size_in"    validate:"omitempty,decimal=6:2"`
	FlowRateInBph  *decimal.Decimal `json:"flow_rate_in_bph"  validate:"omitempty,decimal=10:2"`
	FlowRateOutBph *decimal.Decimal `json:"flow_rate_out_bph" validate:"omitempty,decimal=10:2"`

	Pressure                 *string `json:"pressure"                   validate:"omitempty,max=255"`
	Temperature              *string `json:"temperature"                validate:"omitempty,max=255"`
	SecondaryContainmentType string  `json:"secondary_containment_type" validate:"required,max=255"`

	ConstructionAnnotations json.RawMessage `json:"construction_annotations"`
}

// ParseTank validates and normalizes a tank write. The returned tank carries
// no key; the store assigns or keeps it.
func ParseTank(body []byte) (*models.Tank, error) {
	obj, err := DecodeObject(body)
	if err != nil {
		return nil, err
	}

	var in tankInput
	fe := DecodeFields(obj, &in)
	for field, msg := range Struct(&in) {
		fe.Add(field, msg.(string))
	}
	annotations, annErrs := NormalizeConstructionAnnotations(in.ConstructionAnnotations)
	fe.Nest("construction_annotations", annErrs)
	if err := fe.AsError(); err != nil {
		return nil, err
	}

	return &models.Tank{
		TankName:                 in.TankName,
		Owner:                    in.Owner,
		FacilityType:             in.FacilityType,
		City:                     in.City,
		State:                    in.State,
		YearBuilt:                toUint(in.YearBuilt),
		DesignStandard:           in.DesignStandard,
		Manufacturer:             in.Manufacturer,
		ProductStored:            in.ProductStored,
		InspectionType:           in.InspectionType,
		ClientName:               in.ClientName,
		ExactAddress:             in.ExactAddress,
		PONumber:                 in.PONumber,
		InspectionDate:           in.InspectionDate,
		ConstructionDate:         in.ConstructionDate,
		ExternalInspectionDate:   in.ExternalInspectionDate,
		InternalInspectionDate:   in.InternalInspectionDate,
		UTInspectionDate:         in.UTInspectionDate,
		NextInspectionDueDate:    in.NextInspectionDueDate,
		NameplatePresent:         in.NameplatePresent,
		DiameterFt:               toNullDecimal(in.DiameterFt),
		HeightFt:                 toNullDecimal(in.HeightFt),
		CapacityBbl:              toNullDecimal(in.CapacityBbl),
		OperatingHeightFt:        toNullDecimal(in.OperatingHeightFt),
		Foundation:               in.Foundation,
		Anchors:                  in.Anchors,
		ShellWeldType:            in.ShellWeldType,
		ShellNumberOfCourses:     toUint(in.ShellNumberOfCourses),
		Insulation:               in.Insulation,
		ShellManway:              in.ShellManway,
		Drain:                    in.Drain,
		LevelGaugeType:           in.LevelGaugeType,
		AccessStructure:          in.AccessStructure,
		BottomType:               in.BottomType,
		BottomWeld:               in.BottomWeld,
		AnnularPlate:             in.AnnularPlate,
		FixedRoofType:            in.FixedRoofType,
		FloatingRoofType:         in.FloatingRoofType,
		PrimarySeal:              in.PrimarySeal,
		SecondarySeal:            in.SecondarySeal,
		AntiRotationDevice:       in.AntiRotationDevice,
		VentTypeAndNumber:        in.VentTypeAndNumber,
		EmergencyVentingType:     in.EmergencyVentingType,
		RoofManwayOrHatch:        in.RoofManwayOrHatch,
		InletSizeIn:              toNullDecimal(in.InletSizeIn),
		OutletSizeIn:             toNullDecimal(in.OutletSizeIn),
		FlowRateInBph:            toNullDecimal(in.FlowRateInBph),
		FlowRateOutBph:           toNullDecimal(in.FlowRateOutBph),
		Pressure:                 in.Pressure,
		Temperature:              in.Temperature,
		SecondaryContainmentType: in.SecondaryContainmentType,
		ConstructionAnnotations:  datatypes.NewJSONType(annotations),
	}, nil
}

type surveyInput struct {
	Tank         uuid.UUID       `json:"tank"          validate:"required"`
	StationCount *int            `json:"station_count" validate:"required,min=0"`
	Readings     json.RawMessage `json:"readings"`
}

func ParseShellSettlementSurvey(body []byte) (*models.ShellSettlementSurvey, error) {
	var in surveyInput
	fe, err := decodeAndCheck(body, &in)
	if err != nil {
		return nil, err
	}
	readings, readingErrs := NormalizeReadings(in.Readings)
	if msg, ok := readingErrs["non_field_errors"]; ok {
		fe.Add("readings", msg.(string))
	} else {
		fe.Nest("readings", readingErrs)
	}
	if err := fe.AsError(); err != nil {
		return nil, err
	}
	return &models.ShellSettlementSurvey{
		TankID:       in.Tank,
		StationCount: uint(*in.StationCount),
		Readings:     datatypes.JSONSlice[models.SettlementReading](readings),
	}, nil
}

type utResultInput struct {
	Tank        uuid.UUID         `json:"tank"         validate:"required"`
	Category    models.UTCategory `json:"category"     validate:"required,choice"`
	Location    string            `json:"location"     validate:"required,max=255"`
	Course      *int              `json:"course"       validate:"omitempty,min=0"`
	ThicknessIn *decimal.Decimal  `json:"thickness_in" validate:"required,decimal=6:4"`
	Notes       *string           `json:"notes"`
}

// ParseUTResult additionally requires a course number for shell readings.
func ParseUTResult(body []byte) (*models.UTResult, error) {
	var in utResultInput
	fe, err := decodeAndCheck(body, &in)
	if err != nil {
		return nil, err
	}
	if in.Category == models.UTShell && in.Course == nil {
		fe.Add("course", "Shell UT results must include a course number.")
	}
	if err := fe.AsError(); err != nil {
		return nil, err
	}
	return &models.UTResult{
		TankID:      in.Tank,
		Category:    in.Category,
		Location:    in.Location,
		Course:      toUint(in.Course),
		ThicknessIn: *in.ThicknessIn,
		Notes:       in.Notes,
	}, nil
}

type edgeInput struct {
	Tank    uuid.UUID `json:"tank"    validate:"required"`
	Present *bool     `json:"present" validate:"required"`
	Result  *string   `json:"result"`
}

func ParseEdgeSettlementCheck(body []byte) (*models.EdgeSettlementCheck, error) {
	var in edgeInput
	fe, err := decodeAndCheck(body, &in)
	if err != nil {
		return nil, err
	}
	if err := fe.AsError(); err != nil {
		return nil, err
	}
	return &models.EdgeSettlementCheck{TankID: in.Tank, Present: *in.Present, Result: in.Result}, nil
}

type plumbnessInput struct {
	Tank             uuid.UUID        `json:"tank"                validate:"required"`
	ColumnID         string           `json:"column_id"           validate:"required,max=64"`
	PlumbnessInPerFt *decimal.Decimal `json:"plumbness_in_per_ft" validate:"required,decimal=6:4"`
	Direction        *string          `json:"direction"           validate:"omitempty,max=255"`
}

func ParseColumnPlumbnessCheck(body []byte) (*models.ColumnPlumbnessCheck, error) {
	var in plumbnessInput
	fe, err := decodeAndCheck(body, &in)
	if err != nil {
		return nil, err
	}
	if err := fe.AsError(); err != nil {
		return nil, err
	}
	return &models.ColumnPlumbnessCheck{
		TankID:           in.Tank,
		ColumnID:         in.ColumnID,
		PlumbnessInPerFt: *in.PlumbnessInPerFt,
		Direction:        in.Direction,
	}, nil
}

type visualInput struct {
	Tank        uuid.UUID          `json:"tank"         validate:"required"`
	Area        models.VisualArea  `json:"area"         validate:"required,choice"`
	Finding     string             `json:"finding"      validate:"required"`
	CommentType models.CommentType `json:"comment_type" validate:"required,choice"`
}

func ParseVisualFinding(body []byte) (*models.VisualFinding, error) {
	var in visualInput
	fe, err := decodeAndCheck(body, &in)
	if err != nil {
		return nil, err
	}
	if err := fe.AsError(); err != nil {
		return nil, err
	}
	return &models.VisualFinding{TankID: in.Tank, Area: in.Area, Finding: in.Finding, CommentType: in.CommentType}, nil
}

type otherNDEInput struct {
	Tank    uuid.UUID `json:"tank"     validate:"required"`
	NDEType string    `json:"nde_type" validate:"required,max=32"`
	Result  string    `json:"result"   validate:"required"`
}

func ParseOtherNDE(body []byte) (*models.OtherNDE, error) {
	var in otherNDEInput
	fe, err := decodeAndCheck(body, &in)
	if err != nil {
		return nil, err
	}
	if err := fe.AsError(); err != nil {
		return nil, err
	}
	return &models.OtherNDE{TankID: in.Tank, NDEType: in.NDEType, Result: in.Result}, nil
}

type goalResultInput struct {
	Tank              uuid.UUID       `json:"tank"     validate:"required"`
	GoalKey           models.GoalKey  `json:"goal_key" validate:"required,choice"`
	Methods           json.RawMessage `json:"methods"`
	StandardResponses json.RawMessage `json:"standard_responses"`
	CustomResponses   json.RawMessage `json:"custom_responses"`
}

// ParseGoalResult validates the collection shapes. Default responses are
// merged later, when the record is saved.
func ParseGoalResult(body []byte) (*models.GoalResult, error) {
	var in goalResultInput
	fe, err := decodeAndCheck(body, &in)
	if err != nil {
		return nil, err
	}

	methods := []string{}
	if !isNull(in.Methods) && json.Unmarshal(in.Methods, &methods) != nil {
		fe.Add("methods", "Methods must be a list of strings.")
	}

	standard := map[string]any{}
	if !isNull(in.StandardResponses) {
		if t := bytes.TrimSpace(in.StandardResponses); t[0] != '{' || json.Unmarshal(t, &standard) != nil {
			fe.Add("standard_responses", "Standard responses must be an object.")
		}
	}

	custom := []models.CustomResponse{}
	if !isNull(in.CustomResponses) {
		var items []json.RawMessage
		if t := bytes.TrimSpace(in.CustomResponses); t[0] != '[' || json.Unmarshal(t, &items) != nil {
			fe.Add("custom_responses", "Custom responses must be a list.")
		} else {
			itemErrs := FieldErrors{}
			for i, item := range items {
				var cr models.CustomResponse
				if t := bytes.TrimSpace(item); len(t) == 0 || t[0] != '{' || json.Unmarshal(t, &cr) != nil {
					itemErrs.Add(strconv.Itoa(i), "Each custom response must be an object with prompt and answer.")
					continue
				}
				custom = append(custom, cr)
			}
			fe.Nest("custom_responses", itemErrs)
		}
	}

	if err := fe.AsError(); err != nil {
		return nil, err
	}
	return &models.GoalResult{
		TankID:            in.Tank,
		GoalKey:           in.GoalKey,
		Methods:           datatypes.JSONSlice[string](methods),
		StandardResponses: datatypes.JSONMap(standard),
		CustomResponses:   datatypes.JSONSlice[models.CustomResponse](custom),
	}, nil
}

type templateInput struct {
	GoalKey   models.GoalKey `json:"goal_key"   validate:"required,choice"`
	Prompt    string         `json:"prompt"     validate:"required,max=255"`
	IsDefault bool           `json:"is_default"`
}

func ParseGoalQuestionTemplate(body []byte) (*models.GoalQuestionTemplate, error) {
	var in templateInput
	fe, err := decodeAndCheck(body, &in)
	if err != nil {
		return nil, err
	}
	if err := fe.AsError(); err != nil {
		return nil, err
	}
	return &models.GoalQuestionTemplate{GoalKey: in.GoalKey, Prompt: in.Prompt, IsDefault: in.IsDefault}, nil
}

// decodeAndCheck decodes body into dst and runs its tag rules. The returned
// error is only set when body is not a JSON object at all.
func decodeAndCheck(body []byte, dst any) (FieldErrors, error) {
	obj, err := DecodeObject(body)
	if err != nil {
		return nil, err
	}
	fe := DecodeFields(obj, dst)
	for field, msg := range Struct(dst) {
		fe.Add(field, msg.(string))
	}
	return fe, nil
}

func toUint(v *int) *uint {
	if v == nil {
		return nil
	}
	u := uint(*v)
	return &u
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

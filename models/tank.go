package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tank is the master record every finding hangs off.
type Tank struct {
	ID uuid.UUID `gorm:"column:tank_unique_id;type:uuid;primaryKey" json:"tank_unique_id"`

	TankName       string       `gorm:"size:255;not null;index" json:"tank_name"`
	Owner          string       `gorm:"size:255;not null"       json:"owner"`
	FacilityType   FacilityType `gorm:"size:64;not null"        json:"facility_type"`
	City           string       `gorm:"size:255;not null"       json:"city"`
	State          string       `gorm:"size:64;not null"        json:"state"`
	YearBuilt      *uint        `json:"year_built"`
	DesignStandard string       `gorm:"size:128;not null"       json:"design_standard"`
	Manufacturer   *string      `gorm:"size:255"                json:"manufacturer"`
	ProductStored  string       `gorm:"size:255;not null"       json:"product_stored"`
	InspectionType string       `gorm:"size:128;not null;default:''" json:"inspection_type"`
	ClientName     string       `gorm:"size:255;not null;default:''" json:"client_name"`
	ExactAddress   string       `gorm:"size:255;not null;default:''" json:"exact_address"`
	PONumber       string       `gorm:"column:po_number;size:128;not null;default:''" json:"po_number"`

	InspectionDate         *Date `json:"inspection_date"`
	ConstructionDate       *Date `json:"construction_date"`
	ExternalInspectionDate *Date `json:"external_inspection_date"`
	InternalInspectionDate *Date `json:"internal_inspection_date"`
	UTInspectionDate       *Date `gorm:"column:ut_inspection_date" json:"ut_inspection_date"`
	NextInspectionDueDate  *Date `json:"next_inspection_due_date"`

	NameplatePresent  bool                `gorm:"not null;default:false" json:"nameplate_present"`
	DiameterFt        decimal.NullDecimal `gorm:"type:numeric(8,2)"  json:"diameter_ft"`
	HeightFt          decimal.NullDecimal `gorm:"type:numeric(8,2)"  json:"height_ft"`
	CapacityBbl       decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"capacity_bbl"`
	OperatingHeightFt decimal.NullDecimal `gorm:"type:numeric(8,2)"  json:"operating_height_ft"`

	Foundation           Foundation `gorm:"size:64;not null"  json:"foundation"`
	Anchors              string     `gorm:"size:255;not null" json:"anchors"`
	ShellWeldType        string     `gorm:"size:255;not null" json:"shell_weld_type"`
	ShellNumberOfCourses *uint      `json:"shell_number_of_courses"`
	Insulation           string     `gorm:"size:255;not null" json:"insulation"`
	ShellManway          string     `gorm:"size:255;not null" json:"shell_manway"`
	Drain                *string    `gorm:"size:255"          json:"drain"`
	LevelGaugeType       *string    `gorm:"size:255"          json:"level_gauge_type"`

	AccessStructure      AccessStructure `gorm:"size:64;not null"  json:"access_structure"`
	BottomType           string          `gorm:"size:255;not null" json:"bottom_type"`
	BottomWeld           *string         `gorm:"size:255"          json:"bottom_weld"`
	AnnularPlate         *string         `gorm:"size:255"          json:"annular_plate"`
	FixedRoofType        *string         `gorm:"size:255"          json:"fixed_roof_type"`
	FloatingRoofType     *string         `gorm:"size:255"          json:"floating_roof_type"`
	PrimarySeal          *string         `gorm:"size:255"          json:"primary_seal"`
	SecondarySeal        *string         `gorm:"size:255"          json:"secondary_seal"`
	AntiRotationDevice   *string         `gorm:"size:255"          json:"anti_rotation_device"`
	VentTypeAndNumber    *string         `gorm:"size:255"          json:"vent_type_and_number"`
	EmergencyVentingType *string         `gorm:"size:255"          json:"emergency_venting_type"`
	RoofManwayOrHatch    *string         `gorm:"size:255"          json:"roof_manway_or_hatch"`

	InletSizeIn    decimal.NullDecimal `gorm:"type:numeric(6,2)"  json:"inlet_size_in"`
	OutletSizeIn   decimal.NullDecimal `gorm:"type:numeric(6,2)"  json:"outlet_size_in"`
	FlowRateInBph  decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"flow_rate_in_bph"`
	FlowRateOutBph decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"flow_rate_out_bph"`

	Pressure                 *string `gorm:"size:255"          json:"pressure"`
	Temperature              *string `gorm:"size:255"          json:"temperature"`
	SecondaryContainmentType string  `gorm:"size:255;not null" json:"secondary_containment_type"`

	ConstructionAnnotations datatypes.JSONType[ConstructionAnnotations] `gorm:"not null" json:"construction_annotations"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the tank key when the caller did not.
func (t *Tank) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// BeforeSave makes sure an unset annotation document is stored in its
// normalized empty form.
func (t *Tank) BeforeSave(tx *gorm.DB) error {
	a := t.ConstructionAnnotations.Data()
	if a.Standard == nil || a.Additional == nil {
		if a.Standard == nil {
			a.Standard = map[string]Annotation{}
		}
		if a.Additional == nil {
			a.Additional = []AdditionalAnnotation{}
		}
		t.ConstructionAnnotations = datatypes.NewJSONType(a)
	}
	return nil
}

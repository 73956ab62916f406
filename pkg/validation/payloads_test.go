package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/tankinspect/models"
)

const tankID = "6f1c2b9e-1d7a-4a53-9a9e-3e0f5a3c2b11"

func validTankBody() string {
	return `{
		"tank_name": "  T-101 ", "owner": "Acme", "facility_type": "terminal",
		"city": "Houston", "state": "TX", "design_standard": "API 650",
		"product_stored": "Crude", "foundation": "ringwall", "anchors": "None",
		"shell_weld_type": "Butt", "insulation": "None", "shell_manway": "24in",
		"access_structure": "stair", "bottom_type": "Cone up",
		"secondary_containment_type": "Dike",
		"diameter_ft": "120.50", "capacity_bbl": 55000, "year_built": 1998,
		"inspection_date": "2024-05-01", "tank_unique_id": "ignored"
	}`
}

func TestParseTank(t *testing.T) {
	tank, err := ParseTank([]byte(validTankBody()))
	require.NoError(t, err)

	assert.Equal(t, "T-101", tank.TankName)
	assert.Equal(t, models.FacilityTerminal, tank.FacilityType)
	assert.True(t, tank.DiameterFt.Valid)
	assert.Equal(t, "120.5", tank.DiameterFt.Decimal.String())
	assert.False(t, tank.HeightFt.Valid)
	require.NotNil(t, tank.YearBuilt)
	assert.EqualValues(t, 1998, *tank.YearBuilt)
	assert.Equal(t, "2024-05-01", tank.InspectionDate.String())
	assert.Equal(t, models.EmptyConstructionAnnotations(), tank.ConstructionAnnotations.Data())
}

func TestParseTankRejectsDatetime(t *testing.T) {
	body := strings.Replace(validTankBody(), `"2024-05-01"`, `"2024-05-01T22:00:00-06:00"`, 1)

	_, err := ParseTank([]byte(body))
	fields, ok := FieldsOf(err)
	require.True(t, ok)
	assert.Equal(t, FieldErrors{"inspection_date": "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."}, fields)
}

func TestParseTankEmptyStringAnnotations(t *testing.T) {
	body := strings.Replace(validTankBody(), `"tank_unique_id": "ignored"`, `"construction_annotations": ""`, 1)

	tank, err := ParseTank([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, models.EmptyConstructionAnnotations(), tank.ConstructionAnnotations.Data())
}

func TestParseTankCollectsFieldErrors(t *testing.T) {
	body := `{
		"tank_name": "", "owner": "Acme", "facility_type": "warehouse",
		"city": "Houston", "state": "TX", "design_standard": "API 650",
		"product_stored": "Crude", "foundation": "ringwall", "anchors": "None",
		"shell_weld_type": "Butt", "insulation": "None", "shell_manway": "24in",
		"access_structure": "stair", "bottom_type": "Cone up",
		"secondary_containment_type": "Dike",
		"diameter_ft": "1234567.5", "height_ft": "1.234", "year_built": -1,
		"inspection_date": "May 1", "construction_annotations": {"standard": {"x": {"color": "pink"}}}
	}`

	_, err := ParseTank([]byte(body))
	fields, ok := FieldsOf(err)
	require.True(t, ok)

	assert.Equal(t, "This field is required.", fields["tank_name"])
	assert.Equal(t, `"warehouse" is not a valid choice.`, fields["facility_type"])
	assert.Equal(t, "Ensure that there are no more than 6 digits before the decimal point.", fields["diameter_ft"])
	assert.Equal(t, "Ensure that there are no more than 2 decimal places.", fields["height_ft"])
	assert.Equal(t, "Ensure this value is greater than or equal to 0.", fields["year_built"])
	assert.Equal(t, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.", fields["inspection_date"])
	assert.Equal(t, FieldErrors{"x": colorMessage}, fields["construction_annotations"])
}

func TestParseBodyShape(t *testing.T) {
	for _, body := range []string{``, `[]`, `{"tank_name": `} {
		_, err := ParseTank([]byte(body))
		fields, ok := FieldsOf(err)
		require.True(t, ok, body)
		assert.Contains(t, fields, "body")
	}
}

func TestParseUTResult(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields FieldErrors
	}{
		{
			name: "shell without course",
			body: `{"tank": "` + tankID + `", "category": "shell", "location": "Course 1 N", "thickness_in": "0.3125"}`,
			fields: FieldErrors{
				"course": "Shell UT results must include a course number.",
			},
		},
		{
			name: "bottom without course",
			body: `{"tank": "` + tankID + `", "category": "bottom", "location": "Center", "thickness_in": 0.25}`,
		},
		{
			name: "shell with course",
			body: `{"tank": "` + tankID + `", "category": "shell", "location": "C2", "course": 2, "thickness_in": "0.3125"}`,
		},
		{
			name: "too many places and bad tank",
			body: `{"tank": "nope", "category": "roof", "location": "R", "thickness_in": "0.31255"}`,
			fields: FieldErrors{
				"tank":         "Must be a valid UUID.",
				"thickness_in": "Ensure that there are no more than 4 decimal places.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ut, err := ParseUTResult([]byte(tt.body))
			if tt.fields == nil {
				require.NoError(t, err)
				assert.Equal(t, tankID, ut.TankID.String())
				return
			}
			fields, ok := FieldsOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestParseShellSettlementSurvey(t *testing.T) {
	s, err := ParseShellSettlementSurvey([]byte(`{"tank": "` + tankID + `", "station_count": 2,
		"readings": [{"station_label": "A", "measurement_in": 0.1}, {"station_label": "B", "measurement_in": 0.2}]}`))
	require.NoError(t, err)
	assert.EqualValues(t, 2, s.StationCount)
	assert.Len(t, s.Readings, 2)

	_, err = ParseShellSettlementSurvey([]byte(`{"tank": "` + tankID + `", "station_count": 1, "readings": "A=0.1"}`))
	fields, _ := FieldsOf(err)
	assert.Equal(t, "Readings must be a list of station measurements.", fields["readings"])

	_, err = ParseShellSettlementSurvey([]byte(`{"tank": "` + tankID + `", "station_count": 1, "readings": [{"station_label": "A"}]}`))
	fields, _ = FieldsOf(err)
	assert.Equal(t, FieldErrors{"0": "Each reading must include station_label and measurement_in."}, fields["readings"])
}

func TestParseGoalResult(t *testing.T) {
	g, err := ParseGoalResult([]byte(`{"tank": "` + tankID + `", "goal_key": "goal_2",
		"standard_responses": {"shell_ut_nominal": false}, "goal_key_display": "ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, models.Goal2, g.GoalKey)
	assert.Empty(t, g.Methods)
	assert.NotNil(t, g.Methods)
	assert.Equal(t, false, g.StandardResponses["shell_ut_nominal"])

	_, err = ParseGoalResult([]byte(`{"tank": "` + tankID + `", "goal_key": "goal_9",
		"methods": ["VE", 3], "standard_responses": [], "custom_responses": {}}`))
	fields, ok := FieldsOf(err)
	require.True(t, ok)
	assert.Equal(t, FieldErrors{
		"goal_key":           `"goal_9" is not a valid choice.`,
		"methods":            "Methods must be a list of strings.",
		"standard_responses": "Standard responses must be an object.",
		"custom_responses":   "Custom responses must be a list.",
	}, fields)
}

func TestParseSimpleFindings(t *testing.T) {
	_, err := ParseEdgeSettlementCheck([]byte(`{"tank": "` + tankID + `"}`))
	fields, _ := FieldsOf(err)
	assert.Equal(t, "This field is required.", fields["present"])

	e, err := ParseEdgeSettlementCheck([]byte(`{"tank": "` + tankID + `", "present": false}`))
	require.NoError(t, err)
	assert.False(t, e.Present)

	_, err = ParseColumnPlumbnessCheck([]byte(`{"tank": "` + tankID + `", "column_id": "C1", "plumbness_in_per_ft": "123.5"}`))
	fields, _ = FieldsOf(err)
	assert.Equal(t, "Ensure that there are no more than 2 digits before the decimal point.", fields["plumbness_in_per_ft"])

	_, err = ParseVisualFinding([]byte(`{"tank": "` + tankID + `", "area": "bottom_extension", "finding": "pitting", "comment_type": "later"}`))
	fields, _ = FieldsOf(err)
	assert.Equal(t, FieldErrors{"comment_type": `"later" is not a valid choice.`}, fields)

	n, err := ParseOtherNDE([]byte(`{"tank": "` + tankID + `", "nde_type": "MT", "result": "no indications"}`))
	require.NoError(t, err)
	assert.Equal(t, "MT", n.NDEType)

	tpl, err := ParseGoalQuestionTemplate([]byte(`{"goal_key": "goal_3", "prompt": "Settlement within tolerance?"}`))
	require.NoError(t, err)
	assert.False(t, tpl.IsDefault)
}

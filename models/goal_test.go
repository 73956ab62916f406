package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfillStandardResponses(t *testing.T) {
	tests := []struct {
		name     string
		goal     GoalKey
		supplied map[string]any
		want     map[string]any
	}{
		{
			name:     "goal 2 keeps caller value and fills the rest",
			goal:     Goal2,
			supplied: map[string]any{"shell_ut_nominal": false},
			want: map[string]any{
				"shell_ut_nominal":      false,
				"shell_ut_notes":        "",
				"damaged_appurtenances": false,
				"appurtenance_notes":    "",
			},
		},
		{
			name: "goal 1 from nothing",
			goal: Goal1,
			want: map[string]any{
				"mfl_performed":             nil,
				"mfl_summary":               "",
				"external_interval_typical": true,
				"external_interval_notes":   "",
				"internal_interval_typical": true,
				"internal_interval_notes":   "",
				"ut_interval_typical":       true,
				"ut_interval_notes":         "",
			},
		},
		{
			name:     "explicit null overrides a default",
			goal:     Goal5,
			supplied: map[string]any{"shell_ut_nominal": nil, "extra": "kept"},
			want: map[string]any{
				"shell_ut_nominal":      nil,
				"shell_ut_notes":        "",
				"damaged_appurtenances": false,
				"appurtenance_notes":    "",
				"extra":                 "kept",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BackfillStandardResponses(tt.goal, tt.supplied))
		})
	}
}

func TestBackfillDoesNotShareDefaults(t *testing.T) {
	first := BackfillStandardResponses(Goal3, nil)
	first["shell_ut_nominal"] = false

	second := BackfillStandardResponses(Goal3, nil)
	assert.Equal(t, true, second["shell_ut_nominal"])
}

func TestBackfillCompleteForEveryGoal(t *testing.T) {
	for _, c := range GoalKeyChoices {
		goal := GoalKey(c.Value)
		merged := BackfillStandardResponses(goal, map[string]any{"custom": 1})
		for key := range DefaultStandardResponses(goal) {
			assert.Contains(t, merged, key, "goal %s", goal)
		}
	}
}

func TestGoalResultEnsureDefaults(t *testing.T) {
	g := GoalResult{GoalKey: Goal2}
	g.EnsureDefaults()

	assert.NotNil(t, g.Methods)
	assert.NotNil(t, g.CustomResponses)
	assert.Equal(t, true, g.StandardResponses["shell_ut_nominal"])
}

func TestGoalResultJSONIncludesDisplay(t *testing.T) {
	g := GoalResult{GoalKey: Goal6}
	g.ID = 4
	g.EnsureDefaults()

	b, err := json.Marshal(g)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "Floating roof", out["goal_key_display"])
	assert.Equal(t, "goal_6", out["goal_key"])
	assert.EqualValues(t, 4, out["id"])
	assert.Equal(t, []any{}, out["methods"])
}

func TestDefaultGoalPrompts(t *testing.T) {
	prompts := DefaultGoalPrompts()
	require.Len(t, prompts, 8)
	assert.Len(t, prompts[Goal1], 5)

	total := 0
	for _, p := range prompts {
		total += len(p)
	}
	assert.Equal(t, 19, total)
}

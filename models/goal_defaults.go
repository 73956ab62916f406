package models

// DefaultStandardResponses returns a fresh copy of the canonical response set
// for a goal. Goal 1 tracks MFL and inspection intervals; every other goal
// shares the shell UT and appurtenance questions.
func DefaultStandardResponses(goal GoalKey) map[string]any {
	if goal == Goal1 {
		return map[string]any{
			"mfl_performed":             nil,
			"mfl_summary":               "",
			"external_interval_typical": true,
			"external_interval_notes":   "",
			"internal_interval_typical": true,
			"internal_interval_notes":   "",
			"ut_interval_typical":       true,
			"ut_interval_notes":         "",
		}
	}
	return map[string]any{
		"shell_ut_nominal":      true,
		"shell_ut_notes":        "",
		"damaged_appurtenances": false,
		"appurtenance_notes":    "",
	}
}

// BackfillStandardResponses shallow-merges supplied over the goal defaults.
// Supplied values win on every key they carry, including explicit nulls.
func BackfillStandardResponses(goal GoalKey, supplied map[string]any) map[string]any {
	merged := DefaultStandardResponses(goal)
	for k, v := range supplied {
		merged[k] = v
	}
	return merged
}

// DefaultGoalPrompts lists the system question templates seeded per goal.
func DefaultGoalPrompts() map[GoalKey][]string {
	prompts := map[GoalKey][]string{
		Goal1: {
			"Was MFL performed?",
			"External inspection interval typical?",
			"Internal inspection interval typical?",
			"UT inspection interval typical?",
			"Additional Goal 1 questions",
		},
	}
	for _, c := range GoalKeyChoices {
		key := GoalKey(c.Value)
		if key == Goal1 {
			continue
		}
		prompts[key] = []string{
			"Is shell UT nominal?",
			"Any corroded or damaged appurtenances?",
		}
	}
	return prompts
}

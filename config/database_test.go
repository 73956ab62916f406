package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/tankinspect/models"
)

func TestConnectMigrateAndSeed(t *testing.T) {
	db, err := Connect(DatabaseConfig{URL: "sqlite://:memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	assert.Same(t, db, DB)

	require.NoError(t, Migrations(db))
	require.NoError(t, Migrations(db), "migrations must be re-runnable")

	for _, table := range []string{"tanks", "shell_settlement_surveys", "ut_results", "edge_settlement_checks",
		"column_plumbness_checks", "visual_findings", "other_nde", "goal_question_templates", "goal_results"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	require.NoError(t, SeedGoalTemplates(db))
	var count int64
	require.NoError(t, db.Model(&models.GoalQuestionTemplate{}).Count(&count).Error)
	assert.EqualValues(t, 19, count)

	// A prompt someone un-flagged is restored; nothing is duplicated.
	require.NoError(t, db.Model(&models.GoalQuestionTemplate{}).
		Where("goal_key = ?", models.Goal3).Update("is_default", false).Error)
	require.NoError(t, SeedGoalTemplates(db))

	require.NoError(t, db.Model(&models.GoalQuestionTemplate{}).Count(&count).Error)
	assert.EqualValues(t, 19, count)
	var nonDefault int64
	require.NoError(t, db.Model(&models.GoalQuestionTemplate{}).Where("is_default = ?", false).Count(&nonDefault).Error)
	assert.Zero(t, nonDefault)
}

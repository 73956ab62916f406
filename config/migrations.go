package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/tankinspect/models"
)

// Migrations brings the schema up to date. Seeding of the default goal
// templates runs separately so it can be switched off by configuration.
func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250114_create_inspection_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Tank{},
					&models.ShellSettlementSurvey{}, &models.UTResult{}, &models.EdgeSettlementCheck{},
					&models.ColumnPlumbnessCheck{}, &models.VisualFinding{}, &models.OtherNDE{},
					&models.GoalQuestionTemplate{}, &models.GoalResult{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.GoalResult{}, &models.GoalQuestionTemplate{},
					&models.OtherNDE{}, &models.VisualFinding{}, &models.ColumnPlumbnessCheck{},
					&models.EdgeSettlementCheck{}, &models.UTResult{}, &models.ShellSettlementSurvey{},
					&models.Tank{})
			},
		},
		{
			ID: "20250201_ut_results_tank_category_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_ut_results_tank_category ON ut_results (tank_id, category)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_ut_results_tank_category").Error
			},
		},
	})
	return m.Migrate()
}

package config

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"p9e.in/tankinspect/models"
	"p9e.in/tankinspect/pkg/logging"
)

// SeedGoalTemplates makes sure every system prompt exists and is flagged as
// a default. Running it again changes nothing.
func SeedGoalTemplates(db *gorm.DB) error {
	logging.Info().Msg("🌱 Seeding goal question templates...")

	created, updated := 0, 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, c := range models.GoalKeyChoices {
			goal := models.GoalKey(c.Value)
			for _, prompt := range models.DefaultGoalPrompts()[goal] {
				var existing models.GoalQuestionTemplate
				err := tx.Where("goal_key = ? AND prompt = ?", goal, prompt).First(&existing).Error
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					t := models.GoalQuestionTemplate{GoalKey: goal, Prompt: prompt, IsDefault: true}
					if err := tx.Create(&t).Error; err != nil {
						return fmt.Errorf("create template %s/%q: %w", goal, prompt, err)
					}
					created++
				case err != nil:
					return err
				case !existing.IsDefault:
					if err := tx.Model(&existing).Update("is_default", true).Error; err != nil {
						return fmt.Errorf("update template %d: %w", existing.ID, err)
					}
					updated++
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Info().Int("created", created).Int("updated", updated).Msg("✅ Goal question templates seeded")
	return nil
}

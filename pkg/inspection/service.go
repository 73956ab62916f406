// Package inspection stores tanks and their findings and assembles the
// per-tank summary document.
package inspection

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/tankinspect/models"
	"p9e.in/tankinspect/pkg/logging"
)

const tankResource = "tank"

// Service is the persistence boundary for every inspection resource.
type Service struct {
	db *gorm.DB

	Surveys        *Collection[models.ShellSettlementSurvey, *models.ShellSettlementSurvey]
	UTResults      *Collection[models.UTResult, *models.UTResult]
	EdgeChecks     *Collection[models.EdgeSettlementCheck, *models.EdgeSettlementCheck]
	PlumbChecks    *Collection[models.ColumnPlumbnessCheck, *models.ColumnPlumbnessCheck]
	VisualFindings *Collection[models.VisualFinding, *models.VisualFinding]
	OtherNDE       *Collection[models.OtherNDE, *models.OtherNDE]
	GoalResults    *Collection[models.GoalResult, *models.GoalResult]
	Templates      *Collection[models.GoalQuestionTemplate, *models.GoalQuestionTemplate]
}

// NewService wires one collection per finding table with its sort order.
func NewService(db *gorm.DB) *Service {
	s := &Service{
		db:             db,
		Surveys:        newCollection[models.ShellSettlementSurvey, *models.ShellSettlementSurvey](db, "shell_settlement_survey", "created_at DESC", "id DESC"),
		UTResults:      newCollection[models.UTResult, *models.UTResult](db, "ut_result", "category ASC", "course IS NULL", "course ASC", "created_at DESC", "id DESC"),
		EdgeChecks:     newCollection[models.EdgeSettlementCheck, *models.EdgeSettlementCheck](db, "edge_settlement_check", "created_at DESC", "id DESC"),
		PlumbChecks:    newCollection[models.ColumnPlumbnessCheck, *models.ColumnPlumbnessCheck](db, "column_plumbness_check", "column_id ASC", "created_at DESC", "id DESC"),
		VisualFindings: newCollection[models.VisualFinding, *models.VisualFinding](db, "visual_finding", "created_at DESC", "id DESC"),
		OtherNDE:       newCollection[models.OtherNDE, *models.OtherNDE](db, "other_nde", "created_at DESC", "id DESC"),
		GoalResults:    newCollection[models.GoalResult, *models.GoalResult](db, "goal_result", "goal_key ASC"),
		Templates:      newCollection[models.GoalQuestionTemplate, *models.GoalQuestionTemplate](db, "goal_question_template", "goal_key ASC", "prompt ASC"),
	}

	s.GoalResults.unique = &uniqueRule[models.GoalResult]{
		where: func(g *models.GoalResult) (string, []any) {
			return "tank_id = ? AND goal_key = ?", []any{g.TankID, g.GoalKey}
		},
		message: "a goal result for this tank and goal already exists",
	}
	s.Templates.unique = &uniqueRule[models.GoalQuestionTemplate]{
		where: func(t *models.GoalQuestionTemplate) (string, []any) {
			return "goal_key = ? AND prompt = ?", []any{t.GoalKey, t.Prompt}
		},
		message: "this prompt already exists for the goal",
	}
	return s
}

// Ping checks the database connection.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ListTanks returns all tanks ordered by name.
func (s *Service) ListTanks(ctx context.Context) ([]models.Tank, error) {
	tanks := make([]models.Tank, 0)
	if err := s.db.WithContext(ctx).Order("tank_name ASC").Order("created_at ASC").Find(&tanks).Error; err != nil {
		return nil, classify(tankResource, "list", err)
	}
	return tanks, nil
}

func (s *Service) GetTank(ctx context.Context, id uuid.UUID) (*models.Tank, error) {
	return getTank(s.db.WithContext(ctx), id)
}

func getTank(tx *gorm.DB, id uuid.UUID) (*models.Tank, error) {
	var tank models.Tank
	if err := tx.First(&tank, "tank_unique_id = ?", id).Error; err != nil {
		return nil, classify(tankResource, "get", err)
	}
	return &tank, nil
}

// CreateTank inserts t, assigning a new key.
func (s *Service) CreateTank(ctx context.Context, t *models.Tank) error {
	t.ID = uuid.Nil
	err := s.db.WithContext(ctx).Create(t).Error
	return observe(tankResource, "create", classify(tankResource, "create", err))
}

// ReplaceTank overwrites the tank's attributes. The key never changes.
func (s *Service) ReplaceTank(ctx context.Context, id uuid.UUID, t *models.Tank) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := getTank(tx, id)
		if err != nil {
			return err
		}
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
		return tx.Save(t).Error
	})
	return observe(tankResource, "update", classify(tankResource, "update", err))
}

// DeleteTank removes the tank and every dependent finding in one
// transaction.
func (s *Service) DeleteTank(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getTank(tx, id); err != nil {
			return err
		}

		dependents := []any{
			&models.ShellSettlementSurvey{},
			&models.UTResult{},
			&models.EdgeSettlementCheck{},
			&models.ColumnPlumbnessCheck{},
			&models.VisualFinding{},
			&models.OtherNDE{},
			&models.GoalResult{},
		}
		var removed int64
		for _, model := range dependents {
			result := tx.Where("tank_id = ?", id).Delete(model)
			if result.Error != nil {
				return result.Error
			}
			removed += result.RowsAffected
		}

		if err := tx.Delete(&models.Tank{}, "tank_unique_id = ?", id).Error; err != nil {
			return err
		}
		logging.Ctx(ctx).Info().
			Str("tank_id", id.String()).
			Int64("findings_removed", removed).
			Msg("Tank deleted")
		return nil
	})
	return observe(tankResource, "delete", classify(tankResource, "delete", err))
}

// UpsertGoalResult creates the goal result for (tank, goal) or replaces the
// existing one. created reports which happened.
func (s *Service) UpsertGoalResult(ctx context.Context, g *models.GoalResult) (created bool, err error) {
	c := s.GoalResults
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tankExists(tx, g.TankID); err != nil {
			return err
		}

		var existing models.GoalResult
		err := tx.Where("tank_id = ? AND goal_key = ?", g.TankID, g.GoalKey).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(g).Error
		case err != nil:
			return err
		}

		g.ID = existing.ID
		g.CreatedAt = existing.CreatedAt
		return tx.Save(g).Error
	})

	op := "update"
	if created {
		op = "create"
	}
	return created, observe(c.name, op, classify(c.name, fmt.Sprintf("upsert %s", g.GoalKey), err))
}

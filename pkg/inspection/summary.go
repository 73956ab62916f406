package inspection

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/tankinspect/models"
)

// TankSummary is a tank with every dependent collection attached. The tank's
// own fields stay at the top level of the JSON document.
type TankSummary struct {
	models.Tank
	ShellSettlementSurveys []models.ShellSettlementSurvey `json:"shell_settlement_surveys"`
	UTResults              []models.UTResult              `json:"ut_results"`
	EdgeSettlementChecks   []models.EdgeSettlementCheck   `json:"edge_settlement_checks"`
	ColumnPlumbnessChecks  []models.ColumnPlumbnessCheck  `json:"column_plumbness_checks"`
	VisualFindings         []models.VisualFinding         `json:"visual_findings"`
	OtherNDE               []models.OtherNDE              `json:"other_nde"`
	GoalResults            []models.GoalResult            `json:"goal_results"`
}

// Summary reads the tank and all of its findings in one transaction. A
// missing tank is ErrNotFound; a tank without findings gets empty lists.
func (s *Service) Summary(ctx context.Context, id uuid.UUID) (*TankSummary, error) {
	var out TankSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tank, err := getTank(tx, id)
		if err != nil {
			return err
		}
		out.Tank = *tank

		byTank := Filter{Column: "tank_id", Value: id}
		if out.ShellSettlementSurveys, err = s.Surveys.list(tx, byTank); err != nil {
			return err
		}
		if out.UTResults, err = s.UTResults.list(tx, byTank); err != nil {
			return err
		}
		if out.EdgeSettlementChecks, err = s.EdgeChecks.list(tx, byTank); err != nil {
			return err
		}
		if out.ColumnPlumbnessChecks, err = s.PlumbChecks.list(tx, byTank); err != nil {
			return err
		}
		if out.VisualFindings, err = s.VisualFindings.list(tx, byTank); err != nil {
			return err
		}
		if out.OtherNDE, err = s.OtherNDE.list(tx, byTank); err != nil {
			return err
		}
		out.GoalResults, err = s.GoalResults.list(tx, byTank)
		return err
	})
	if err != nil {
		return nil, classify(tankResource, "summary", err)
	}
	return &out, nil
}

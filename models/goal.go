package models

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GoalQuestionTemplate is a reusable prompt offered when filling a goal.
type GoalQuestionTemplate struct {
	Base
	GoalKey   GoalKey `gorm:"size:16;not null;uniqueIndex:idx_goal_template_prompt" json:"goal_key"`
	Prompt    string  `gorm:"size:255;not null;uniqueIndex:idx_goal_template_prompt" json:"prompt"`
	IsDefault bool    `gorm:"not null;default:false" json:"is_default"`
}

// GoalResult is the questionnaire outcome for one goal on one tank. There is
// at most one row per (tank, goal).
type GoalResult struct {
	Base
	TankID            uuid.UUID                           `gorm:"type:uuid;not null;uniqueIndex:idx_goal_result_tank_goal" json:"tank"`
	Tank              *Tank                               `gorm:"foreignKey:TankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	GoalKey           GoalKey                             `gorm:"size:16;not null;uniqueIndex:idx_goal_result_tank_goal" json:"goal_key"`
	Methods           datatypes.JSONSlice[string]         `gorm:"not null" json:"methods"`
	StandardResponses datatypes.JSONMap                   `gorm:"not null" json:"standard_responses"`
	CustomResponses   datatypes.JSONSlice[CustomResponse] `gorm:"not null" json:"custom_responses"`
}

func (g *GoalResult) OwnerID() uuid.UUID { return g.TankID }

// BeforeSave backfills the standard responses on every create and update.
func (g *GoalResult) BeforeSave(tx *gorm.DB) error {
	g.EnsureDefaults()
	return nil
}

// EnsureDefaults merges the canonical responses for the goal under the
// stored ones and replaces nil collections with empty ones.
func (g *GoalResult) EnsureDefaults() {
	g.StandardResponses = BackfillStandardResponses(g.GoalKey, g.StandardResponses)
	if g.Methods == nil {
		g.Methods = datatypes.JSONSlice[string]{}
	}
	if g.CustomResponses == nil {
		g.CustomResponses = datatypes.JSONSlice[CustomResponse]{}
	}
}

// MarshalJSON adds the human-readable goal label.
func (g GoalResult) MarshalJSON() ([]byte, error) {
	type plain GoalResult
	return json.Marshal(struct {
		plain
		GoalKeyDisplay string `json:"goal_key_display"`
	}{plain(g), g.GoalKey.Label()})
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Base carries the integer key and timestamps shared by findings and
// reference records.
type Base struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Identity exposes the embedded Base so stores can carry the key and
// creation time across a full replace.
func (b *Base) Identity() *Base { return b }

// Every finding below belongs to exactly one tank and is removed with it.

type ShellSettlementSurvey struct {
	Base
	TankID       uuid.UUID                              `gorm:"type:uuid;not null;index" json:"tank"`
	Tank         *Tank                                  `gorm:"foreignKey:TankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	StationCount uint                                   `gorm:"not null" json:"station_count"`
	Readings     datatypes.JSONSlice[SettlementReading] `gorm:"not null" json:"readings"`
}

func (s *ShellSettlementSurvey) OwnerID() uuid.UUID { return s.TankID }

// UTResult is one ultrasonic thickness reading.
type UTResult struct {
	Base
	TankID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"tank"`
	Tank        *Tank           `gorm:"foreignKey:TankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Category    UTCategory      `gorm:"size:32;not null"            json:"category"`
	Location    string          `gorm:"size:255;not null"           json:"location"`
	Course      *uint           `json:"course"`
	ThicknessIn decimal.Decimal `gorm:"type:numeric(6,4);not null"  json:"thickness_in"`
	Notes       *string         `gorm:"type:text"                   json:"notes"`
}

func (u *UTResult) OwnerID() uuid.UUID { return u.TankID }

type EdgeSettlementCheck struct {
	Base
	TankID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tank"`
	Tank    *Tank     `gorm:"foreignKey:TankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Present bool      `gorm:"not null"  json:"present"`
	Result  *string   `gorm:"type:text" json:"result"`
}

func (e *EdgeSettlementCheck) OwnerID() uuid.UUID { return e.TankID }

type ColumnPlumbnessCheck struct {
	Base
	TankID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"tank"`
	Tank             *Tank           `gorm:"foreignKey:TankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ColumnID         string          `gorm:"size:64;not null"           json:"column_id"`
	PlumbnessInPerFt decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"plumbness_in_per_ft"`
	Direction        *string         `gorm:"size:255"                   json:"direction"`
}

func (c *ColumnPlumbnessCheck) OwnerID() uuid.UUID { return c.TankID }

type VisualFinding struct {
	Base
	TankID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"tank"`
	Tank        *Tank       `gorm:"foreignKey:TankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Area        VisualArea  `gorm:"size:64;not null"   json:"area"`
	Finding     string      `gorm:"type:text;not null" json:"finding"`
	CommentType CommentType `gorm:"size:32;not null"   json:"comment_type"`
}

func (v *VisualFinding) OwnerID() uuid.UUID { return v.TankID }

// OtherNDE records a non-destructive examination not covered elsewhere.
type OtherNDE struct {
	Base
	TankID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tank"`
	Tank    *Tank     `gorm:"foreignKey:TankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	NDEType string    `gorm:"column:nde_type;size:32;not null" json:"nde_type"`
	Result  string    `gorm:"type:text;not null"               json:"result"`
}

func (OtherNDE) TableName() string { return "other_nde" }

func (o *OtherNDE) OwnerID() uuid.UUID { return o.TankID }

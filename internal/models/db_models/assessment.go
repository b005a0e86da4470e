package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Assessment is one completed mental-game assessment: the raw answers plus a
// 0-100 composite score.
type Assessment struct {
	BaseModel
	AccountID uuid.UUID      `gorm:"index"`
	Answers   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Score     int
	Summary   string
}

// SkillsCheck is the recurring mental-skills self-check: per-skill scores and
// the skill the golfer chose to focus on next.
type SkillsCheck struct {
	BaseModel
	AccountID uuid.UUID      `gorm:"index"`
	Scores    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Focus     string
}

// ControlCircle captures the control-circle exercise: what the golfer listed
// as inside versus outside their control.
type ControlCircle struct {
	BaseModel
	AccountID    uuid.UUID      `gorm:"index"`
	InControl    pq.StringArray `gorm:"type:text[]"`
	OutOfControl pq.StringArray `gorm:"type:text[]"`
	Reflection   string
}

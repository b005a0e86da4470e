package db_models

import (
	"github.com/google/uuid"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

type Goal struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"index"`
	Title       string
	Description string
	TargetDate  *int64
	Status      GoalStatus `gorm:"default:active;index"`
	CompletedAt *int64
}

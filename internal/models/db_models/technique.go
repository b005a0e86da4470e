package db_models

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Technique is a global catalog entry: one mental-game technique (breathing
// routine, pre-shot reset, visualization drill). The embedding lets the chat
// coach pull relevant techniques into its context by similarity.
type Technique struct {
	BaseModel
	Name      string `gorm:"uniqueIndex"`
	Category  string `gorm:"index"` // "focus", "pressure", "routine", ...
	Summary   string
	Steps     datatypes.JSON   `gorm:"type:jsonb;default:'[]'"`
	Embedding *pgvector.Vector `gorm:"type:vector(1536)"`
}

// Scenario is a global catalog entry describing an on-course pressure
// situation with coaching points. Access is premium-gated.
type Scenario struct {
	BaseModel
	Title          string `gorm:"uniqueIndex"`
	Situation      string
	CoachingPoints datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
}

package request_models

import "encoding/json"

type UpdateTierRequest struct {
	Tier string `json:"tier" binding:"required,oneof=free premium ultimate"`
}

type CreateTechniqueRequest struct {
	Name     string          `json:"name" binding:"required,min=3,max=120"`
	Category string          `json:"category" binding:"required"`
	Summary  string          `json:"summary" binding:"required"`
	Steps    json.RawMessage `json:"steps" binding:"required"`
}

type CreateScenarioRequest struct {
	Title          string          `json:"title" binding:"required,min=3,max=160"`
	Situation      string          `json:"situation" binding:"required"`
	CoachingPoints json.RawMessage `json:"coaching_points" binding:"required"`
}

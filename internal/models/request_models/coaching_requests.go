package request_models

import "encoding/json"

type CreateAssessmentRequest struct {
	Answers json.RawMessage `json:"answers" binding:"required"`
	Score   int             `json:"score" binding:"min=0,max=100"`
	Summary string          `json:"summary"`
}

type CreateSkillsCheckRequest struct {
	Scores json.RawMessage `json:"scores" binding:"required"`
	Focus  string          `json:"focus"`
}

type CreateControlCircleRequest struct {
	InControl    []string `json:"in_control" binding:"required"`
	OutOfControl []string `json:"out_of_control" binding:"required"`
	Reflection   string   `json:"reflection"`
}

type CreateGoalRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=120"`
	Description string `json:"description"`
	TargetDate  *int64 `json:"target_date"`
}

type UpdateGoalRequest struct {
	Title       string `json:"title" binding:"omitempty,min=3,max=120"`
	Description string `json:"description"`
	TargetDate  *int64 `json:"target_date"`
	Status      string `json:"status" binding:"omitempty,oneof=active completed abandoned"`
}

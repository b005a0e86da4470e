package response_models

import "encoding/json"

type AssessmentResponse struct {
	ID        string          `json:"id"`
	Answers   json.RawMessage `json:"answers"`
	Score     int             `json:"score"`
	Summary   string          `json:"summary,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

type SkillsCheckResponse struct {
	ID        string          `json:"id"`
	Scores    json.RawMessage `json:"scores"`
	Focus     string          `json:"focus,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

type ControlCircleResponse struct {
	ID           string   `json:"id"`
	InControl    []string `json:"in_control"`
	OutOfControl []string `json:"out_of_control"`
	Reflection   string   `json:"reflection,omitempty"`
	CreatedAt    int64    `json:"created_at"`
}

type GoalResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TargetDate  *int64 `json:"target_date,omitempty"`
	Status      string `json:"status"`
	CompletedAt *int64 `json:"completed_at,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

type TechniqueResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Summary  string          `json:"summary"`
	Steps    json.RawMessage `json:"steps"`
}

type ScenarioResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Situation      string          `json:"situation"`
	CoachingPoints json.RawMessage `json:"coaching_points"`
}

// ProgressSummary aggregates a member's work over a date range.
type ProgressSummary struct {
	From               int64    `json:"from"`
	To                 int64    `json:"to"`
	AssessmentsTaken   int64    `json:"assessments_taken"`
	AverageScore       float64  `json:"average_score"`
	ScoreTrend         float64  `json:"score_trend"` // last minus first score in range
	SkillsChecksTaken  int64    `json:"skills_checks_taken"`
	ControlCirclesDone int64    `json:"control_circles_done"`
	GoalsActive        int64    `json:"goals_active"`
	GoalsCompleted     int64    `json:"goals_completed"`
	FocusAreas         []string `json:"focus_areas,omitempty"`
}

package model

type ProgressResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
}

type CalculationResult struct {
	Birthday string               `json:"birthday"`
	Today    string               `json:"today"`
	Gender   Gender               `json:"gender"`
	Nation   string               `json:"nation"`
	Record   LifespanRecord       `json:"record"`
	Progress ProgressInfo         `json:"progress"`
	Messages []CalculationMessage `json:"messages"`
}

type SearchResponse struct {
	Query   string        `json:"query"`
	Matches []SearchMatch `json:"matches"`
}

type NationResponse struct {
	Nation string         `json:"nation"`
	Code   string         `json:"code,omitempty"`
	Record LifespanRecord `json:"record"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

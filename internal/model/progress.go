package model

// ProgressInfo is the result of a life progress calculation.
type ProgressInfo struct {
	Spent        int     `json:"spent"`
	Progress     float64 `json:"progress"`
	Rest         int     `json:"rest"`
	RestProgress float64 `json:"rest_progress"`
}

// SearchMatch is one nation matched by a fuzzy search.
type SearchMatch struct {
	Nation         string         `json:"nation"`
	Code           string         `json:"code,omitempty"`
	Record         LifespanRecord `json:"record"`
	Score          int            `json:"score"`
	MatchedIndices []int          `json:"matched_indices"`
}

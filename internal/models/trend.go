package models

// Trend is one keyword the LLM selected for a project. Rows are immutable
// once written; duplicate keywords across runs are allowed.
type Trend struct {
	ID                  int64  `json:"id"`
	ProjectID           int64  `json:"project_id"`
	Keyword             string `json:"keyword"`
	Justification       string `json:"justification"`
	SuggestedVideoTitle string `json:"suggested_video_title"`
	LongTermPotential   bool   `json:"long_term_potential"`
}

// TrendSelection mirrors the JSON schema the generative model is constrained
// to when selecting trends.
type TrendSelection struct {
	SelectedTrends []SelectedTrend `json:"selected_trends"`
}

type SelectedTrend struct {
	Keyword             string `json:"keyword"`
	Justification       string `json:"justification"`
	SuggestedVideoTitle string `json:"suggested_video_title"`
	LongTermPotential   bool   `json:"long_term_potential"`
}

package models

// Pipeline states for a video. A video moves unanalyzed → analyzed →
// (top picks only) scripted and never backwards.
const (
	StateUnanalyzed = "unanalyzed"
	StateAnalyzed   = "analyzed"
	StateScripted   = "scripted"
)

// VideoStats is the raw engagement-counter blob from the provider, stored
// as-is (schema-less) in a JSONB column.
type VideoStats map[string]float64

type Video struct {
	ID           int64      `json:"id"`
	ProjectID    int64      `json:"project_id"`
	TrendKeyword string     `json:"trend_keyword"`
	VideoID      string     `json:"video_id"` // provider's id, globally unique
	Author       string     `json:"author_username"`
	CreateTime   int64      `json:"create_time"`
	Description  string     `json:"description"`
	VideoURL     string     `json:"video_url"`
	CoverURL     string     `json:"cover_url"`
	Stats        VideoStats `json:"stats"`

	PipelineState string `json:"pipeline_state"`

	SentimentScore  *float64 `json:"sentiment_compound_score"`
	SentimentLabel  *string  `json:"sentiment_polarity"`
	Emotion         *string  `json:"emotion"`
	EngagementScore *float64 `json:"engagement_score"`
	IsTopPick       bool     `json:"is_top_pick"`

	GeneratedScript *string `json:"generated_script"`
	LocalFilePath   *string `json:"local_file_path"`
}

// Analysis carries the results attached to a video by the analyze stage.
type Analysis struct {
	SentimentScore  float64 `json:"sentiment_compound_score"`
	SentimentLabel  string  `json:"sentiment_polarity"`
	Emotion         string  `json:"emotion"`
	EngagementScore float64 `json:"engagement_score"`
}

// AnalyzedVideo pairs a fetched video with its computed analysis.
type AnalyzedVideo struct {
	Video
	Analysis Analysis `json:"analysis"`
}

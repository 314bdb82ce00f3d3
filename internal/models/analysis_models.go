package models

import "time"

type AnalysisMode string

const (
	AnalysisModeVideo AnalysisMode = "video"
	AnalysisModeTheme AnalysisMode = "theme"
)

type AnalysisResult struct {
	Comments   []EnrichedComment `json:"comments"`
	Summary    string            `json:"summary"`
	Keywords   []string          `json:"keywords"`
	VideosUsed []VideoLink       `json:"videosUsed"`
}

// AnalysisEvent is the telemetry record published after a successful analysis.
type AnalysisEvent struct {
	EventID      string       `json:"event_id"`
	Mode         AnalysisMode `json:"mode"`
	Query        string       `json:"query"`
	VideoCount   int          `json:"video_count"`
	CommentCount int          `json:"comment_count"`
	Positive     int          `json:"positive"`
	Neutral      int          `json:"neutral"`
	Negative     int          `json:"negative"`
	KeywordCount int          `json:"keyword_count"`
	CreatedAt    time.Time    `json:"created_at"`
}

package database

import "time"

// ScoreRecord is a persisted priority-scoring result
type ScoreRecord struct {
	ID              string    `json:"id"`
	FeedbackID      string    `json:"feedback_id"`
	Title           string    `json:"title"`
	Category        string    `json:"category,omitempty"`
	WeightedScore   float64   `json:"weighted_score"`
	Level           string    `json:"level"`
	Justification   string    `json:"justification"`
	SuggestedAction string    `json:"suggested_action"`
	Breakdown       string    `json:"breakdown"` // JSON string
	CreatedAt       time.Time `json:"created_at"`
}

// ExperimentRunRecord is a persisted experiment evaluation
type ExperimentRunRecord struct {
	ID                string    `json:"id"`
	ExperimentKey     string    `json:"experiment_key"`
	Method            string    `json:"method"`
	TotalVisitors     int       `json:"total_visitors"`
	TotalConversions  int       `json:"total_conversions"`
	HasWinner         bool      `json:"has_winner"`
	RecommendedAction string    `json:"recommended_action"`
	Results           string    `json:"results"` // JSON string
	CreatedAt         time.Time `json:"created_at"`
}

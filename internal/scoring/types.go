package scoring

import "time"

// Tier identifies the requester's subscription plan.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Strategy is the closed set of company strategy labels that can bias
// scoring. Anything outside this set contributes no alignment bonus.
type Strategy string

const (
	StrategyGrowth     Strategy = "growth"
	StrategyRetention  Strategy = "retention"
	StrategyExpansion  Strategy = "expansion"
	StrategyEfficiency Strategy = "efficiency"
)

// PriorityLevel is the discrete classification derived from the score.
type PriorityLevel string

const (
	LevelCritical PriorityLevel = "critical"
	LevelHigh     PriorityLevel = "high"
	LevelMedium   PriorityLevel = "medium"
	LevelLow      PriorityLevel = "low"
)

// FeedbackSnapshot is an immutable view of a feedback item at scoring time.
type FeedbackSnapshot struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EngagementMetrics carries the raw engagement counts fetched by the caller.
type EngagementMetrics struct {
	Votes         int     `json:"votes"`
	Comments      int     `json:"comments"`
	UniqueVoters  int     `json:"unique_voters"`
	PercentActive float64 `json:"percent_active"` // share of active users engaged, 0-100
	SimilarPosts  int     `json:"similar_posts"`
}

// RequesterContext describes who filed the feedback.
type RequesterContext struct {
	Tier       Tier `json:"tier"`
	IsChampion bool `json:"is_champion"`
}

// BusinessContext carries the organization's current planning context.
type BusinessContext struct {
	Quarter  string   `json:"quarter,omitempty"`
	Strategy Strategy `json:"strategy,omitempty"`
}

// Input bundles everything the scorer needs for one call.
type Input struct {
	Snapshot   FeedbackSnapshot  `json:"snapshot"`
	Engagement EngagementMetrics `json:"engagement"`
	Requester  RequesterContext  `json:"requester"`
	Business   BusinessContext   `json:"business"`
}

// Breakdown exposes each dimension's sub-score in [0,1] for explainability.
type Breakdown struct {
	Engagement  float64 `json:"engagement"`
	Reach       float64 `json:"reach"`
	Duplication float64 `json:"duplication"`
	Requester   float64 `json:"requester"`
	Urgency     float64 `json:"urgency"`
	Alignment   float64 `json:"alignment"`
}

// ScoreResult is the scorer's output. It carries no identity of its own;
// persistence is the caller's concern.
type ScoreResult struct {
	WeightedScore   float64       `json:"weighted_score"` // 0..10
	Level           PriorityLevel `json:"level"`
	Justification   string        `json:"justification"`
	SuggestedAction string        `json:"suggested_action"`
	Breakdown       Breakdown     `json:"breakdown"`
}

package types

import (
	"github.com/clarionhq/feedback-engine/internal/experiment"
	"github.com/clarionhq/feedback-engine/internal/scoring"
)

// ScoreRequest is the body of POST /score. The caller fetches the raw counts
// from its feedback store and passes them in; the engine never reads storage.
type ScoreRequest struct {
	Snapshot   scoring.FeedbackSnapshot  `json:"snapshot" binding:"required"`
	Engagement scoring.EngagementMetrics `json:"engagement"`
	Requester  scoring.RequesterContext  `json:"requester"`
	Business   scoring.BusinessContext   `json:"business"`
}

// Input converts the request into the scorer's input bundle.
func (r ScoreRequest) Input() scoring.Input {
	return scoring.Input{
		Snapshot:   r.Snapshot,
		Engagement: r.Engagement,
		Requester:  r.Requester,
		Business:   r.Business,
	}
}

// ExperimentRequest is the body of POST /experiments/results. Method and
// TargetSampleSize override the server defaults when set.
type ExperimentRequest struct {
	ExperimentKey    string                    `json:"experiment_key" binding:"required"`
	Variants         []experiment.VariantInput `json:"variants" binding:"required"`
	DaysRunning      int                       `json:"days_running"`
	TargetSampleSize int                       `json:"target_sample_size,omitempty"`
	Method           experiment.Method         `json:"method,omitempty"`
}

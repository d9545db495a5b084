package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clarionhq/feedback-engine/internal/database"
	"github.com/clarionhq/feedback-engine/internal/errors"
	"github.com/clarionhq/feedback-engine/internal/experiment"
	"github.com/clarionhq/feedback-engine/internal/scoring"
)

// Service persists scoring and experiment outcomes so the product UI can
// show trends. The computation cores never touch this; handlers call it
// after the fact.
type Service struct {
	repo *database.Repository
}

// NewService creates a new history service
func NewService(repo *database.Repository) *Service {
	return &Service{repo: repo}
}

// SaveScore stores one scoring result keyed by the feedback item
func (s *Service) SaveScore(snapshot scoring.FeedbackSnapshot, result scoring.ScoreResult) error {
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	rec := database.ScoreRecord{
		ID:              uuid.New().String(),
		FeedbackID:      snapshot.ID,
		Title:           snapshot.Title,
		Category:        snapshot.Category,
		WeightedScore:   result.WeightedScore,
		Level:           string(result.Level),
		Justification:   result.Justification,
		SuggestedAction: result.SuggestedAction,
		Breakdown:       string(breakdownJSON),
		CreatedAt:       time.Now(),
	}

	if err := s.repo.InsertScore(rec); err != nil {
		return errors.NewStorageError("failed to persist score record", err)
	}

	slog.Info("Score saved to history",
		"feedback_id", snapshot.ID,
		"score", result.WeightedScore,
		"level", result.Level,
	)

	return nil
}

// RecentScores returns the most recent persisted scores
func (s *Service) RecentScores(limit int) ([]database.ScoreRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.RecentScores(limit)
}

// ScoresForFeedback returns the score trail of one feedback item
func (s *Service) ScoresForFeedback(feedbackID string, limit int) ([]database.ScoreRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ScoresByFeedback(feedbackID, limit)
}

// SaveRun stores one experiment evaluation
func (s *Service) SaveRun(experimentKey string, method experiment.Method, results experiment.Results) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	rec := database.ExperimentRunRecord{
		ID:                uuid.New().String(),
		ExperimentKey:     experimentKey,
		Method:            string(method),
		TotalVisitors:     results.TotalVisitors,
		TotalConversions:  results.TotalConversions,
		HasWinner:         results.HasSignificantWinner,
		RecommendedAction: string(results.RecommendedAction),
		Results:           string(resultsJSON),
		CreatedAt:         time.Now(),
	}

	if err := s.repo.InsertExperimentRun(rec); err != nil {
		return errors.NewStorageError("failed to persist experiment run", err)
	}

	slog.Info("Experiment run saved to history",
		"experiment_key", experimentKey,
		"action", results.RecommendedAction,
		"has_winner", results.HasSignificantWinner,
	)

	return nil
}

// RunsForExperiment returns past evaluations for one experiment
func (s *Service) RunsForExperiment(experimentKey string, limit int) ([]database.ExperimentRunRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.RunsByExperiment(experimentKey, limit)
}

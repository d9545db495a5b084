package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db)
}

func TestInsertAndQueryScores(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Now().Add(-time.Hour)
	records := []ScoreRecord{
		{
			ID:              "rec-1",
			FeedbackID:      "fb-1",
			Title:           "Export crashes",
			Category:        "bug",
			WeightedScore:   6.1,
			Level:           "high",
			Justification:   "High-urgency bug category.",
			SuggestedAction: "Schedule a fix for the upcoming sprint",
			Breakdown:       `{"engagement":0.58}`,
			CreatedAt:       base,
		},
		{
			ID:              "rec-2",
			FeedbackID:      "fb-1",
			Title:           "Export crashes",
			Category:        "bug",
			WeightedScore:   7.2,
			Level:           "high",
			Justification:   "Engagement grew.",
			SuggestedAction: "Schedule a fix for the upcoming sprint",
			Breakdown:       `{"engagement":0.7}`,
			CreatedAt:       base.Add(30 * time.Minute),
		},
		{
			ID:              "rec-3",
			FeedbackID:      "fb-2",
			Title:           "Dark mode",
			WeightedScore:   1.1,
			Level:           "low",
			Justification:   "Limited signal so far.",
			SuggestedAction: "Add to backlog for periodic review",
			Breakdown:       `{}`,
			CreatedAt:       base.Add(45 * time.Minute),
		},
	}

	for _, rec := range records {
		require.NoError(t, repo.InsertScore(rec))
	}

	t.Run("recent scores newest first", func(t *testing.T) {
		got, err := repo.RecentScores(10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "rec-3", got[0].ID)
		assert.Equal(t, "rec-2", got[1].ID)
		assert.Equal(t, "rec-1", got[2].ID)
	})

	t.Run("recent scores honors limit", func(t *testing.T) {
		got, err := repo.RecentScores(1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "rec-3", got[0].ID)
	})

	t.Run("scores by feedback", func(t *testing.T) {
		got, err := repo.ScoresByFeedback("fb-1", 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "rec-2", got[0].ID)
		assert.InDelta(t, 7.2, got[0].WeightedScore, 1e-9)
	})

	t.Run("empty category scans cleanly", func(t *testing.T) {
		got, err := repo.ScoresByFeedback("fb-2", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Category)
	})

	t.Run("unknown feedback yields empty set", func(t *testing.T) {
		got, err := repo.ScoresByFeedback("fb-nope", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestInsertAndQueryExperimentRuns(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Now().Add(-time.Hour)
	runs := []ExperimentRunRecord{
		{
			ID:                "run-1",
			ExperimentKey:     "checkout-cta",
			Method:            "bayesian",
			TotalVisitors:     2000,
			TotalConversions:  250,
			HasWinner:         true,
			RecommendedAction: "stop_winner",
			Results:           `{"has_significant_winner":true}`,
			CreatedAt:         base,
		},
		{
			ID:                "run-2",
			ExperimentKey:     "checkout-cta",
			Method:            "bayesian",
			TotalVisitors:     2400,
			TotalConversions:  300,
			HasWinner:         true,
			RecommendedAction: "stop_winner",
			Results:           `{"has_significant_winner":true}`,
			CreatedAt:         base.Add(10 * time.Minute),
		},
		{
			ID:                "run-3",
			ExperimentKey:     "onboarding-copy",
			Method:            "frequentist",
			TotalVisitors:     40,
			TotalConversions:  3,
			HasWinner:         false,
			RecommendedAction: "needs_more_data",
			Results:           `{"has_significant_winner":false}`,
			CreatedAt:         base.Add(20 * time.Minute),
		},
	}

	for _, run := range runs {
		require.NoError(t, repo.InsertExperimentRun(run))
	}

	got, err := repo.RunsByExperiment("checkout-cta", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "run-2", got[0].ID)
	assert.True(t, got[0].HasWinner)
	assert.Equal(t, "stop_winner", got[0].RecommendedAction)

	got, err = repo.RunsByExperiment("onboarding-copy", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "frequentist", got[0].Method)
	assert.False(t, got[0].HasWinner)
}

func TestDuplicateIDRejected(t *testing.T) {
	repo := newTestRepo(t)

	rec := ScoreRecord{
		ID:              "dup",
		FeedbackID:      "fb-1",
		Title:           "Anything",
		WeightedScore:   1,
		Level:           "low",
		Justification:   "x",
		SuggestedAction: "x",
		Breakdown:       "{}",
		CreatedAt:       time.Now(),
	}

	require.NoError(t, repo.InsertScore(rec))
	assert.Error(t, repo.InsertScore(rec))
}

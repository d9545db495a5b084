package database

import (
	"database/sql"
	"fmt"
)

// Repository provides data access for score history and experiment runs
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// InsertScore stores a scoring result
func (r *Repository) InsertScore(rec ScoreRecord) error {
	query := `
		INSERT INTO score_history (
			id, feedback_id, title, category, weighted_score, level,
			justification, suggested_action, breakdown, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		rec.ID, rec.FeedbackID, rec.Title, rec.Category, rec.WeightedScore,
		rec.Level, rec.Justification, rec.SuggestedAction, rec.Breakdown, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert score record: %w", err)
	}

	return nil
}

// RecentScores returns the most recent score records, newest first
func (r *Repository) RecentScores(limit int) ([]ScoreRecord, error) {
	query := `
		SELECT id, feedback_id, title, category, weighted_score, level,
		       justification, suggested_action, breakdown, created_at
		FROM score_history
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent scores: %w", err)
	}
	defer rows.Close()

	return scanScoreRecords(rows)
}

// ScoresByFeedback returns the score history for one feedback item
func (r *Repository) ScoresByFeedback(feedbackID string, limit int) ([]ScoreRecord, error) {
	query := `
		SELECT id, feedback_id, title, category, weighted_score, level,
		       justification, suggested_action, breakdown, created_at
		FROM score_history
		WHERE feedback_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, feedbackID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores for feedback: %w", err)
	}
	defer rows.Close()

	return scanScoreRecords(rows)
}

func scanScoreRecords(rows *sql.Rows) ([]ScoreRecord, error) {
	var records []ScoreRecord
	for rows.Next() {
		var rec ScoreRecord
		var category sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.FeedbackID, &rec.Title, &category, &rec.WeightedScore,
			&rec.Level, &rec.Justification, &rec.SuggestedAction, &rec.Breakdown, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		rec.Category = category.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// InsertExperimentRun stores an experiment evaluation
func (r *Repository) InsertExperimentRun(rec ExperimentRunRecord) error {
	query := `
		INSERT INTO experiment_runs (
			id, experiment_key, method, total_visitors, total_conversions,
			has_winner, recommended_action, results, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		rec.ID, rec.ExperimentKey, rec.Method, rec.TotalVisitors, rec.TotalConversions,
		rec.HasWinner, rec.RecommendedAction, rec.Results, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert experiment run: %w", err)
	}

	return nil
}

// RunsByExperiment returns past evaluations for one experiment, newest first
func (r *Repository) RunsByExperiment(experimentKey string, limit int) ([]ExperimentRunRecord, error) {
	query := `
		SELECT id, experiment_key, method, total_visitors, total_conversions,
		       has_winner, recommended_action, results, created_at
		FROM experiment_runs
		WHERE experiment_key = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, experimentKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query experiment runs: %w", err)
	}
	defer rows.Close()

	var records []ExperimentRunRecord
	for rows.Next() {
		var rec ExperimentRunRecord
		if err := rows.Scan(
			&rec.ID, &rec.ExperimentKey, &rec.Method, &rec.TotalVisitors, &rec.TotalConversions,
			&rec.HasWinner, &rec.RecommendedAction, &rec.Results, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan experiment run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

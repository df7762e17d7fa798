package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/mesoplan/internal/models"
)

// FeedbackRecord is one end-of-cycle evaluation submitted by a user.
type FeedbackRecord struct {
	ID              int64           `json:"id"`
	UserID          int             `json:"user_id"`
	MesocycleID     *uuid.UUID      `json:"mesocycle_id,omitempty"`
	Feedback        models.Feedback `json:"feedback"`
	FocusSuggestion string          `json:"focus_suggestion,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// InsertFeedback stores a feedback record and returns its ID.
func (db *DB) InsertFeedback(ctx context.Context, rec FeedbackRecord) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO cycle_feedback (user_id, mesocycle_id, sensation, energy_level, soreness_level, joint_pain, focus_suggestion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, rec.UserID, rec.MesocycleID, rec.Feedback.Sensation, rec.Feedback.EnergyLevel,
		rec.Feedback.SorenessLevel, rec.Feedback.JointPain, rec.FocusSuggestion,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting feedback: %w", err)
	}
	return id, nil
}

// LatestFeedback returns the most recent feedback for a user or ErrNotFound.
func (db *DB) LatestFeedback(ctx context.Context, userID int) (*FeedbackRecord, error) {
	rec := FeedbackRecord{UserID: userID}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, mesocycle_id, sensation, energy_level, soreness_level, joint_pain, focus_suggestion, created_at
		FROM cycle_feedback
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID).Scan(&rec.ID, &rec.MesocycleID, &rec.Feedback.Sensation, &rec.Feedback.EnergyLevel,
		&rec.Feedback.SorenessLevel, &rec.Feedback.JointPain, &rec.FocusSuggestion, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest feedback for user %d: %w", userID, err)
	}
	return &rec, nil
}

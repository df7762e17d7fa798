package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meltforce/mesoplan/internal/models"
)

// ProfileRecord is a user's stored planning profile and weekly schedule.
type ProfileRecord struct {
	UserID    int                    `json:"user_id"`
	Profile   models.Profile         `json:"profile"`
	Schedule  []models.ScheduleEntry `json:"schedule"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// UpsertProfile stores the profile and schedule for a user, replacing any
// previous version.
func (db *DB) UpsertProfile(ctx context.Context, rec ProfileRecord) error {
	profile, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	schedule, err := json.Marshal(rec.Schedule)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO user_profiles (user_id, profile, schedule, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
			SET profile = EXCLUDED.profile, schedule = EXCLUDED.schedule, updated_at = NOW()
	`, rec.UserID, profile, schedule)
	if err != nil {
		return fmt.Errorf("upserting profile for user %d: %w", rec.UserID, err)
	}
	return nil
}

// GetProfile returns the stored profile for a user or ErrNotFound.
func (db *DB) GetProfile(ctx context.Context, userID int) (*ProfileRecord, error) {
	var (
		rec               = ProfileRecord{UserID: userID}
		profile, schedule []byte
	)
	err := db.Pool.QueryRow(ctx,
		`SELECT profile, schedule, updated_at FROM user_profiles WHERE user_id = $1`,
		userID).Scan(&profile, &schedule, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile for user %d: %w", userID, err)
	}
	if err := json.Unmarshal(profile, &rec.Profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	if err := json.Unmarshal(schedule, &rec.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	return &rec, nil
}

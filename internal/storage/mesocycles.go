package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/mesoplan/internal/models"
)

// MesocycleRecord is a persisted plan.
type MesocycleRecord struct {
	ID        uuid.UUID         `json:"id"`
	UserID    int               `json:"user_id"`
	IsCurrent bool              `json:"is_current"`
	CreatedAt time.Time         `json:"created_at"`
	Plan      *models.Mesocycle `json:"plan"`
}

// MesocycleSummary is a plan's header without its weeks.
type MesocycleSummary struct {
	ID         uuid.UUID `json:"id"`
	Objective  string    `json:"objective"`
	Split      string    `json:"split"`
	VolumeTier int       `json:"volume_tier"`
	Weeks      int       `json:"weeks"`
	IsCurrent  bool      `json:"is_current"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaveCurrentMesocycle stores rec as the user's current plan. The previous
// current plan, if any, is kept as history. Both changes happen in one
// transaction.
func (db *DB) SaveCurrentMesocycle(ctx context.Context, rec MesocycleRecord) error {
	if rec.Plan == nil {
		return errors.New("saving mesocycle: nil plan")
	}
	plan, err := json.Marshal(rec.Plan)
	if err != nil {
		return fmt.Errorf("encoding mesocycle: %w", err)
	}
	err = pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE mesocycles SET is_current = FALSE WHERE user_id = $1 AND is_current`,
			rec.UserID); err != nil {
			return fmt.Errorf("retiring current mesocycle: %w", err)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO mesocycles (id, user_id, objective, split, volume_tier, weeks, plan, is_current, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
		`, rec.ID, rec.UserID, rec.Plan.Objective.String(), rec.Plan.Split.String(),
			rec.Plan.VolumeTier, len(rec.Plan.Weeks), plan, rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting mesocycle: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving mesocycle for user %d: %w", rec.UserID, err)
	}
	return nil
}

// GetCurrentMesocycle returns the user's current plan or ErrNotFound.
func (db *DB) GetCurrentMesocycle(ctx context.Context, userID int) (*MesocycleRecord, error) {
	rec := MesocycleRecord{UserID: userID, IsCurrent: true}
	var plan []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT id, plan, created_at FROM mesocycles WHERE user_id = $1 AND is_current`,
		userID).Scan(&rec.ID, &plan, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying current mesocycle for user %d: %w", userID, err)
	}
	rec.Plan = &models.Mesocycle{}
	if err := json.Unmarshal(plan, rec.Plan); err != nil {
		return nil, fmt.Errorf("decoding mesocycle %s: %w", rec.ID, err)
	}
	return &rec, nil
}

// ListMesocycles returns the user's plans, newest first.
func (db *DB) ListMesocycles(ctx context.Context, userID, limit int) ([]MesocycleSummary, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, objective, split, volume_tier, weeks, is_current, created_at
		FROM mesocycles
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying mesocycles: %w", err)
	}
	defer rows.Close()

	var result []MesocycleSummary
	for rows.Next() {
		var m MesocycleSummary
		if err := rows.Scan(&m.ID, &m.Objective, &m.Split, &m.VolumeTier, &m.Weeks, &m.IsCurrent, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning mesocycle: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

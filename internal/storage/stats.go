package storage

import (
	"context"
	"fmt"
	"time"
)

// PlanStats holds aggregate statistics about a user's planning history.
type PlanStats struct {
	TotalMesocycles int64           `json:"total_mesocycles"`
	TotalFeedback   int64           `json:"total_feedback"`
	EarliestPlan    *time.Time      `json:"earliest_plan"`
	LatestPlan      *time.Time      `json:"latest_plan"`
	ByObjective     []ObjectiveStat `json:"by_objective"`
}

// ObjectiveStat counts the mesocycles planned for one objective.
type ObjectiveStat struct {
	Objective string  `json:"objective"`
	Count     int64   `json:"count"`
	AvgTier   float64 `json:"avg_volume_tier"`
}

// GetPlanStats returns aggregate statistics for a user's stored plans and feedback.
func (db *DB) GetPlanStats(ctx context.Context, userID int) (*PlanStats, error) {
	stats := &PlanStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(created_at), MAX(created_at) FROM mesocycles WHERE user_id = $1`, userID,
	).Scan(&stats.TotalMesocycles, &stats.EarliestPlan, &stats.LatestPlan)
	if err != nil {
		return nil, fmt.Errorf("counting mesocycles: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM cycle_feedback WHERE user_id = $1`, userID,
	).Scan(&stats.TotalFeedback)
	if err != nil {
		return nil, fmt.Errorf("counting feedback: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT objective, COUNT(*), AVG(volume_tier)::float8
		 FROM mesocycles
		 WHERE user_id = $1
		 GROUP BY objective
		 ORDER BY COUNT(*) DESC, objective`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying mesocycles by objective: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ObjectiveStat
		if err := rows.Scan(&s.Objective, &s.Count, &s.AvgTier); err != nil {
			return nil, fmt.Errorf("scanning objective stat: %w", err)
		}
		stats.ByObjective = append(stats.ByObjective, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

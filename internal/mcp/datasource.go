package mcp

import (
	"context"

	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
	"github.com/meltforce/mesoplan/internal/plans"
	"github.com/meltforce/mesoplan/internal/storage"
)

// DataSource abstracts the planning layer for MCP tools. Both *plans.Service
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Preview(ctx context.Context, req planner.Request) (*models.Mesocycle, error)
	Profile(ctx context.Context, userID int) (*storage.ProfileRecord, error)
	PlanForUser(ctx context.Context, userID int, next *models.NextCycleConfig) (*storage.MesocycleRecord, error)
	SubmitFeedback(ctx context.Context, userID int, in plans.FeedbackInput) (*storage.FeedbackRecord, error)
	Current(ctx context.Context, userID int) (*storage.MesocycleRecord, error)
	History(ctx context.Context, userID, limit int) ([]storage.MesocycleSummary, error)
	SessionDetail(ctx context.Context, userID, week int, day models.Day) (*plans.SessionDetail, error)
	Stats(ctx context.Context, userID int) (*storage.PlanStats, error)
}

// Compile-time check: *plans.Service satisfies DataSource.
var _ DataSource = (*plans.Service)(nil)

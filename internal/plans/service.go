// Package plans stores profiles and feedback and keeps each user's current
// mesocycle up to date.
package plans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
	"github.com/meltforce/mesoplan/internal/storage"
)

var (
	ErrNoProfile       = errors.New("plans: no profile stored")
	ErrNoMesocycle     = errors.New("plans: no current mesocycle")
	ErrSessionNotFound = errors.New("plans: session not found")
	ErrInvalidFeedback = errors.New("plans: invalid feedback")
)

// DefaultHistoryLimit caps History when the caller passes no limit.
const DefaultHistoryLimit = 20

// Store is the persistence the service needs. *storage.DB implements it.
type Store interface {
	UpsertProfile(ctx context.Context, rec storage.ProfileRecord) error
	GetProfile(ctx context.Context, userID int) (*storage.ProfileRecord, error)
	InsertFeedback(ctx context.Context, rec storage.FeedbackRecord) (int64, error)
	LatestFeedback(ctx context.Context, userID int) (*storage.FeedbackRecord, error)
	SaveCurrentMesocycle(ctx context.Context, rec storage.MesocycleRecord) error
	GetCurrentMesocycle(ctx context.Context, userID int) (*storage.MesocycleRecord, error)
	ListMesocycles(ctx context.Context, userID, limit int) ([]storage.MesocycleSummary, error)
	GetPlanStats(ctx context.Context, userID int) (*storage.PlanStats, error)
}

var _ Store = (*storage.DB)(nil)

// ProfileInput is what a user submits to set up planning.
type ProfileInput struct {
	Profile  models.Profile         `json:"profile"`
	Schedule []models.ScheduleEntry `json:"schedule"`
}

// FeedbackInput is an end-of-cycle evaluation.
type FeedbackInput struct {
	models.Feedback
	FocusSuggestion string `json:"focus_suggestion,omitempty"`
}

// SessionDetail is one planned day together with its week's context.
type SessionDetail struct {
	MesocycleID         uuid.UUID         `json:"mesocycle_id"`
	Objective           models.Objective  `json:"objective"`
	Split               models.SplitType  `json:"split"`
	Week                int               `json:"week"`
	Phase               string            `json:"phase"`
	TargetSetsPerMuscle int               `json:"target_sets_per_muscle"`
	Day                 models.PlannedDay `json:"day"`
}

// Service coordinates planning and persistence.
type Service struct {
	store Store
	weeks int
	log   *slog.Logger
	now   func() time.Time
}

// New creates a Service. weeks is the default mesocycle length; zero uses
// planner.DefaultWeeks.
func New(store Store, weeks int, log *slog.Logger) *Service {
	if weeks == 0 {
		weeks = planner.DefaultWeeks
	}
	return &Service{store: store, weeks: weeks, log: log, now: time.Now}
}

// Preview plans a mesocycle without storing anything.
func (s *Service) Preview(ctx context.Context, req planner.Request) (*models.Mesocycle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Weeks == 0 {
		req.Weeks = s.weeks
	}
	return planner.PlanMesocycle(req)
}

// SaveProfile validates and stores a user's profile and schedule.
func (s *Service) SaveProfile(ctx context.Context, userID int, in ProfileInput) (*storage.ProfileRecord, error) {
	if err := planner.ValidateSchedule(in.Schedule); err != nil {
		return nil, err
	}
	profile := planner.NormalizeProfile(in.Profile)
	if profile.TrainingDaysPerWeek == 0 {
		profile.TrainingDaysPerWeek = planner.TrainableDays(in.Schedule)
	}
	rec := storage.ProfileRecord{UserID: userID, Profile: profile, Schedule: in.Schedule, UpdatedAt: s.now()}
	if err := s.store.UpsertProfile(ctx, rec); err != nil {
		return nil, err
	}
	s.log.Info("profile saved", "user_id", userID, "experience", profile.ExperienceLevel, "goal", profile.FitnessGoal,
		"trainable_days", planner.TrainableDays(in.Schedule))
	return &rec, nil
}

// Profile returns the stored profile for a user.
func (s *Service) Profile(ctx context.Context, userID int) (*storage.ProfileRecord, error) {
	rec, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoProfile
	}
	return rec, err
}

// PlanForUser plans a new mesocycle from the user's stored profile and the
// feedback on the mesocycle it replaces, and makes it the current one. A nil
// next falls back to the focus suggestion recorded with that feedback.
func (s *Service) PlanForUser(ctx context.Context, userID int, next *models.NextCycleConfig) (*storage.MesocycleRecord, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, err := s.store.GetCurrentMesocycle(ctx, userID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		current = nil
	case err != nil:
		return nil, err
	}
	fb, err := s.priorFeedback(ctx, userID, current)
	if err != nil {
		return nil, err
	}

	// Replacing a cycle nobody evaluated continues with an empty evaluation.
	var prior *models.Feedback
	if current != nil {
		prior = &models.Feedback{}
	}
	if fb != nil {
		prior = &fb.Feedback
		if next == nil && fb.FocusSuggestion != "" {
			next = &models.NextCycleConfig{FocusSuggestion: fb.FocusSuggestion}
		}
	}

	plan, err := planner.PlanMesocycle(planner.Request{
		Profile:       profile.Profile,
		Schedule:      profile.Schedule,
		PriorFeedback: prior,
		NextCycle:     next,
		Weeks:         s.weeks,
	})
	if err != nil {
		return nil, fmt.Errorf("planning mesocycle: %w", err)
	}

	rec := storage.MesocycleRecord{ID: uuid.New(), UserID: userID, IsCurrent: true, CreatedAt: s.now(), Plan: plan}
	if err := s.store.SaveCurrentMesocycle(ctx, rec); err != nil {
		return nil, err
	}
	s.log.Info("mesocycle planned", "user_id", userID, "id", rec.ID, "objective", plan.Objective,
		"split", plan.Split, "volume_tier", plan.VolumeTier, "reason", plan.ObjectiveReason)
	return &rec, nil
}

// priorFeedback returns the latest feedback if it evaluates current, or nil.
// Before the first cycle only feedback not bound to any mesocycle counts.
func (s *Service) priorFeedback(ctx context.Context, userID int, current *storage.MesocycleRecord) (*storage.FeedbackRecord, error) {
	fb, err := s.store.LatestFeedback(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	switch {
	case current == nil && fb.MesocycleID == nil:
		return fb, nil
	case current != nil && fb.MesocycleID != nil && *fb.MesocycleID == current.ID:
		return fb, nil
	}
	return nil, nil
}

// SubmitFeedback records an evaluation of the current cycle. Levels must be
// within 0-10, where zero means not reported.
func (s *Service) SubmitFeedback(ctx context.Context, userID int, in FeedbackInput) (*storage.FeedbackRecord, error) {
	for name, v := range map[string]int{
		"energy_level":   in.EnergyLevel,
		"soreness_level": in.SorenessLevel,
		"joint_pain":     in.JointPain,
	} {
		if v < 0 || v > 10 {
			return nil, fmt.Errorf("%w: %s must be between 0 and 10", ErrInvalidFeedback, name)
		}
	}

	rec := storage.FeedbackRecord{
		UserID:          userID,
		Feedback:        in.Feedback,
		FocusSuggestion: strings.TrimSpace(in.FocusSuggestion),
		CreatedAt:       s.now(),
	}
	rec.Feedback.Sensation = strings.TrimSpace(rec.Feedback.Sensation)

	current, err := s.store.GetCurrentMesocycle(ctx, userID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		rec.MesocycleID = &current.ID
	}

	id, err := s.store.InsertFeedback(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	s.log.Info("feedback recorded", "user_id", userID, "id", id, "plateaued", rec.Feedback.Plateaued())
	return &rec, nil
}

// Current returns the user's current mesocycle.
func (s *Service) Current(ctx context.Context, userID int) (*storage.MesocycleRecord, error) {
	rec, err := s.store.GetCurrentMesocycle(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoMesocycle
	}
	return rec, err
}

// History lists the user's mesocycles, newest first.
func (s *Service) History(ctx context.Context, userID, limit int) ([]storage.MesocycleSummary, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.ListMesocycles(ctx, userID, limit)
}

// Stats summarizes the user's planning history.
func (s *Service) Stats(ctx context.Context, userID int) (*storage.PlanStats, error) {
	return s.store.GetPlanStats(ctx, userID)
}

// SessionDetail returns one day of the current mesocycle. week is 1-based.
func (s *Service) SessionDetail(ctx context.Context, userID, week int, day models.Day) (*SessionDetail, error) {
	rec, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	pd, ok := rec.Plan.Day(week, day)
	if !ok {
		return nil, fmt.Errorf("%w: week %d %v", ErrSessionNotFound, week, day)
	}
	mc := rec.Plan.Weeks[week-1]
	return &SessionDetail{
		MesocycleID:         rec.ID,
		Objective:           rec.Plan.Objective,
		Split:               rec.Plan.Split,
		Week:                week,
		Phase:               mc.Focus,
		TargetSetsPerMuscle: mc.TargetSetsPerMuscle,
		Day:                 pd,
	}, nil
}

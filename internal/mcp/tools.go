package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
	"github.com/meltforce/mesoplan/internal/plans"
)

// parseDayList parses a comma-separated list of weekday names.
func parseDayList(s string) ([]models.Day, error) {
	var days []models.Day
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		d, err := models.ParseDay(f)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// scheduleFromArgs builds a Monday-first week from the training_days,
// medium_load_days and high_load_days arguments.
func scheduleFromArgs(req mcp.CallToolRequest) ([]models.ScheduleEntry, error) {
	sched := make([]models.ScheduleEntry, models.DaysPerWeek)
	for d := range sched {
		sched[d].Day = models.Day(d)
	}

	train, err := parseDayList(req.GetString("training_days", ""))
	if err != nil {
		return nil, fmt.Errorf("training_days: %w", err)
	}
	for _, d := range train {
		sched[d].CanTrain = true
	}

	// High load is applied last so it wins for a day listed twice.
	for _, l := range []struct {
		arg  string
		load models.ExternalLoad
	}{
		{"medium_load_days", models.LoadMedium},
		{"high_load_days", models.LoadHigh},
	} {
		days, err := parseDayList(req.GetString(l.arg, ""))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.arg, err)
		}
		for _, d := range days {
			sched[d].ExternalLoad = l.load
		}
	}
	return sched, nil
}

func equipmentFromArgs(req mcp.CallToolRequest) *models.EquipmentProfile {
	loc := req.GetString("location", "")
	bw := req.GetBool("bodyweight_only", false)
	if loc == "" && !bw {
		return nil
	}
	return &models.EquipmentProfile{Location: models.ParseLocation(loc), BodyweightOnly: bw}
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}

// --- Tool definitions ---

var toolPlanPreview = mcp.NewTool("plan_preview",
	mcp.WithDescription("Generate a mesocycle without saving it. Returns the resolved objective, split, weekly progression and every day's intensity and content."),
	mcp.WithString("training_days", mcp.Required(), mcp.Description("Comma-separated days the user can train (e.g. 'mon,tue,thu,fri' or 'lunes,martes')")),
	mcp.WithString("experience", mcp.Description("Beginner, Intermediate or Advanced. Defaults to Intermediate.")),
	mcp.WithString("goal", mcp.Description("Hypertrophy, Strength, Endurance, FatLoss or GeneralHealth. Defaults to Hypertrophy.")),
	mcp.WithString("focus", mcp.Description("Free-text focus such as 'Glúteo' or 'rehab hombro'")),
	mcp.WithString("medium_load_days", mcp.Description("Comma-separated days with moderate outside physical load")),
	mcp.WithString("high_load_days", mcp.Description("Comma-separated days with heavy outside physical load (sport, manual work)")),
	mcp.WithString("location", mcp.Description("Training location"), mcp.Enum("gym", "home")),
	mcp.WithBoolean("bodyweight_only", mcp.Description("Only bodyweight equipment is available")),
	mcp.WithString("sensation", mcp.Description("Sensation reported at the end of the previous cycle (e.g. 'estancado')")),
	mcp.WithNumber("energy_level", mcp.Description("Previous cycle energy 1-10")),
	mcp.WithNumber("weeks", mcp.Description("Mesocycle length in weeks. Defaults to 4.")),
)

var toolSelectSplit = mcp.NewTool("select_split",
	mcp.WithDescription("Select the split architecture and session order for a number of training days."),
	mcp.WithNumber("days", mcp.Required(), mcp.Description("Training days per week (0-7)")),
	mcp.WithString("experience", mcp.Description("Beginner, Intermediate or Advanced")),
	mcp.WithString("goal", mcp.Description("Training goal")),
	mcp.WithString("location", mcp.Description("Training location"), mcp.Enum("gym", "home")),
	mcp.WithBoolean("bodyweight_only", mcp.Description("Only bodyweight equipment is available")),
)

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("Return the stored training profile and weekly schedule."),
)

var toolCreatePlan = mcp.NewTool("create_plan",
	mcp.WithDescription("Generate and save a new current mesocycle from the stored profile and the latest feedback."),
	mcp.WithString("focus_suggestion", mcp.Description("Focus hint for the new cycle, overriding the one attached to the latest feedback")),
)

var toolGetCurrentPlan = mcp.NewTool("get_current_plan",
	mcp.WithDescription("Return the current mesocycle."),
)

var toolGetSessionDetail = mcp.NewTool("get_session_detail",
	mcp.WithDescription("Return one day of the current mesocycle with its intensity targets and content."),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("1-based week number")),
	mcp.WithString("day", mcp.Required(), mcp.Description("Weekday name (e.g. 'monday', 'lunes', 'mon')")),
)

var toolGetPlanHistory = mcp.NewTool("get_plan_history",
	mcp.WithDescription("List past mesocycles, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of entries. Defaults to 20.")),
)

var toolGetPlanStats = mcp.NewTool("get_plan_stats",
	mcp.WithDescription("Count stored mesocycles and feedback, with a breakdown by objective and average volume tier."),
)

var toolSubmitFeedback = mcp.NewTool("submit_feedback",
	mcp.WithDescription("Record the end-of-cycle evaluation. It drives the objective of the next plan."),
	mcp.WithString("sensation", mcp.Description("How the cycle felt (e.g. 'estancado' when progress stalled)")),
	mcp.WithNumber("energy_level", mcp.Description("Energy 1-10")),
	mcp.WithNumber("soreness_level", mcp.Description("Soreness 1-10")),
	mcp.WithNumber("joint_pain", mcp.Description("Joint pain 1-10")),
	mcp.WithString("focus_suggestion", mcp.Description("Focus to carry into the next cycle")),
)

// --- Tool handlers ---

func (h *handlers) planPreview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := req.RequireString("training_days"); err != nil {
		return mcp.NewToolResultError("training_days parameter is required"), nil
	}
	sched, err := scheduleFromArgs(req)
	if err != nil {
		return mcp.NewToolResultError("invalid schedule: " + err.Error()), nil
	}

	preq := planner.Request{
		Profile: models.Profile{
			ExperienceLevel:   models.ParseExperience(req.GetString("experience", "")),
			FitnessGoal:       models.ParseGoal(req.GetString("goal", "")),
			UserDeclaredFocus: req.GetString("focus", ""),
			Equipment:         equipmentFromArgs(req),
		},
		Schedule: sched,
		Weeks:    req.GetInt("weeks", 0),
	}
	sensation := req.GetString("sensation", "")
	energy := req.GetInt("energy_level", 0)
	if sensation != "" || energy != 0 {
		preq.PriorFeedback = &models.Feedback{Sensation: sensation, EnergyLevel: energy}
	}

	m, err := h.ds.Preview(ctx, preq)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidSchedule) || errors.Is(err, planner.ErrInvalidWeeks) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		h.log.Error("mcp plan_preview", "error", err)
		return mcp.NewToolResultError("planning failed: " + err.Error()), nil
	}
	return jsonResult(m), nil
}

func (h *handlers) selectSplit(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := req.RequireInt("days")
	if err != nil {
		return mcp.NewToolResultError("days parameter is required"), nil
	}
	if days < 0 || days > models.DaysPerWeek {
		return mcp.NewToolResultError("days must be between 0 and 7"), nil
	}

	split := planner.SelectSplitArchitecture(days,
		models.ParseExperience(req.GetString("experience", "")),
		models.ParseGoal(req.GetString("goal", "")),
		equipmentFromArgs(req),
	)
	return jsonResult(map[string]any{
		"days":          days,
		"split":         split,
		"session_order": planner.GetSessionOrder(split),
	}), nil
}

func (h *handlers) getProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := h.ds.Profile(ctx, UserIDFromContext(ctx))
	if err != nil {
		return h.serviceError("get_profile", err), nil
	}
	return jsonResult(rec), nil
}

func (h *handlers) createPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var next *models.NextCycleConfig
	if s := req.GetString("focus_suggestion", ""); s != "" {
		next = &models.NextCycleConfig{FocusSuggestion: s}
	}

	rec, err := h.ds.PlanForUser(ctx, UserIDFromContext(ctx), next)
	if err != nil {
		return h.serviceError("create_plan", err), nil
	}
	return jsonResult(rec), nil
}

func (h *handlers) getCurrentPlan(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := h.ds.Current(ctx, UserIDFromContext(ctx))
	if err != nil {
		return h.serviceError("get_current_plan", err), nil
	}
	return jsonResult(rec), nil
}

func (h *handlers) getSessionDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	dayStr, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	day, err := models.ParseDay(dayStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detail, err := h.ds.SessionDetail(ctx, UserIDFromContext(ctx), week, day)
	if err != nil {
		return h.serviceError("get_session_detail", err), nil
	}
	return jsonResult(detail), nil
}

func (h *handlers) getPlanHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", plans.DefaultHistoryLimit)
	if limit <= 0 {
		limit = plans.DefaultHistoryLimit
	}

	list, err := h.ds.History(ctx, UserIDFromContext(ctx), limit)
	if err != nil {
		return h.serviceError("get_plan_history", err), nil
	}
	return jsonResult(list), nil
}

func (h *handlers) getPlanStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.Stats(ctx, UserIDFromContext(ctx))
	if err != nil {
		return h.serviceError("get_plan_stats", err), nil
	}
	return jsonResult(stats), nil
}

func (h *handlers) submitFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := plans.FeedbackInput{
		Feedback: models.Feedback{
			Sensation:     req.GetString("sensation", ""),
			EnergyLevel:   req.GetInt("energy_level", 0),
			SorenessLevel: req.GetInt("soreness_level", 0),
			JointPain:     req.GetInt("joint_pain", 0),
		},
		FocusSuggestion: req.GetString("focus_suggestion", ""),
	}

	rec, err := h.ds.SubmitFeedback(ctx, UserIDFromContext(ctx), in)
	if err != nil {
		return h.serviceError("submit_feedback", err), nil
	}
	return jsonResult(rec), nil
}

// serviceError turns expected service errors into tool errors and logs the rest.
func (h *handlers) serviceError(tool string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, plans.ErrNoProfile):
		return mcp.NewToolResultError("no profile saved yet: store one with PUT /api/v1/profile")
	case errors.Is(err, plans.ErrNoMesocycle):
		return mcp.NewToolResultError("no current plan: call create_plan first")
	case errors.Is(err, plans.ErrSessionNotFound), errors.Is(err, plans.ErrInvalidFeedback):
		return mcp.NewToolResultError(err.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError("query failed: " + err.Error())
}

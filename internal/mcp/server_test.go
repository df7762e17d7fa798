package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
	"github.com/meltforce/mesoplan/internal/plans"
	"github.com/meltforce/mesoplan/internal/storage"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// TestScheduleFromArgs verifies day lists in English and Spanish and the
// external load overlays.
func TestScheduleFromArgs(t *testing.T) {
	sched, err := scheduleFromArgs(callRequest(map[string]any{
		"training_days":  "lunes, tue,Thursday,vie",
		"high_load_days": "wed",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(sched) != models.DaysPerWeek {
		t.Fatalf("len = %d, want 7", len(sched))
	}
	for d, want := range []bool{true, true, false, true, true, false, false} {
		if sched[d].CanTrain != want {
			t.Errorf("%v CanTrain = %v, want %v", models.Day(d), sched[d].CanTrain, want)
		}
		if sched[d].Day != models.Day(d) {
			t.Errorf("entry %d has day %v", d, sched[d].Day)
		}
	}
	if sched[models.Wednesday].ExternalLoad != models.LoadHigh {
		t.Errorf("Wednesday load = %v, want high", sched[models.Wednesday].ExternalLoad)
	}

	if _, err := scheduleFromArgs(callRequest(map[string]any{"training_days": "mon,funday"})); err == nil {
		t.Error("expected error for unknown day")
	}
}

// TestScheduleFromArgsHighLoadWins verifies that a day listed as both medium
// and high load always ends up high.
func TestScheduleFromArgsHighLoadWins(t *testing.T) {
	for range 20 {
		sched, err := scheduleFromArgs(callRequest(map[string]any{
			"training_days":    "mon,tue,thu",
			"medium_load_days": "tue,fri",
			"high_load_days":   "fri",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if sched[models.Friday].ExternalLoad != models.LoadHigh {
			t.Fatalf("Friday load = %v, want high", sched[models.Friday].ExternalLoad)
		}
		if sched[models.Tuesday].ExternalLoad != models.LoadMedium {
			t.Fatalf("Tuesday load = %v, want medium", sched[models.Tuesday].ExternalLoad)
		}
	}
}

// previewSource plans locally and fails everything else with ErrNoMesocycle.
type previewSource struct {
	DataSource
	got planner.Request
}

func (p *previewSource) Preview(_ context.Context, req planner.Request) (*models.Mesocycle, error) {
	p.got = req
	return planner.PlanMesocycle(req)
}

func (p *previewSource) Current(context.Context, int) (*storage.MesocycleRecord, error) {
	return nil, plans.ErrNoMesocycle
}

func toolText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

// TestPlanPreviewTool verifies tool arguments reach the planner and the plan
// comes back as JSON.
func TestPlanPreviewTool(t *testing.T) {
	src := &previewSource{}
	h := &handlers{ds: src, log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	res, err := h.planPreview(context.Background(), callRequest(map[string]any{
		"training_days": "mon,tue,wed,thu,fri,sat,sun",
		"experience":    "avanzado",
		"goal":          "fuerza",
		"sensation":     "estancado",
		"weeks":         float64(5),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", toolText(t, res))
	}
	if src.got.PriorFeedback == nil || !src.got.PriorFeedback.Plateaued() {
		t.Errorf("prior feedback = %+v, want plateau", src.got.PriorFeedback)
	}

	var m models.Mesocycle
	if err := json.Unmarshal([]byte(toolText(t, res)), &m); err != nil {
		t.Fatal(err)
	}
	if m.Split != models.SplitPPLActiveRest {
		t.Errorf("split = %v, want PPLActiveRest", m.Split)
	}
	if len(m.Weeks) != 5 {
		t.Errorf("weeks = %d, want 5", len(m.Weeks))
	}
	if m.Objective != models.ObjectiveStrength {
		t.Errorf("objective = %v, want Strength", m.Objective)
	}
}

// TestPlanPreviewToolMissingDays verifies the required argument check.
func TestPlanPreviewToolMissingDays(t *testing.T) {
	h := &handlers{ds: &previewSource{}, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	res, err := h.planPreview(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error")
	}
}

// TestSelectSplitTool verifies split selection through tool arguments.
func TestSelectSplitTool(t *testing.T) {
	h := &handlers{log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	res, err := h.selectSplit(context.Background(), callRequest(map[string]any{"days": float64(3), "experience": "beginner"}))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Split        models.SplitType `json:"split"`
		SessionOrder []string         `json:"session_order"`
	}
	if err := json.Unmarshal([]byte(toolText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Split != models.SplitFullBody {
		t.Errorf("split = %v, want FullBody", got.Split)
	}
	if len(got.SessionOrder) == 0 {
		t.Error("empty session order")
	}

	res, _ = h.selectSplit(context.Background(), callRequest(map[string]any{"days": float64(9)}))
	if !res.IsError {
		t.Error("days=9 should be rejected")
	}
}

// TestCurrentPlanWithoutPlan verifies the missing-plan error is a tool error,
// not a protocol error.
func TestCurrentPlanWithoutPlan(t *testing.T) {
	h := &handlers{ds: &previewSource{}, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	res, err := h.getCurrentPlan(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error")
	}
}

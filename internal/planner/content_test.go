package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/meltforce/mesoplan/internal/models"
)

// TestCoreNeverPrecedesAxialWork verifies that heavy axial sessions put core
// work at the end with an anti-movement focus.
func TestCoreNeverPrecedesAxialWork(t *testing.T) {
	for _, focus := range []string{"Legs (Strength)", "Lower (Strength)", "Full Body (Strength)", "Sentadilla Pesada", "Cuerpo completo fuerza", "Lower (Strength) + Core"} {
		c := GenerateSessionContent(focus, models.GoalHypertrophy, models.Intermediate, "")
		if c.Core.Focus != "Anti-Movement" || c.Core.Timing != "End" || !c.Core.Included {
			t.Errorf("%q core = %+v", focus, c.Core)
		}
	}
}

// TestCorePolicy verifies the core-named and default core placements.
func TestCorePolicy(t *testing.T) {
	c := GenerateSessionContent("Active Rest (Mobility & Core)", models.GoalHypertrophy, models.Beginner, "")
	if c.Core != (models.CorePolicy{Included: true, Timing: "Main", Focus: "Comprehensive"}) {
		t.Errorf("core session = %+v", c.Core)
	}
	c = GenerateSessionContent("Push", models.GoalHypertrophy, models.Beginner, "")
	if c.Core != (models.CorePolicy{Included: true, Timing: "End", Focus: "General"}) {
		t.Errorf("push session = %+v", c.Core)
	}
}

// TestMuscleGroups verifies the pattern assignment for every queue label.
func TestMuscleGroups(t *testing.T) {
	tests := []struct {
		focus   string
		pattern string
		muscles []string
	}{
		{"Push", PatternPush, []string{"chest", "shoulders", "triceps"}},
		{"Pull (Hypertrophy)", PatternPull, []string{"back", "biceps", "rear_delts"}},
		{"Back", PatternPull, []string{"back", "biceps", "rear_delts"}},
		{"Upper (Strength)", PatternUpper, []string{"back", "biceps", "chest", "shoulders", "triceps"}},
		{"Torso", PatternUpper, []string{"back", "biceps", "chest", "shoulders", "triceps"}},
		{"Limbs", PatternLower, []string{"calves", "glutes", "hamstrings", "quads"}},
		{"Legs (Hypertrophy)", PatternLower, []string{"calves", "glutes", "hamstrings", "quads"}},
		{"Full Body (Metabolic)", PatternFullBody, []string{"back", "chest", "glutes", "hamstrings", "quads", "shoulders"}},
		{"Chest", PatternIsolation, []string{"chest", "triceps"}},
		{"Arms", PatternIsolation, []string{"biceps", "forearms", "triceps"}},
		{"Shoulders", PatternIsolation, []string{"rear_delts", "shoulders"}},
		{pivotFocus, PatternFullBody, []string{"core", "mobility"}},
		{"Something Else", PatternFullBody, []string{"back", "chest", "glutes", "hamstrings", "quads", "shoulders"}},
	}
	for _, tt := range tests {
		c := GenerateSessionContent(tt.focus, models.GoalHypertrophy, models.Intermediate, "")
		if c.PatternFocus != tt.pattern {
			t.Errorf("%q pattern = %q, want %q", tt.focus, c.PatternFocus, tt.pattern)
		}
		if diff := cmp.Diff(tt.muscles, c.MuscleGroups); diff != "" {
			t.Errorf("%q muscles mismatch (-want +got):\n%s", tt.focus, diff)
		}
	}
}

// TestCardioPolicy verifies cardio is only added for fat loss and general health.
func TestCardioPolicy(t *testing.T) {
	tests := []struct {
		focus string
		goal  models.Goal
		want  models.CardioPolicy
	}{
		{"Legs", models.GoalFatLoss, models.CardioPolicy{Included: true, Type: "LISS", DurationMinutes: 20}},
		{"Push", models.GoalGeneralHealth, models.CardioPolicy{Included: true, Type: "HIIT (optional)", DurationMinutes: 15}},
		{"Legs", models.GoalStrength, models.CardioPolicy{}},
		{"Push", models.GoalEndurance, models.CardioPolicy{}},
	}
	for _, tt := range tests {
		c := GenerateSessionContent(tt.focus, tt.goal, models.Intermediate, "")
		if c.Cardio != tt.want {
			t.Errorf("%q %v cardio = %+v, want %+v", tt.focus, tt.goal, c.Cardio, tt.want)
		}
	}
}

// TestSafeSpecialization verifies the experience-scaled guardrails and the
// focus-session gate.
func TestSafeSpecialization(t *testing.T) {
	tests := []struct {
		name     string
		focus    string
		exp      models.ExperienceLevel
		declared string
		want     models.SafeSpecialization
	}{
		{"beginner upper", "Upper", models.Beginner, "Hombros", models.SafeSpecialization{
			UserDeclaredFocus: "Hombros", IsUserFocusSession: true, Level: models.Beginner,
			CapExtraVolumePct: 10, EnforcePriorityStart: true,
		}},
		{"intermediate push", "Push", models.Intermediate, "Chest", models.SafeSpecialization{
			UserDeclaredFocus: "Chest", IsUserFocusSession: true, Level: models.Intermediate,
			CapExtraVolumePct: 20, EnforcePriorityStart: true, AllowedExtraIsolations: 2, Require48hRestForFocus: true,
		}},
		{"advanced pull", "Pull", models.Advanced, "Back", models.SafeSpecialization{
			UserDeclaredFocus: "Back", IsUserFocusSession: true, Level: models.Advanced,
			AllowedExtraIsolations: 3, AllowIntensityTechniques: true,
		}},
		{"leg session not gated", "Legs (Strength)", models.Advanced, "Arms", models.SafeSpecialization{
			UserDeclaredFocus: "Arms", Level: models.Advanced,
			AllowedExtraIsolations: 3, AllowIntensityTechniques: true,
		}},
		{"no declared focus", "Upper", models.Beginner, "  ", models.SafeSpecialization{
			Level: models.Beginner, CapExtraVolumePct: 10, EnforcePriorityStart: true,
		}},
		{"unknown experience", "Arms", models.ExperienceUnknown, "Arms", models.SafeSpecialization{
			UserDeclaredFocus: "Arms", IsUserFocusSession: true, Level: models.Intermediate,
			CapExtraVolumePct: 20, EnforcePriorityStart: true, AllowedExtraIsolations: 2, Require48hRestForFocus: true,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSessionContent(tt.focus, models.GoalHypertrophy, tt.exp, tt.declared).SafeSpecialization
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

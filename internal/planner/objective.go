package planner

import (
	"strings"

	"github.com/meltforce/mesoplan/internal/models"
)

// ObjectiveResolution is the outcome of ResolveObjective.
type ObjectiveResolution struct {
	Objective models.Objective `json:"objective"`
	// Goal is the canonical goal the rest of the pipeline plans against. For
	// a technique deload it stays the user's goal.
	Goal   models.Goal `json:"goal"`
	Reason string      `json:"reason"`
}

const (
	ReasonFirstCycle   = "first cycle, adaptation phase"
	ReasonPlateau      = "break plateau via neural stimulus"
	ReasonActiveDeload = "active-deload due to high soreness/joint pain"
	ReasonRecovery     = "recovery-oriented evaluation suggestion"
	ReasonContinuation = "continuation with progression"
)

// ResolveObjective decides the objective of the upcoming mesocycle from the
// stated goal and the previous cycle's feedback. Rules are evaluated in order
// and the first match wins.
func ResolveObjective(goal models.Goal, prior *models.Feedback, next *models.NextCycleConfig) ObjectiveResolution {
	goal = normalizeGoal(goal)
	if prior == nil {
		return ObjectiveResolution{Objective: models.ObjectiveForGoal(goal), Goal: goal, Reason: ReasonFirstCycle}
	}
	if prior.Plateaued() || (prior.EnergyLevel > 0 && prior.EnergyLevel < 3) {
		return ObjectiveResolution{Objective: models.ObjectiveStrength, Goal: models.GoalStrength, Reason: ReasonPlateau}
	}
	if prior.SorenessLevel > 7 || prior.JointPain > 7 {
		return ObjectiveResolution{Objective: models.ObjectiveTechniqueDeload, Goal: goal, Reason: ReasonActiveDeload}
	}
	if next != nil && containsAny(strings.ToLower(next.FocusSuggestion), rehabKeywords) {
		return ObjectiveResolution{Objective: models.ObjectiveGeneralHealth, Goal: models.GoalGeneralHealth, Reason: ReasonRecovery}
	}
	return ObjectiveResolution{Objective: models.ObjectiveForGoal(goal), Goal: goal, Reason: ReasonContinuation}
}

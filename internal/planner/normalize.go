package planner

import "github.com/meltforce/mesoplan/internal/models"

// NormalizeProfile returns a copy of p with every enumerated field resolved to
// a canonical value: unknown experience becomes Intermediate and an invalid
// goal becomes Hypertrophy. Downstream modules can assume valid inputs after
// this step.
func NormalizeProfile(p models.Profile) models.Profile {
	if !p.ExperienceLevel.IsValid() {
		p.ExperienceLevel = models.Intermediate
	}
	if !p.FitnessGoal.IsValid() {
		p.FitnessGoal = models.GoalHypertrophy
	}
	if p.Equipment != nil {
		eq := *p.Equipment
		p.Equipment = &eq
	}
	return p
}

func normalizeGoal(g models.Goal) models.Goal {
	if !g.IsValid() {
		return models.GoalHypertrophy
	}
	return g
}

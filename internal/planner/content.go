package planner

import (
	"slices"
	"strings"

	"github.com/meltforce/mesoplan/internal/models"
)

const (
	PatternPush      = "Push"
	PatternPull      = "Pull"
	PatternUpper     = "Upper"
	PatternLower     = "Lower"
	PatternFullBody  = "Full-Body"
	PatternIsolation = "Isolation"
)

// patternRule assigns muscle groups to sessions whose traits match. Rules are
// checked in order.
type patternRule struct {
	match   func(focusTraits) bool
	pattern string
	muscles []string
}

var patternRules = []patternRule{
	{func(f focusTraits) bool { return f.fullBody }, PatternFullBody, []string{"quads", "hamstrings", "glutes", "chest", "back", "shoulders"}},
	{func(f focusTraits) bool { return f.upper }, PatternUpper, []string{"chest", "back", "shoulders", "biceps", "triceps"}},
	{func(f focusTraits) bool { return f.leg }, PatternLower, []string{"quads", "hamstrings", "glutes", "calves"}},
	{func(f focusTraits) bool { return f.push }, PatternPush, []string{"chest", "shoulders", "triceps"}},
	{func(f focusTraits) bool { return f.pull || f.back }, PatternPull, []string{"back", "biceps", "rear_delts"}},
	{func(f focusTraits) bool { return f.chest }, PatternIsolation, []string{"chest", "triceps"}},
	{func(f focusTraits) bool { return f.shoulders }, PatternIsolation, []string{"shoulders", "rear_delts"}},
	{func(f focusTraits) bool { return f.arms }, PatternIsolation, []string{"biceps", "triceps", "forearms"}},
	{func(f focusTraits) bool { return f.mobility }, PatternFullBody, []string{"core", "mobility"}},
	{func(f focusTraits) bool { return f.core }, PatternIsolation, []string{"core"}},
}

var defaultPattern = patternRule{pattern: PatternFullBody, muscles: []string{"quads", "hamstrings", "glutes", "chest", "back", "shoulders"}}

type specializationRule struct {
	capPct              int
	priorityStart       bool
	extraIsolations     int
	require48h          bool
	intensityTechniques bool
}

var specializationRules = map[models.ExperienceLevel]specializationRule{
	models.Beginner:     {capPct: 10, priorityStart: true},
	models.Intermediate: {capPct: 20, priorityStart: true, extraIsolations: 2, require48h: true},
	models.Advanced:     {extraIsolations: 3, intensityTechniques: true},
}

// GenerateSessionContent annotates a session focus with its muscle groups,
// core and cardio policy, and the guardrails for a user-declared focus area.
func GenerateSessionContent(sessionFocus string, goal models.Goal, exp models.ExperienceLevel, userDeclaredFocus string) models.SessionContent {
	traits := classifyFocus(sessionFocus)

	rule := defaultPattern
	for _, r := range patternRules {
		if r.match(traits) {
			rule = r
			break
		}
	}
	muscles := slices.Clone(rule.muscles)
	slices.Sort(muscles)

	return models.SessionContent{
		MuscleGroups:       muscles,
		PatternFocus:       rule.pattern,
		Core:               corePolicy(traits),
		Cardio:             cardioPolicy(normalizeGoal(goal), traits),
		SafeSpecialization: safeSpecialization(traits, exp, userDeclaredFocus),
	}
}

// corePolicy never places core work before heavy axial lifting.
func corePolicy(f focusTraits) models.CorePolicy {
	switch {
	case f.heavyAxial():
		return models.CorePolicy{Included: true, Timing: "End", Focus: "Anti-Movement"}
	case f.core:
		return models.CorePolicy{Included: true, Timing: "Main", Focus: "Comprehensive"}
	default:
		return models.CorePolicy{Included: true, Timing: "End", Focus: "General"}
	}
}

func cardioPolicy(goal models.Goal, f focusTraits) models.CardioPolicy {
	if goal != models.GoalFatLoss && goal != models.GoalGeneralHealth {
		return models.CardioPolicy{}
	}
	if f.leg {
		return models.CardioPolicy{Included: true, Type: "LISS", DurationMinutes: 20}
	}
	return models.CardioPolicy{Included: true, Type: "HIIT (optional)", DurationMinutes: 15}
}

func safeSpecialization(f focusTraits, exp models.ExperienceLevel, declared string) models.SafeSpecialization {
	if !exp.IsValid() {
		exp = models.Intermediate
	}
	declared = strings.TrimSpace(declared)
	rule := specializationRules[exp]
	return models.SafeSpecialization{
		UserDeclaredFocus:        declared,
		IsUserFocusSession:       declared != "" && f.upperPattern(),
		Level:                    exp,
		CapExtraVolumePct:        rule.capPct,
		EnforcePriorityStart:     rule.priorityStart,
		AllowedExtraIsolations:   rule.extraIsolations,
		Require48hRestForFocus:   rule.require48h,
		AllowIntensityTechniques: rule.intensityTechniques,
	}
}

package planner

import "github.com/meltforce/mesoplan/internal/models"

// splitModifier refines the split table row for a day count.
type splitModifier int

const (
	modDefault splitModifier = iota
	modHomeBodyweight
	modHome
	modStrength
	modNovice // beginner or endurance goal
	modBeginner
	modAdvanced
)

type splitKey struct {
	days int
	mod  splitModifier
}

// splitTable is the split decision policy. Each day count has a default row
// and optional refinements; see modifierPrecedence for how a row is picked.
var splitTable = map[splitKey]models.SplitType{
	{1, modDefault}: models.SplitFullBody,
	{2, modDefault}: models.SplitFullBody,

	{3, modHome}:    models.SplitFullBody,
	{3, modNovice}:  models.SplitFullBody,
	{3, modDefault}: models.SplitUpperLowerFull,

	{4, modHomeBodyweight}: models.SplitTorsoLimbs,
	{4, modStrength}:       models.SplitUpperLower,
	{4, modBeginner}:       models.SplitTorsoLimbs,
	{4, modDefault}:        models.SplitUpperLower,

	{5, modHome}:     models.SplitFullBody,
	{5, modAdvanced}: models.SplitBodyPart,
	{5, modDefault}:  models.SplitHybridPHUL,

	{6, modDefault}: models.SplitPPL,
	{7, modDefault}: models.SplitPPLActiveRest,
}

type splitInput struct {
	exp  models.ExperienceLevel
	goal models.Goal
	eq   *models.EquipmentProfile
}

// modifierPrecedence lists refinements from most to least specific. The
// first one that applies and has a row for the day count wins.
var modifierPrecedence = []struct {
	mod     splitModifier
	applies func(splitInput) bool
}{
	{modHomeBodyweight, func(in splitInput) bool { return in.eq.IsHomeBodyweight() }},
	{modHome, func(in splitInput) bool { return in.eq.IsHome() }},
	{modStrength, func(in splitInput) bool { return in.goal == models.GoalStrength }},
	{modNovice, func(in splitInput) bool { return in.exp == models.Beginner || in.goal == models.GoalEndurance }},
	{modBeginner, func(in splitInput) bool { return in.exp == models.Beginner }},
	{modAdvanced, func(in splitInput) bool { return in.exp == models.Advanced }},
}

// SelectSplitArchitecture picks the split for the number of trainable days.
// Day counts above seven are treated as seven; zero or one yields FullBody.
func SelectSplitArchitecture(days int, exp models.ExperienceLevel, goal models.Goal, eq *models.EquipmentProfile) models.SplitType {
	days = min(max(days, 1), models.DaysPerWeek)
	in := splitInput{exp: exp, goal: normalizeGoal(goal), eq: eq}
	for _, p := range modifierPrecedence {
		if !p.applies(in) {
			continue
		}
		if s, ok := splitTable[splitKey{days, p.mod}]; ok {
			return s
		}
	}
	if s, ok := splitTable[splitKey{days, modDefault}]; ok {
		return s
	}
	return models.SplitFullBody
}

var sessionOrders = map[models.SplitType][]string{
	models.SplitFullBody:       {"Full Body (Strength)", "Full Body (Hypertrophy)", "Full Body (Metabolic)"},
	models.SplitUpperLowerFull: {"Upper", "Lower", "Full Body (Strength)"},
	models.SplitUpperLower:     {"Upper (Strength)", "Lower (Strength)", "Upper (Hypertrophy)", "Lower (Hypertrophy)"},
	models.SplitTorsoLimbs:     {"Torso", "Limbs", "Torso", "Limbs"},
	models.SplitHybridPHUL:     {"Upper (Strength)", "Lower (Strength)", "Push (Hypertrophy)", "Pull (Hypertrophy)", "Legs (Hypertrophy)"},
	models.SplitBodyPart:       {"Chest", "Back", "Legs", "Shoulders", "Arms"},
	models.SplitPPL:            {"Push", "Pull", "Legs (Strength)", "Push", "Pull", "Legs (Hypertrophy)"},
	models.SplitPPLActiveRest:  {"Push", "Pull", "Legs (Strength)", "Active Rest (Mobility & Core)", "Push", "Pull", "Legs (Hypertrophy)"},
}

var defaultSessionOrder = []string{"Full Body", "Full Body"}

// GetSessionOrder returns a fresh copy of the ordered session queue for a split.
func GetSessionOrder(split models.SplitType) []string {
	order, ok := sessionOrders[split]
	if !ok {
		order = defaultSessionOrder
	}
	return append([]string(nil), order...)
}

// SplitInfo describes one split for catalog listings.
type SplitInfo struct {
	Split        models.SplitType `json:"split"`
	SessionOrder []string         `json:"session_order"`
	DaysPerWeek  []int            `json:"days_per_week"`
}

// Catalog lists every split with its session queue and the day counts that
// can select it.
func Catalog() []SplitInfo {
	days := map[models.SplitType][]int{}
	for d := 1; d <= models.DaysPerWeek; d++ {
		seen := map[models.SplitType]bool{}
		for k, s := range splitTable {
			if k.days == d && !seen[s] {
				seen[s] = true
				days[s] = append(days[s], d)
			}
		}
	}
	out := make([]SplitInfo, 0, len(sessionOrders))
	for _, s := range models.AllSplits() {
		out = append(out, SplitInfo{Split: s, SessionOrder: GetSessionOrder(s), DaysPerWeek: days[s]})
	}
	return out
}

package models

import "fmt"

// Feedback is the user's evaluation of the previous mesocycle.
// Numeric levels use a 1-10 scale; zero means "not reported".
type Feedback struct {
	Sensation     string `json:"sensation,omitempty" yaml:"sensation,omitempty"`
	EnergyLevel   int    `json:"energy_level,omitempty" yaml:"energy_level,omitempty"`
	SorenessLevel int    `json:"soreness_level,omitempty" yaml:"soreness_level,omitempty"`
	JointPain     int    `json:"joint_pain,omitempty" yaml:"joint_pain,omitempty"`
}

var plateauSensations = map[string]bool{
	"estancado": true,
	"estancada": true,
	"plateaued": true,
	"plateau":   true,
	"stalled":   true,
	"stuck":     true,
}

// Plateaued reports whether the reported sensation means progress has stalled.
func (f Feedback) Plateaued() bool {
	return plateauSensations[normalizeKey(f.Sensation)]
}

// NextCycleConfig carries hints for the upcoming cycle, typically produced by
// an evaluation of the previous one.
type NextCycleConfig struct {
	FocusSuggestion string `json:"focus_suggestion,omitempty" yaml:"focus_suggestion,omitempty"`
}

// Objective is the resolved training objective for a mesocycle: one of the
// canonical goals or the technique/active-deload phase.
type Objective int

const (
	ObjectiveHypertrophy     = Objective(GoalHypertrophy)
	ObjectiveStrength        = Objective(GoalStrength)
	ObjectiveEndurance       = Objective(GoalEndurance)
	ObjectiveFatLoss         = Objective(GoalFatLoss)
	ObjectiveGeneralHealth   = Objective(GoalGeneralHealth)
	ObjectiveTechniqueDeload = Objective(GoalGeneralHealth + 1)
)

var (
	objectiveNames = []string{
		ObjectiveHypertrophy:     "Hypertrophy",
		ObjectiveStrength:        "Strength",
		ObjectiveEndurance:       "Endurance",
		ObjectiveFatLoss:         "FatLoss",
		ObjectiveGeneralHealth:   "GeneralHealth",
		ObjectiveTechniqueDeload: "TechniqueDeload",
	}
	objectiveByName = map[string]Objective{
		"Hypertrophy":     ObjectiveHypertrophy,
		"Strength":        ObjectiveStrength,
		"Endurance":       ObjectiveEndurance,
		"FatLoss":         ObjectiveFatLoss,
		"GeneralHealth":   ObjectiveGeneralHealth,
		"TechniqueDeload": ObjectiveTechniqueDeload,
	}
)

// ObjectiveForGoal returns the standard objective for g.
func ObjectiveForGoal(g Goal) Objective { return Objective(g) }

// IsDeload reports whether o is the technique/active-deload phase.
func (o Objective) IsDeload() bool { return o == ObjectiveTechniqueDeload }

func (o Objective) String() string { return enumName(o, objectiveNames, "Objective") }

// MarshalText implements encoding.TextMarshaler.
func (o Objective) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Objective) UnmarshalText(text []byte) error {
	v, ok := objectiveByName[string(text)]
	if !ok {
		return fmt.Errorf("models: invalid objective: %q", text)
	}
	*o = v
	return nil
}

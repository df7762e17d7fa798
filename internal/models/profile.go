package models

import "fmt"

// ExperienceLevel is the user's training age bracket.
type ExperienceLevel int

const (
	ExperienceUnknown ExperienceLevel = iota
	Beginner
	Intermediate
	Advanced
)

var (
	experienceNames = []string{ExperienceUnknown: "Unknown", Beginner: "Beginner", Intermediate: "Intermediate", Advanced: "Advanced"}
	experienceByKey = map[string]ExperienceLevel{
		"beginner":     Beginner,
		"novice":       Beginner,
		"principiante": Beginner,
		"novato":       Beginner,
		"intermediate": Intermediate,
		"intermedio":   Intermediate,
		"advanced":     Advanced,
		"avanzado":     Advanced,
		"experto":      Advanced,
	}
)

// ParseExperience maps a free-form or localized label to an ExperienceLevel.
// Unrecognized labels yield ExperienceUnknown.
func ParseExperience(s string) ExperienceLevel {
	return experienceByKey[normalizeKey(s)]
}

// IsValid reports whether e is one of Beginner, Intermediate or Advanced.
func (e ExperienceLevel) IsValid() bool { return e >= Beginner && e <= Advanced }

func (e ExperienceLevel) String() string { return enumName(e, experienceNames, "ExperienceLevel") }

// MarshalText implements encoding.TextMarshaler.
func (e ExperienceLevel) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It never fails: unknown
// labels decode to ExperienceUnknown and are defaulted by the planner.
func (e *ExperienceLevel) UnmarshalText(text []byte) error {
	*e = ParseExperience(string(text))
	return nil
}

// Goal is the user's stated training goal.
type Goal int

const (
	GoalHypertrophy Goal = iota + 1
	GoalStrength
	GoalEndurance
	GoalFatLoss
	GoalGeneralHealth
)

var (
	goalNames = []string{GoalHypertrophy: "Hypertrophy", GoalStrength: "Strength", GoalEndurance: "Endurance", GoalFatLoss: "FatLoss", GoalGeneralHealth: "GeneralHealth"}
	goalByKey = map[string]Goal{
		"hypertrophy":         GoalHypertrophy,
		"hipertrofia":         GoalHypertrophy,
		"muscle":              GoalHypertrophy,
		"muscle gain":         GoalHypertrophy,
		"ganar masa muscular": GoalHypertrophy,
		"masa muscular":       GoalHypertrophy,
		"strength":            GoalStrength,
		"fuerza":              GoalStrength,
		"endurance":           GoalEndurance,
		"resistencia":         GoalEndurance,
		"fatloss":             GoalFatLoss,
		"fat loss":            GoalFatLoss,
		"weight loss":         GoalFatLoss,
		"pérdida de grasa":    GoalFatLoss,
		"perdida de grasa":    GoalFatLoss,
		"perder grasa":        GoalFatLoss,
		"perder peso":         GoalFatLoss,
		"generalhealth":       GoalGeneralHealth,
		"general health":      GoalGeneralHealth,
		"health":              GoalGeneralHealth,
		"salud":               GoalGeneralHealth,
		"salud general":       GoalGeneralHealth,
		"bienestar":           GoalGeneralHealth,
		"mantenimiento":       GoalGeneralHealth,
	}
)

// ParseGoal maps a free-form or localized goal label to a Goal.
// Unrecognized labels fall back to GoalHypertrophy.
func ParseGoal(s string) Goal {
	if g, ok := goalByKey[normalizeKey(s)]; ok {
		return g
	}
	return GoalHypertrophy
}

// IsValid reports whether g is one of the five canonical goals.
func (g Goal) IsValid() bool { return g >= GoalHypertrophy && g <= GoalGeneralHealth }

func (g Goal) String() string { return enumName(g, goalNames, "Goal") }

// MarshalText implements encoding.TextMarshaler.
func (g Goal) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("models: invalid goal: %d", int(g))
	}
	return []byte(goalNames[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseGoal.
func (g *Goal) UnmarshalText(text []byte) error {
	*g = ParseGoal(string(text))
	return nil
}

// Location is where the user trains.
type Location int

const (
	LocationUnknown Location = iota
	LocationGym
	LocationHome
)

var (
	locationNames = []string{LocationUnknown: "unknown", LocationGym: "gym", LocationHome: "home"}
	locationByKey = map[string]Location{
		"gym":      LocationGym,
		"gimnasio": LocationGym,
		"home":     LocationHome,
		"casa":     LocationHome,
		"en casa":  LocationHome,
	}
)

// ParseLocation maps a label to a Location; unknown labels yield LocationUnknown.
func ParseLocation(s string) Location { return locationByKey[normalizeKey(s)] }

func (l Location) String() string { return enumName(l, locationNames, "Location") }

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	*l = ParseLocation(string(text))
	return nil
}

// EquipmentProfile describes the training environment.
type EquipmentProfile struct {
	Location       Location `json:"location" yaml:"location"`
	BodyweightOnly bool     `json:"bodyweight_only" yaml:"bodyweight_only"`
	HasBarbell     bool     `json:"has_barbell" yaml:"has_barbell"`
	HasMachines    bool     `json:"has_machines" yaml:"has_machines"`
}

// IsHome reports whether the profile trains at home. Nil-safe.
func (e *EquipmentProfile) IsHome() bool {
	return e != nil && e.Location == LocationHome
}

// IsHomeBodyweight reports whether the profile trains at home with bodyweight only.
func (e *EquipmentProfile) IsHomeBodyweight() bool {
	return e.IsHome() && e.BodyweightOnly
}

// Profile is the caller-owned planning input.
type Profile struct {
	ExperienceLevel     ExperienceLevel   `json:"experience_level" yaml:"experience_level"`
	FitnessGoal         Goal              `json:"fitness_goal" yaml:"fitness_goal"`
	UserDeclaredFocus   string            `json:"user_declared_focus,omitempty" yaml:"user_declared_focus,omitempty"`
	Equipment           *EquipmentProfile `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	TrainingDaysPerWeek int               `json:"training_days_per_week" yaml:"training_days_per_week"`
}

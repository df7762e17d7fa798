package models

import "fmt"

// StructureType classifies a calendar slot.
type StructureType int

const (
	StructureRest StructureType = iota
	StructureNormal
	StructureLowLoad
	StructureLowLoadPivot
)

var structureTypeNames = []string{
	StructureRest:         "Rest",
	StructureNormal:       "Normal",
	StructureLowLoad:      "Low_Load",
	StructureLowLoadPivot: "Low_Load_Pivot",
}

func (s StructureType) String() string { return enumName(s, structureTypeNames, "StructureType") }

// MarshalText implements encoding.TextMarshaler.
func (s StructureType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StructureType) UnmarshalText(text []byte) error {
	for i, n := range structureTypeNames {
		if n == string(text) {
			*s = StructureType(i)
			return nil
		}
	}
	return fmt.Errorf("models: invalid structure type: %q", text)
}

// StructureCategory is the stimulus category a session's target RPE falls into.
type StructureCategory int

const (
	CategoryMetabolicVolume StructureCategory = iota
	CategoryHypertrophyStandard
	CategoryNeuralStrength
)

var structureCategoryNames = []string{
	CategoryMetabolicVolume:     "Metabolic_Volume",
	CategoryHypertrophyStandard: "Hypertrophy_Standard",
	CategoryNeuralStrength:      "Neural_Strength",
}

func (c StructureCategory) String() string {
	return enumName(c, structureCategoryNames, "StructureCategory")
}

// MarshalText implements encoding.TextMarshaler.
func (c StructureCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *StructureCategory) UnmarshalText(text []byte) error {
	for i, n := range structureCategoryNames {
		if n == string(text) {
			*c = StructureCategory(i)
			return nil
		}
	}
	return fmt.Errorf("models: invalid structure category: %q", text)
}

// RestFocus is the session focus label of a rest day.
const RestFocus = "Rest"

// SessionContext carries the scheduler's per-day annotations.
type SessionContext struct {
	ExternalFatigue ExternalLoad `json:"external_fatigue"`
	Notes           []string     `json:"notes,omitempty"`
	LowLoadPivot    bool         `json:"low_load_pivot,omitempty"`
	ExcludeAxial    bool         `json:"exclude_axial,omitempty"`
	MaxRPE          float64      `json:"max_rpe,omitempty"`
	Focus           []string     `json:"focus,omitempty"`
	// SwappedFrom names the hard session replaced by the fatigue-prevention swap.
	SwappedFrom string `json:"swapped_from,omitempty"`
}

// ScheduledSession is the assignment for one calendar day.
type ScheduledSession struct {
	Day           Day            `json:"day"`
	SessionFocus  string         `json:"session_focus"`
	StructureType StructureType  `json:"structure_type"`
	IsRestDay     bool           `json:"is_rest_day"`
	Context       SessionContext `json:"context"`
}

// SessionIntensity is the load target for a training day.
type SessionIntensity struct {
	TargetRPE         float64           `json:"target_rpe"`
	StructureCategory StructureCategory `json:"structure_category"`
}

// CorePolicy says whether and where core work goes in a session.
type CorePolicy struct {
	Included bool   `json:"included"`
	Timing   string `json:"timing"`
	Focus    string `json:"focus"`
}

// CardioPolicy says whether a session ends with conditioning work.
type CardioPolicy struct {
	Included        bool   `json:"included"`
	Type            string `json:"type,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// SafeSpecialization bounds the extra work allowed for a user-declared focus area.
type SafeSpecialization struct {
	UserDeclaredFocus        string          `json:"user_declared_focus,omitempty"`
	IsUserFocusSession       bool            `json:"is_user_focus_session"`
	Level                    ExperienceLevel `json:"level"`
	// CapExtraVolumePct of zero means uncapped.
	CapExtraVolumePct        int             `json:"cap_extra_volume_pct"`
	EnforcePriorityStart     bool            `json:"enforce_priority_start"`
	AllowedExtraIsolations   int             `json:"allowed_extra_isolations"`
	Require48hRestForFocus   bool            `json:"require_48h_rest_for_focus,omitempty"`
	AllowIntensityTechniques bool            `json:"allow_intensity_techniques,omitempty"`
}

// SessionContent is the structural annotation for one training day.
type SessionContent struct {
	MuscleGroups       []string           `json:"muscle_groups"`
	PatternFocus       string             `json:"pattern_focus"`
	Core               CorePolicy         `json:"core"`
	Cardio             CardioPolicy       `json:"cardio"`
	SafeSpecialization SafeSpecialization `json:"safe_specialization"`
}

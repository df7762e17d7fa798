package models

// Progression is the periodization row for one week of a mesocycle.
type Progression struct {
	Week              int     `json:"week"`
	Focus             string  `json:"focus"`
	IntensityModifier float64 `json:"intensity_modifier"`
	VolumeModifier    float64 `json:"volume_modifier"`
}

// PlannedDay is a scheduled day with its targets. Intensity and Content are
// nil on rest days.
type PlannedDay struct {
	Session   ScheduledSession  `json:"session"`
	Intensity *SessionIntensity `json:"intensity,omitempty"`
	Content   *SessionContent   `json:"content,omitempty"`
}

// Microcycle is one week of a mesocycle.
type Microcycle struct {
	Progression
	TargetSetsPerMuscle int          `json:"target_sets_per_muscle"`
	Days                []PlannedDay `json:"days"`
}

// Mesocycle is a complete multi-week plan.
type Mesocycle struct {
	Objective       Objective       `json:"objective"`
	ObjectiveReason string          `json:"objective_reason"`
	Goal            Goal            `json:"goal"`
	Experience      ExperienceLevel `json:"experience"`
	Split           SplitType       `json:"split"`
	SessionOrder    []string        `json:"session_order"`
	SystemicStress  int             `json:"systemic_stress"`
	VolumeTier      int             `json:"volume_tier"`
	Weeks           []Microcycle    `json:"weeks"`
}

// TrainingDays counts the non-rest days of the first week.
func (m *Mesocycle) TrainingDays() int {
	if m == nil || len(m.Weeks) == 0 {
		return 0
	}
	n := 0
	for _, d := range m.Weeks[0].Days {
		if !d.Session.IsRestDay {
			n++
		}
	}
	return n
}

// Day returns the planned day for a 1-based week and a weekday, or false when
// out of range.
func (m *Mesocycle) Day(week int, day Day) (PlannedDay, bool) {
	if m == nil || week < 1 || week > len(m.Weeks) || !day.IsValid() {
		return PlannedDay{}, false
	}
	days := m.Weeks[week-1].Days
	if int(day) >= len(days) {
		return PlannedDay{}, false
	}
	return days[day], true
}

package planner

import (
	"testing"

	"github.com/meltforce/mesoplan/internal/models"
)

// TestSetSessionIntensity verifies load adjustments and the strength bump cap.
func TestSetSessionIntensity(t *testing.T) {
	tests := []struct {
		exp   models.ExperienceLevel
		load  models.ExternalLoad
		focus string
		want  float64
	}{
		{models.Beginner, models.LoadNone, "Push", 7},
		{models.Beginner, models.LoadNone, "Legs (Hypertrophy)", 7.5},
		{models.Intermediate, models.LoadLow, "Back", 8.5},
		{models.Intermediate, models.LoadMedium, "Legs (Strength)", 7.5},
		{models.Beginner, models.LoadHigh, "Push", 5.5},
		{models.Advanced, models.LoadNone, "Lower (Strength)", 9.5},
		{models.Advanced, models.LoadNone, "Upper", 9},
		{models.Advanced, models.LoadHigh, "Legs", 7.5},
		{models.ExperienceUnknown, models.LoadNone, "Push", 7.5},
		{models.ExperienceUnknown, models.LoadNone, "Fuerza", 8},
	}
	for _, tt := range tests {
		if got := SetSessionIntensity(tt.exp, tt.load, tt.focus); got != tt.want {
			t.Errorf("SetSessionIntensity(%v, %v, %q) = %v, want %v", tt.exp, tt.load, tt.focus, got, tt.want)
		}
	}
}

// TestSetSessionIntensityBounds checks every experience, load and session
// combination stays within [5, 10].
func TestSetSessionIntensityBounds(t *testing.T) {
	exps := []models.ExperienceLevel{models.ExperienceUnknown, models.Beginner, models.Intermediate, models.Advanced, models.ExperienceLevel(99)}
	loads := []models.ExternalLoad{models.LoadNone, models.LoadLow, models.LoadMedium, models.LoadHigh, models.ExternalLoad(-1)}
	var sessions []string
	for _, s := range models.AllSplits() {
		sessions = append(sessions, GetSessionOrder(s)...)
	}
	sessions = append(sessions, pivotFocus, lowLoadFocus, "", "Sentadilla pesada")

	for _, exp := range exps {
		for _, load := range loads {
			for _, s := range sessions {
				got := SetSessionIntensity(exp, load, s)
				if got < 5 || got > 10 {
					t.Errorf("SetSessionIntensity(%v, %v, %q) = %v out of bounds", exp, load, s, got)
				}
			}
		}
	}
}

// TestDetermineSessionStructureType verifies the category thresholds.
func TestDetermineSessionStructureType(t *testing.T) {
	tests := []struct {
		rpe  float64
		want models.StructureCategory
	}{
		{10, models.CategoryNeuralStrength},
		{8.5, models.CategoryNeuralStrength},
		{8.4, models.CategoryHypertrophyStandard},
		{7, models.CategoryHypertrophyStandard},
		{6.9, models.CategoryMetabolicVolume},
		{5, models.CategoryMetabolicVolume},
	}
	for _, tt := range tests {
		if got := DetermineSessionStructureType(tt.rpe); got != tt.want {
			t.Errorf("DetermineSessionStructureType(%v) = %v, want %v", tt.rpe, got, tt.want)
		}
	}
}

// TestCreateMicrocycleProgression verifies the four-week arc and maintenance fallback.
func TestCreateMicrocycleProgression(t *testing.T) {
	got := CreateMicrocycleProgression(4)
	want := models.Progression{Week: 4, Focus: "Descarga (Deload)", IntensityModifier: -2.0, VolumeModifier: 0.5}
	if got != want {
		t.Errorf("week 4 = %+v, want %+v", got, want)
	}
	if p := CreateMicrocycleProgression(1); p.Focus != "Adaptación & Técnica" || p.IntensityModifier != -1 || p.VolumeModifier != 0.8 {
		t.Errorf("week 1 = %+v", p)
	}
	if p := CreateMicrocycleProgression(3); p.IntensityModifier != 1 || p.VolumeModifier != 0.9 {
		t.Errorf("week 3 = %+v", p)
	}
	for _, w := range []int{0, 5, 12} {
		p := CreateMicrocycleProgression(w)
		if p.Focus != "Mantenimiento" || p.IntensityModifier != 0 || p.VolumeModifier != 1 || p.Week != w {
			t.Errorf("week %d = %+v", w, p)
		}
	}
}

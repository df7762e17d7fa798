// Package planner turns a training profile and a weekly availability schedule
// into a periodized mesocycle. Every function is pure and safe for concurrent
// use.
package planner

import (
	"fmt"
	"math"
	"slices"

	"github.com/meltforce/mesoplan/internal/models"
)

// MaxWeeks bounds the mesocycle length accepted by PlanMesocycle.
const MaxWeeks = 52

// techniqueDeloadIntensity is the extra intensity offset applied to every week
// of a technique/active-deload mesocycle.
const techniqueDeloadIntensity = -1.0

// Request is the input of PlanMesocycle.
type Request struct {
	Profile       models.Profile          `json:"profile"`
	Schedule      []models.ScheduleEntry  `json:"schedule"`
	PriorFeedback *models.Feedback        `json:"prior_feedback,omitempty"`
	NextCycle     *models.NextCycleConfig `json:"next_cycle,omitempty"`
	// Weeks is the mesocycle length; zero means DefaultWeeks.
	Weeks int `json:"weeks,omitempty"`
}

// ValidateSchedule checks that schedule has exactly seven entries in
// Monday-first order.
func ValidateSchedule(schedule []models.ScheduleEntry) error {
	if len(schedule) != models.DaysPerWeek {
		return fmt.Errorf("%w: got %d entries, want %d", ErrInvalidSchedule, len(schedule), models.DaysPerWeek)
	}
	for i, e := range schedule {
		if e.Day != models.Day(i) {
			return fmt.Errorf("%w: entry %d is %v, want %v", ErrInvalidSchedule, i, e.Day, models.Day(i))
		}
	}
	return nil
}

// TrainableDays counts the days the user can train.
func TrainableDays(schedule []models.ScheduleEntry) int {
	n := 0
	for _, e := range schedule {
		if e.CanTrain {
			n++
		}
	}
	return n
}

// PlanMesocycle runs the full planning pipeline. The only errors are
// ErrInvalidSchedule and ErrInvalidWeeks; every other input falls back to a
// default.
func PlanMesocycle(req Request) (*models.Mesocycle, error) {
	if err := ValidateSchedule(req.Schedule); err != nil {
		return nil, err
	}
	weeks := req.Weeks
	if weeks == 0 {
		weeks = DefaultWeeks
	}
	if weeks < 1 || weeks > MaxWeeks {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeeks, weeks)
	}

	profile := NormalizeProfile(req.Profile)
	resolution := ResolveObjective(profile.FitnessGoal, req.PriorFeedback, req.NextCycle)
	stress := CalculateSystemicStress(req.Schedule)
	tier := DetermineVolumeTier(profile.ExperienceLevel, stress, profile.Equipment)

	split := SelectSplitArchitecture(TrainableDays(req.Schedule), profile.ExperienceLevel, resolution.Goal, profile.Equipment)
	calendar := MapSessionsToCalendar(req.Schedule, split, profile.Equipment, profile.ExperienceLevel)

	m := &models.Mesocycle{
		Objective:       resolution.Objective,
		ObjectiveReason: resolution.Reason,
		Goal:            resolution.Goal,
		Experience:      profile.ExperienceLevel,
		Split:           split,
		SessionOrder:    GetSessionOrder(split),
		SystemicStress:  stress,
		VolumeTier:      tier,
		Weeks:           make([]models.Microcycle, 0, weeks),
	}
	for w := 1; w <= weeks; w++ {
		prog := CreateMicrocycleProgression(w)
		if resolution.Objective.IsDeload() {
			prog.IntensityModifier += techniqueDeloadIntensity
		}
		m.Weeks = append(m.Weeks, buildMicrocycle(prog, calendar, tier, profile, resolution.Goal))
	}
	return m, nil
}

func buildMicrocycle(prog models.Progression, calendar []models.ScheduledSession, tier int, profile models.Profile, goal models.Goal) models.Microcycle {
	mc := models.Microcycle{
		Progression:         prog,
		TargetSetsPerMuscle: int(math.Round(float64(tier) * prog.VolumeModifier)),
		Days:                make([]models.PlannedDay, 0, len(calendar)),
	}
	for _, s := range calendar {
		s.Context.Notes = slices.Clone(s.Context.Notes)
		s.Context.Focus = slices.Clone(s.Context.Focus)
		day := models.PlannedDay{Session: s}
		if !s.IsRestDay {
			rpe := SetSessionIntensity(profile.ExperienceLevel, s.Context.ExternalFatigue, s.SessionFocus)
			rpe = clampRPE(rpe + prog.IntensityModifier)
			if s.Context.MaxRPE > 0 {
				rpe = math.Min(rpe, s.Context.MaxRPE)
			}
			day.Intensity = &models.SessionIntensity{TargetRPE: rpe, StructureCategory: DetermineSessionStructureType(rpe)}
			content := GenerateSessionContent(s.SessionFocus, goal, profile.ExperienceLevel, profile.UserDeclaredFocus)
			day.Content = &content
		}
		mc.Days = append(mc.Days, day)
	}
	return mc
}

package planner

import (
	"math"

	"github.com/meltforce/mesoplan/internal/models"
)

// stressDeloadThreshold is roughly four high-load days outside the gym.
const stressDeloadThreshold = 12

var baseVolume = map[models.ExperienceLevel]int{
	models.Beginner:     10,
	models.Intermediate: 14,
	models.Advanced:     18,
}

// CalculateSystemicStress sums the external-load score of every day.
func CalculateSystemicStress(schedule []models.ScheduleEntry) int {
	total := 0
	for _, e := range schedule {
		total += e.ExternalLoad.Score()
	}
	return total
}

// DetermineVolumeTier returns the weekly working-set target per muscle group.
func DetermineVolumeTier(exp models.ExperienceLevel, stress int, eq *models.EquipmentProfile) int {
	base, ok := baseVolume[exp]
	if !ok {
		base = baseVolume[models.Intermediate]
	}
	switch {
	case eq.IsHomeBodyweight():
		base = max(6, int(math.Round(float64(base)*0.9)))
	case eq.IsHome() && !eq.HasBarbell && !eq.HasMachines:
		base = max(7, int(math.Round(float64(base)*0.95)))
	}
	if stress > stressDeloadThreshold {
		return int(float64(base) * 0.8)
	}
	return base
}

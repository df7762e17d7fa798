package planner

import (
	"math"

	"github.com/meltforce/mesoplan/internal/models"
)

const (
	minRPE          = 5.0
	maxRPE          = 10.0
	strengthBumpCap = 9.5
	defaultBaseRPE  = 7.5
)

var baseRPE = map[models.ExperienceLevel]float64{
	models.Beginner:     7,
	models.Intermediate: 8,
	models.Advanced:     9,
}

// SetSessionIntensity returns the target RPE for a session given the
// experience level and the same-day external load.
func SetSessionIntensity(exp models.ExperienceLevel, load models.ExternalLoad, sessionFocus string) float64 {
	rpe, ok := baseRPE[exp]
	if !ok {
		rpe = defaultBaseRPE
	}
	switch score := load.Score(); {
	case score >= 3:
		rpe -= 1.5
	case score == 2:
		rpe -= 0.5
	case classifyFocus(sessionFocus).strengthBiased():
		rpe = math.Min(rpe+0.5, strengthBumpCap)
	}
	return clampRPE(rpe)
}

func clampRPE(rpe float64) float64 {
	rpe = math.Max(minRPE, math.Min(maxRPE, rpe))
	return math.Round(rpe*10) / 10
}

// DetermineSessionStructureType maps an RPE onto its stimulus category.
func DetermineSessionStructureType(rpe float64) models.StructureCategory {
	switch {
	case rpe >= 8.5:
		return models.CategoryNeuralStrength
	case rpe >= 7:
		return models.CategoryHypertrophyStandard
	default:
		return models.CategoryMetabolicVolume
	}
}

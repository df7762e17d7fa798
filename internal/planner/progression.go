package planner

import "github.com/meltforce/mesoplan/internal/models"

// DefaultWeeks is the conventional mesocycle length.
const DefaultWeeks = 4

var progressionTable = map[int]models.Progression{
	1: {Week: 1, Focus: "Adaptación & Técnica", IntensityModifier: -1.0, VolumeModifier: 0.8},
	2: {Week: 2, Focus: "Acumulación de Volumen", IntensityModifier: 0, VolumeModifier: 1.0},
	3: {Week: 3, Focus: "Intensificación", IntensityModifier: 1.0, VolumeModifier: 0.9},
	4: {Week: 4, Focus: "Descarga (Deload)", IntensityModifier: -2.0, VolumeModifier: 0.5},
}

// CreateMicrocycleProgression returns the periodization row for a 1-based
// week. Weeks past the four-week arc hold at maintenance.
func CreateMicrocycleProgression(week int) models.Progression {
	if p, ok := progressionTable[week]; ok {
		return p
	}
	return models.Progression{Week: week, Focus: "Mantenimiento", IntensityModifier: 0, VolumeModifier: 1.0}
}

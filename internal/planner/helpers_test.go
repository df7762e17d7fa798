package planner

import "github.com/meltforce/mesoplan/internal/models"

// week builds a Monday-first schedule. trainable lists the days the user can
// train; loads sets per-day external load.
func week(trainable []models.Day, loads map[models.Day]models.ExternalLoad) []models.ScheduleEntry {
	can := map[models.Day]bool{}
	for _, d := range trainable {
		can[d] = true
	}
	out := make([]models.ScheduleEntry, models.DaysPerWeek)
	for i := range out {
		d := models.Day(i)
		out[i] = models.ScheduleEntry{Day: d, CanTrain: can[d], ExternalLoad: loads[d]}
	}
	return out
}

var (
	monToFri = []models.Day{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday}
	monToSat = []models.Day{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday, models.Saturday}
)

func foci(cal []models.ScheduledSession) []string {
	out := make([]string, len(cal))
	for i, s := range cal {
		out[i] = s.SessionFocus
	}
	return out
}

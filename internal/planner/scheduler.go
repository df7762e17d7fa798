package planner

import (
	"fmt"

	"github.com/meltforce/mesoplan/internal/models"
)

const (
	pivotFocus   = "Low-Load Pivot (Mobility/Core/Flush)"
	lowLoadFocus = "Low-Load (Mobility/Core/Flush)"
	extraFocus   = "Active Recovery (Extra)"

	pivotMaxRPE   = 6
	lowLoadMaxRPE = 5
)

// forcedRestSixDay are the 2-1-3-1 rest slots used when six days are trainable.
var forcedRestSixDay = map[int]bool{2: true, 6: true}

var lowLoadFocusAreas = []string{"mobility", "core", "metabolic_flush"}

// MapSessionsToCalendar places the split's session queue onto the seven days
// of the week. The result always has one entry per day in Monday-first order.
// Schedule entries are read positionally; missing entries count as
// non-trainable.
func MapSessionsToCalendar(schedule []models.ScheduleEntry, split models.SplitType, eq *models.EquipmentProfile, exp models.ExperienceLevel) []models.ScheduledSession {
	week := weekFrom(schedule)
	queue := GetSessionOrder(split)

	trainable := trainableIndexes(week)
	switch {
	case len(trainable) == 6:
		return sixDayTemplate(week, queue)
	case len(trainable) == 5 && consecutive(trainable):
		if eq.IsHome() && exp == models.Beginner {
			return conservativeFiveDayTemplate(week, queue, trainable)
		}
		return pivotFiveDayTemplate(week, queue, trainable)
	default:
		return greedyTemplate(week, queue)
	}
}

// weekFrom pads or truncates schedule to exactly seven positional entries.
func weekFrom(schedule []models.ScheduleEntry) [models.DaysPerWeek]models.ScheduleEntry {
	var week [models.DaysPerWeek]models.ScheduleEntry
	for i := range week {
		if i < len(schedule) {
			week[i] = schedule[i]
		}
		week[i].Day = models.Day(i)
	}
	return week
}

func trainableIndexes(week [models.DaysPerWeek]models.ScheduleEntry) []int {
	var idx []int
	for i, e := range week {
		if e.CanTrain {
			idx = append(idx, i)
		}
	}
	return idx
}

// consecutive reports whether idx is a run of adjacent days within one week.
func consecutive(idx []int) bool {
	for i := 1; i < len(idx); i++ {
		if idx[i] != idx[i-1]+1 {
			return false
		}
	}
	return true
}

func restDay(e models.ScheduleEntry) models.ScheduledSession {
	return models.ScheduledSession{
		Day:           e.Day,
		SessionFocus:  models.RestFocus,
		StructureType: models.StructureRest,
		IsRestDay:     true,
		Context:       models.SessionContext{ExternalFatigue: e.ExternalLoad},
	}
}

func loadDay(e models.ScheduleEntry, focus string) models.ScheduledSession {
	return models.ScheduledSession{
		Day:           e.Day,
		SessionFocus:  focus,
		StructureType: models.StructureNormal,
		Context:       models.SessionContext{ExternalFatigue: e.ExternalLoad},
	}
}

func lowLoadDay(e models.ScheduleEntry, pivot bool) models.ScheduledSession {
	s := models.ScheduledSession{
		Day:           e.Day,
		SessionFocus:  lowLoadFocus,
		StructureType: models.StructureLowLoad,
		Context: models.SessionContext{
			ExternalFatigue: e.ExternalLoad,
			ExcludeAxial:    true,
			MaxRPE:          lowLoadMaxRPE,
			Focus:           append([]string(nil), lowLoadFocusAreas...),
		},
	}
	if pivot {
		s.SessionFocus = pivotFocus
		s.StructureType = models.StructureLowLoadPivot
		s.Context.LowLoadPivot = true
		s.Context.MaxRPE = pivotMaxRPE
	}
	return s
}

// sixDayTemplate is positional: Wednesday and Sunday rest and the queue
// cycles over the other five slots, whatever availability says.
func sixDayTemplate(week [models.DaysPerWeek]models.ScheduleEntry, queue []string) []models.ScheduledSession {
	out := make([]models.ScheduledSession, 0, models.DaysPerWeek)
	n := 0
	for i, e := range week {
		if forcedRestSixDay[i] {
			out = append(out, restDay(e))
			continue
		}
		out = append(out, loadDay(e, queue[n%len(queue)]))
		n++
	}
	return out
}

// conservativeFiveDayTemplate loads only the outer days of a five-day run:
// load, low-load, pivot, low-load, load.
func conservativeFiveDayTemplate(week [models.DaysPerWeek]models.ScheduleEntry, queue []string, trainable []int) []models.ScheduledSession {
	out := make([]models.ScheduledSession, 0, models.DaysPerWeek)
	first, last, mid := trainable[0], trainable[len(trainable)-1], trainable[len(trainable)/2]
	for i, e := range week {
		switch {
		case !e.CanTrain:
			out = append(out, restDay(e))
		case i == first:
			out = append(out, loadDay(e, queue[0]))
		case i == last:
			out = append(out, loadDay(e, queue[1%len(queue)]))
		case i == mid:
			out = append(out, lowLoadDay(e, true))
		default:
			out = append(out, lowLoadDay(e, false))
		}
	}
	return out
}

// pivotFiveDayTemplate turns the central day of a five-day run into a
// low-load pivot and cycles the queue over the other four.
func pivotFiveDayTemplate(week [models.DaysPerWeek]models.ScheduleEntry, queue []string, trainable []int) []models.ScheduledSession {
	out := make([]models.ScheduledSession, 0, models.DaysPerWeek)
	mid := trainable[len(trainable)/2]
	n := 0
	for i, e := range week {
		switch {
		case !e.CanTrain:
			out = append(out, restDay(e))
		case i == mid:
			out = append(out, lowLoadDay(e, true))
		default:
			out = append(out, loadDay(e, queue[n%len(queue)]))
			n++
		}
	}
	return out
}

// greedyTemplate walks the week in order and takes the next session for each
// trainable day. On a high external-load day a hard session at the head of
// the queue is replaced by the first easier one behind it; the replaced
// session is not rescheduled. Once the queue runs out, remaining trainable
// days become extra active-recovery rest.
func greedyTemplate(week [models.DaysPerWeek]models.ScheduleEntry, queue []string) []models.ScheduledSession {
	out := make([]models.ScheduledSession, 0, models.DaysPerWeek)
	remaining := queue
	for _, e := range week {
		if !e.CanTrain {
			out = append(out, restDay(e))
			continue
		}
		if len(remaining) == 0 {
			extra := restDay(e)
			extra.SessionFocus = extraFocus
			extra.Context.Notes = []string{"session queue exhausted"}
			out = append(out, extra)
			continue
		}
		var focus, swappedFrom string
		focus, swappedFrom, remaining = takeSession(remaining, e.ExternalLoad)
		s := loadDay(e, focus)
		switch {
		case swappedFrom != "":
			s.Context.SwappedFrom = swappedFrom
			s.Context.Notes = []string{noteSwap(swappedFrom, focus)}
		case e.ExternalLoad.Score() >= 3 && classifyFocus(focus).hard():
			s.Context.Notes = []string{"high external load with no easier session available"}
		}
		out = append(out, s)
	}
	return out
}

// takeSession returns the session for a day and the queue that remains.
func takeSession(remaining []string, load models.ExternalLoad) (focus, swappedFrom string, rest []string) {
	head := remaining[0]
	if load.Score() < 3 || !classifyFocus(head).hard() {
		return head, "", remaining[1:]
	}
	for i := 1; i < len(remaining); i++ {
		if !classifyFocus(remaining[i]).hard() {
			rest = make([]string, 0, len(remaining)-2)
			rest = append(rest, remaining[1:i]...)
			rest = append(rest, remaining[i+1:]...)
			return remaining[i], head, rest
		}
	}
	return head, "", remaining[1:]
}

func noteSwap(from, to string) string {
	return fmt.Sprintf("fatigue-prevention swap: %s replaced by %s due to high external load", from, to)
}

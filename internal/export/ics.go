package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/meltforce/mesoplan/internal/models"
)

// ICSOptions controls calendar rendering.
type ICSOptions struct {
	// ID makes event UIDs stable across exports of the same plan.
	ID string
	// Start is the Monday of week 1. Other weekdays are moved back to their Monday.
	Start time.Time
	// Name is the calendar display name.
	Name string
	// Stamp is the DTSTAMP of every event; zero means now.
	Stamp time.Time
}

const icsLineLimit = 75

// NextMonday returns the first Monday on or after t, at midnight in t's location.
func NextMonday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// weekStart returns the Monday on or before t.
func weekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WriteICS renders one all-day event per training day of m.
func WriteICS(w io.Writer, m *models.Mesocycle, opts ICSOptions) error {
	if m == nil {
		return fmt.Errorf("exporting calendar: nil mesocycle")
	}
	if opts.Start.IsZero() {
		opts.Start = NextMonday(time.Now())
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("Mesocycle: %s", m.Split)
	}
	start := weekStart(opts.Start)

	var sb strings.Builder
	line := func(s string) { sb.WriteString(foldICS(s)) }

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//mesoplan//Training Plan//EN")
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	line("X-WR-CALNAME:" + escapeICS(opts.Name))

	for _, mc := range m.Weeks {
		for _, d := range mc.Days {
			if d.Session.IsRestDay {
				continue
			}
			date := start.AddDate(0, 0, (mc.Week-1)*models.DaysPerWeek+int(d.Session.Day))
			line("BEGIN:VEVENT")
			line(fmt.Sprintf("UID:%s-w%d-d%d@mesoplan", opts.ID, mc.Week, int(d.Session.Day)))
			line("DTSTAMP:" + formatICSTime(opts.Stamp))
			line("DTSTART;VALUE=DATE:" + date.Format("20060102"))
			line("DTEND;VALUE=DATE:" + date.AddDate(0, 0, 1).Format("20060102"))
			line("SUMMARY:" + escapeICS(fmt.Sprintf("W%d %s", mc.Week, d.Session.SessionFocus)))
			line("DESCRIPTION:" + escapeICS(describeDay(mc, d)))
			line("CATEGORIES:" + escapeICS(d.Session.StructureType.String()))
			line("END:VEVENT")
		}
	}
	line("END:VCALENDAR")

	_, err := io.WriteString(w, sb.String())
	return err
}

func describeDay(mc models.Microcycle, d models.PlannedDay) string {
	parts := []string{fmt.Sprintf("%s (week %d)", mc.Focus, mc.Week)}
	if d.Intensity != nil {
		parts = append(parts, fmt.Sprintf("Target RPE %.1f, %s", d.Intensity.TargetRPE, d.Intensity.StructureCategory))
	}
	if d.Content != nil {
		parts = append(parts, fmt.Sprintf("%s: %s", d.Content.PatternFocus, strings.Join(d.Content.MuscleGroups, ", ")))
		if core := describeCore(d.Content.Core); core != "" {
			parts = append(parts, "Core: "+core)
		}
		if cardio := describeCardio(d.Content.Cardio); cardio != "" {
			parts = append(parts, "Cardio: "+cardio)
		}
	}
	parts = append(parts, fmt.Sprintf("Sets per muscle this week: %d", mc.TargetSetsPerMuscle))
	parts = append(parts, d.Session.Context.Notes...)
	return strings.Join(parts, "\n")
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// foldICS terminates a content line with CRLF, folding it at 75 octets
// without splitting a UTF-8 sequence.
func foldICS(s string) string {
	if len(s) <= icsLineLimit {
		return s + "\r\n"
	}
	var sb strings.Builder
	limit := icsLineLimit
	n := 0
	for _, r := range s {
		size := utf8.RuneLen(r)
		if n+size > limit {
			sb.WriteString("\r\n ")
			n = 0
			limit = icsLineLimit - 1
		}
		sb.WriteRune(r)
		n += size
	}
	sb.WriteString("\r\n")
	return sb.String()
}

// Package export renders mesocycles as spreadsheet workbooks and iCalendar feeds.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/meltforce/mesoplan/internal/models"
)

// SheetOverview is the name of the summary sheet.
const SheetOverview = "Overview"

// WeekSheet returns the sheet name for a 1-based week.
func WeekSheet(week int) string { return fmt.Sprintf("Week %d", week) }

var weekColumns = []string{"Day", "Session", "Structure", "Target RPE", "Category", "Pattern", "Muscle Groups", "Core", "Cardio", "Notes"}

// sheet writes cells and keeps the first error.
type sheet struct {
	f    *excelize.File
	name string
	err  error
}

func (s *sheet) set(col, row int, v any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellValue(s.name, cell, v)
}

func (s *sheet) style(fromCol, toCol, row, style int) {
	if s.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, row)
	to, _ := excelize.CoordinatesToCellName(toCol, row)
	s.err = s.f.SetCellStyle(s.name, from, to, style)
}

func (s *sheet) width(cols string, w float64) {
	if s.err != nil {
		return
	}
	from, to, _ := strings.Cut(cols, ":")
	if to == "" {
		to = from
	}
	s.err = s.f.SetColWidth(s.name, from, to, w)
}

type styles struct {
	title, header, label, rest int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return st, err
	}
	if st.label, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E2EFDA"}, Pattern: 1},
	}); err != nil {
		return st, err
	}
	st.rest, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "808080"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
	})
	return st, err
}

// Workbook builds a workbook with an overview sheet and one sheet per week.
func Workbook(m *models.Mesocycle) (*excelize.File, error) {
	if m == nil {
		return nil, fmt.Errorf("exporting workbook: nil mesocycle")
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming overview sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating styles: %w", err)
	}

	if err := writeOverview(f, st, m); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing overview: %w", err)
	}
	for _, mc := range m.Weeks {
		if _, err := f.NewSheet(WeekSheet(mc.Week)); err != nil {
			f.Close()
			return nil, fmt.Errorf("creating sheet for week %d: %w", mc.Week, err)
		}
		if err := writeWeek(f, st, mc); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing week %d: %w", mc.Week, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook renders m as an .xlsx document to w.
func WriteWorkbook(w io.Writer, m *models.Mesocycle) error {
	f, err := Workbook(m)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeOverview(f *excelize.File, st styles, m *models.Mesocycle) error {
	s := &sheet{f: f, name: SheetOverview}

	s.set(1, 1, "MESOCYCLE PLAN")
	if s.err == nil {
		s.err = f.MergeCell(s.name, "A1", "E1")
	}
	s.style(1, 5, 1, st.title)

	info := [][2]any{
		{"Objective", m.Objective.String()},
		{"Reason", m.ObjectiveReason},
		{"Goal", m.Goal.String()},
		{"Experience", m.Experience.String()},
		{"Split", m.Split.String()},
		{"Session Order", strings.Join(m.SessionOrder, ", ")},
		{"Volume Tier (sets/muscle)", m.VolumeTier},
		{"Systemic Stress", m.SystemicStress},
		{"Weeks", len(m.Weeks)},
	}
	row := 3
	for _, kv := range info {
		s.set(1, row, kv[0])
		s.set(2, row, kv[1])
		s.style(1, 1, row, st.label)
		row++
	}

	row++
	for i, h := range []string{"Week", "Phase", "Intensity Modifier", "Volume Modifier", "Target Sets"} {
		s.set(i+1, row, h)
	}
	s.style(1, 5, row, st.header)
	for _, mc := range m.Weeks {
		row++
		s.set(1, row, mc.Week)
		s.set(2, row, mc.Focus)
		s.set(3, row, mc.IntensityModifier)
		s.set(4, row, mc.VolumeModifier)
		s.set(5, row, mc.TargetSetsPerMuscle)
	}

	s.width("A", 26)
	s.width("B", 40)
	s.width("C:E", 18)
	return s.err
}

func writeWeek(f *excelize.File, st styles, mc models.Microcycle) error {
	s := &sheet{f: f, name: WeekSheet(mc.Week)}

	s.set(1, 1, fmt.Sprintf("Week %d: %s", mc.Week, mc.Focus))
	s.set(5, 1, fmt.Sprintf("Target sets per muscle: %d", mc.TargetSetsPerMuscle))
	s.style(1, 1, 1, st.label)

	for i, h := range weekColumns {
		s.set(i+1, 3, h)
	}
	s.style(1, len(weekColumns), 3, st.header)

	for i, d := range mc.Days {
		row := i + 4
		s.set(1, row, d.Session.Day.String())
		s.set(2, row, d.Session.SessionFocus)
		s.set(3, row, d.Session.StructureType.String())
		if d.Intensity != nil {
			s.set(4, row, d.Intensity.TargetRPE)
			s.set(5, row, d.Intensity.StructureCategory.String())
		}
		if d.Content != nil {
			s.set(6, row, d.Content.PatternFocus)
			s.set(7, row, strings.Join(d.Content.MuscleGroups, ", "))
			s.set(8, row, describeCore(d.Content.Core))
			s.set(9, row, describeCardio(d.Content.Cardio))
		}
		s.set(10, row, strings.Join(d.Session.Context.Notes, "; "))
		if d.Session.IsRestDay {
			s.style(1, len(weekColumns), row, st.rest)
		}
	}

	s.width("A", 12)
	s.width("B", 36)
	s.width("C:F", 16)
	s.width("G", 40)
	s.width("H:I", 24)
	s.width("J", 50)
	return s.err
}

func describeCore(c models.CorePolicy) string {
	if !c.Included {
		return ""
	}
	return fmt.Sprintf("%s (%s)", c.Focus, c.Timing)
}

func describeCardio(c models.CardioPolicy) string {
	if !c.Included {
		return ""
	}
	return fmt.Sprintf("%s %d min", c.Type, c.DurationMinutes)
}

package planner

import "errors"

var (
	// ErrInvalidSchedule is returned when the weekly schedule is not exactly
	// seven entries in Monday-first order.
	ErrInvalidSchedule = errors.New("planner: invalid weekly schedule")
	// ErrInvalidWeeks is returned when the requested mesocycle length is out of range.
	ErrInvalidWeeks = errors.New("planner: invalid mesocycle length")
)

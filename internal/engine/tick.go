// Package engine provides the day-stepping simulation loop.
package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// DaysPerWeek is how often OnWeek fires.
const DaysPerWeek = 7

// Engine drives the simulation forward one day at a time.
type Engine struct {
	Day     int // Next day to simulate
	Days    int // Total simulated days
	Running bool

	// Callbacks for each layer; populated during setup. A callback error
	// stops the run.
	OnDay  func(day int) error // Every day
	OnWeek func(day int) error // After every 7th day
}

// NewEngine creates an engine for the given number of days.
func NewEngine(days int) *Engine {
	return &Engine{Days: days}
}

// Run steps every remaining day, or until Stop is called.
func (e *Engine) Run() error {
	e.Running = true
	start := time.Now()
	slog.Info("simulation engine started", "day", e.Day, "days", e.Days)

	for e.Running && e.Day < e.Days {
		if err := e.step(); err != nil {
			e.Running = false
			return err
		}
	}

	e.Running = false
	slog.Info("simulation engine stopped", "day", e.Day, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// Stop halts the loop after the current day.
func (e *Engine) Stop() {
	e.Running = false
}

// step simulates one day.
func (e *Engine) step() error {
	day := e.Day
	e.Day++

	if e.OnDay != nil {
		if err := e.OnDay(day); err != nil {
			return fmt.Errorf("day %d: %w", day, err)
		}
	}

	if e.Day%DaysPerWeek == 0 && e.OnWeek != nil {
		if err := e.OnWeek(day); err != nil {
			return fmt.Errorf("week ending day %d: %w", day, err)
		}
	}
	return nil
}

// SimDate returns the calendar date of a simulation day.
func SimDate(start time.Time, day int) time.Time {
	return start.AddDate(0, 0, day)
}

package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/talgya/playersim/internal/options"
	"github.com/talgya/playersim/internal/players"
	"github.com/talgya/playersim/internal/random"
)

// Simulation holds the population and wires the per-day systems together.
type Simulation struct {
	Options *options.GameOptions
	Start   time.Time // midnight of day 0
	Players []*players.Player
	LastDay int // Most recent day processed, -1 before the first

	Spawner  *players.Spawner
	Behavior *players.Behavior
	Sink     Sink
	rng      *random.RNG
	pending  []Event // events at or after the next midnight, held for the next batch

	// Statistics tracked per day and for the whole run.
	Stats   SimStats
	History []DayStats
	week    DayStats
}

// SimStats tracks run totals.
type SimStats struct {
	TotalPlayers int   `json:"total_players"`
	Sessions     int   `json:"sessions"`
	Purchases    int   `json:"purchases"`
	Revenue      int   `json:"revenue"`
	Stages       int   `json:"stages"`
	Events       int   `json:"events"`
	Draws        int64 `json:"draws"`
}

// DayStats summarizes one simulated day.
type DayStats struct {
	Day       int       `json:"day"`
	Date      time.Time `json:"date"`
	Acquired  int       `json:"acquired"`
	Active    int       `json:"active"`
	Sessions  int       `json:"sessions"`
	Purchases int       `json:"purchases"`
	Revenue   int       `json:"revenue"`
	Stages    int       `json:"stages"`
	Events    int       `json:"events"`
}

// NewSimulation creates a Simulation over a built plan. All behavioural
// draws come from rng; player IDs and drift derive from its seed.
func NewSimulation(game *options.GameOptions, rng *random.RNG, start time.Time, sink Sink) *Simulation {
	y, m, d := start.Date()
	return &Simulation{
		Options:  game,
		Start:    time.Date(y, m, d, 0, 0, 0, 0, start.Location()),
		LastDay:  -1,
		Spawner:  players.NewSpawner(rng.Seed(), rng),
		Behavior: players.NewBehavior(rng, players.NewDrift(rng.Seed())),
		Sink:     sink,
		rng:      rng,
	}
}

// NewEngine returns an engine wired to this simulation's callbacks.
func (s *Simulation) NewEngine() *Engine {
	eng := NewEngine(s.Options.Days)
	eng.OnDay = s.TickDay
	eng.OnWeek = s.TickWeek
	return eng
}

// TickDay acquires the day's new players, then plays every player acquired
// so far in acquisition order, and hands the sink every event before the
// next midnight in time order. Later events wait for the next day's batch.
func (s *Simulation) TickDay(day int) error {
	dayStart := SimDate(s.Start, day)
	stats := DayStats{Day: day, Date: dayStart}
	events := s.pending
	s.pending = nil

	newcomers := s.Spawner.Spawn(day, s.Options.AcquiredOn(day), s.Options.MixOn(day))
	for _, p := range newcomers {
		events = append(events, acquisitionEvent(p, dayStart))
	}
	s.Players = append(s.Players, newcomers...)
	stats.Acquired = len(newcomers)

	for _, p := range s.Players {
		sessions := s.Behavior.Day(p, day, dayStart)
		if len(sessions) > 0 {
			stats.Active++
		}
		for _, ss := range sessions {
			stats.Sessions++
			stats.Purchases += len(ss.Purchases)
			stats.Revenue += ss.Revenue()
			stats.Stages += len(ss.Stages)
			events = append(events, sessionEvents(p, ss)...)
		}
	}

	sortEvents(events)
	events, s.pending = splitAt(events, SimDate(s.Start, day+1))
	stats.Events = len(events)
	if err := s.write(events); err != nil {
		return err
	}

	s.LastDay = day
	s.History = append(s.History, stats)
	s.updateStats(stats)

	slog.Info("daily report",
		"day", day,
		"date", dayStart.Format(time.DateOnly),
		"weekday", dayStart.Weekday().String(),
		"acquired", stats.Acquired,
		"population", len(s.Players),
		"active", stats.Active,
		"sessions", stats.Sessions,
		"purchases", stats.Purchases,
		"revenue", stats.Revenue,
		"stages", stats.Stages,
		"events", stats.Events,
	)
	return nil
}

// TickWeek logs the week's totals and resets them.
func (s *Simulation) TickWeek(day int) error {
	slog.Info("weekly summary",
		"day", day,
		"week", day/DaysPerWeek+1,
		"acquired", s.week.Acquired,
		"sessions", s.week.Sessions,
		"purchases", s.week.Purchases,
		"revenue", s.week.Revenue,
		"retained", s.retained(day),
	)
	s.week = DayStats{}
	return nil
}

// Finish flushes events held past the last midnight and hands the
// population to the sink if it records players.
func (s *Simulation) Finish() error {
	held := s.pending
	s.pending = nil
	if err := s.write(held); err != nil {
		return err
	}
	s.Stats.Events += len(held)

	if saver, ok := s.Sink.(PlayerSink); ok {
		if err := saver.SavePlayers(s.Players); err != nil {
			return fmt.Errorf("save players: %w", err)
		}
	}
	slog.Info("simulation finished",
		"days", s.LastDay+1,
		"players", s.Stats.TotalPlayers,
		"sessions", s.Stats.Sessions,
		"revenue", s.Stats.Revenue,
		"events", s.Stats.Events,
		"draws", s.Stats.Draws,
	)
	return nil
}

func (s *Simulation) write(events []Event) error {
	if s.Sink == nil || len(events) == 0 {
		return nil
	}
	if err := s.Sink.WriteEvents(events); err != nil {
		return fmt.Errorf("write events: %w", err)
	}
	return nil
}

// splitAt cuts time-ordered events at the first one not before t.
func splitAt(events []Event, t time.Time) (before, after []Event) {
	i := sort.Search(len(events), func(i int) bool {
		return !events[i].Time.Before(t)
	})
	if i == len(events) {
		return events, nil
	}
	return events[:i], append([]Event(nil), events[i:]...)
}

// retained counts players acquired before this week who played during it.
func (s *Simulation) retained(day int) int {
	weekStart := SimDate(s.Start, day-DaysPerWeek+1)
	n := 0
	for _, p := range s.Players {
		if p.AcquiredDay <= day-DaysPerWeek && !p.LastSessionEnd.Before(weekStart) {
			n++
		}
	}
	return n
}

func (s *Simulation) updateStats(day DayStats) {
	s.Stats.TotalPlayers = len(s.Players)
	s.Stats.Sessions += day.Sessions
	s.Stats.Purchases += day.Purchases
	s.Stats.Revenue += day.Revenue
	s.Stats.Stages += day.Stages
	s.Stats.Events += day.Events
	s.Stats.Draws = s.rng.Draws()

	s.week.Acquired += day.Acquired
	s.week.Sessions += day.Sessions
	s.week.Purchases += day.Purchases
	s.week.Revenue += day.Revenue
}

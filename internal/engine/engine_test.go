package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/talgya/playersim/internal/options"
	"github.com/talgya/playersim/internal/random"
)

var start = time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC) // a Monday afternoon

func buildRun(t *testing.T, seed int64, players, days int) (*Simulation, *Recorder) {
	t.Helper()
	rng := random.New(seed)
	mix := options.DefaultMix(0.3, 0.6, 1.0)
	acq := options.AcquisitionPreset{DecayRate: 0.05, NoiseScale: 0.4, NoiseDecayRate: 0.01}
	game, err := options.BuildGameOptions(rng, options.DefaultBuildParams(players, days, mix, acq))
	if err != nil {
		t.Fatal(err)
	}
	rec := &Recorder{}
	return NewSimulation(game, rng, start, rec), rec
}

func TestEngineCallbacks(t *testing.T) {
	eng := NewEngine(15)
	var days, weeks []int
	eng.OnDay = func(d int) error { days = append(days, d); return nil }
	eng.OnWeek = func(d int) error { weeks = append(weeks, d); return nil }
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if len(days) != 15 || days[14] != 14 {
		t.Fatalf("days = %v", days)
	}
	if len(weeks) != 2 || weeks[0] != 6 || weeks[1] != 13 {
		t.Fatalf("weeks = %v", weeks)
	}
}

func TestEngineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	eng := NewEngine(10)
	eng.OnDay = func(d int) error {
		if d == 3 {
			return boom
		}
		return nil
	}
	if err := eng.Run(); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if eng.Day != 4 || eng.Running {
		t.Fatalf("engine should stop after the failing day, at %d", eng.Day)
	}
}

func TestSimulationRun(t *testing.T) {
	sim, rec := buildRun(t, 0, 20, 14)
	if err := sim.NewEngine().Run(); err != nil {
		t.Fatal(err)
	}
	if err := sim.Finish(); err != nil {
		t.Fatal(err)
	}

	if len(sim.History) != 14 || sim.LastDay != 13 {
		t.Fatalf("history %d, last day %d", len(sim.History), sim.LastDay)
	}
	if len(rec.Players) != sim.Options.TotalPlayers() {
		t.Fatalf("saved %d players, plan acquired %d", len(rec.Players), sim.Options.TotalPlayers())
	}
	if len(rec.Events) != sim.Stats.Events {
		t.Fatalf("recorded %d events, stats say %d", len(rec.Events), sim.Stats.Events)
	}

	acquisitions := 0
	for _, e := range rec.Events {
		if e.Type == EventAcquisition {
			acquisitions++
			if e.Time.Hour() != 0 || e.Time.Minute() != 0 {
				t.Fatalf("acquisition should be at day start, got %s", e.Time)
			}
		}
	}
	if acquisitions != sim.Stats.TotalPlayers {
		t.Fatalf("acquisition events %d, players %d", acquisitions, sim.Stats.TotalPlayers)
	}
	if sim.Stats.Sessions == 0 {
		t.Fatalf("expected sessions")
	}
}

func TestSimulationEventsBalanced(t *testing.T) {
	sim, rec := buildRun(t, 9, 15, 10)
	if err := sim.NewEngine().Run(); err != nil {
		t.Fatal(err)
	}
	if err := sim.Finish(); err != nil {
		t.Fatal(err)
	}
	counts := make(map[EventType]int)
	open := make(map[int64]bool)
	for _, e := range rec.Events {
		counts[e.Type]++
		switch e.Type {
		case EventLogin:
			open[e.SessionID] = true
		case EventLogout:
			if !open[e.SessionID] {
				t.Fatalf("logout without login for session %d", e.SessionID)
			}
		case EventPurchase:
			if e.Amount < 0 {
				t.Fatalf("negative amount")
			}
		}
	}
	if counts[EventLogin] != counts[EventLogout] || counts[EventLogin] != sim.Stats.Sessions {
		t.Fatalf("login %d logout %d sessions %d", counts[EventLogin], counts[EventLogout], sim.Stats.Sessions)
	}
	if counts[EventStageStart] != counts[EventStageEnd] {
		t.Fatalf("stage starts %d, ends %d", counts[EventStageStart], counts[EventStageEnd])
	}
	if counts[EventPurchase] != sim.Stats.Purchases {
		t.Fatalf("purchases %d, stats %d", counts[EventPurchase], sim.Stats.Purchases)
	}
}

func TestSimulationReproducible(t *testing.T) {
	run := func(seed int64) []Event {
		sim, rec := buildRun(t, seed, 10, 7)
		if err := sim.NewEngine().Run(); err != nil {
			t.Fatal(err)
		}
		return rec.Events
	}
	a, b := run(42), run(42)
	if len(a) != len(b) {
		t.Fatalf("event counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if c := run(43); len(c) == len(a) && len(a) > 0 && c[len(c)-1] == a[len(a)-1] {
		t.Fatalf("different seeds should diverge")
	}
}

func TestDayEventsSorted(t *testing.T) {
	sim, rec := buildRun(t, 5, 10, 3)
	if err := sim.TickDay(0); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(rec.Events); i++ {
		if rec.Events[i].Time.Before(rec.Events[i-1].Time) {
			t.Fatalf("events out of order at %d", i)
		}
	}
	if !sim.Start.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start should be truncated to midnight: %s", sim.Start)
	}
}

func TestStreamOrderedAcrossMidnight(t *testing.T) {
	sim, rec := buildRun(t, 0, 40, 21)
	if err := sim.NewEngine().Run(); err != nil {
		t.Fatal(err)
	}
	if err := sim.Finish(); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(rec.Events); i++ {
		if rec.Events[i].Time.Before(rec.Events[i-1].Time) {
			t.Fatalf("event %d (%s %s) before event %d (%s %s)", i,
				rec.Events[i].Type, rec.Events[i].Time, i-1, rec.Events[i-1].Type, rec.Events[i-1].Time)
		}
	}
	if len(rec.Events) != sim.Stats.Events {
		t.Fatalf("recorded %d events, stats say %d", len(rec.Events), sim.Stats.Events)
	}
}

func TestSplitAtHoldsNextDay(t *testing.T) {
	midnight := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Time: midnight.Add(-time.Minute), Type: EventLogin},
		{Time: midnight, Type: EventLogout},
		{Time: midnight.Add(time.Hour), Type: EventLogin},
	}
	before, after := splitAt(events, midnight)
	if len(before) != 1 || len(after) != 2 || after[0].Type != EventLogout {
		t.Fatalf("before %v, after %v", before, after)
	}
	if before, after := splitAt(events[:1], midnight); len(before) != 1 || after != nil {
		t.Fatalf("nothing should be held: %v %v", before, after)
	}
}

type failingSink struct{}

func (failingSink) WriteEvents([]Event) error { return errors.New("disk full") }

func TestSinkErrorAbortsRun(t *testing.T) {
	sim, _ := buildRun(t, 1, 10, 5)
	sim.Sink = failingSink{}
	if err := sim.NewEngine().Run(); err == nil {
		t.Fatalf("expected sink error to abort the run")
	}
}

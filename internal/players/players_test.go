package players

import (
	"testing"
	"time"

	"github.com/talgya/playersim/internal/curve"
	"github.com/talgya/playersim/internal/options"
	"github.com/talgya/playersim/internal/random"
	"github.com/talgya/playersim/internal/weighted"
)

var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // a Monday

func archetype(label string) *options.PlayerOptions {
	p, ok := options.DefaultArchetypes(30).Find(label)
	if !ok {
		panic(label)
	}
	return p
}

func TestSpawnerPicksFromMix(t *testing.T) {
	mix := weighted.Single(archetype(options.ArchCasual))
	s := NewSpawner(1, random.New(1))
	got := s.Spawn(3, 5, mix)
	if len(got) != 5 || s.Spawned() != 5 {
		t.Fatalf("spawned %d", len(got))
	}
	for i, p := range got {
		if p.Index != i || p.AcquiredDay != 3 || p.Label() != options.ArchCasual {
			t.Fatalf("player %d: %+v", i, p)
		}
	}
}

func TestPlayerIDStable(t *testing.T) {
	if PlayerID(0, 1) != PlayerID(0, 1) {
		t.Fatalf("ID must be deterministic")
	}
	if PlayerID(0, 1) == PlayerID(0, 2) || PlayerID(0, 1) == PlayerID(1, 1) {
		t.Fatalf("IDs must differ across index and seed")
	}
}

func TestBotPlaysFourSessionsADay(t *testing.T) {
	b := NewBehavior(random.New(4), nil)
	p := &Player{Archetype: archetype(options.ArchBot)}
	for day := 0; day < 7; day++ {
		sessions := b.Day(p, day, monday.AddDate(0, 0, day))
		if len(sessions) != 4 {
			t.Fatalf("day %d: %d sessions, want 4", day, len(sessions))
		}
	}
	if p.Sessions != 28 || p.Purchases != 0 {
		t.Fatalf("counters: %+v", p)
	}
}

func TestSessionsNeverOverlap(t *testing.T) {
	b := NewBehavior(random.New(8), nil)
	p := &Player{Archetype: archetype(options.ArchBot)}
	var prevEnd time.Time
	for day := 0; day < 30; day++ {
		for _, s := range b.Day(p, day, monday.AddDate(0, 0, day)) {
			if s.Start.Before(prevEnd) {
				t.Fatalf("session %d starts %s before previous end %s", s.ID, s.Start, prevEnd)
			}
			if s.End.Before(s.Start) {
				t.Fatalf("session %d ends before it starts", s.ID)
			}
			prevEnd = s.End
		}
	}
}

func TestNoSessionsOnEmptyWeekday(t *testing.T) {
	rng := random.New(2)
	b := NewBehavior(rng, nil)
	p := &Player{Archetype: archetype(options.ArchCasual)} // casual plays Tuesday to Friday
	if got := b.Day(p, 0, monday); got != nil {
		t.Fatalf("casual should not play on Monday: %v", got)
	}
	if rng.Draws() != 0 {
		t.Fatalf("an empty weekday must not draw, got %d", rng.Draws())
	}
}

func TestZeroLifetimeStopsPlay(t *testing.T) {
	b := NewBehavior(random.New(6), nil)
	p := &Player{Archetype: archetype(options.ArchChurner)}
	tuesday := monday.AddDate(0, 0, 1)
	for week := 2; week < 10; week++ {
		day := week * 7
		if got := b.Day(p, day, tuesday.AddDate(0, 0, day)); len(got) != 0 {
			t.Fatalf("churner still playing at age %d", day)
		}
	}
}

func TestStagesAndPurchasesStayInsideSession(t *testing.T) {
	hardcore := *archetype(options.ArchHardcore)
	hardcore.Lifetime = curve.Constant(1)
	hardcore.Purchases = weighted.Single(options.DefaultPurchaseProfiles()[0])
	b := NewBehavior(random.New(12), nil)
	p := &Player{Archetype: &hardcore}
	stages, purchases := 0, 0
	for day := 0; day < 14; day++ {
		for _, s := range b.Day(p, day, monday.AddDate(0, 0, day)) {
			for _, st := range s.Stages {
				if st.Start.Before(s.Start) || st.End.After(s.End) || st.Score < 0 {
					t.Fatalf("stage outside session: %+v in %s..%s", st, s.Start, s.End)
				}
				stages++
			}
			for _, pu := range s.Purchases {
				if pu.At.Before(s.Start) || pu.At.After(s.End) || pu.Amount < 0 {
					t.Fatalf("purchase outside session: %+v", pu)
				}
				purchases++
			}
		}
	}
	if stages == 0 || purchases == 0 {
		t.Fatalf("expected activity, got %d stages %d purchases", stages, purchases)
	}
	if p.Revenue <= 0 || p.Stages != stages || p.Purchases != purchases {
		t.Fatalf("counters out of sync: %+v", p)
	}
}

func TestForcedSpendGuaranteesPurchase(t *testing.T) {
	b := NewBehavior(random.New(3), nil)
	buyer := &options.PurchaseOptions{Name: "forced", AmountMean: 5, SpendsMean: -10, ForcedRatio: 1}
	for i := 0; i < 100; i++ {
		if got := b.purchases(buyer, monday, time.Hour); len(got) != 1 {
			t.Fatalf("forced spend produced %d purchases", len(got))
		}
	}
}

func TestBehaviorReproducible(t *testing.T) {
	run := func() []Session {
		b := NewBehavior(random.New(77), NewDrift(77))
		p := &Player{Index: 3, Archetype: archetype(options.ArchHardcore)}
		var all []Session
		for day := 0; day < 10; day++ {
			all = append(all, b.Day(p, day, monday.AddDate(0, 0, day))...)
		}
		return all
	}
	a, c := run(), run()
	if len(a) != len(c) {
		t.Fatalf("session counts differ: %d vs %d", len(a), len(c))
	}
	for i := range a {
		if !a[i].Start.Equal(c[i].Start) || len(a[i].Stages) != len(c[i].Stages) || a[i].Revenue() != c[i].Revenue() {
			t.Fatalf("session %d differs", i)
		}
	}
}

func TestDriftFactor(t *testing.T) {
	d := NewDrift(5)
	if d.Factor(0, 3, 10) != 1 {
		t.Fatalf("zero amplitude must be neutral")
	}
	for age := 0; age < 100; age++ {
		f := d.Factor(0.2, 1, age)
		if f < 0.8-1e-9 || f > 1.2+1e-9 {
			t.Fatalf("factor %f outside amplitude band", f)
		}
		if f != d.Factor(0.2, 1, age) {
			t.Fatalf("drift must be a pure function")
		}
	}
}

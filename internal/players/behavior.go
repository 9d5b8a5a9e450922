package players

import (
	"time"

	"github.com/talgya/playersim/internal/options"
	"github.com/talgya/playersim/internal/random"
)

// maxStagesPerSession bounds the stage loop for degenerate profiles.
const maxStagesPerSession = 500

// Behavior decides what a player does on a day. Every decision draws from
// one generator in a fixed order: per weekday slot, the occurrence draw;
// for an occurring session the start, duration, purchase profile, stage
// profile, forced-spend flag, spend count, each purchase's offset and
// amount, then stage duration, score and interval until the session ends.
type Behavior struct {
	rng         random.Source
	drift       *Drift
	nextSession int64
}

// NewBehavior creates a behaviour driver. drift may be nil.
func NewBehavior(rng random.Source, drift *Drift) *Behavior {
	return &Behavior{rng: rng, drift: drift}
}

// Engagement is the multiplier applied to every slot probability for a
// player on a day: lifetime curve at the player's age times drift.
func (b *Behavior) Engagement(p *Player, day int) float64 {
	age := p.Age(day)
	m := p.Archetype.Lifetime.ValueAt(float64(age))
	if b.drift != nil {
		m *= b.drift.Factor(p.Archetype.Drift, p.Index, age)
	}
	return m
}

// Day returns the sessions p plays on the given simulation day, which starts
// at dayStart.
func (b *Behavior) Day(p *Player, day int, dayStart time.Time) []Session {
	chances := p.Archetype.SessionsOn(dayStart.Weekday())
	if len(chances) == 0 {
		return nil
	}
	engagement := b.Engagement(p, day)

	var out []Session
	for _, c := range chances {
		if b.rng.Float64() >= c.Probability*engagement {
			continue
		}
		out = append(out, b.session(p, c.Session, dayStart))
	}
	return out
}

func (b *Behavior) session(p *Player, slot *options.SessionOptions, dayStart time.Time) Session {
	start := dayStart.Add(slot.Start(b.rng))
	if start.Before(p.LastSessionEnd) {
		start = p.LastSessionEnd
	}
	length := slot.Duration(b.rng)
	end := start.Add(length)

	b.nextSession++
	s := Session{ID: b.nextSession, Slot: slot.Name, Start: start, End: end}

	buyer := p.Archetype.Purchases.Pick(b.rng.Float64())
	stage := p.Archetype.Stages.Pick(b.rng.Float64())

	s.Purchases = b.purchases(buyer, start, length)
	s.Stages = b.stages(stage, start, end)

	p.LastSessionEnd = end
	p.Sessions++
	p.Purchases += len(s.Purchases)
	p.Revenue += s.Revenue()
	p.Stages += len(s.Stages)
	return s
}

func (b *Behavior) purchases(buyer *options.PurchaseOptions, start time.Time, length time.Duration) []Purchase {
	must := buyer.MustSpend(b.rng)
	n := buyer.SpendCount(b.rng)
	if must && n < 1 {
		n = 1
	}
	if n == 0 {
		return nil
	}
	out := make([]Purchase, 0, n)
	for i := 0; i < n; i++ {
		offset := time.Duration(b.rng.Float64() * float64(length))
		out = append(out, Purchase{At: start.Add(offset), Amount: buyer.Amount(b.rng)})
	}
	return out
}

func (b *Behavior) stages(stage *options.StageOptions, start, end time.Time) []StagePlay {
	var out []StagePlay
	t := start
	for len(out) < maxStagesPerSession {
		d := stage.Duration(b.rng)
		if d <= 0 || t.Add(d).After(end) {
			break
		}
		out = append(out, StagePlay{
			Profile: stage.Name,
			Start:   t,
			End:     t.Add(d),
			Score:   stage.Score(b.rng),
		})
		t = t.Add(d + stage.Interval(b.rng))
	}
	return out
}

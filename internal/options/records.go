// Option records parameterize every distribution a simulated player draws
// from. They are built once before a run and only read afterwards.
package options

import (
	"time"

	"github.com/talgya/playersim/internal/random"
)

// Clamp factors applied to the duration draws.
const (
	SessionDurationClamp = 3.0
	StageDurationClamp   = 2.0
)

// PurchaseOptions is a per-archetype spend profile.
type PurchaseOptions struct {
	Name        string
	AmountMean  float64 // currency units per spend
	AmountStdev float64
	SpendsMean  float64 // spend events per session
	SpendsStdev float64
	ForcedRatio float64 // probability a purchase is forced during a visit
}

// Amount draws the value of one purchase, floored at zero.
func (p *PurchaseOptions) Amount(src random.Source) int {
	return random.NonNegativeInt(src, p.AmountMean, p.AmountStdev)
}

// SpendCount draws how many purchases happen in a session, floored at zero.
func (p *PurchaseOptions) SpendCount(src random.Source) int {
	return random.NonNegativeInt(src, p.SpendsMean, p.SpendsStdev)
}

// MustSpend reports whether this visit is forced to contain a purchase.
func (p *PurchaseOptions) MustSpend(src random.Source) bool {
	return src.Float64() < p.ForcedRatio
}

// StageOptions is a per-archetype stage-play profile.
type StageOptions struct {
	Name          string
	DurationMean  time.Duration
	DurationStdev time.Duration
	IntervalRatio float64 // pause between attempts relative to a stage duration
	ScoreMean     float64
	ScoreStdev    float64
}

// Duration draws how long one stage attempt lasts.
func (s *StageOptions) Duration(src random.Source) time.Duration {
	return floor(random.Duration(src, s.DurationMean, s.DurationStdev, StageDurationClamp))
}

// Interval draws the pause before the next attempt.
func (s *StageOptions) Interval(src random.Source) time.Duration {
	d := random.Duration(src, s.DurationMean, s.DurationStdev, StageDurationClamp)
	return floor(time.Duration(s.IntervalRatio * float64(d)))
}

// Score draws the score of one attempt, floored at zero.
func (s *StageOptions) Score(src random.Source) int {
	return random.NonNegativeInt(src, s.ScoreMean, s.ScoreStdev)
}

// SessionOptions is a named time-of-day slot.
type SessionOptions struct {
	Name          string
	TimeMean      time.Duration // offset from midnight
	TimeStdev     time.Duration
	DurationMean  time.Duration
	DurationStdev time.Duration
}

// Start draws the session start as an offset from midnight. The result is
// not clamped to the day.
func (s *SessionOptions) Start(src random.Source) time.Duration {
	return random.TimeOfDay(src, s.TimeMean, s.TimeStdev)
}

// Duration draws the session length, floored at zero.
func (s *SessionOptions) Duration(src random.Source) time.Duration {
	return floor(random.Duration(src, s.DurationMean, s.DurationStdev, SessionDurationClamp))
}

func floor(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

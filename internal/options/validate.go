package options

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrInvalidOptions = errors.New("invalid options")

// Validate checks every record an archetype references.
func (p *PlayerOptions) Validate() error {
	var errs []string

	if p.Label == "" {
		errs = append(errs, "label is required")
	}
	if p.Purchases == nil {
		errs = append(errs, "purchases dictionary is required")
	} else {
		for _, e := range p.Purchases.Entries() {
			errs = append(errs, purchaseProblems(e.Outcome)...)
		}
	}
	if p.Stages == nil {
		errs = append(errs, "stages dictionary is required")
	} else {
		for _, e := range p.Stages.Entries() {
			errs = append(errs, stageProblems(e.Outcome)...)
		}
	}
	if p.Lifetime == nil {
		errs = append(errs, "lifetime curve is required")
	}
	if p.Drift < 0 || p.Drift > 1 {
		errs = append(errs, "drift must be in [0,1]")
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, c := range p.Sessions[day] {
			if !isProbability(c.Probability) {
				errs = append(errs, fmt.Sprintf("%s %s: probability must be in [0,1]", day, c.Session.Name))
			}
			errs = append(errs, sessionProblems(c.Session)...)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: archetype %q: %s", ErrInvalidOptions, p.Label, strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks each archetype and rejects duplicate labels.
func (a Archetypes) Validate() error {
	seen := make(map[string]bool, len(a))
	for _, p := range a {
		if seen[p.Label] {
			return fmt.Errorf("%w: duplicate archetype %q", ErrInvalidOptions, p.Label)
		}
		seen[p.Label] = true
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a purchase profile on its own.
func (p *PurchaseOptions) Validate() error {
	return joinProblems(purchaseProblems(p))
}

// Validate checks a stage profile on its own.
func (s *StageOptions) Validate() error {
	return joinProblems(stageProblems(s))
}

// Validate checks a session slot on its own.
func (s *SessionOptions) Validate() error {
	return joinProblems(sessionProblems(s))
}

func purchaseProblems(p *PurchaseOptions) []string {
	var errs []string
	if p.AmountStdev < 0 || p.SpendsStdev < 0 {
		errs = append(errs, fmt.Sprintf("purchase %q: stdev must be >= 0", p.Name))
	}
	if !isProbability(p.ForcedRatio) {
		errs = append(errs, fmt.Sprintf("purchase %q: forced ratio must be in [0,1]", p.Name))
	}
	return errs
}

func stageProblems(s *StageOptions) []string {
	var errs []string
	if s.DurationMean <= 0 {
		errs = append(errs, fmt.Sprintf("stage %q: duration mean must be > 0", s.Name))
	}
	if s.DurationStdev < 0 || s.ScoreStdev < 0 {
		errs = append(errs, fmt.Sprintf("stage %q: stdev must be >= 0", s.Name))
	}
	if s.IntervalRatio < 0 {
		errs = append(errs, fmt.Sprintf("stage %q: interval ratio must be >= 0", s.Name))
	}
	return errs
}

func sessionProblems(s *SessionOptions) []string {
	var errs []string
	if s.DurationMean < 0 {
		errs = append(errs, fmt.Sprintf("session %q: duration mean must be >= 0", s.Name))
	}
	if s.TimeStdev < 0 || s.DurationStdev < 0 {
		errs = append(errs, fmt.Sprintf("session %q: stdev must be >= 0", s.Name))
	}
	return errs
}

func joinProblems(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(errs, "; "))
}

func isProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

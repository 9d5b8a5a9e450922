package config

import (
	"fmt"
	"strings"

	"github.com/talgya/playersim/internal/curve"
	"github.com/talgya/playersim/internal/options"
	"github.com/talgya/playersim/internal/random"
	"github.com/talgya/playersim/internal/weighted"
)

// ResolveArchetypes resolves the archetype definitions against the named
// session, purchase and stage profiles.
func (f File) ResolveArchetypes() (options.Archetypes, error) {
	var errs []string

	slots := make(map[string]*options.SessionOptions, len(f.Sessions))
	for _, s := range f.Sessions {
		if _, dup := slots[s.Name]; dup {
			errs = append(errs, fmt.Sprintf("session %q defined twice", s.Name))
		}
		slots[s.Name] = &options.SessionOptions{
			Name:          s.Name,
			TimeMean:      s.Time.D(),
			TimeStdev:     s.TimeStdev.D(),
			DurationMean:  s.Duration.D(),
			DurationStdev: s.DurationStdev.D(),
		}
	}
	buys := make(map[string]*options.PurchaseOptions, len(f.Purchases))
	for _, p := range f.Purchases {
		if _, dup := buys[p.Name]; dup {
			errs = append(errs, fmt.Sprintf("purchase %q defined twice", p.Name))
		}
		buys[p.Name] = &options.PurchaseOptions{
			Name:        p.Name,
			AmountMean:  p.Amount,
			AmountStdev: p.AmountStdev,
			SpendsMean:  p.Spends,
			SpendsStdev: p.SpendsStdev,
			ForcedRatio: p.ForcedRatio,
		}
	}
	plays := make(map[string]*options.StageOptions, len(f.Stages))
	for _, s := range f.Stages {
		if _, dup := plays[s.Name]; dup {
			errs = append(errs, fmt.Sprintf("stage %q defined twice", s.Name))
		}
		plays[s.Name] = &options.StageOptions{
			Name:          s.Name,
			DurationMean:  s.Duration.D(),
			DurationStdev: s.DurationStdev.D(),
			IntervalRatio: s.IntervalRatio,
			ScoreMean:     s.Score,
			ScoreStdev:    s.ScoreStdev,
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", options.ErrInvalidOptions, strings.Join(errs, "; "))
	}

	out := make(options.Archetypes, 0, len(f.Archetypes))
	for _, a := range f.Archetypes {
		po, err := buildArchetype(a, slots, buys, plays)
		if err != nil {
			return nil, fmt.Errorf("archetype %q: %w", a.Label, err)
		}
		out = append(out, po)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Build resolves the file into the per-day plan for a run. The acquisition
// sequences draw from src.
func (f File) Build(src random.Source) (*options.GameOptions, error) {
	archetypes, err := f.ResolveArchetypes()
	if err != nil {
		return nil, err
	}
	optionsDays := f.OptionsDays
	if optionsDays == nil {
		optionsDays = options.Uniform(f.Days)
	}
	acquisitionDays := f.AcquisitionDays
	if acquisitionDays == nil {
		acquisitionDays = options.Uniform(f.Days)
	}
	return options.BuildGameOptions(src, options.BuildParams{
		Players:         f.Players,
		Days:            f.Days,
		OptionsDays:     optionsDays,
		AcquisitionDays: acquisitionDays,
		Mixes:           f.Mixes,
		Acquisitions:    f.Acquisitions,
		Archetypes:      archetypes,
		Rules:           f.Rules,
	})
}

func buildArchetype(a ArchetypeCfg,
	slots map[string]*options.SessionOptions,
	buys map[string]*options.PurchaseOptions,
	plays map[string]*options.StageOptions,
) (*options.PlayerOptions, error) {
	entries := make([]options.SessionEntry, 0, len(a.Sessions))
	for _, s := range a.Sessions {
		day, ok := weekdayNames[strings.ToLower(s.Day)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", s.Day)
		}
		slot, ok := slots[s.Slot]
		if !ok {
			return nil, fmt.Errorf("unknown session slot %q", s.Slot)
		}
		entries = append(entries, options.SessionEntry{Day: day, Session: slot, Probability: s.Probability})
	}
	table, err := options.NewSessionTable(entries...)
	if err != nil {
		return nil, err
	}

	purchases, err := resolve(a.Purchases, buys, "purchase")
	if err != nil {
		return nil, err
	}
	stages, err := resolve(a.Stages, plays, "stage")
	if err != nil {
		return nil, err
	}

	var opts []curve.Option
	if a.Lifetime.Modulo {
		opts = append(opts, curve.WithModulo())
	}
	lifetime, err := curve.New(a.Lifetime.Points, opts...)
	if err != nil {
		return nil, fmt.Errorf("lifetime: %w", err)
	}

	return &options.PlayerOptions{
		Label:     a.Label,
		Sessions:  table,
		Purchases: purchases,
		Stages:    stages,
		Lifetime:  lifetime,
		Drift:     a.Drift,
	}, nil
}

func resolve[T any](refs []WeightCfg, byName map[string]T, kind string) (*weighted.Dictionary[T], error) {
	entries := make([]weighted.Entry[T], 0, len(refs))
	for _, r := range refs {
		v, ok := byName[r.Profile]
		if !ok {
			return nil, fmt.Errorf("unknown %s profile %q", kind, r.Profile)
		}
		entries = append(entries, weighted.Entry[T]{Outcome: v, Weight: r.Weight})
	}
	d, err := weighted.New(entries...)
	if err != nil {
		return nil, fmt.Errorf("%s weights: %w", kind, err)
	}
	return d, nil
}

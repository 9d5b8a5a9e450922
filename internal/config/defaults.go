package config

import (
	"strings"
	"time"

	"github.com/talgya/playersim/internal/options"
)

// Version of the preset file schema written by Default.
const Version = "1"

// Default describes the built-in presets as a preset file, a starting point
// for custom archetype definitions.
func Default(players, days int, mix options.MixPreset, acq options.AcquisitionPreset) File {
	f := File{
		Version:      Version,
		Players:      players,
		Days:         days,
		Mixes:        []options.MixPreset{mix},
		Acquisitions: []options.AcquisitionPreset{acq},
	}
	for _, s := range options.DefaultSessionSlots() {
		f.Sessions = append(f.Sessions, SessionCfg{
			Name:          s.Name,
			Time:          Duration(s.TimeMean),
			TimeStdev:     Duration(s.TimeStdev),
			Duration:      Duration(s.DurationMean),
			DurationStdev: Duration(s.DurationStdev),
		})
	}
	for _, p := range options.DefaultPurchaseProfiles() {
		f.Purchases = append(f.Purchases, PurchaseCfg{
			Name:        p.Name,
			Amount:      p.AmountMean,
			AmountStdev: p.AmountStdev,
			Spends:      p.SpendsMean,
			SpendsStdev: p.SpendsStdev,
			ForcedRatio: p.ForcedRatio,
		})
	}
	for _, s := range options.DefaultStageProfiles() {
		f.Stages = append(f.Stages, StageCfg{
			Name:          s.Name,
			Duration:      Duration(s.DurationMean),
			DurationStdev: Duration(s.DurationStdev),
			IntervalRatio: s.IntervalRatio,
			Score:         s.ScoreMean,
			ScoreStdev:    s.ScoreStdev,
		})
	}
	for _, a := range options.DefaultArchetypes(days) {
		f.Archetypes = append(f.Archetypes, archetypeCfg(a))
	}
	return f
}

func archetypeCfg(a *options.PlayerOptions) ArchetypeCfg {
	cfg := ArchetypeCfg{
		Label: a.Label,
		Drift: a.Drift,
		Lifetime: LifetimeCfg{
			Modulo: a.Lifetime.Modulo(),
			Points: a.Lifetime.Points(),
		},
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		for _, c := range a.SessionsOn(d) {
			cfg.Sessions = append(cfg.Sessions, SlotCfg{
				Day:         strings.ToLower(d.String()),
				Slot:        c.Session.Name,
				Probability: c.Probability,
			})
		}
	}
	for _, e := range a.Purchases.Entries() {
		cfg.Purchases = append(cfg.Purchases, WeightCfg{Profile: e.Outcome.Name, Weight: e.Weight})
	}
	for _, e := range a.Stages.Entries() {
		cfg.Stages = append(cfg.Stages, WeightCfg{Profile: e.Outcome.Name, Weight: e.Weight})
	}
	return cfg
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/talgya/playersim/internal/config"
	"github.com/talgya/playersim/internal/options"
	"github.com/talgya/playersim/internal/random"
)

// Defaults for the acquisition plan.
const (
	defaultPlayers = 10
	defaultDays    = 7

	defaultHardcore = 0.05
	defaultCasual   = 0.1
	defaultChurner  = 1.0

	defaultDecayRate      = 0.05
	defaultNoiseScale     = 0.4
	defaultNoiseDecayRate = 0.01
)

// planFlags are the knobs shared by every command that builds a plan.
type planFlags struct {
	players int
	days    int

	hardcore float64
	casual   float64
	churner  float64

	decayRate      float64
	noiseScale     float64
	noiseDecayRate float64
}

func addPlanFlags(cmd *cobra.Command, p *planFlags) {
	f := cmd.Flags()
	f.IntVar(&p.players, "players", defaultPlayers, "Players acquired on day 0 before decay")
	f.IntVar(&p.days, "days", defaultDays, "Number of acquisition days")
	f.Float64Var(&p.hardcore, "hardcore", defaultHardcore, "Hardcore weight in the archetype mix")
	f.Float64Var(&p.casual, "casual", defaultCasual, "Casual weight in the archetype mix")
	f.Float64Var(&p.churner, "churner", defaultChurner, "Churner weight in the archetype mix")
	f.Float64Var(&p.decayRate, "decay_rate", defaultDecayRate, "Daily decay rate of new players")
	f.Float64Var(&p.noiseScale, "noise_scale", defaultNoiseScale, "Noise scale of new players")
	f.Float64Var(&p.noiseDecayRate, "noise_decay_rate", defaultNoiseDecayRate, "Daily decay rate of the noise")
}

func (p *planFlags) mix() options.MixPreset {
	return options.DefaultMix(p.hardcore, p.casual, p.churner)
}

func (p *planFlags) acquisition() options.AcquisitionPreset {
	return options.AcquisitionPreset{
		DecayRate:      p.decayRate,
		NoiseScale:     p.noiseScale,
		NoiseDecayRate: p.noiseDecayRate,
	}
}

func (p *planFlags) validate() error {
	if p.players < 0 {
		return fmt.Errorf("--players must be >= 0, got %d", p.players)
	}
	if p.days < 1 {
		return fmt.Errorf("--days must be >= 1, got %d", p.days)
	}
	return nil
}

// buildPlan builds the per-day plan from a preset file when one is given,
// otherwise from the built-in presets. Explicit --players and --days flags
// override the file.
func buildPlan(cmd *cobra.Command, p *planFlags, presetPath string, rng *random.RNG) (*options.GameOptions, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if presetPath == "" {
		return options.BuildGameOptions(rng, options.DefaultBuildParams(p.players, p.days, p.mix(), p.acquisition()))
	}

	f, err := config.Load(presetPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("players") {
		f.Players = p.players
	}
	if cmd.Flags().Changed("days") {
		f.Days = p.days
	}
	slog.Info("presets loaded", "path", presetPath, "archetypes", len(f.Archetypes), "days", f.Days)
	return f.Build(rng)
}

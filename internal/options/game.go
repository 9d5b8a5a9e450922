package options

import (
	"errors"
	"fmt"

	"github.com/talgya/playersim/internal/random"
	"github.com/talgya/playersim/internal/weighted"
)

var (
	ErrScheduleLength   = errors.New("per-day schedule length does not match simulated days")
	ErrPresetIndex      = errors.New("per-day schedule references a missing preset")
	ErrUnknownArchetype = errors.New("unknown archetype")
)

// GameRules holds cross-archetype correlation parameters. The engine does not
// consume them yet; they are carried so preset files can declare them.
type GameRules struct {
	Correlations map[string]float64 `yaml:"correlations,omitempty"`
}

// GameOptions is the per-day acquisition plan for a whole run, indexed by
// day number in [0, Days).
type GameOptions struct {
	Mix      []*weighted.Dictionary[*PlayerOptions] // archetype mix for players acquired that day
	Acquired []int                                  // new players that day
	Days     int
	Rules    GameRules
}

// MixOn returns the archetype mix governing day d.
func (g *GameOptions) MixOn(d int) *weighted.Dictionary[*PlayerOptions] {
	return g.Mix[d]
}

// AcquiredOn returns the number of players acquired on day d.
func (g *GameOptions) AcquiredOn(d int) int {
	return g.Acquired[d]
}

// TotalPlayers is the sum of daily acquisitions.
func (g *GameOptions) TotalPlayers() int {
	total := 0
	for _, n := range g.Acquired {
		total += n
	}
	return total
}

// MixWeight is one archetype's cumulative weight inside a mix preset.
type MixWeight struct {
	Archetype string  `yaml:"archetype"`
	Weight    float64 `yaml:"weight"`
}

// MixPreset is an archetype-probability preset.
type MixPreset []MixWeight

// BuildParams carries everything BuildGameOptions composes.
type BuildParams struct {
	Players         int // players per day before decay
	Days            int
	OptionsDays     []int // per day: index into Mixes
	AcquisitionDays []int // per day: index into Acquisitions
	Mixes           []MixPreset
	Acquisitions    []AcquisitionPreset
	Archetypes      Archetypes
	Rules           GameRules
}

// BuildGameOptions precomputes one acquisition sequence per acquisition
// preset, resolves each mix preset against the archetype catalogue, then
// composes the per-day plan. Schedules are checked before any draw is taken
// so a bad configuration fails before the simulation starts.
func BuildGameOptions(src random.Source, p BuildParams) (*GameOptions, error) {
	if p.Days < 0 || p.Players < 0 {
		return nil, fmt.Errorf("%w: players and days must be >= 0", ErrInvalidOptions)
	}
	if err := checkSchedule("options", p.OptionsDays, p.Days, len(p.Mixes)); err != nil {
		return nil, err
	}
	if err := checkSchedule("acquisition", p.AcquisitionDays, p.Days, len(p.Acquisitions)); err != nil {
		return nil, err
	}
	if err := p.Archetypes.Validate(); err != nil {
		return nil, err
	}

	mixes := make([]*weighted.Dictionary[*PlayerOptions], len(p.Mixes))
	for i, preset := range p.Mixes {
		d, err := resolveMix(preset, p.Archetypes)
		if err != nil {
			return nil, fmt.Errorf("mix preset %d: %w", i, err)
		}
		mixes[i] = d
	}

	sequences := make([][]int, len(p.Acquisitions))
	for i, preset := range p.Acquisitions {
		sequences[i] = AcquisitionSequence(src, p.Players, p.Days, preset)
	}

	g := &GameOptions{
		Mix:      make([]*weighted.Dictionary[*PlayerOptions], p.Days),
		Acquired: make([]int, p.Days),
		Days:     p.Days,
		Rules:    p.Rules,
	}
	for d := 0; d < p.Days; d++ {
		g.Mix[d] = mixes[p.OptionsDays[d]]
		g.Acquired[d] = sequences[p.AcquisitionDays[d]][d]
	}
	return g, nil
}

func checkSchedule(name string, schedule []int, days, presets int) error {
	if len(schedule) != days {
		return fmt.Errorf("%w: %s schedule has %d entries for %d days", ErrScheduleLength, name, len(schedule), days)
	}
	for d, idx := range schedule {
		if idx < 0 || idx >= presets {
			return fmt.Errorf("%w: %s schedule day %d uses preset %d of %d", ErrPresetIndex, name, d, idx, presets)
		}
	}
	return nil
}

// resolveMix drops zero-weight archetypes, which can never be picked.
func resolveMix(preset MixPreset, archetypes Archetypes) (*weighted.Dictionary[*PlayerOptions], error) {
	var entries []weighted.Entry[*PlayerOptions]
	for _, mw := range preset {
		po, ok := archetypes.Find(mw.Archetype)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, mw.Archetype)
		}
		if mw.Weight < 0 {
			return nil, fmt.Errorf("%w: archetype %q has negative weight", ErrInvalidOptions, mw.Archetype)
		}
		if mw.Weight == 0 {
			continue
		}
		entries = append(entries, weighted.Entry[*PlayerOptions]{Outcome: po, Weight: mw.Weight})
	}
	return weighted.New(entries...)
}

// Uniform returns a schedule selecting preset 0 on every day.
func Uniform(days int) []int {
	return make([]int, days)
}

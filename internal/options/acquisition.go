package options

import (
	"math"

	"github.com/talgya/playersim/internal/random"
)

// AcquisitionPreset shapes daily new-player counts: an exponentially decaying
// cohort with Gaussian noise whose amplitude decays on its own rate.
type AcquisitionPreset struct {
	DecayRate      float64 `yaml:"decay_rate"`
	NoiseScale     float64 `yaml:"noise_scale"`
	NoiseDecayRate float64 `yaml:"noise_decay_rate"`
}

// AcquisitionSequence returns the number of players acquired on each of
// days days. One Gaussian draw is taken per day, in day order:
//
//	acquired(d) = max(0, round(players·e^(−decay·d) + N(0, players·noise·e^(−noiseDecay·d))))
func AcquisitionSequence(src random.Source, players, days int, p AcquisitionPreset) []int {
	out := make([]int, days)
	n := float64(players)
	for d := 0; d < days; d++ {
		day := float64(d)
		base := n * math.Exp(-p.DecayRate*day)
		noise := random.Gaussian(src, 0, n*p.NoiseScale*math.Exp(-p.NoiseDecayRate*day))
		out[d] = int(math.Max(0, math.Round(base+noise)))
	}
	return out
}

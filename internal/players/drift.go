package players

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise sampling steps. Frequencies below 1 keep consecutive days correlated.
const (
	driftFrequency = 0.15
	playerSpacing  = 7.3
)

// Drift is a smooth per-player day-to-day engagement multiplier. It is a
// pure function of the run seed, player index and age, so it never consumes
// draws from the behaviour generator.
type Drift struct {
	noise opensimplex.Noise
}

// NewDrift seeds the noise field for a run.
func NewDrift(seed int64) *Drift {
	return &Drift{noise: opensimplex.New(seed)}
}

// Factor returns 1 + amplitude·noise, floored at zero. A zero amplitude
// returns exactly 1.
func (d *Drift) Factor(amplitude float64, playerIndex, age int) float64 {
	if amplitude == 0 {
		return 1
	}
	n := d.noise.Eval2(float64(age)*driftFrequency, float64(playerIndex)*playerSpacing)
	return math.Max(0, 1+amplitude*n)
}

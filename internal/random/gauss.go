package random

import (
	"math"
	"time"
)

// DefaultClamp bounds Gaussian draws to three standard deviations.
const DefaultClamp = 3.0

// Gaussian draws from Normal(mean, stdev) without clamping.
func Gaussian(src Source, mean, stdev float64) float64 {
	return mean + src.NormFloat64()*stdev
}

// ClampedGaussian draws from Normal(mean, stdev) and clamps the result to
// [mean - factor*stdev, mean + factor*stdev].
func ClampedGaussian(src Source, mean, stdev, factor float64) float64 {
	v := Gaussian(src, mean, stdev)
	lo := mean - factor*stdev
	hi := mean + factor*stdev
	return math.Min(hi, math.Max(lo, v))
}

// Duration samples a clamped Gaussian duration, working in seconds.
func Duration(src Source, mean, stdev time.Duration, factor float64) time.Duration {
	s := ClampedGaussian(src, mean.Seconds(), stdev.Seconds(), factor)
	return seconds(s)
}

// TimeOfDay jitters a time of day (offset from midnight) without clamping.
// Results outside [0, 24h) spill into the previous or next day.
func TimeOfDay(src Source, mean, stdev time.Duration) time.Duration {
	return seconds(Gaussian(src, mean.Seconds(), stdev.Seconds()))
}

// NonNegativeInt truncates a Gaussian draw to an int, floored at zero.
// Used for amounts, counts and scores.
func NonNegativeInt(src Source, mean, stdev float64) int {
	return int(math.Max(0, Gaussian(src, mean, stdev)))
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

package random

import (
	"testing"
	"time"
)

func TestClampedGaussianBounds(t *testing.T) {
	rng := New(42)
	const mean, stdev, factor = 10.0, 4.0, 1.5
	lo, hi := mean-factor*stdev, mean+factor*stdev
	for i := 0; i < 10000; i++ {
		v := ClampedGaussian(rng, mean, stdev, factor)
		if v < lo || v > hi {
			t.Fatalf("trial %d: %f outside [%f, %f]", i, v, lo, hi)
		}
	}
}

func TestClampedGaussianZeroStdev(t *testing.T) {
	rng := New(1)
	for i := 0; i < 100; i++ {
		if v := ClampedGaussian(rng, 7, 0, DefaultClamp); v != 7 {
			t.Fatalf("stdev 0 should return mean, got %f", v)
		}
	}
}

func TestDurationBounds(t *testing.T) {
	rng := New(7)
	mean, stdev := time.Minute, 10*time.Second
	for i := 0; i < 10000; i++ {
		d := Duration(rng, mean, stdev, 2)
		if d < 40*time.Second || d > 80*time.Second {
			t.Fatalf("duration %s outside [40s, 80s]", d)
		}
	}
}

func TestTimeOfDayIsUnclamped(t *testing.T) {
	rng := New(3)
	spilled := false
	for i := 0; i < 1000; i++ {
		d := TimeOfDay(rng, time.Hour, 3*time.Hour)
		if d < 0 {
			spilled = true
			break
		}
	}
	if !spilled {
		t.Fatalf("expected some times before midnight with a wide stdev")
	}
}

func TestNonNegativeIntFloors(t *testing.T) {
	rng := New(9)
	for i := 0; i < 1000; i++ {
		if v := NonNegativeInt(rng, -50, 10); v != 0 {
			t.Fatalf("expected floor at 0, got %d", v)
		}
	}
}

func TestSeedReproducible(t *testing.T) {
	a, b := New(123), New(123)
	for i := 0; i < 50; i++ {
		if a.Float64() != b.Float64() || a.NormFloat64() != b.NormFloat64() {
			t.Fatalf("draw %d differs for the same seed", i)
		}
	}
	if a.Draws() != 100 {
		t.Fatalf("draws = %d, want 100", a.Draws())
	}
	if a.Seed() != 123 {
		t.Fatalf("seed = %d", a.Seed())
	}
}

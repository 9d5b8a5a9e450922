// Package curve maps a continuous day coordinate to a scalar modifier by
// piecewise-linear interpolation over control points.
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrNoPoints          = errors.New("interpolator needs at least one control point")
	ErrDuplicatePosition = errors.New("duplicate control point position")
	ErrInvalidPoint      = errors.New("control point must be finite")
)

// Point is one (position, value) control point.
type Point struct {
	Position float64 `yaml:"at"`
	Value    float64 `yaml:"value"`
}

// Interpolator is immutable after construction.
type Interpolator struct {
	points []Point // ascending by position
	modulo bool
}

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithModulo wraps positions beyond the last control point into
// [0, last position) before lookup.
func WithModulo() Option {
	return func(li *Interpolator) { li.modulo = true }
}

// New builds an interpolator. Points may be given in any order.
func New(points []Point, opts ...Option) (*Interpolator, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	for i, p := range sorted {
		if math.IsNaN(p.Position) || math.IsInf(p.Position, 0) || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, fmt.Errorf("%w: %+v", ErrInvalidPoint, p)
		}
		if i > 0 && sorted[i-1].Position == p.Position {
			return nil, fmt.Errorf("%w: %g", ErrDuplicatePosition, p.Position)
		}
	}

	li := &Interpolator{points: sorted}
	for _, opt := range opts {
		opt(li)
	}
	return li, nil
}

// MustNew is New for literal control points known to be valid.
func MustNew(points []Point, opts ...Option) *Interpolator {
	li, err := New(points, opts...)
	if err != nil {
		panic(err)
	}
	return li
}

// Constant returns a single-point interpolator that always yields v.
func Constant(v float64) *Interpolator {
	return &Interpolator{points: []Point{{Position: 0, Value: v}}}
}

// ValueAt returns the interpolated value at x. Positions outside the control
// range clamp to the nearest endpoint value.
func (li *Interpolator) ValueAt(x float64) float64 {
	pts := li.points
	last := pts[len(pts)-1]
	if li.modulo && last.Position > 0 && x > last.Position {
		x = math.Mod(x, last.Position)
	}

	if x <= pts[0].Position {
		return pts[0].Value
	}
	if x >= last.Position {
		return last.Value
	}

	// First point strictly beyond x; its predecessor brackets x from below.
	i := sort.Search(len(pts), func(i int) bool { return pts[i].Position > x })
	p0, p1 := pts[i-1], pts[i]
	t := (x - p0.Position) / (p1.Position - p0.Position)
	return p0.Value + (p1.Value-p0.Value)*t
}

// Scale returns a new interpolator with every value multiplied by f.
func (li *Interpolator) Scale(f float64) *Interpolator {
	scaled := make([]Point, len(li.points))
	for i, p := range li.points {
		scaled[i] = Point{Position: p.Position, Value: p.Value * f}
	}
	return &Interpolator{points: scaled, modulo: li.modulo}
}

// Points returns a copy of the control points in ascending order.
func (li *Interpolator) Points() []Point {
	out := make([]Point, len(li.points))
	copy(out, li.points)
	return out
}

// Modulo reports whether positions wrap past the last control point.
func (li *Interpolator) Modulo() bool {
	return li.modulo
}

// Dedup collapses control points sharing a position, keeping the value given
// last. Day-relative presets can collide on short runs.
func Dedup(points []Point) []Point {
	index := make(map[float64]int, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if i, ok := index[p.Position]; ok {
			out[i].Value = p.Value
			continue
		}
		index[p.Position] = len(out)
		out = append(out, p)
	}
	return out
}

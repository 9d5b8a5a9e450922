// Package weighted resolves one uniform draw into one of several outcomes
// through cumulative-weight thresholds.
package weighted

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrEmpty  = errors.New("weighted dictionary needs at least one entry")
	ErrWeight = errors.New("cumulative weight must be finite and > 0")
)

// Entry pairs an outcome with its cumulative weight.
type Entry[T any] struct {
	Outcome T
	Weight  float64
}

// Dictionary maps a draw p in [0,1) to an outcome. Weights form an
// open-ended cumulative curve: the largest weight is the ceiling, and any
// draw at or above it resolves to the last outcome.
type Dictionary[T any] struct {
	entries []Entry[T] // ascending by weight, ties in insertion order
}

// New sorts entries by ascending weight.
func New[T any](entries ...Entry[T]) (*Dictionary[T], error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	sorted := make([]Entry[T], len(entries))
	copy(sorted, entries)
	for i, e := range sorted {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight <= 0 {
			return nil, fmt.Errorf("%w: entry %d has weight %g", ErrWeight, i, e.Weight)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight < sorted[j].Weight
	})
	return &Dictionary[T]{entries: sorted}, nil
}

// MustNew is New for literal entries known to be valid.
func MustNew[T any](entries ...Entry[T]) *Dictionary[T] {
	d, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return d
}

// Single returns a dictionary that always resolves to v.
func Single[T any](v T) *Dictionary[T] {
	return &Dictionary[T]{entries: []Entry[T]{{Outcome: v, Weight: 1}}}
}

// Pick returns the first outcome whose weight is strictly greater than p,
// or the last outcome when p is at or above every weight.
func (d *Dictionary[T]) Pick(p float64) T {
	for _, e := range d.entries {
		if p < e.Weight {
			return e.Outcome
		}
	}
	return d.entries[len(d.entries)-1].Outcome
}

// Entries returns the entries in lookup order.
func (d *Dictionary[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(d.entries))
	copy(out, d.entries)
	return out
}

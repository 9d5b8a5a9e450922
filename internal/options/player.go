package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/talgya/playersim/internal/curve"
	"github.com/talgya/playersim/internal/weighted"
)

var ErrDuplicateSession = errors.New("duplicate session slot in weekday table")

// SessionChance is one slot a player may open on a weekday.
type SessionChance struct {
	Session     *SessionOptions
	Probability float64
}

// SessionEntry is one row of a weekday table as authored.
type SessionEntry struct {
	Day         time.Weekday
	Session     *SessionOptions
	Probability float64
}

// SessionTable maps a weekday to its slots in authoring order.
type SessionTable map[time.Weekday][]SessionChance

// NewSessionTable builds a weekday table, rejecting a slot listed twice for
// the same weekday instead of silently keeping one of them.
func NewSessionTable(entries ...SessionEntry) (SessionTable, error) {
	table := make(SessionTable)
	seen := make(map[time.Weekday]map[string]bool)
	for _, e := range entries {
		if e.Session == nil {
			return nil, fmt.Errorf("%s: nil session slot", e.Day)
		}
		if seen[e.Day] == nil {
			seen[e.Day] = make(map[string]bool)
		}
		if seen[e.Day][e.Session.Name] {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateSession, e.Day, e.Session.Name)
		}
		seen[e.Day][e.Session.Name] = true
		table[e.Day] = append(table[e.Day], SessionChance{Session: e.Session, Probability: e.Probability})
	}
	return table, nil
}

// Every returns entries giving the same slots on each of the listed days.
func Every(days []time.Weekday, chances ...SessionChance) []SessionEntry {
	var out []SessionEntry
	for _, d := range days {
		for _, c := range chances {
			out = append(out, SessionEntry{Day: d, Session: c.Session, Probability: c.Probability})
		}
	}
	return out
}

// PlayerOptions is one behavioural archetype.
type PlayerOptions struct {
	Label     string
	Sessions  SessionTable
	Purchases *weighted.Dictionary[*PurchaseOptions]
	Stages    *weighted.Dictionary[*StageOptions]

	// Lifetime scales session probabilities by days since acquisition.
	Lifetime *curve.Interpolator

	// Drift is the amplitude of a smooth per-player day-to-day engagement
	// wobble. Zero disables it.
	Drift float64
}

// SessionsOn returns the slots available on a weekday, nil if none.
func (p *PlayerOptions) SessionsOn(day time.Weekday) []SessionChance {
	return p.Sessions[day]
}

// Archetypes is an ordered catalogue of player options.
type Archetypes []*PlayerOptions

// Find returns the archetype with the given label.
func (a Archetypes) Find(label string) (*PlayerOptions, bool) {
	for _, p := range a {
		if p.Label == label {
			return p, true
		}
	}
	return nil, false
}

// Labels returns the archetype labels in catalogue order.
func (a Archetypes) Labels() []string {
	out := make([]string, len(a))
	for i, p := range a {
		out[i] = p.Label
	}
	return out
}

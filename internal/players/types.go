// Package players holds the simulated population: who each player is, how
// they were acquired, and what they do on a given day.
package players

import (
	"time"

	"github.com/google/uuid"

	"github.com/talgya/playersim/internal/options"
)

// Player is one simulated player.
type Player struct {
	ID          uuid.UUID
	Index       int // acquisition order, 0-based
	Archetype   *options.PlayerOptions
	AcquiredDay int

	LastSessionEnd time.Time // sessions of one player never overlap

	// Lifetime counters.
	Sessions  int
	Purchases int
	Revenue   int
	Stages    int
}

// Label returns the archetype label.
func (p *Player) Label() string {
	return p.Archetype.Label
}

// Age returns whole days since acquisition.
func (p *Player) Age(day int) int {
	return day - p.AcquiredDay
}

// Session is one continuous play interval and what happened inside it.
type Session struct {
	ID        int64
	Slot      string
	Start     time.Time
	End       time.Time
	Purchases []Purchase
	Stages    []StagePlay
}

// Purchase is one spend event inside a session.
type Purchase struct {
	At     time.Time
	Amount int
}

// StagePlay is one stage attempt.
type StagePlay struct {
	Profile string
	Start   time.Time
	End     time.Time
	Score   int
}

// Revenue sums the purchase amounts of the session.
func (s *Session) Revenue() int {
	total := 0
	for _, p := range s.Purchases {
		total += p.Amount
	}
	return total
}

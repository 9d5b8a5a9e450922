package players

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/talgya/playersim/internal/options"
	"github.com/talgya/playersim/internal/random"
	"github.com/talgya/playersim/internal/weighted"
)

// namespace scopes player IDs so they never collide with other SHA-1 UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("playersim/player"))

// Spawner creates acquired players.
type Spawner struct {
	rng    random.Source
	seed   int64
	nextID int
}

// NewSpawner creates a spawner drawing archetypes from rng. Player IDs are
// derived from seed and the acquisition index, so they take no draws.
func NewSpawner(seed int64, rng random.Source) *Spawner {
	return &Spawner{rng: rng, seed: seed}
}

// Spawn acquires count players on day, each taking one draw to pick an
// archetype from mix.
func (s *Spawner) Spawn(day, count int, mix *weighted.Dictionary[*options.PlayerOptions]) []*Player {
	out := make([]*Player, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.spawnOne(day, mix))
	}
	return out
}

func (s *Spawner) spawnOne(day int, mix *weighted.Dictionary[*options.PlayerOptions]) *Player {
	idx := s.nextID
	s.nextID++
	return &Player{
		ID:          PlayerID(s.seed, idx),
		Index:       idx,
		Archetype:   mix.Pick(s.rng.Float64()),
		AcquiredDay: day,
	}
}

// Spawned returns how many players have been acquired.
func (s *Spawner) Spawned() int {
	return s.nextID
}

// PlayerID is the stable ID of the idx-th player of a run seeded with seed.
func PlayerID(seed int64, idx int) uuid.UUID {
	name := strconv.FormatInt(seed, 10) + "/" + strconv.Itoa(idx)
	return uuid.NewSHA1(namespace, []byte(name))
}

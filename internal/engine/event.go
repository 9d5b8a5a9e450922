package engine

import (
	"sort"
	"time"

	"github.com/talgya/playersim/internal/players"
)

// EventType names a telemetry event.
type EventType string

const (
	EventAcquisition EventType = "acquisition"
	EventLogin       EventType = "login"
	EventLogout      EventType = "logout"
	EventPurchase    EventType = "purchase"
	EventStageStart  EventType = "stage_start"
	EventStageEnd    EventType = "stage_end"
)

// EventTypes lists every event type in emission order within a session.
var EventTypes = []EventType{EventAcquisition, EventLogin, EventPurchase, EventStageStart, EventStageEnd, EventLogout}

// Event is one telemetry row.
type Event struct {
	Time       time.Time `db:"event_time"`
	Type       EventType `db:"event_type"`
	PlayerID   string    `db:"player_id"`
	PlayerType string    `db:"player_type"`
	SessionID  int64     `db:"session_id"`  // 0 outside a session
	Amount     int       `db:"amount"`      // purchase events
	Score      int       `db:"stage_score"` // stage_end events
}

// Sink receives each day's events in time order.
type Sink interface {
	WriteEvents(events []Event) error
}

// PlayerSink is implemented by sinks that also record the population.
type PlayerSink interface {
	SavePlayers(ps []*players.Player) error
}

// acquisitionEvent marks a player entering the population at day start.
func acquisitionEvent(p *players.Player, dayStart time.Time) Event {
	return Event{
		Time:       dayStart,
		Type:       EventAcquisition,
		PlayerID:   p.ID.String(),
		PlayerType: p.Label(),
	}
}

// sessionEvents flattens a session into login, purchases, stage plays and
// logout.
func sessionEvents(p *players.Player, s players.Session) []Event {
	base := Event{PlayerID: p.ID.String(), PlayerType: p.Label(), SessionID: s.ID}
	out := make([]Event, 0, 2+len(s.Purchases)+2*len(s.Stages))

	login := base
	login.Time, login.Type = s.Start, EventLogin
	out = append(out, login)

	for _, pu := range s.Purchases {
		e := base
		e.Time, e.Type, e.Amount = pu.At, EventPurchase, pu.Amount
		out = append(out, e)
	}
	for _, st := range s.Stages {
		start := base
		start.Time, start.Type = st.Start, EventStageStart
		end := base
		end.Time, end.Type, end.Score = st.End, EventStageEnd, st.Score
		out = append(out, start, end)
	}

	logout := base
	logout.Time, logout.Type = s.End, EventLogout
	out = append(out, logout)
	return out
}

// sortEvents orders by time; ties keep emission order.
func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
}

// Recorder is an in-memory Sink.
type Recorder struct {
	Events  []Event
	Players []*players.Player
}

func (r *Recorder) WriteEvents(events []Event) error {
	r.Events = append(r.Events, events...)
	return nil
}

func (r *Recorder) SavePlayers(ps []*players.Player) error {
	r.Players = ps
	return nil
}

// MultiSink fans events out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) WriteEvents(events []Event) error {
	for _, s := range m {
		if err := s.WriteEvents(events); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) SavePlayers(ps []*players.Player) error {
	for _, s := range m {
		if saver, ok := s.(PlayerSink); ok {
			if err := saver.SavePlayers(ps); err != nil {
				return err
			}
		}
	}
	return nil
}

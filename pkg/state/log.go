package state

import (
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
)

// Observer is told about every event after it has been appended.
type Observer interface {
	EventAppended(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

func (f ObserverFunc) EventAppended(ev Event) { f(ev) }

// Log is the append-only, ordered record of everything that has happened.
// Append order is the game's clock. There is a single writer; readers may run
// alongside it and always see whole events.
type Log struct {
	mu        sync.RWMutex
	events    []Event
	observers []Observer

	cacheMu   sync.Mutex
	ledger    *Ledger
	ledgerErr error
	ledgerLen int
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{events: make([]Event, 0)}
}

// FromEvents builds a log holding events, oldest first. Used for replays and
// tests.
func FromEvents(events []Event) *Log {
	l := NewLog()
	for _, ev := range events {
		l.events = append(l.events, stamp(ev, len(l.events)))
	}
	return l
}

func stamp(ev Event, seq int) Event {
	ev.Seq = seq
	if ev.Character == nil {
		ev.Character = actor.Player
	}
	if ev.ID == (ulid.ULID{}) {
		ev.ID = ulid.Make()
	}
	return ev
}

// Append adds ev to the end of the log and returns the new length.
func (l *Log) Append(ev Event) int {
	l.mu.Lock()
	ev = stamp(ev, len(l.events))
	l.events = append(l.events, ev)
	n := len(l.events)
	observers := l.observers
	l.mu.Unlock()

	for _, o := range observers {
		o.EventAppended(ev)
	}
	return n
}

// Subscribe registers o for all future appends.
func (l *Log) Subscribe(o Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, o)
}

// Events returns a copy of the log, oldest first.
func (l *Log) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Last returns the newest event.
func (l *Log) Last() (Event, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.events) == 0 {
		return Event{}, false
	}
	return l.events[len(l.events)-1], true
}

// Ledger returns the item ledger for the log as it is now. The fold is cached
// until the next append.
func (l *Log) Ledger() (*Ledger, error) {
	events := l.Events()

	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()
	if l.ledger != nil && l.ledgerLen == len(events) {
		return l.ledger, l.ledgerErr
	}
	l.ledger, l.ledgerErr = Replay(events)
	l.ledgerLen = len(events)
	return l.ledger, l.ledgerErr
}

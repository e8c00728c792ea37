package state

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// ErrNoCurrentRoom means a character has no room-defining event in the log.
var ErrNoCurrentRoom = errors.New("no current room")

var _ world.History = (*Log)(nil)

// CurrentRoomAndState returns the room and state from the most recent
// room-defining event by c.
func (l *Log) CurrentRoomAndState(c actor.Character) (Place, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.events) - 1; i >= 0; i-- {
		ev := l.events[i]
		if ev.Character == c && ev.Kind.IsRoomDefining() {
			return ev.Place(), nil
		}
	}
	return Place{}, fmt.Errorf("%w for %s", ErrNoCurrentRoom, describe(c))
}

func (l *Log) CurrentRoom(c actor.Character) (*world.Room, error) {
	p, err := l.CurrentRoomAndState(c)
	return p.Room, err
}

func (l *Log) CurrentState(c actor.Character) (*world.RoomState, error) {
	p, err := l.CurrentRoomAndState(c)
	return p.State, err
}

// TurnsSinceRoomEntry counts the events by c since its latest NewRoom event,
// plus one. The entering turn itself counts as 1.
func (l *Log) TurnsSinceRoomEntry(c actor.Character) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for i := len(l.events) - 1; i >= 0; i-- {
		ev := l.events[i]
		if ev.Character != c {
			continue
		}
		if ev.Kind == KindNewRoom {
			break
		}
		n++
	}
	return n + 1
}

// IsInSameRoom reports whether a and b currently share a room.
func (l *Log) IsInSameRoom(a, b actor.Character) (bool, error) {
	ra, err := l.CurrentRoom(a)
	if err != nil {
		return false, err
	}
	rb, err := l.CurrentRoom(b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}

// CoLocatedTurnCount returns 0 when a and b are apart, otherwise the smaller
// of their turns since room entry.
func (l *Log) CoLocatedTurnCount(a, b actor.Character) (int, error) {
	same, err := l.IsInSameRoom(a, b)
	if err != nil || !same {
		return 0, err
	}
	return min(l.TurnsSinceRoomEntry(a), l.TurnsSinceRoomEntry(b)), nil
}

// LastTagged returns the Seq of the newest event tagged tag, or -1.
func (l *Log) LastTagged(tag string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Tag == tag {
			return l.events[i].Seq
		}
	}
	return -1
}

// CountTagged returns how many events carry tag.
func (l *Log) CountTagged(tag string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, ev := range l.events {
		if ev.Tag == tag {
			n++
		}
	}
	return n
}

// IsCarried reports whether the player holds item. An inconsistent ledger
// still answers from the fold as far as it got.
func (l *Log) IsCarried(item *world.Item) bool {
	ledger, _ := l.Ledger()
	return ledger.IsCarried(item)
}

// IsIn reports whether item lies in room.
func (l *Log) IsIn(item *world.Item, room *world.Room) bool {
	ledger, _ := l.Ledger()
	where, ok := ledger.Where(item)
	return ok && where == room
}

// GuardContext builds the evaluation context for c from its current place.
func (l *Log) GuardContext(c actor.Character) (world.GuardContext, error) {
	p, err := l.CurrentRoomAndState(c)
	if err != nil {
		return world.GuardContext{}, err
	}
	return world.GuardContext{From: p.Room, State: p.State, Character: c, History: l}, nil
}

// PlayerContext is GuardContext for the player, falling back to a context
// without a room before the player has entered one.
func (l *Log) PlayerContext() world.GuardContext {
	ctx, err := l.GuardContext(actor.Player)
	if err != nil {
		return world.GuardContext{Character: actor.Player, History: l}
	}
	return ctx
}

// EventsBy returns the events whose character is c, oldest first.
func (l *Log) EventsBy(c actor.Character) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Event
	for _, ev := range l.events {
		if ev.Character == c {
			out = append(out, ev)
		}
	}
	return out
}

func describe(c actor.Character) string {
	if c == nil {
		return "<nil character>"
	}
	return c.ID()
}

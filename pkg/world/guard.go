// Package world holds the static parts of a game: rooms and their guarded
// states, the connections between rooms, and items.
//
// Nothing here changes once a game is built. Which state a room is in, or
// which description an item shows, is decided by evaluating guards against the
// event history at the moment of asking.
package world

import (
	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/command"
)

// History is the read-only view of the event log that guards evaluate against.
// It lives here rather than in the state package so that rooms and items can
// carry guards without an import cycle.
type History interface {
	// LastTagged returns the log position of the most recent event carrying
	// tag, or -1 if no such event exists.
	LastTagged(tag string) int
	// IsCarried reports whether the player currently carries item.
	IsCarried(item *Item) bool
	// IsIn reports whether item currently lies in room.
	IsIn(item *Item, room *Room) bool
	// TurnsSinceRoomEntry counts c's events since it last entered a room.
	TurnsSinceRoomEntry(c actor.Character) int
	// PlayerContext is the guard context of the player where it stands now.
	// Before the player has entered a room only History and Character are set.
	PlayerContext() GuardContext
}

// GuardContext is everything a guard may consult besides the input.
type GuardContext struct {
	From      *Room      // room the acting character is in
	State     *RoomState // current state of From
	Character actor.Character
	History   History // nil when only the input matters
}

// Guard gates a transition. Guards must be free of side effects: composition
// evaluates every operand and order must not matter.
type Guard interface {
	Evaluate(in command.Input, ctx GuardContext) bool
}

// GuardFunc adapts a function to the Guard interface.
type GuardFunc func(in command.Input, ctx GuardContext) bool

func (f GuardFunc) Evaluate(in command.Input, ctx GuardContext) bool {
	return f(in, ctx)
}

type constant bool

func (c constant) Evaluate(command.Input, GuardContext) bool { return bool(c) }

var (
	// Always passes. Put it last in a guard list to make a catch-all.
	Always Guard = constant(true)
	// Never fails.
	Never Guard = constant(false)
)

// IsCatchAll reports whether g is the Always guard.
func IsCatchAll(g Guard) bool {
	c, ok := g.(constant)
	return ok && bool(c)
}

// And passes when both a and b pass. Both are always evaluated.
func And(a, b Guard) Guard {
	return GuardFunc(func(in command.Input, ctx GuardContext) bool {
		left := a.Evaluate(in, ctx)
		right := b.Evaluate(in, ctx)
		return left && right
	})
}

// Or passes when either a or b passes. Both are always evaluated.
func Or(a, b Guard) Guard {
	return GuardFunc(func(in command.Input, ctx GuardContext) bool {
		left := a.Evaluate(in, ctx)
		right := b.Evaluate(in, ctx)
		return left || right
	})
}

// Not inverts g.
func Not(g Guard) Guard {
	return GuardFunc(func(in command.Input, ctx GuardContext) bool {
		return !g.Evaluate(in, ctx)
	})
}

// AllOf folds guards with And. With no guards it is Always.
func AllOf(guards ...Guard) Guard {
	if len(guards) == 0 {
		return Always
	}
	g := guards[0]
	for _, next := range guards[1:] {
		g = And(g, next)
	}
	return g
}

// AnyOf folds guards with Or. With no guards it is Never.
func AnyOf(guards ...Guard) Guard {
	if len(guards) == 0 {
		return Never
	}
	g := guards[0]
	for _, next := range guards[1:] {
		g = Or(g, next)
	}
	return g
}

// OnCommand passes when the input carries one of cmds.
func OnCommand(cmds ...command.Command) Guard {
	return GuardFunc(func(in command.Input, _ GuardContext) bool {
		for _, c := range cmds {
			if in.Command == c {
				return true
			}
		}
		return false
	})
}

var (
	North = OnCommand(command.GoNorth)
	East  = OnCommand(command.GoEast)
	South = OnCommand(command.GoSouth)
	West  = OnCommand(command.GoWest)
)

// FromRoom passes when the acting character is in r.
func FromRoom(r *Room) Guard {
	return GuardFunc(func(_ command.Input, ctx GuardContext) bool {
		return ctx.From == r
	})
}

// InState passes when the acting character's room is in state s.
func InState(s *RoomState) Guard {
	return GuardFunc(func(_ command.Input, ctx GuardContext) bool {
		return ctx.State == s
	})
}

// Tagged passes once any event carrying tag has been logged.
func Tagged(tag string) Guard {
	return GuardFunc(func(_ command.Input, ctx GuardContext) bool {
		return ctx.History != nil && ctx.History.LastTagged(tag) >= 0
	})
}

// Toggled passes when the most recent of onTag and offTag is onTag.
func Toggled(onTag, offTag string) Guard {
	return GuardFunc(func(_ command.Input, ctx GuardContext) bool {
		if ctx.History == nil {
			return false
		}
		return ctx.History.LastTagged(onTag) > ctx.History.LastTagged(offTag)
	})
}

// Carrying passes when the player carries item.
func Carrying(item *Item) Guard {
	return GuardFunc(func(_ command.Input, ctx GuardContext) bool {
		return ctx.History != nil && ctx.History.IsCarried(item)
	})
}

// ItemHere passes when item lies in the acting character's room.
func ItemHere(item *Item) Guard {
	return GuardFunc(func(_ command.Input, ctx GuardContext) bool {
		return ctx.History != nil && ctx.History.IsIn(item, ctx.From)
	})
}

// StayedAtLeast passes once the acting character has spent n turns in its
// current room.
func StayedAtLeast(n int) Guard {
	return GuardFunc(func(_ command.Input, ctx GuardContext) bool {
		if ctx.History == nil || ctx.Character == nil {
			return false
		}
		return ctx.History.TurnsSinceRoomEntry(ctx.Character) >= n
	})
}

package world

import "github.com/jwebster45206/adventure-engine/pkg/command"

// RoomState is one descriptive variant of a room. States are compared by
// identity.
type RoomState struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// NewState creates a RoomState.
func NewState(id, description string) *RoomState {
	return &RoomState{ID: id, Description: description}
}

// PlacementState stands in for a room's state on events synthesized while a
// game is built, before anyone has looked at the room.
var PlacementState = NewState("placement", "Placed at the start of the game")

// StateOption pairs a guard with the state it selects.
type StateOption struct {
	Guard Guard
	State *RoomState
}

// When builds a StateOption.
func When(g Guard, s *RoomState) StateOption {
	return StateOption{Guard: g, State: s}
}

// Room is a location. Its current state is never stored: it is resolved from
// the ordered state options, first match wins.
type Room struct {
	ID     string
	Name   string
	States []StateOption
}

// NewRoom creates a room with the given ordered state options.
func NewRoom(id string, states ...StateOption) *Room {
	return &Room{ID: id, Name: id, States: states}
}

func (r *Room) String() string {
	if r == nil {
		return "<nil room>"
	}
	return r.ID
}

// ResolveState returns the first state whose guard passes.
func (r *Room) ResolveState(in command.Input, ctx GuardContext) (*RoomState, bool) {
	for _, opt := range r.States {
		if opt.Guard.Evaluate(in, ctx) {
			return opt.State, true
		}
	}
	return nil, false
}

// HasCatchAll reports whether any of the room's states is guarded by Always.
// Rooms without one can refuse entry.
func (r *Room) HasCatchAll() bool {
	for _, opt := range r.States {
		if IsCatchAll(opt.Guard) {
			return true
		}
	}
	return false
}

// StateByID finds one of the room's states by id.
func (r *Room) StateByID(id string) (*RoomState, bool) {
	for _, opt := range r.States {
		if opt.State != nil && opt.State.ID == id {
			return opt.State, true
		}
	}
	return nil, false
}

package action

import (
	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// LookAround describes the player's room again.
func LookAround(text string) Handler {
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		return state.LookAroundEvent(text, here, actor.Player), nil
	})
}

// Say answers with text and changes nothing.
func Say(text string) Handler {
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		return state.GenericEvent(text, here), nil
	})
}

// Stay answers with text as a SameRoom event, so the room's items are listed
// after it.
func Stay(text string) Handler {
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		return state.SameRoomEvent(text, here, actor.Player), nil
	})
}

// Trigger records a tagged SameRoom event. When to is non-nil the player's
// room is put into that state; this is how content opens doors and switches
// lights.
func Trigger(text string, to *world.RoomState, tag string) Handler {
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		if to != nil {
			here.State = to
		}
		return state.SameRoomEvent(text, here, actor.Player).WithTag(tag), nil
	})
}

// End finishes the game.
func End(text string) Handler {
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		return state.EndEvent(text, here), nil
	})
}

package action

import (
	"slices"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// PickUp takes item from the player's room. The success text is followed by
// the item's description, e.g. "Picked up a key.".
func PickUp(item *world.Item, opts ...Option) Handler {
	t := resolve(texts{success: "Picked up", failure: DefaultFailureText}, opts)
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		lying, err := state.ItemsIn(here.Room, log)
		if err != nil {
			return state.Event{}, err
		}
		if !slices.Contains(lying, item) {
			return state.NoSuchItemHereEvent(t.failure, here), nil
		}
		desc, err := item.Description(log)
		if err != nil {
			return state.Event{}, err
		}
		return state.PickedUpEvent(t.success+" "+desc+".", here, actor.Player, item), nil
	})
}

// Drop leaves a carried item in the player's room.
func Drop(item *world.Item, opts ...Option) Handler {
	t := resolve(texts{success: "Dropped", failure: DefaultFailureText}, opts)
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		carried, err := state.CarriedItems(log)
		if err != nil {
			return state.Event{}, err
		}
		if !slices.Contains(carried, item) {
			return state.NoSuchItemToDropEvent(t.failure, here), nil
		}
		desc, err := item.Description(log)
		if err != nil {
			return state.Event{}, err
		}
		return state.DroppedEvent(t.success+" "+desc+".", here, actor.Player, item), nil
	})
}

// Examine answers with the success text when the player carries item and the
// failure text otherwise.
func Examine(item *world.Item, opts ...Option) Handler {
	t := resolve(texts{success: "You don't see anything special", failure: "You don't carry that"}, opts)
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		carried, err := state.CarriedItems(log)
		if err != nil {
			return state.Event{}, err
		}
		if slices.Contains(carried, item) {
			return state.GenericEvent(t.success, here), nil
		}
		return state.GenericEvent(t.failure, here), nil
	})
}

// Inventory lists what the player carries.
func Inventory(opts ...Option) Handler {
	t := resolve(texts{success: "You carry", failure: "You don't carry anything!"}, opts)
	return HandlerFunc(func(_ command.Input, log *state.Log) (state.Event, error) {
		here, err := playerPlace(log)
		if err != nil {
			return state.Event{}, err
		}
		carried, err := state.CarriedItems(log)
		if err != nil {
			return state.Event{}, err
		}
		if len(carried) == 0 {
			return state.InventoryEvent(t.failure, here), nil
		}
		list, err := DescribeItems(carried, log)
		if err != nil {
			return state.Event{}, err
		}
		return state.InventoryEvent(t.success+" "+list, here), nil
	})
}

// DescribeItems joins the current descriptions of items with commas.
func DescribeItems(items []*world.Item, h world.History) (string, error) {
	descs := make([]string, 0, len(items))
	for _, it := range items {
		d, err := it.Description(h)
		if err != nil {
			return "", err
		}
		descs = append(descs, d)
	}
	return strings.Join(descs, ", "), nil
}

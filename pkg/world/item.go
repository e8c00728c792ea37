package world

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/adventure-engine/pkg/command"
)

// ErrNoMatchingItemState means no state guard of a multi-state item passed.
// It indicates broken world data.
var ErrNoMatchingItemState = errors.New("no matching item state")

// ItemState is one descriptive variant of an item.
type ItemState struct {
	Description string `json:"description"`
}

// ItemStateOption pairs a guard over the history with the state it selects.
type ItemStateOption struct {
	Guard Guard
	State *ItemState
}

// ItemWhen builds an ItemStateOption.
func ItemWhen(g Guard, s *ItemState) ItemStateOption {
	return ItemStateOption{Guard: g, State: s}
}

// Item is something that can be carried. Items have no location field; where
// an item is follows from the pick-up and drop events in the log.
type Item struct {
	ID     string
	Fixed  *ItemState        // set for single-state items
	States []ItemStateOption // first match wins when Fixed is nil
}

// NewItem creates an item with a single fixed description.
func NewItem(id, description string) *Item {
	return &Item{ID: id, Fixed: &ItemState{Description: description}}
}

// NewMultistateItem creates an item whose description depends on history.
func NewMultistateItem(id string, states ...ItemStateOption) *Item {
	return &Item{ID: id, States: states}
}

func (i *Item) String() string {
	if i == nil {
		return "<nil item>"
	}
	return i.ID
}

// State resolves the item's current state against h, as seen from where the
// player stands.
func (i *Item) State(h History) (*ItemState, error) {
	if i.Fixed != nil {
		return i.Fixed, nil
	}
	var ctx GuardContext
	if h != nil {
		ctx = h.PlayerContext()
	}
	for _, opt := range i.States {
		if opt.Guard.Evaluate(command.Input{}, ctx) {
			return opt.State, nil
		}
	}
	return nil, fmt.Errorf("%w: item %q", ErrNoMatchingItemState, i.ID)
}

// Description resolves the item's current description against h.
func (i *Item) Description(h History) (string, error) {
	s, err := i.State(h)
	if err != nil {
		return "", err
	}
	return s.Description, nil
}

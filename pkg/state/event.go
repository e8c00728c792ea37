// Package state holds the event log, the single source of truth for a running
// game, and every view derived from it: where each character is, how long it
// has been there, and who carries what.
package state

import (
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Kind is the variant tag of an Event.
type Kind int

const (
	KindGeneric Kind = iota
	KindNewRoom
	KindSameRoom
	KindLookAround
	KindPickedUpItem
	KindDroppedItem
	KindInventory
	KindNoSuchItemHere
	KindNoSuchItemToDrop
	KindEnd
)

var kindNames = [...]string{
	KindGeneric:          "generic",
	KindNewRoom:          "new_room",
	KindSameRoom:         "same_room",
	KindLookAround:       "look_around",
	KindPickedUpItem:     "picked_up_item",
	KindDroppedItem:      "dropped_item",
	KindInventory:        "inventory",
	KindNoSuchItemHere:   "no_such_item_here",
	KindNoSuchItemToDrop: "no_such_item_to_drop",
	KindEnd:              "end",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", string(text))
}

// IsRoomDefining reports whether events of this kind say where their
// character is.
func (k Kind) IsRoomDefining() bool {
	return k == KindNewRoom || k == KindSameRoom || k == KindLookAround
}

// TagPlacement marks drop events synthesized when a game is built. They put
// an item into the world rather than move it out of someone's hands.
const TagPlacement = "placement"

// Place is a room together with the state it was in.
type Place struct {
	Room  *world.Room
	State *world.RoomState
}

// Event is an immutable fact about the game. Handlers build events; only the
// Log assigns ID and Seq, when the event is appended.
type Event struct {
	ID        ulid.ULID
	Seq       int
	Kind      Kind
	Text      string
	Room      *world.Room
	State     *world.RoomState
	Character actor.Character
	Item      *world.Item // set on pick-up and drop events
	Tag       string      // optional content label, e.g. "key_used"
}

func (e Event) Place() Place {
	return Place{Room: e.Room, State: e.State}
}

// WithTag returns a copy of e carrying tag.
func (e Event) WithTag(tag string) Event {
	e.Tag = tag
	return e
}

// WithText returns a copy of e with its text replaced.
func (e Event) WithText(text string) Event {
	e.Text = text
	return e
}

func (e Event) String() string {
	who := "<nobody>"
	if e.Character != nil {
		who = e.Character.ID()
	}
	return fmt.Sprintf("#%d %s by %s in %s", e.Seq, e.Kind, who, e.Room)
}

func newEvent(kind Kind, text string, at Place, c actor.Character) Event {
	if c == nil {
		c = actor.Player
	}
	return Event{Kind: kind, Text: text, Room: at.Room, State: at.State, Character: c}
}

// NewRoomEvent records c entering at.Room in state at.State.
func NewRoomEvent(text string, at Place, c actor.Character) Event {
	return newEvent(KindNewRoom, text, at, c)
}

// SameRoomEvent records c staying put. at.State may differ from the room's
// previous state, e.g. after a light is switched on.
func SameRoomEvent(text string, at Place, c actor.Character) Event {
	return newEvent(KindSameRoom, text, at, c)
}

// LookAroundEvent records c looking at its surroundings.
func LookAroundEvent(text string, at Place, c actor.Character) Event {
	return newEvent(KindLookAround, text, at, c)
}

// PickedUpEvent records c picking up item at a place.
func PickedUpEvent(text string, at Place, c actor.Character, item *world.Item) Event {
	e := newEvent(KindPickedUpItem, text, at, c)
	e.Item = item
	return e
}

// DroppedEvent records c leaving item in at.Room.
func DroppedEvent(text string, at Place, c actor.Character, item *world.Item) Event {
	e := newEvent(KindDroppedItem, text, at, c)
	e.Item = item
	return e
}

func InventoryEvent(text string, at Place) Event {
	return newEvent(KindInventory, text, at, actor.Player)
}

func NoSuchItemHereEvent(text string, at Place) Event {
	return newEvent(KindNoSuchItemHere, text, at, actor.Player)
}

func NoSuchItemToDropEvent(text string, at Place) Event {
	return newEvent(KindNoSuchItemToDrop, text, at, actor.Player)
}

// EndEvent finishes the game.
func EndEvent(text string, at Place) Event {
	return newEvent(KindEnd, text, at, actor.Player)
}

// GenericEvent is a player event with no special meaning to the engine.
func GenericEvent(text string, at Place) Event {
	return newEvent(KindGeneric, text, at, actor.Player)
}

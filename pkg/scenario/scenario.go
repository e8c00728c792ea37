// Package scenario reads game worlds from YAML or JSON files and builds them
// into game definitions.
package scenario

import (
	"github.com/jwebster45206/adventure-engine/pkg/conditionals"
)

// Scenario is a game world as written in a scenario file.
type Scenario struct {
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Intro       string            `json:"intro,omitempty" yaml:"intro,omitempty"`         // text shown with the first room
	SeeItems    string            `json:"see_items,omitempty" yaml:"see_items,omitempty"` // prefix of the item list, default "You see"
	Start       Location          `json:"start" yaml:"start"`
	Fallback    string            `json:"fallback" yaml:"fallback"` // command for input no pattern matches
	Rooms       []Room            `json:"rooms" yaml:"rooms"`
	Connections []Connection      `json:"connections,omitempty" yaml:"connections,omitempty"`
	Items       []Item            `json:"items,omitempty" yaml:"items,omitempty"`
	Placements  []Placement       `json:"placements,omitempty" yaml:"placements,omitempty"`
	Commands    []Pattern         `json:"commands,omitempty" yaml:"commands,omitempty"`
	Actions     map[string]Action `json:"actions" yaml:"actions"`
	NPCs        []NPC             `json:"npcs,omitempty" yaml:"npcs,omitempty"`
}

// Location names a room and one of its states.
type Location struct {
	Room  string `json:"room" yaml:"room"`
	State string `json:"state" yaml:"state"`
}

type Room struct {
	ID     string      `json:"id" yaml:"id"`
	Name   string      `json:"name,omitempty" yaml:"name,omitempty"`
	States []RoomState `json:"states" yaml:"states"` // first match wins
}

// RoomState is one guarded description of a room. State ids are unique
// across the whole scenario.
type RoomState struct {
	ID          string            `json:"id" yaml:"id"`
	Description string            `json:"description" yaml:"description"`
	When        conditionals.When `json:"when,omitempty" yaml:"when,omitempty"`
}

// Connection lists the exits of one room, first match wins.
type Connection struct {
	From  string `json:"from" yaml:"from"`
	Exits []Exit `json:"exits" yaml:"exits"`
}

type Exit struct {
	To   string            `json:"to" yaml:"to"`
	When conditionals.When `json:"when" yaml:"when"`
}

// Item has either a Description or a list of guarded States.
type Item struct {
	ID          string      `json:"id" yaml:"id"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	States      []ItemState `json:"states,omitempty" yaml:"states,omitempty"`
}

type ItemState struct {
	Description string            `json:"description" yaml:"description"`
	When        conditionals.When `json:"when,omitempty" yaml:"when,omitempty"`
}

// Placement puts an item in a room, or in the player's hands when Carried.
type Placement struct {
	Item    string `json:"item" yaml:"item"`
	Room    string `json:"room,omitempty" yaml:"room,omitempty"`
	Carried bool   `json:"carried,omitempty" yaml:"carried,omitempty"`
}

// Pattern maps player input to a command. Patterns are regular expressions
// matched against the whole input, ignoring case.
type Pattern struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Command string `json:"command" yaml:"command"`
}

// Action kinds, the values of Action.Do.
const (
	DoGo        = "go"
	DoPickUp    = "pick_up"
	DoDrop      = "drop"
	DoExamine   = "examine"
	DoInventory = "inventory"
	DoLook      = "look"
	DoSay       = "say"
	DoStay      = "stay"
	DoTrigger   = "trigger"
	DoEnd       = "end"
)

// Action is what a command does. An action with Branches runs the first
// branch whose When holds; otherwise Do names the handler.
type Action struct {
	Do      string `json:"do,omitempty" yaml:"do,omitempty"`
	Item    string `json:"item,omitempty" yaml:"item,omitempty"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Success string `json:"success,omitempty" yaml:"success,omitempty"`
	Failure string `json:"failure,omitempty" yaml:"failure,omitempty"`
	NoExit  string `json:"no_exit,omitempty" yaml:"no_exit,omitempty"` // go: no exit that way
	Tag     string `json:"tag,omitempty" yaml:"tag,omitempty"`     // trigger: tag of the event
	State   string `json:"state,omitempty" yaml:"state,omitempty"` // trigger: new state of the current room

	When     *conditionals.When `json:"when,omitempty" yaml:"when,omitempty"` // only inside Branches
	Branches []Action           `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// NPC is a character that wanders the room graph.
type NPC struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Start       Location `json:"start" yaml:"start"`
	MinTurns    int      `json:"min_turns,omitempty" yaml:"min_turns,omitempty"` // turns spent in a room before moving on
	EnterText   string   `json:"enter_text,omitempty" yaml:"enter_text,omitempty"`
	StayText    string   `json:"stay_text,omitempty" yaml:"stay_text,omitempty"`
	ArriveText  string   `json:"arrive_text,omitempty" yaml:"arrive_text,omitempty"`
	LingerText  string   `json:"linger_text,omitempty" yaml:"linger_text,omitempty"`
}

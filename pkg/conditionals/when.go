// Package conditionals holds the declarative guards used in scenario files.
// A When clause is compiled once, when the scenario is loaded, into a
// world.Guard.
package conditionals

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// ErrUnknownReference means a When clause names a room, state or item that
// does not exist.
var ErrUnknownReference = errors.New("unknown reference")

// Toggle is a pair of tags switching something on and off.
type Toggle struct {
	On  string `json:"on" yaml:"on"`
	Off string `json:"off" yaml:"off"`
}

// When defines the conditions of a guard. Every condition that is set must
// hold; a clause with no conditions always holds.
//
// In files a When may also be written as a plain string: "always", "never",
// or the name of a command.
type When struct {
	Command     []string `json:"command,omitempty" yaml:"command,omitempty"`           // input is one of these commands
	From        string   `json:"from,omitempty" yaml:"from,omitempty"`                 // acting character is in this room
	State       string   `json:"state,omitempty" yaml:"state,omitempty"`               // acting character's room is in this state
	Tagged      []string `json:"tagged,omitempty" yaml:"tagged,omitempty"`             // every tag has been logged
	NotTagged   []string `json:"not_tagged,omitempty" yaml:"not_tagged,omitempty"`     // no tag has been logged
	Toggled     *Toggle  `json:"toggled,omitempty" yaml:"toggled,omitempty"`           // the last of on/off was on
	Carrying    []string `json:"carrying,omitempty" yaml:"carrying,omitempty"`         // player carries every item
	NotCarrying []string `json:"not_carrying,omitempty" yaml:"not_carrying,omitempty"` // player carries none of them
	Here        []string `json:"here,omitempty" yaml:"here,omitempty"`                 // items lie in the acting character's room
	MinTurns    *int     `json:"min_turns,omitempty" yaml:"min_turns,omitempty"`       // turns since room entry >= this value
	Any         []When   `json:"any,omitempty" yaml:"any,omitempty"`                   // at least one sub-clause holds
	Not         *When    `json:"not,omitempty" yaml:"not,omitempty"`                   // the sub-clause does not hold
	Never       bool     `json:"never,omitempty" yaml:"never,omitempty"`
}

// Resolver looks up world objects by id.
type Resolver interface {
	Room(id string) (*world.Room, bool)
	State(id string) (*world.RoomState, bool)
	Item(id string) (*world.Item, bool)
}

// IsEmpty reports whether w has no conditions.
func (w When) IsEmpty() bool {
	return len(w.Command) == 0 &&
		w.From == "" &&
		w.State == "" &&
		len(w.Tagged) == 0 &&
		len(w.NotTagged) == 0 &&
		w.Toggled == nil &&
		len(w.Carrying) == 0 &&
		len(w.NotCarrying) == 0 &&
		len(w.Here) == 0 &&
		w.MinTurns == nil &&
		len(w.Any) == 0 &&
		w.Not == nil &&
		!w.Never
}

func fromString(s string) When {
	switch s {
	case "", "always":
		return When{}
	case "never":
		return When{Never: true}
	default:
		return When{Command: []string{s}}
	}
}

// UnmarshalJSON accepts either the string shorthand or an object.
func (w *When) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*w = fromString(str)
		return nil
	}
	type alias When
	aux := (*alias)(w)
	return json.Unmarshal(data, aux)
}

// UnmarshalYAML accepts either the string shorthand or a mapping.
func (w *When) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*w = fromString(node.Value)
		return nil
	}
	type alias When
	return node.Decode((*alias)(w))
}

// Compile turns w into a guard, resolving every id through r. All unknown
// references are reported together.
func Compile(w When, r Resolver) (world.Guard, error) {
	if w.Never {
		return world.Never, nil
	}
	if w.IsEmpty() {
		return world.Always, nil
	}

	var guards []world.Guard
	var errs []error
	unknown := func(kind, id string) {
		errs = append(errs, fmt.Errorf("%w: %s %q", ErrUnknownReference, kind, id))
	}

	if len(w.Command) > 0 {
		cmds := make([]command.Command, len(w.Command))
		for i, c := range w.Command {
			cmds[i] = command.Command(c)
		}
		guards = append(guards, world.OnCommand(cmds...))
	}
	if w.From != "" {
		if room, ok := r.Room(w.From); ok {
			guards = append(guards, world.FromRoom(room))
		} else {
			unknown("room", w.From)
		}
	}
	if w.State != "" {
		if st, ok := r.State(w.State); ok {
			guards = append(guards, world.InState(st))
		} else {
			unknown("state", w.State)
		}
	}
	for _, tag := range w.Tagged {
		guards = append(guards, world.Tagged(tag))
	}
	for _, tag := range w.NotTagged {
		guards = append(guards, world.Not(world.Tagged(tag)))
	}
	if w.Toggled != nil {
		guards = append(guards, world.Toggled(w.Toggled.On, w.Toggled.Off))
	}
	items := func(ids []string, build func(*world.Item) world.Guard) {
		for _, id := range ids {
			if it, ok := r.Item(id); ok {
				guards = append(guards, build(it))
			} else {
				unknown("item", id)
			}
		}
	}
	items(w.Carrying, world.Carrying)
	items(w.NotCarrying, func(it *world.Item) world.Guard { return world.Not(world.Carrying(it)) })
	items(w.Here, world.ItemHere)
	if w.MinTurns != nil {
		guards = append(guards, world.StayedAtLeast(*w.MinTurns))
	}
	if len(w.Any) > 0 {
		alts := make([]world.Guard, 0, len(w.Any))
		for _, sub := range w.Any {
			g, err := Compile(sub, r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			alts = append(alts, g)
		}
		guards = append(guards, world.AnyOf(alts...))
	}
	if w.Not != nil {
		g, err := Compile(*w.Not, r)
		if err != nil {
			errs = append(errs, err)
		} else {
			guards = append(guards, world.Not(g))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return world.AllOf(guards...), nil
}

// CompileAll compiles a clause per entry, keeping order.
func CompileAll(ws []When, r Resolver) ([]world.Guard, error) {
	out := make([]world.Guard, 0, len(ws))
	var errs []error
	for _, w := range ws {
		g, err := Compile(w, r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, g)
	}
	return out, errors.Join(errs...)
}

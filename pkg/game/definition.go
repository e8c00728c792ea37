package game

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/adventure-engine/pkg/action"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// ErrInvalidDefinition means a Definition cannot be turned into a Game.
var ErrInvalidDefinition = errors.New("invalid game definition")

// NPCStart places an NPC at the start of the game.
type NPCStart struct {
	NPC   NPC
	Start state.Place
}

// Definition is everything a game is built from. It is read-only once the
// game is constructed.
type Definition struct {
	Title       string
	Intro       string // text of the player's first event
	Start       state.Place
	Connections world.Connections
	Placements  []world.Placement
	Actions     action.Table
	Commands    command.Table
	Fallback    command.Command // used for input no pattern matches
	NPCs        []NPCStart

	// SeeItemsText introduces the list of items in a room. Defaults to
	// "You see".
	SeeItemsText string
}

// Validate checks that the definition can seed a log and that every command
// the interpreter can produce has a handler.
func (d *Definition) Validate() error {
	var errs []error
	if d.Start.Room == nil || d.Start.State == nil {
		errs = append(errs, errors.New("start room and state are required"))
	}
	if len(d.Actions) == 0 {
		errs = append(errs, errors.New("at least one action is required"))
	}
	if _, ok := d.Actions[d.Fallback]; !ok {
		errs = append(errs, fmt.Errorf("fallback command %q has no action", d.Fallback))
	}
	for _, p := range d.Commands {
		if _, ok := d.Actions[p.Command]; !ok {
			errs = append(errs, fmt.Errorf("command %q has no action", p.Command))
		}
	}
	seen := make(map[*world.Item]bool)
	for i, p := range d.Placements {
		if p.Item == nil {
			errs = append(errs, fmt.Errorf("placement %d has no item", i))
			continue
		}
		if seen[p.Item] {
			errs = append(errs, fmt.Errorf("item %s is placed twice", p.Item))
		}
		seen[p.Item] = true
	}
	for i, n := range d.NPCs {
		if n.NPC == nil {
			errs = append(errs, fmt.Errorf("npc %d is nil", i))
			continue
		}
		if n.Start.Room == nil || n.Start.State == nil {
			errs = append(errs, fmt.Errorf("npc %s has no start room and state", n.NPC.ID()))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(errs...))
	}
	return nil
}

func (d *Definition) seeItemsText() string {
	if d.SeeItemsText == "" {
		return "You see"
	}
	return d.SeeItemsText
}

// Package game builds a running game from a Definition and drives it turn by
// turn: the player's command first, then one event per NPC.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Texts of the events synthesized while seeding the log.
const (
	CarriedFromStartText = "Carried from start"
	PlacedAtStartText    = "Placed at start"
)

// Game is one play session. It owns the event log.
type Game struct {
	ID     uuid.UUID
	def    *Definition
	log    *state.Log
	logger *slog.Logger

	observers []state.Observer
	last      state.Event // the player's latest event
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithObserver subscribes o to the log before it is seeded, so o sees every
// event of the game.
func WithObserver(o state.Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, o) }
}

// WithID sets the session id instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(g *Game) { g.ID = id }
}

// New validates def and seeds a fresh log: the player's starting room, the
// items the player starts with, the items lying around, and each NPC's
// starting room.
func New(def *Definition, opts ...Option) (*Game, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		ID:     uuid.New(),
		def:    def,
		log:    state.NewLog(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("game_id", g.ID.String())
	for _, o := range g.observers {
		g.log.Subscribe(o)
	}

	g.last = g.append(state.NewRoomEvent(def.Intro, def.Start, actor.Player))
	for _, p := range def.Placements {
		if p.IsCarried() {
			g.append(state.PickedUpEvent(CarriedFromStartText, def.Start, actor.Player, p.Item))
		}
	}
	for _, p := range def.Placements {
		if !p.IsCarried() {
			at := state.Place{Room: p.Room, State: world.PlacementState}
			g.append(state.DroppedEvent(PlacedAtStartText, at, actor.Player, p.Item).WithTag(state.TagPlacement))
		}
	}
	for _, n := range def.NPCs {
		g.append(state.NewRoomEvent("NPC: "+n.NPC.Description(), n.Start, n.NPC))
	}

	if _, err := g.log.Ledger(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	g.logger.Info("Game started", "title", def.Title, "events", g.log.Len())
	return g, nil
}

func (g *Game) append(ev state.Event) state.Event {
	n := g.log.Append(ev)
	ev, _ = g.log.Last()
	g.logger.Debug("Event appended",
		"seq", n-1,
		"kind", ev.Kind.String(),
		"character", ev.Character.ID(),
		"room", ev.Room.String(),
		"tag", ev.Tag)
	return ev
}

// Log returns the game's event log.
func (g *Game) Log() *state.Log { return g.log }

func (g *Game) Definition() *Definition { return g.def }

// Ended reports whether the player's latest event finished the game.
func (g *Game) Ended() bool { return g.last.Kind == state.KindEnd }

// Interpret maps raw text to an Input using the definition's patterns.
func (g *Game) Interpret(raw string) command.Input {
	return command.Input{
		Command: command.Interpret(raw, g.def.Commands, g.def.Fallback),
		Raw:     raw,
	}
}

// PlayerDo runs the handler for in without appending its event. An undefined
// command is an error.
func (g *Game) PlayerDo(in command.Input) (state.Event, error) {
	return g.def.Actions.Dispatch(in, g.log)
}

// TurnResult is what one turn produced.
type TurnResult struct {
	Event  state.Event   // the player's event
	NPCs   []state.Event // one per NPC, empty once the game has ended
	Text   string        // the player's event rendered for display
	Status string        // NPC status texts, one per line; empty once ended
	Ended  bool
}

// Turn plays one player turn and then one turn for every NPC.
func (g *Game) Turn(raw string) (TurnResult, error) {
	if g.Ended() {
		return TurnResult{}, errors.New("game has ended")
	}
	in := g.Interpret(raw)
	ev, err := g.PlayerDo(in)
	if err != nil {
		return TurnResult{}, fmt.Errorf("player turn %q: %w", raw, err)
	}
	g.last = g.append(ev)

	res := TurnResult{Event: g.last, Ended: g.Ended()}
	if !res.Ended {
		for _, n := range g.def.NPCs {
			npcEv, err := n.NPC.Act(g.log)
			if err != nil {
				return TurnResult{}, fmt.Errorf("npc %s: %w", n.NPC.ID(), err)
			}
			res.NPCs = append(res.NPCs, g.append(npcEv))
		}
	} else {
		g.logger.Info("Game ended", "events", g.log.Len())
	}

	if res.Text, err = g.Render(g.last); err != nil {
		return TurnResult{}, err
	}
	if !res.Ended {
		res.Status = g.StatusText()
	}
	return res, nil
}

// Opening renders the player's first event.
func (g *Game) Opening() (string, error) {
	first := g.log.EventsBy(actor.Player)
	if len(first) == 0 {
		return "", state.ErrNoCurrentRoom
	}
	return g.Render(first[0])
}

// StatusText joins the non-empty status texts of all NPCs.
func (g *Game) StatusText() string {
	var lines []string
	for _, n := range g.def.NPCs {
		if s := n.NPC.StatusText(g.log); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

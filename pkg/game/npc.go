package game

import (
	"math/rand/v2"

	"github.com/jwebster45206/adventure-engine/pkg/action"
	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// NPC is a non-player character that acts once per turn.
type NPC interface {
	actor.Character
	// Act returns the NPC's event for this turn.
	Act(log *state.Log) (state.Event, error)
	// StatusText is shown to the player after each turn. Empty means
	// nothing to say.
	StatusText(log *state.Log) string
}

// Wanderer lingers for MinTurns turns in a room, then walks to a random
// neighbouring room that will have it.
type Wanderer struct {
	*actor.NPC
	MinTurns int

	EnterText  string // event text when it walks into a room
	StayText   string // event text while it lingers
	ArriveText string // status when the player first shares its room
	LingerText string // status while they stay together

	adj world.Adjacency
	rng *rand.Rand
}

// NewWanderer creates a Wanderer walking the graph adj. A nil rng uses the
// global source.
func NewWanderer(npc *actor.NPC, adj world.Adjacency, rng *rand.Rand) *Wanderer {
	return &Wanderer{NPC: npc, MinTurns: 2, adj: adj, rng: rng}
}

func (w *Wanderer) Act(log *state.Log) (state.Event, error) {
	if log.TurnsSinceRoomEntry(w) >= w.MinTurns {
		return action.GoWhereverPossible(w.adj, log, w, w.EnterText, w.rng)
	}
	here, err := log.CurrentRoomAndState(w)
	if err != nil {
		return state.Event{}, err
	}
	return state.SameRoomEvent(w.StayText, here, w), nil
}

func (w *Wanderer) StatusText(log *state.Log) string {
	n, err := log.CoLocatedTurnCount(actor.Player, w)
	if err != nil {
		return ""
	}
	switch n {
	case 0:
		return ""
	case 1:
		return w.ArriveText
	default:
		return w.LingerText
	}
}

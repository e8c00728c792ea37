package action

import (
	"math/rand/v2"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

const (
	DefaultFailureText = "That didn't work!"
	NoRoomsText        = "No possible rooms to enter"
	NoStateText        = "No possible state to enter"
)

// Go moves the player along the first connection whose guard passes. Every
// way of not moving is a SameRoom event. A room without exits or without a
// passing connection uses the no-exit text; a destination none of whose
// states match uses the failure text.
func Go(conns world.Connections, opts ...Option) Handler {
	t := resolve(texts{failure: DefaultFailureText}, opts)
	if t.noExit == "" {
		t.noExit = t.failure
	}
	return HandlerFunc(func(in command.Input, log *state.Log) (state.Event, error) {
		ctx, err := log.GuardContext(actor.Player)
		if err != nil {
			return state.Event{}, err
		}
		here := state.Place{Room: ctx.From, State: ctx.State}

		to, defined := conns.Match(ctx.From, in, ctx)
		if !defined || to == nil {
			return state.SameRoomEvent(t.noExit, here, actor.Player), nil
		}
		st, ok := to.ResolveState(in, ctx)
		if !ok {
			return state.SameRoomEvent(t.failure, here, actor.Player), nil
		}
		return state.NewRoomEvent(t.success, state.Place{Room: to, State: st}, actor.Player), nil
	})
}

// GoWhereverPossible moves c to a random neighbour that has a matching state.
// Candidates are shuffled with rng, or the global source when rng is nil.
func GoWhereverPossible(adj world.Adjacency, log *state.Log, c actor.Character, enterText string, rng *rand.Rand) (state.Event, error) {
	ctx, err := log.GuardContext(c)
	if err != nil {
		return state.Event{}, err
	}
	here := state.Place{Room: ctx.From, State: ctx.State}

	candidates := append([]*world.Room(nil), adj[ctx.From]...)
	if len(candidates) == 0 {
		return state.SameRoomEvent(NoRoomsText, here, c), nil
	}
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	in := command.NPCInput()
	for _, room := range candidates {
		if st, ok := room.ResolveState(in, ctx); ok {
			return state.NewRoomEvent(enterText, state.Place{Room: room, State: st}, c), nil
		}
	}
	return state.SameRoomEvent(NoStateText, here, c), nil
}

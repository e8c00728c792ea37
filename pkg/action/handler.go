// Package action turns a typed command into exactly one event. Handlers only
// read the log; the caller appends whatever they return.
package action

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

var (
	// ErrUndefinedCommand means the dispatch table has no handler for a
	// command the interpreter produced.
	ErrUndefinedCommand = errors.New("undefined command")
	// ErrNoMatchingBranch means none of a Choose handler's guards passed.
	ErrNoMatchingBranch = errors.New("no matching branch")
)

// Handler produces the event for one player turn.
type Handler interface {
	Handle(in command.Input, log *state.Log) (state.Event, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(in command.Input, log *state.Log) (state.Event, error)

func (f HandlerFunc) Handle(in command.Input, log *state.Log) (state.Event, error) {
	return f(in, log)
}

// Table maps each command to its handler.
type Table map[command.Command]Handler

// Dispatch runs the handler registered for in.Command.
func (t Table) Dispatch(in command.Input, log *state.Log) (state.Event, error) {
	h, ok := t[in.Command]
	if !ok {
		return state.Event{}, fmt.Errorf("%w: %q", ErrUndefinedCommand, in.Command)
	}
	return h.Handle(in, log)
}

// Commands lists the commands with a handler.
func (t Table) Commands() []command.Command {
	cmds := make([]command.Command, 0, len(t))
	for c := range t {
		cmds = append(cmds, c)
	}
	return cmds
}

// texts holds the success and failure wording of a handler.
type texts struct {
	success string
	failure string
	noExit  string // Go only; falls back to failure
}

// Option overrides a handler's default wording.
type Option func(*texts)

// WithSuccess sets the text used when the action works.
func WithSuccess(text string) Option {
	return func(t *texts) { t.success = text }
}

// WithFailure sets the text used when the action fails.
func WithFailure(text string) Option {
	return func(t *texts) { t.failure = text }
}

// WithNoExitText sets the text Go uses when no exit leads the way the player
// asked, keeping WithFailure for a destination that refuses entry.
func WithNoExitText(text string) Option {
	return func(t *texts) { t.noExit = text }
}

func resolve(defaults texts, opts []Option) texts {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

func playerPlace(log *state.Log) (state.Place, error) {
	return log.CurrentRoomAndState(actor.Player)
}

// Branch is one guarded alternative of a Choose handler.
type Branch struct {
	Guard   world.Guard
	Handler Handler
}

// When builds a Branch.
func When(g world.Guard, h Handler) Branch {
	return Branch{Guard: g, Handler: h}
}

// Choose runs the handler of the first branch whose guard passes for the
// player. End the list with world.Always to guarantee a match.
func Choose(branches ...Branch) Handler {
	return HandlerFunc(func(in command.Input, log *state.Log) (state.Event, error) {
		ctx, err := log.GuardContext(actor.Player)
		if err != nil {
			return state.Event{}, err
		}
		for _, b := range branches {
			if b.Guard.Evaluate(in, ctx) {
				return b.Handler.Handle(in, log)
			}
		}
		return state.Event{}, fmt.Errorf("%w in %s for %q", ErrNoMatchingBranch, ctx.From, in.Command)
	})
}

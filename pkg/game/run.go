package game

import (
	"context"
	"errors"
	"io"
)

// IO is the player's terminal.
type IO interface {
	ShowText(text string) error
	// WaitForInput blocks until the player enters a line. io.EOF ends the
	// game quietly.
	WaitForInput(ctx context.Context) (string, error)
}

// Run plays g to the end over term. It returns nil when the game ends or the
// input is exhausted, and the first error otherwise.
func Run(ctx context.Context, g *Game, term IO) error {
	text, err := g.Opening()
	if err != nil {
		return err
	}
	if err := show(term, text, g.StatusText()); err != nil {
		return err
	}

	for !g.Ended() {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := term.WaitForInput(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		res, err := g.Turn(raw)
		if err != nil {
			return err
		}
		if err := show(term, res.Text, res.Status); err != nil {
			return err
		}
	}
	return nil
}

func show(out IO, text, status string) error {
	if err := out.ShowText(text); err != nil {
		return err
	}
	if status == "" {
		return nil
	}
	return out.ShowText(status)
}

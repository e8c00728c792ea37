// Package console holds the player-facing front ends: a full-screen
// bubbletea UI and a plain line-based terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/adventure-engine/pkg/game"
)

const Prompt = "> "

// Terminal reads commands line by line and prints wrapped game text.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	wrap   int
	prompt string
}

var _ game.IO = (*Terminal)(nil)

// NewTerminal wraps output at wrap columns; 0 disables wrapping.
func NewTerminal(in io.Reader, out io.Writer, wrap int) *Terminal {
	return &Terminal{
		in:     bufio.NewReader(in),
		out:    out,
		wrap:   wrap,
		prompt: Prompt,
	}
}

func (t *Terminal) ShowText(text string) error {
	if t.wrap > 0 {
		text = wordwrap.String(text, t.wrap)
	}
	_, err := fmt.Fprintln(t.out, text)
	return err
}

// WaitForInput prints the prompt and reads one line. A last line without a
// newline is still returned; io.EOF comes after it.
func (t *Terminal) WaitForInput(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(t.out, t.prompt); err != nil {
		return "", err
	}
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

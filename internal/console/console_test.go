package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
)

func newGarden(t *testing.T) *game.Game {
	t.Helper()
	def, err := scenario.Open("garden", rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	g, err := game.New(def)
	require.NoError(t, err)
	return g
}

func TestTerminal_Run(t *testing.T) {
	in := strings.NewReader("take key\ninventory\nbye\nnever read\n")
	var out bytes.Buffer

	require.NoError(t, game.Run(context.Background(), newGarden(t), NewTerminal(in, &out, 0)))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Welcome!\n"), text)
	assert.Contains(t, text, "> You pick up a key.\n")
	assert.Contains(t, text, "> You carry a receipt, a key\n")
	assert.Contains(t, text, "> Game over!\nThat's enough for today, thanks for playing!\n")
	assert.NotContains(t, text, "never read")
}

func TestTerminal_Wraps(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out, 10)
	require.NoError(t, term.ShowText("You are standing on a lawn"))
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 10, line)
	}
}

func TestTerminal_WaitForInput(t *testing.T) {
	term := NewTerminal(strings.NewReader("  look around  \nlast line"), io.Discard, 0)
	ctx := context.Background()

	line, err := term.WaitForInput(ctx)
	require.NoError(t, err)
	assert.Equal(t, "look around", line)

	line, err = term.WaitForInput(ctx)
	require.NoError(t, err)
	assert.Equal(t, "last line", line)

	_, err = term.WaitForInput(ctx)
	assert.ErrorIs(t, err, io.EOF)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = term.WaitForInput(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func update(t *testing.T, m UI, msg tea.Msg) (UI, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	ui, ok := next.(UI)
	require.True(t, ok)
	return ui, cmd
}

func enter(t *testing.T, m UI, input string) (UI, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(input)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// play submits input and delivers the finished turn back to the model.
func play(t *testing.T, m UI, input string) UI {
	t.Helper()
	m, cmd := enter(t, m, input)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func sized(t *testing.T, m UI) UI {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestUI_Turns(t *testing.T) {
	m := sized(t, NewUI(newGarden(t), 0))
	assert.True(t, m.ready)
	assert.True(t, strings.HasPrefix(m.Transcript(), "Welcome!\n"))

	m = play(t, m, "take key")
	assert.Contains(t, m.Transcript(), "> take key\nYou pick up a key.\n")
	assert.Empty(t, m.textarea.Value())
	assert.False(t, m.busy)
	assert.Contains(t, writeMetadata(m.game), "• a key")
	assert.Contains(t, writeMetadata(m.game), "Garden\n")

	m = play(t, m, "bye")
	assert.True(t, m.ended)
	assert.True(t, strings.HasSuffix(m.Transcript(), EndedText+"\n"))

	_, cmd := enter(t, m, "look")
	assert.Nil(t, cmd)
}

func TestUI_BlankInputIsIgnored(t *testing.T) {
	m := sized(t, NewUI(newGarden(t), 0))
	before := m.Transcript()
	m, cmd := enter(t, m, "   ")
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.Transcript())
}

func TestUI_Commands(t *testing.T) {
	m := sized(t, NewUI(newGarden(t), 0))
	events := m.game.Log().Len()

	m, cmd := enter(t, m, "/items")
	assert.Nil(t, cmd)
	assert.Contains(t, m.Transcript(), "You carry a receipt.")

	m, _ = enter(t, m, "/help")
	assert.Contains(t, m.Transcript(), "Ctrl+Y - Copy the transcript")

	m, _ = enter(t, m, "/dance")
	assert.Contains(t, m.Transcript(), "Unknown command /dance. Try /help.")
	assert.Equal(t, events, m.game.Log().Len())
}

func TestUI_TurnError(t *testing.T) {
	m := sized(t, NewUI(newGarden(t), 0))
	m, _ = update(t, m, turnMsg{err: errors.New("boom")})
	assert.Contains(t, m.Transcript(), "Error: boom\n")
	assert.False(t, m.ended)
}

func TestUI_QuitModal(t *testing.T) {
	m := sized(t, NewUI(newGarden(t), 0))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.showQuitModal)
	assert.Contains(t, m.View(), "Quit Game?")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.False(t, m.showQuitModal)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUI_SelectScenario(t *testing.T) {
	var started []string
	start := func(name string) (*game.Game, error) {
		started = append(started, name)
		if name == "broken" {
			return nil, errors.New("no such scenario")
		}
		return newGarden(t), nil
	}

	m := NewSelectUI([]string{"broken", "garden"}, start, 40)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "Select a Scenario")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, []string{"garden"}, started)
	assert.False(t, m.showScenarioModal)
	assert.True(t, m.ready)
	assert.True(t, strings.HasPrefix(m.Transcript(), "Welcome!\n"))

	failing := NewSelectUI([]string{"broken"}, start, 40)
	failing, _ = update(t, failing, tea.WindowSizeMsg{Width: 120, Height: 40})
	failing, cmd = update(t, failing, tea.KeyMsg{Type: tea.KeyEnter})
	failing, _ = update(t, failing, cmd())
	assert.True(t, failing.showScenarioModal)
	assert.Contains(t, failing.View(), "Failed to start scenario")
}

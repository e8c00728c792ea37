package console

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/adventure-engine/pkg/action"
	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

const (
	PlaceHolderText = "What do you do?"
	EndedText       = "The game has ended. Press Esc to leave."
)

// StartFunc builds a new game from a scenario name.
type StartFunc func(name string) (*game.Game, error)

type entryKind int

const (
	entryInput entryKind = iota
	entryText
	entryStatus
	entryNotice
	entryError
)

type entry struct {
	kind entryKind
	text string
}

// UI is the BubbleTea model that runs the full-screen game.
// https://github.com/charmbracelet/bubbletea
type UI struct {
	game         *game.Game
	wrap         int
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	transcript   []entry
	ready        bool
	width        int
	height       int
	busy         bool
	ended        bool

	// Scenario selection state
	showScenarioModal bool
	scenarios         []string
	selectedScenario  int
	start             StartFunc
	err               error

	// Quit confirmation state
	showQuitModal bool
}

type turnMsg struct {
	res game.TurnResult
	err error
}

type gameStartedMsg struct {
	game *game.Game
	err  error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

func newUI(wrap int) UI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(Prompt)
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	return UI{
		wrap:         wrap,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: viewport.New(20, 20),
	}
}

// NewUI plays g. Text is wrapped at wrap columns or the panel width,
// whichever is smaller; 0 means the panel width.
func NewUI(g *game.Game, wrap int) UI {
	m := newUI(wrap)
	m.setGame(g)
	return m
}

// NewSelectUI first asks the player to pick one of scenarios and then plays
// the game start builds for it.
func NewSelectUI(scenarios []string, start StartFunc, wrap int) UI {
	m := newUI(wrap)
	m.scenarios = scenarios
	m.start = start
	m.showScenarioModal = true
	return m
}

func (m *UI) setGame(g *game.Game) {
	m.game = g
	m.transcript = nil
	text, err := g.Opening()
	if err != nil {
		m.add(entryError, err.Error())
		return
	}
	m.add(entryText, text)
	m.add(entryStatus, g.StatusText())
}

func (m *UI) add(kind entryKind, text string) {
	if text == "" {
		return
	}
	m.transcript = append(m.transcript, entry{kind: kind, text: text})
}

// Transcript returns everything shown so far as plain text.
func (m UI) Transcript() string {
	var b strings.Builder
	for _, e := range m.transcript {
		switch e.kind {
		case entryInput:
			b.WriteString(Prompt + e.text)
		case entryError:
			b.WriteString("Error: " + e.text)
		default:
			b.WriteString(e.text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *UI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m UI) wrapWidth() int {
	w := m.chatViewport.Width - 6
	if m.wrap > 0 && m.wrap < w {
		w = m.wrap
	}
	return max(w, 10)
}

// writeChatContent rebuilds the transcript for the current viewport width
func (m *UI) writeChatContent() {
	width := m.wrapWidth()

	var content strings.Builder
	title := "ADVENTURE"
	if m.game != nil {
		title = strings.ToUpper(m.game.Definition().Title)
	}
	content.WriteString(titleStyle.Render(title) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, e := range m.transcript {
		switch e.kind {
		case entryInput:
			content.WriteString(userStyle.Render(Prompt) + wordwrap.String(e.text, width-len(Prompt)))
		case entryText:
			content.WriteString(wordwrap.String(e.text, width))
		case entryStatus:
			content.WriteString(statusStyle.Render(wordwrap.String(e.text, width)))
		case entryNotice:
			content.WriteString(noticeStyle.Render(wordwrap.String(e.text, width)))
		case entryError:
			content.WriteString(errorStyle.Render(wordwrap.String("Error: "+e.text, width)))
		}
		content.WriteString("\n\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

// writeMetadata summarizes what the log says about the player right now.
func writeMetadata(g *game.Game) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(g.ID.String()[:8] + "...\n\n")

	log := g.Log()
	content.WriteString("Location:\n")
	if room, err := log.CurrentRoom(actor.Player); err == nil {
		content.WriteString(room.Name + "\n")
		content.WriteString(fmt.Sprintf("%d turns here\n\n", log.TurnsSinceRoomEntry(actor.Player)))
	} else {
		content.WriteString("Unknown\n\n")
	}

	content.WriteString("Carrying:\n")
	carried, err := state.CarriedItems(log)
	if err == nil && len(carried) > 0 {
		for _, it := range carried {
			desc, err := it.Description(log)
			if err != nil {
				desc = it.ID
			}
			content.WriteString("• " + desc + "\n")
		}
	} else {
		content.WriteString("Nothing\n")
	}
	content.WriteString("\n")

	content.WriteString(fmt.Sprintf("Events:\n%d\n\n", log.Len()))

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Ctrl+Y: Copy transcript\n")
	content.WriteString("• /help: Help\n")

	return content.String()
}

func (m *UI) refresh() {
	m.writeChatContent()
	if m.game != nil {
		m.metaViewport.SetContent(writeMetadata(m.game))
	}
}

func (m UI) Init() tea.Cmd {
	return textarea.Blink
}

func (m UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showScenarioModal {
		return m.updateScenarioModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			if err := clipboard.WriteAll(m.Transcript()); err != nil {
				m.add(entryError, "copy failed: "+err.Error())
			} else {
				m.add(entryNotice, "Transcript copied to clipboard.")
			}
			m.writeChatContent()
			return m, nil
		case tea.KeyEnter:
			if m.busy || m.ended {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.add(entryInput, input)
			m.busy = true
			m.writeChatContent()
			return m, m.playTurn(input)
		}

	case turnMsg:
		m.busy = false
		if msg.err != nil {
			m.add(entryError, msg.err.Error())
		} else {
			m.add(entryText, msg.res.Text)
			m.add(entryStatus, msg.res.Status)
			if msg.res.Ended {
				m.ended = true
				m.textarea.Blur()
				m.add(entryNotice, EndedText)
			}
		}
		m.refresh()
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m UI) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/help":
		m.add(entryNotice, `Commands:
• /help - Show this help
• /items - List what you carry
• Ctrl+Y - Copy the transcript
• Ctrl+C - Quit game

How to play:
• Type short commands like "go north", "take key" or "look"
• The game answers after every command`)
	case "/items":
		carried, err := state.CarriedItems(m.game.Log())
		switch {
		case err != nil:
			m.add(entryError, err.Error())
		case len(carried) == 0:
			m.add(entryNotice, "You carry nothing.")
		default:
			list, err := action.DescribeItems(carried, m.game.Log())
			if err != nil {
				m.add(entryError, err.Error())
			} else {
				m.add(entryNotice, "You carry "+list+".")
			}
		}
	default:
		m.add(entryNotice, "Unknown command "+input+". Try /help.")
	}
	m.writeChatContent()
	return m, nil
}

func (m UI) playTurn(input string) tea.Cmd {
	g := m.game
	return func() tea.Msg {
		res, err := g.Turn(input)
		return turnMsg{res: res, err: err}
	}
}

func (m UI) startScenario(name string) tea.Cmd {
	start := m.start
	return func() tea.Msg {
		g, err := start(name)
		return gameStartedMsg{game: g, err: err}
	}
}

func (m UI) updateScenarioModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case gameStartedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.showScenarioModal = false
		m.setGame(msg.game)
		if m.width > 0 && m.height > 0 {
			m.resize()
			m.ready = true
		}
		m.refresh()
		m.textarea.Focus()
		return m, textarea.Blink

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		}
		if m.busy || m.err != nil {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyUp:
			if m.selectedScenario > 0 {
				m.selectedScenario--
			}
		case tea.KeyDown:
			if m.selectedScenario < len(m.scenarios)-1 {
				m.selectedScenario++
			}
		case tea.KeyEnter:
			if len(m.scenarios) > 0 {
				m.busy = true
				return m, m.startScenario(m.scenarios[m.selectedScenario])
			}
		}
	}

	return m, nil
}

func (m UI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showScenarioModal || m.ended {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m UI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m UI) renderScenarioModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to start scenario: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	case m.busy:
		content.WriteString(modalTitleStyle.Render("Creating Game..."))
	default:
		content.WriteString(modalTitleStyle.Render("Select a Scenario"))
		content.WriteString("\n\n")

		for i, scenario := range m.scenarios {
			if i == m.selectedScenario {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", scenario)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", scenario)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m UI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showScenarioModal {
		return m.renderScenarioModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

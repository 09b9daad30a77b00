// Package tui renders the stream as an interactive terminal log: a
// viewport holding the bounded entries, a status bar tracking connection
// state, and a spinner while reconnecting.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
)

// Event messages delivered into the bubbletea loop.

type appendedMsg struct{ msg model.Message }
type evictedMsg struct{ msg model.Message }
type clearedMsg struct{}
type stateMsg struct{ from, to model.ConnectionState }
type exhaustedMsg struct{ attempts int }

// Sender delivers messages into a running bubbletea program.
// *tea.Program satisfies it.
type Sender interface {
	Send(tea.Msg)
}

// Renderer bridges stream notifications into the bubbletea loop.
type Renderer struct {
	sender Sender
}

// NewRenderer creates a renderer feeding the given program.
func NewRenderer(s Sender) *Renderer {
	return &Renderer{sender: s}
}

func (r *Renderer) MessageAppended(msg model.Message) { r.sender.Send(appendedMsg{msg: msg}) }
func (r *Renderer) MessageEvicted(msg model.Message)  { r.sender.Send(evictedMsg{msg: msg}) }
func (r *Renderer) LogCleared()                       { r.sender.Send(clearedMsg{}) }
func (r *Renderer) StateChanged(from, to model.ConnectionState) {
	r.sender.Send(stateMsg{from: from, to: to})
}
func (r *Renderer) ReconnectsExhausted(attempts int) {
	r.sender.Send(exhaustedMsg{attempts: attempts})
}
func (r *Renderer) Close() error { return nil }

type styles struct {
	header    lipgloss.Style
	status    lipgloss.Style
	errStatus lipgloss.Style
	timestamp lipgloss.Style
	label     lipgloss.Style
	category  map[string]lipgloss.Style
	fallback  lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	return styles{
		header:    base.Bold(true).Foreground(lipgloss.Color("63")),
		status:    base.Foreground(lipgloss.Color("39")).Bold(true),
		errStatus: base.Foreground(lipgloss.Color("204")).Bold(true),
		timestamp: base.Foreground(lipgloss.Color("240")),
		label:     base.Foreground(lipgloss.Color("228")),
		category: map[string]lipgloss.Style{
			model.CategoryInfo:     base.Foreground(lipgloss.Color("252")),
			model.CategoryAnalysis: base.Foreground(lipgloss.Color("75")),
			model.CategoryDecision: base.Foreground(lipgloss.Color("141")),
			model.CategoryAction:   base.Foreground(lipgloss.Color("214")),
			model.CategorySuccess:  base.Foreground(lipgloss.Color("78")),
			model.CategoryError:    base.Foreground(lipgloss.Color("204")),
		},
		fallback: base.Foreground(lipgloss.Color("252")),
	}
}

// Model is the bubbletea model. Entries mirror the bounded log exactly:
// appends add at the end, evictions remove from the front, so the screen
// and the log never disagree.
type Model struct {
	entries       []model.Message
	state         model.ConnectionState
	exhausted     bool
	showTimestamp bool
	title         string

	viewport viewport.Model
	spinner  spinner.Model
	styles   styles
	ready    bool
}

// NewModel creates the TUI model. Initial entries seed the view when the
// program attaches to a log that already holds messages.
func NewModel(title string, showTimestamp bool, initial []model.Message) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	entries := make([]model.Message, len(initial))
	copy(entries, initial)
	return Model{
		entries:       entries,
		state:         model.Disconnected,
		showTimestamp: showTimestamp,
		title:         title,
		spinner:       sp,
		styles:        newStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			// Display option only; the connection is untouched.
			m.showTimestamp = !m.showTimestamp
			m.refreshViewport()
			return m, nil
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		m.refreshViewport()
		return m, nil

	case appendedMsg:
		m.entries = append(m.entries, msg.msg)
		m.refreshViewport()
		return m, nil

	case evictedMsg:
		if len(m.entries) > 0 {
			m.entries = m.entries[1:]
		}
		m.refreshViewport()
		return m, nil

	case clearedMsg:
		m.entries = nil
		m.refreshViewport()
		return m, nil

	case stateMsg:
		m.state = msg.to
		if msg.to != model.Exhausted {
			m.exhausted = false
		}
		return m, nil

	case exhaustedMsg:
		m.exhausted = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render(m.title))
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderEntries())
	}
	return b.String()
}

// Entries returns the entries currently displayed. Test hook.
func (m Model) Entries() []model.Message {
	cp := make([]model.Message, len(m.entries))
	copy(cp, m.entries)
	return cp
}

// State returns the displayed connection state. Test hook.
func (m Model) State() model.ConnectionState {
	return m.state
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderEntries())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) statusLine() string {
	switch {
	case m.exhausted:
		return m.styles.errStatus.Render("connection lost — press q to quit, reopen to resume")
	case m.state == model.Reconnecting:
		return m.styles.errStatus.Render(m.spinner.View() + " reconnecting")
	case m.state == model.Connecting:
		return m.styles.status.Render(m.spinner.View() + " connecting")
	default:
		return m.styles.status.Render(m.state.String())
	}
}

func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return m.styles.timestamp.Render("waiting for stream...")
	}
	lines := make([]string, len(m.entries))
	for i, e := range m.entries {
		lines[i] = m.renderEntry(e)
	}
	return strings.Join(lines, "\n")
}

// renderEntry styles one message. Text passes through EscapeText — the
// terminal is not an HTML sink, but normalization plus escaping keeps
// hostile content inert in every rendering context we emit to.
func (m Model) renderEntry(e model.Message) string {
	style, ok := m.styles.category[e.Category]
	if !ok {
		style = m.styles.fallback
	}

	var b strings.Builder
	if m.showTimestamp {
		b.WriteString(m.styles.timestamp.Render(e.Timestamp.Format("15:04:05")))
		b.WriteByte(' ')
	}
	if e.Label != "" {
		b.WriteString(m.styles.label.Render(e.Label))
		b.WriteByte(' ')
	}
	b.WriteString(style.Render(render.EscapeText(e.Text)))
	return b.String()
}

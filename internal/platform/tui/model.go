package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maenggu/internal/core"
	"github.com/vovakirdan/maenggu/internal/pet"
)

// Model is the Bubble Tea model for one pet.
type Model struct {
	session  *Session
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	tickRate int
	now      func() time.Time

	state    pet.State
	mouse    core.Position
	hasMouse bool
	showHelp bool
	quitting bool
}

// NewModel creates a model driving s at tickRate ticks per second.
func NewModel(s *Session, tickRate int) Model {
	cols, rows := s.View.Size()
	return Model{
		session:  s,
		screen:   core.NewScreen(cols, rows-hudRows),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		tickRate: tickRate,
		now:      time.Now,
		state:    s.Loop.State(),
		showHelp: true,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case CommandFeed:
		// A failed spend still reaches the pet as feed-fail.
		_, _ = m.session.Loop.Feed()
	case CommandSummon:
		target := m.mouse
		if !m.hasMouse {
			target = m.session.View.Bounds().Area().Center()
		}
		m.session.Loop.Push(pet.Summon{X: target.X, Y: target.Y})
	case CommandHelp:
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse tracks the pointer and turns clicks on the sprite into
// click events.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pos := m.session.View.ToPixel(msg.X, msg.Y)
	m.mouse = pos
	m.hasMouse = true

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if HitSprite(m.session.View, m.session.Pack, m.state, msg.X, msg.Y) {
		m.session.Loop.Push(pet.Click{Position: pos})
	}
	return m, nil
}

// handleResize processes window resize events. The pet keeps its state;
// the next tick clamps it into the new bounds.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.session.View.Resize(msg.Width, msg.Height)
	cols, rows := m.session.View.Size()
	m.screen.Resize(cols, rows-hudRows)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	res := m.session.Tick(now)
	m.state = res.State
	return m, tickCmd(m.tickRate)
}

// State returns the last rendered snapshot.
func (m Model) State() pet.State {
	return m.state
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	now := m.now()
	bubble, _ := m.session.Bubble.Current(now)
	Draw(m.screen, m.session, m.state, m.session.Texts.Active(now), bubble)

	helpView := ""
	if m.showHelp {
		helpView = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return RenderScreen(m.screen) + "\n" + RenderHUD(m.state, m.session.Snacks(), helpView)
}

// Run starts the Bubble Tea program for s in the current terminal.
func Run(s *Session, tickRate int) error {
	p := tea.NewProgram(
		NewModel(s, tickRate),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewMenu view = iota
	viewSim
	viewRuns
)

// SessionModel manages the full session flow: menu -> scene -> menu, with
// the run history one key away. Local runs and SSH sessions share it.
type SessionModel struct {
	opts     Options
	view     view
	menu     MenuModel
	sim      *SimModel
	runs     *RunsModel
	err      error
	quitting bool
}

// NewSessionModel creates a session. With opts.Scene set the session opens
// straight into that scene; otherwise it starts at the menu.
func NewSessionModel(opts Options) (SessionModel, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	m := SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Width, opts.Height, opts.Store != nil),
	}
	if opts.Scene != "" {
		if err := m.startSim(opts.Scene); err != nil {
			return SessionModel{}, err
		}
	}
	return m, nil
}

// startSim switches to a fresh simulation with scene active.
func (m *SessionModel) startSim(scene string) error {
	opts := m.opts
	opts.Scene = scene
	sim, err := NewSimModel(opts)
	if err != nil {
		return err
	}
	m.sim = &sim
	m.view = viewSim
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewSim {
		return m.sim.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.view {
	case viewSim:
		return m.updateSim(msg)
	case viewRuns:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRuns():
		runs := NewRunsModel(m.opts.Store, m.opts.Width, m.opts.Height)
		m.runs = &runs
		m.view = viewRuns
		return m, m.runs.Init()

	case m.menu.Selected() != nil:
		if err := m.startSim(m.menu.Selected().ID); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.sim.Init()
	}

	return m, cmd
}

// updateSim handles updates while a scene runs.
func (m SessionModel) updateSim(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.sim.Update(msg)
	if simModel, ok := newModel.(SimModel); ok {
		m.sim = &simModel
	}

	if m.sim.IsQuitting() {
		m.err = m.sim.Err()
		m.quitting = true
		return m, tea.Quit
	}

	if m.sim.BackToMenu() {
		m.err = m.sim.Err()
		m.sim = nil
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRuns handles updates in the run history.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if runsModel, ok := newModel.(RunsModel); ok {
		m.runs = &runsModel
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.runs.IsGoingBack() {
		m.runs = nil
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// backToMenu resets the menu state.
func (m *SessionModel) backToMenu() {
	m.menu = NewMenuModel(m.opts.Width, m.opts.Height, m.opts.Store != nil)
	m.view = viewMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewSim:
		return m.sim.View()
	case viewRuns:
		return m.runs.View()
	}
	return m.menu.View()
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(opts Options) error {
	model, err := NewSessionModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if s, ok := final.(SessionModel); ok {
		return s.Err()
	}
	return nil
}

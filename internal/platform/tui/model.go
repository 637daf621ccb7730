package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/simcore/internal/audio"
	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/engine"
	"github.com/vovakirdan/simcore/internal/registry"
	"github.com/vovakirdan/simcore/internal/render"
	"github.com/vovakirdan/simcore/internal/scene"
	"github.com/vovakirdan/simcore/internal/storage"
)

// Options configures a terminal session.
type Options struct {
	Sim      config.SimConfig
	Scene    string // scene to start in; empty opens the menu
	Seed     int64  // 0 = random based on time
	Width    int
	Height   int
	Audio    audio.Sink // shared across runs, owned by the caller
	Logger   *log.Logger
	Store    *storage.Store // optional run history
	Mode     string
	Username string
}

// sharedAudio hands the caller's sink to an engine context without
// letting the context close it.
type sharedAudio struct {
	audio.Sink
}

func (sharedAudio) Close() error { return nil }

// segment is the stretch of a run spent in one scene. base holds the
// scene's stats when the stretch began.
type segment struct {
	scene   string
	frames  int
	started time.Time
	base    engine.Stats
}

// SimModel is the Bubble Tea model that drives one engine context.
type SimModel struct {
	ctx       *engine.Context
	gen       uint64
	sink      *render.ScreenSink
	opts      Options
	keyMapper *KeyMapper
	keys      SimKeyMap
	help      help.Model
	lastTick  time.Time
	current   segment
	muted     bool
	err       error
	quitting  bool
	back      bool
	finished  bool
}

// NewSimModel builds an engine context with every registered scene loaded
// and opts.Scene active.
func NewSimModel(opts Options) (SimModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}

	// Reserve the bottom row for the help line
	screenH := max(opts.Height-1, 1)
	rc := engine.RuntimeConfigFrom(opts.Sim, opts.Width, screenH, opts.Seed)
	screen := core.NewScreen(opts.Width, screenH)
	sink := render.NewScreenSink(screen, rc.World(), nil, opts.Logger.WithPrefix("render"))

	ctx := engine.New(rc, opts.Sim,
		engine.WithOutput(sink),
		engine.WithAudio(sharedAudio{opts.Audio}),
		engine.WithLogger(opts.Logger),
	)
	if err := registry.LoadAll(ctx, opts.Scene); err != nil {
		ctx.Close()
		return SimModel{}, fmt.Errorf("tui: %w", err)
	}

	h := help.New()
	h.Width = opts.Width

	return SimModel{
		ctx:       ctx,
		gen:       generations.Add(1),
		sink:      sink,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		keys:      DefaultSimKeyMap(),
		help:      h,
		current:   startSegment(ctx),
	}, nil
}

// Init starts the tick loop.
func (m SimModel) Init() tea.Cmd {
	return tickCmd(m.ctx.Config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m SimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.ctx.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input. Platform keys are handled here; the
// rest are forwarded to the key state the scenes poll.
func (m SimModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.finish()
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.back = true
		m.finish()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.nextScene()
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.toggleMute()
		return m, nil
	}

	if k != core.KeyNone {
		m.ctx.Input.Press(k)
	}
	return m, nil
}

// handleTick runs one frame with dt taken from the tick timestamps.
func (m SimModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.ctx.Config.TickRate)
	m.lastTick = now
	m.ctx.Input.Expire(now, keyHold)

	if err := m.ctx.Frame(dt); err != nil {
		m.err = err
		m.opts.Logger.Error("frame failed", "err", err)
		m.quitting = true
		m.finish()
		return m, tea.Quit
	}

	return m, tickCmd(m.ctx.Config.TickRate, m.gen)
}

// nextScene activates the scene after the current one, in name order.
func (m *SimModel) nextScene() {
	names := m.ctx.Scenes.Names()
	if len(names) < 2 {
		return
	}

	_, cur := m.ctx.Scenes.Active()
	next := names[0]
	for i, n := range names {
		if n == cur {
			next = names[(i+1)%len(names)]
			break
		}
	}

	m.saveSegment()
	if err := m.ctx.Scenes.SetActive(next); err != nil {
		m.opts.Logger.Error("switch scene", "scene", next, "err", err)
		return
	}
	m.ctx.Input.Reset()
	m.current = startSegment(m.ctx)
}

// startSegment opens a stretch in the active scene of ctx.
func startSegment(ctx *engine.Context) segment {
	s, name := ctx.Scenes.Active()
	return segment{
		scene:   name,
		frames:  ctx.Frames(),
		started: time.Now(),
		base:    sceneStats(s),
	}
}

// sceneStats returns the scene's stats, or zero when it reports none.
func sceneStats(s scene.Scene) engine.Stats {
	if r, ok := s.(engine.Reporter); ok {
		return r.Stats()
	}
	return engine.Stats{}
}

// toggleMute silences or restores the configured volume.
func (m *SimModel) toggleMute() {
	m.muted = !m.muted
	if m.muted {
		m.ctx.Audio.SetVolume(0)
		return
	}
	m.ctx.Audio.SetVolume(m.opts.Sim.Audio.Volume)
}

// saveSegment records the current scene's stats, if a store is attached
// and the scene reports any.
func (m *SimModel) saveSegment() {
	if m.opts.Store == nil {
		return
	}
	frames := m.ctx.Frames() - m.current.frames
	if frames == 0 {
		return
	}

	run := storage.Run{
		Scene:    m.current.scene,
		Mode:     m.opts.Mode,
		Username: m.opts.Username,
		Seed:     m.ctx.Config.Seed,
		Frames:   frames,
		Duration: time.Since(m.current.started),
	}
	// Score and collisions are running totals; entities is a live count
	s, _ := m.ctx.Scenes.Active()
	st := sceneStats(s)
	run.Score = st.Score - m.current.base.Score
	run.Collisions = st.Collisions - m.current.base.Collisions
	run.Entities = st.Entities

	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.opts.Logger.Warn("could not save run", "scene", run.Scene, "err", err)
	}
}

// finish saves the run and disposes the context. Safe to call twice.
func (m *SimModel) finish() {
	if m.finished {
		return
	}
	m.finished = true
	m.saveSegment()
	if err := m.ctx.Close(); err != nil {
		m.err = errors.Join(m.err, err)
	}
}

// View renders the current state to a string for display.
func (m SimModel) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.sink.Screen()) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Context returns the engine context driven by the model.
func (m SimModel) Context() *engine.Context {
	return m.ctx
}

// Err returns the error that stopped the run, if any.
func (m SimModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m SimModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m SimModel) BackToMenu() bool {
	return m.back
}

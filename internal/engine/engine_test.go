package engine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/simcore/internal/audio"
	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/render"
	"github.com/vovakirdan/simcore/internal/scene"
)

type countingScene struct {
	*scene.Base
	updates int
}

func newCountingScene() *countingScene {
	s := &countingScene{}
	s.Base = scene.NewBase(s)
	return s
}

func (s *countingScene) OnInitialize() error       { return nil }
func (s *countingScene) OnRender(dt float64) error { return nil }
func (s *countingScene) OnResize(w, h int)         {}
func (s *countingScene) OnDispose()                {}

func (s *countingScene) OnUpdate(dt float64) error {
	s.updates++
	return nil
}

type closeErrAudio struct{ audio.Nop }

func (closeErrAudio) Close() error { return errors.New("device gone") }

type fakeOutput struct{ fail bool }

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	if f.fail {
		return errors.New("no device")
	}
	return nil
}

func (f *fakeOutput) Play(...beep.Streamer) {}
func (f *fakeOutput) Lock()                 {}
func (f *fakeOutput) Unlock()               {}
func (f *fakeOutput) Close()                {}

func TestNewDefaults(t *testing.T) {
	c := New(core.DefaultConfig(), config.DefaultSimConfig())

	if c.Config.Seed == 0 {
		t.Error("zero seed should be replaced")
	}
	if _, ok := c.Audio.(audio.Nop); !ok {
		t.Errorf("default audio = %T, expected audio.Nop", c.Audio)
	}
	if _, ok := c.Output.(*render.Discard); !ok {
		t.Errorf("default output = %T, expected *render.Discard", c.Output)
	}
	if c.Input == nil || c.Scenes == nil || c.Logger == nil || c.RNG == nil {
		t.Error("New should populate every endpoint")
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	a := New(cfg, config.DefaultSimConfig())
	b := New(cfg, config.DefaultSimConfig())

	for i := 0; i < 5; i++ {
		if x, y := a.RNG.Float64(), b.RNG.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestFrameDrivesActiveScene(t *testing.T) {
	c := New(core.DefaultConfig(), config.DefaultSimConfig())
	s := newCountingScene()
	if err := c.Scenes.Load("main", s); err != nil {
		t.Fatal(err)
	}
	if err := c.Scenes.SetActive("main"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := c.Frame(c.Config.FixedDelta()); err != nil {
			t.Fatalf("Frame() error: %v", err)
		}
	}
	if s.updates != 3 || c.Frames() != 3 {
		t.Errorf("updates=%d frames=%d, expected 3", s.updates, c.Frames())
	}
}

func TestCloseDisposesScenes(t *testing.T) {
	c := New(core.DefaultConfig(), config.DefaultSimConfig())
	s := newCountingScene()
	c.Scenes.Load("main", s)
	c.Scenes.SetActive("main")

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !s.Disposed() {
		t.Error("Close should dispose loaded scenes")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	err := c.Frame(0.016)
	if !errors.Is(err, core.ErrInvalidState) {
		t.Errorf("Frame after Close = %v, expected ErrInvalidState", err)
	}
}

func TestCloseReportsAudioError(t *testing.T) {
	c := New(core.DefaultConfig(), config.DefaultSimConfig(), WithAudio(closeErrAudio{}))
	if err := c.Close(); err == nil || !strings.Contains(err.Error(), "device gone") {
		t.Errorf("Close() = %v, expected the audio error", err)
	}
}

func TestResize(t *testing.T) {
	out := &render.Discard{}
	c := New(core.DefaultConfig(), config.DefaultSimConfig(), WithOutput(out))
	c.Resize(120, 40)

	if c.Config.ScreenW != 120 || c.Config.ScreenH != 40 {
		t.Errorf("Config = %dx%d", c.Config.ScreenW, c.Config.ScreenH)
	}
	if out.Width != 120 || out.Height != 40 {
		t.Errorf("output = %dx%d", out.Width, out.Height)
	}
}

func TestRuntimeConfigFrom(t *testing.T) {
	sim := config.DefaultSimConfig()
	sim.World.Width, sim.World.Height, sim.World.TickRate = 400, 300, 30

	cfg := RuntimeConfigFrom(sim, 80, 24, 7)
	want := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, WorldW: 400, WorldH: 300, TickRate: 30, Seed: 7}
	if cfg != want {
		t.Errorf("RuntimeConfigFrom() = %+v, expected %+v", cfg, want)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("level filtering failed: %q", out)
	}
	if !strings.Contains(out, "simcore") {
		t.Errorf("missing prefix: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if got != tc.want || (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "simcore.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile() error: %v", err)
	}
	f.WriteString("line\n")
	f.Close()

	data, _ := os.ReadFile(path)
	if string(data) != "line\n" {
		t.Errorf("log file = %q", data)
	}
}

func TestOpenAudio(t *testing.T) {
	cfg := config.DefaultSimConfig().Audio

	if _, ok := OpenAudio(cfg, &fakeOutput{}, nil).(audio.Nop); !ok {
		t.Error("disabled audio should be a Nop sink")
	}

	cfg.Enabled = true
	cfg.AssetDir = t.TempDir()
	sink := OpenAudio(cfg, &fakeOutput{}, nil)
	if _, ok := sink.(*audio.BeepSink); !ok {
		t.Errorf("enabled audio = %T, expected *audio.BeepSink", sink)
	}
	sink.Close()

	if _, ok := OpenAudio(cfg, &fakeOutput{fail: true}, nil).(audio.Nop); !ok {
		t.Error("failed device should fall back to a Nop sink")
	}
}

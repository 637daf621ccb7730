package sandbox

import (
	"strings"
	"testing"

	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/engine"
	"github.com/vovakirdan/simcore/internal/entity"
	"github.com/vovakirdan/simcore/internal/registry"
	"github.com/vovakirdan/simcore/internal/render"
)

func newSandbox(t *testing.T, opts ...engine.Option) (*Scene, *engine.Context) {
	t.Helper()
	sim := config.DefaultSimConfig()
	ctx := engine.New(engine.RuntimeConfigFrom(sim, 80, 24, 3), sim, opts...)
	s := New(ctx)
	if err := ctx.Scenes.Load(ID, s); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Scenes.SetActive(ID); err != nil {
		t.Fatalf("SetActive() error: %v", err)
	}
	return s, ctx
}

// anyTriangle returns one remaining triangle.
func anyTriangle(s *Scene) (entity.ID, *entity.Sprite) {
	for id, tri := range s.triangles {
		return id, tri
	}
	return entity.ID{}, nil
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Errorf("scene %q should register itself", ID)
	}
}

func TestInitialWave(t *testing.T) {
	s, _ := newSandbox(t)
	if s.Wave() != 1 || s.Remaining() != waveSize {
		t.Errorf("wave=%d remaining=%d", s.Wave(), s.Remaining())
	}
	if got := s.Registered(); got != waveSize+1 {
		t.Errorf("registered = %d, expected circle plus triangles", got)
	}
	for _, tri := range s.triangles {
		if tri.Bounds().Overlaps(s.Circle().Bounds()) {
			t.Error("triangle spawned on top of the circle")
		}
	}
}

func TestHitDeactivatesThenRemoves(t *testing.T) {
	s, ctx := newSandbox(t)
	id, tri := anyTriangle(s)
	s.Circle().SetPosition(tri.Position())

	if err := ctx.Frame(0.016); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}
	if tri.Active() {
		t.Fatal("hit triangle should be deactivated")
	}
	if s.Cleared() < 1 || s.Remaining() != waveSize-s.Cleared() {
		t.Errorf("cleared=%d remaining=%d", s.Cleared(), s.Remaining())
	}
	// Queued during the collision pass, dropped after the next entity pass
	if !s.EntityManager().Contains(id) {
		t.Error("triangle should still exist until the next entity pass")
	}

	cleared := s.Cleared()
	ctx.Frame(0.016)
	if s.EntityManager().Contains(id) {
		t.Error("triangle should be removed after the next entity pass")
	}
	if s.Cleared() != cleared {
		t.Errorf("cleared changed from %d to %d; a removed triangle was hit again", cleared, s.Cleared())
	}
	if got := s.Registered(); got != 1+s.Remaining() {
		t.Errorf("registered = %d, expected %d", got, 1+s.Remaining())
	}
}

func TestClearingWaveSpawnsNext(t *testing.T) {
	s, ctx := newSandbox(t)
	for i := 0; i < 2*waveSize && s.Wave() == 1; i++ {
		_, tri := anyTriangle(s)
		s.Circle().SetPosition(tri.Position())
		ctx.Frame(0.016)
	}

	if s.Wave() != 2 {
		t.Fatalf("wave = %d, expected 2", s.Wave())
	}
	if s.Remaining() != waveSize || s.Cleared() != waveSize {
		t.Errorf("remaining=%d cleared=%d", s.Remaining(), s.Cleared())
	}
}

func TestResetRespawns(t *testing.T) {
	s, ctx := newSandbox(t)
	ctx.Input.Press(core.KeyR)
	ctx.Frame(0.016)

	if s.Wave() != 2 || s.Remaining() != waveSize {
		t.Errorf("wave=%d remaining=%d after reset", s.Wave(), s.Remaining())
	}
	if got := s.EntityManager().Size(); got != waveSize+1 {
		t.Errorf("entities = %d, expected the old wave gone", got)
	}
}

func TestCircleMovesAxisAligned(t *testing.T) {
	s, ctx := newSandbox(t)
	start := s.Circle().Position()

	ctx.Input.Press(core.KeyRight)
	ctx.Input.Press(core.KeyUp)
	ctx.Frame(0.1)

	got := s.Circle().Position().Sub(start)
	if got.X < 19.99 || got.X > 20.01 || got.Y < 19.99 || got.Y > 20.01 {
		t.Errorf("moved %v, expected (20,20)", got)
	}
}

func TestRender(t *testing.T) {
	screen := core.NewScreen(80, 24)
	sink := render.NewScreenSink(screen, core.NewRect(0, 0, 800, 600), nil, nil)
	_, ctx := newSandbox(t, engine.WithOutput(sink))
	ctx.Frame(0.016)

	// Skip the HUD row, whose text contains an 'O'
	world := screen.String()[strings.Index(screen.String(), "\n")+1:]
	if !strings.Contains(world, "O") || !strings.Contains(world, "^") {
		t.Error("circle or triangles missing from the screen")
	}
	if !strings.HasPrefix(screen.Row(0), "SANDBOX") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
}

func TestStats(t *testing.T) {
	s, ctx := newSandbox(t)
	_, tri := anyTriangle(s)
	s.Circle().SetPosition(tri.Position())
	ctx.Frame(0.016)
	ctx.Frame(0.016)

	st := s.Stats()
	if st.Score != s.Cleared() || st.Collisions == 0 || st.Entities != s.EntityManager().Size() {
		t.Errorf("Stats() = %+v", st)
	}
}

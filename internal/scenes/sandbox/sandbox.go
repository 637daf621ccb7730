// Package sandbox is the collision playground: steer the circle into the
// triangles, which disappear when hit. A new wave spawns once all are gone.
package sandbox

import (
	"fmt"

	"github.com/vovakirdan/simcore/internal/collision"
	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/engine"
	"github.com/vovakirdan/simcore/internal/entity"
	"github.com/vovakirdan/simcore/internal/movement"
	"github.com/vovakirdan/simcore/internal/registry"
	"github.com/vovakirdan/simcore/internal/render"
	"github.com/vovakirdan/simcore/internal/scene"
)

// ID is the registry id of the sandbox scene.
const ID = "sandbox"

const (
	circleRadius = 40
	circleSpeed  = 200
	triangleSize = 60
	waveSize     = 5
)

func init() {
	registry.Register(registry.SceneInfo{
		ID:          ID,
		Title:       "Sandbox",
		Description: "Collision playground",
	}, func(ctx *engine.Context) scene.Scene { return New(ctx) })
}

// Scene is the sandbox demo.
type Scene struct {
	*scene.Base
	ctx   *engine.Context
	world core.Rect

	circle    *entity.Sprite
	triangles map[entity.ID]*entity.Sprite

	wave       int
	cleared    int
	collisions int
}

// New creates a sandbox bound to ctx.
func New(ctx *engine.Context) *Scene {
	s := &Scene{
		ctx:       ctx,
		world:     ctx.Config.World(),
		triangles: make(map[entity.ID]*entity.Sprite),
	}
	s.Base = scene.NewBase(s, scene.WithMovement(movement.NewManager(ctx.Input, ctx.RNG)))
	return s
}

// OnInitialize places the circle and the first wave.
func (s *Scene) OnInitialize() error {
	s.circle = entity.NewSprite(
		s.world.X+100-circleRadius, s.world.Y+300-circleRadius,
		2*circleRadius, 2*circleRadius,
		entity.WithTexture(render.TextureCircle),
		entity.WithCollision(nil),
	)
	if _, err := s.CreateEntity(s.circle); err != nil {
		return err
	}
	return s.spawnWave()
}

// spawnWave scatters waveSize triangles clear of the circle.
func (s *Scene) spawnWave() error {
	s.wave++
	rng := s.ctx.RNG
	for i := 0; i < waveSize; i++ {
		var p core.Vec2
		for try := 0; try < 16; try++ {
			p = core.V(
				s.world.X+rng.Float64()*(s.world.W-triangleSize),
				s.world.Y+rng.Float64()*(s.world.H-triangleSize),
			)
			if !core.NewRect(p.X, p.Y, triangleSize, triangleSize).Overlaps(s.circle.Bounds()) {
				break
			}
		}

		t := entity.NewSprite(p.X, p.Y, triangleSize, triangleSize,
			entity.WithTexture(render.TextureTriangle),
			entity.WithCollision(s.onTriangleHit),
		)
		id, err := s.CreateEntity(t)
		if err != nil {
			return fmt.Errorf("sandbox: spawn triangle: %w", err)
		}
		s.triangles[id] = t
	}
	s.ctx.Logger.Debug("wave spawned", "wave", s.wave)
	return nil
}

// onTriangleHit deactivates a triangle the circle touched. The removal is
// queued because the collision pass is still running.
func (s *Scene) onTriangleHit(self *entity.Sprite, other collision.Collidable) {
	if other != collision.Collidable(s.circle) || !self.Active() {
		return
	}
	self.SetActive(false)
	s.QueueRemoveEntity(self.ID())
	delete(s.triangles, self.ID())
	s.cleared++
	s.ctx.Audio.PlaySound(s.ctx.Sim.Audio.HitSound)
	s.ctx.Logger.Debug("triangle hit", "id", self.ID())
}

// OnUpdate moves the circle and refills the board when it is empty.
func (s *Scene) OnUpdate(dt float64) error {
	if m, ok := s.Collisions().(*collision.Manager); ok {
		s.collisions += m.LastPass().Hits
	}

	if s.ctx.Input.JustPressed(core.KeyR) {
		s.reset()
	}

	mv := s.Movement()
	mv.HandleWASD(s.circle, circleSpeed, dt)
	mv.KeepInside(s.circle, s.world)

	if len(s.triangles) == 0 {
		return s.spawnWave()
	}
	return nil
}

// reset removes the remaining triangles; OnUpdate then spawns a fresh wave.
func (s *Scene) reset() {
	for id := range s.triangles {
		s.RemoveEntity(id)
	}
	clear(s.triangles)
}

// OnRender draws the shapes and the HUD.
func (s *Scene) OnRender(dt float64) error {
	out := s.ctx.Output
	out.BeginFrame()
	render.DrawAll(out, s.Entities())
	render.HUD(out, fmt.Sprintf("SANDBOX  wave:%d  cleared:%d  left:%d", s.wave, s.cleared, len(s.triangles)))
	out.EndFrame()
	return nil
}

// OnResize implements scene.Hooks.
func (s *Scene) OnResize(w, h int) {}

// OnDispose implements scene.Hooks.
func (s *Scene) OnDispose() {
	clear(s.triangles)
	s.circle = nil
}

// Circle returns the player-controlled circle.
func (s *Scene) Circle() *entity.Sprite { return s.circle }

// Remaining returns how many triangles are left in the wave.
func (s *Scene) Remaining() int { return len(s.triangles) }

// Cleared returns how many triangles have been hit.
func (s *Scene) Cleared() int { return s.cleared }

// Wave returns the current wave number, starting at 1.
func (s *Scene) Wave() int { return s.wave }

// Stats implements engine.Reporter.
func (s *Scene) Stats() engine.Stats {
	return engine.Stats{
		Score:      s.cleared,
		Collisions: s.collisions,
		Entities:   s.EntityManager().Size(),
	}
}

var (
	_ scene.Scene     = (*Scene)(nil)
	_ engine.Reporter = (*Scene)(nil)
)

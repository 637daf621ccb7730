// Package arena implements the chase demo: the player moves with WASD or the
// arrow keys while chasers hunt them, fleers run away and wanderers roam.
// Chasers that catch the player are sent back to a random spot; fleers the
// player tags do the same. NPC speed and the chaser count grow with the
// configured difficulty progression.
package arena

import (
	"fmt"

	"github.com/vovakirdan/simcore/internal/collision"
	"github.com/vovakirdan/simcore/internal/config"
	"github.com/vovakirdan/simcore/internal/core"
	"github.com/vovakirdan/simcore/internal/engine"
	"github.com/vovakirdan/simcore/internal/entity"
	"github.com/vovakirdan/simcore/internal/movement"
	"github.com/vovakirdan/simcore/internal/registry"
	"github.com/vovakirdan/simcore/internal/render"
	"github.com/vovakirdan/simcore/internal/scene"
)

// ID is the registry id of the arena scene.
const ID = "arena"

// NPC kinds.
const (
	KindChaser   = "chaser"
	KindFleer    = "fleer"
	KindWanderer = "wanderer"
)

func init() {
	registry.Register(registry.SceneInfo{
		ID:          ID,
		Title:       "Arena",
		Description: "Dodge chasers, tag fleers",
	}, func(ctx *engine.Context) scene.Scene { return New(ctx) })
}

// agent is an NPC plus the per-behaviour state the movement library keeps
// outside the entity.
type agent struct {
	*entity.NPC
	heading core.Vec2
	timer   float64
	target  core.Vec2
}

// Scene is the arena demo.
type Scene struct {
	*scene.Base
	ctx        *engine.Context
	sim        config.SimConfig
	world      core.Rect
	difficulty *config.DifficultyManager

	player *entity.Player
	agents []*agent

	caught     int
	tagged     int
	ticks      int
	collisions int
	paused     bool
}

// New creates an arena bound to ctx. Entities are spawned on Initialize.
func New(ctx *engine.Context) *Scene {
	s := &Scene{
		ctx:        ctx,
		sim:        ctx.Sim,
		world:      ctx.Config.World(),
		difficulty: config.NewDifficultyManager(ctx.Sim.Difficulty),
	}
	s.Base = scene.NewBase(s, scene.WithMovement(movement.NewManager(ctx.Input, ctx.RNG)))
	return s
}

// OnInitialize spawns the player and the NPC population.
func (s *Scene) OnInitialize() error {
	size := s.sim.Player.Size
	center := s.world.Center()
	s.player = entity.NewPlayer("player", center.X-size/2, center.Y-size/2, size, size,
		entity.WithTexture(render.TexturePlayer),
		entity.WithCollision(s.onPlayerHit),
	)
	s.player.Speed = s.sim.Player.Speed
	if _, err := s.CreateEntity(s.player); err != nil {
		return err
	}

	spawns := []struct {
		kind  string
		count int
	}{
		{KindChaser, s.sim.NPC.Chasers},
		{KindFleer, s.sim.NPC.Fleers},
		{KindWanderer, s.sim.NPC.Wanderers},
	}
	for _, sp := range spawns {
		for i := 0; i < sp.count; i++ {
			if err := s.spawn(sp.kind); err != nil {
				return err
			}
		}
	}

	s.ctx.Logger.Debug("arena initialized", "entities", s.EntityManager().Size())
	return nil
}

// spawn adds one NPC of the given kind at a random spot away from the player.
func (s *Scene) spawn(kind string) error {
	size := s.sim.NPC.Size
	n := entity.NewNPC(kind, 0, 0, size, size,
		entity.WithTexture(kind),
		entity.WithCollision(nil),
	)
	// Behaviours move the body directly; NPC velocity integration stays off.
	n.AIEnabled = false
	a := &agent{NPC: n}
	s.relocate(a)
	a.target = a.Position()

	if _, err := s.CreateEntity(n); err != nil {
		return fmt.Errorf("arena: spawn %s: %w", kind, err)
	}
	s.agents = append(s.agents, a)
	return nil
}

// relocate moves a to a random spot at least DangerRange from the player.
func (s *Scene) relocate(a *agent) {
	w, h := a.Size()
	rng := s.ctx.RNG
	var p core.Vec2
	for try := 0; try < 16; try++ {
		p = core.V(
			s.world.X+rng.Float64()*(s.world.W-w),
			s.world.Y+rng.Float64()*(s.world.H-h),
		)
		if s.player == nil || p.Sub(s.player.Position()).Len() >= s.sim.NPC.DangerRange {
			break
		}
	}
	a.SetPosition(p)
	a.ResetTimer()
}

// onPlayerHit counts catches and tags. Colliding NPCs are relocated, which
// is safe mid-pass since bounds are read per pair. Nothing counts while
// paused.
func (s *Scene) onPlayerHit(_ *entity.Sprite, other collision.Collidable) {
	if s.paused {
		return
	}
	n, ok := other.(*entity.NPC)
	if !ok {
		return
	}
	a := s.agentFor(n)
	if a == nil {
		return
	}
	switch n.Kind {
	case KindChaser:
		s.caught++
		s.ctx.Audio.PlaySound(s.sim.Audio.HitSound)
		s.relocate(a)
	case KindFleer:
		s.tagged++
		s.relocate(a)
	}
}

func (s *Scene) agentFor(n *entity.NPC) *agent {
	for _, a := range s.agents {
		if a.NPC == n {
			return a
		}
	}
	return nil
}

// OnUpdate steers every body for this frame.
func (s *Scene) OnUpdate(dt float64) error {
	in := s.ctx.Input
	if in.JustPressed(core.KeyP) {
		s.paused = !s.paused
	}
	if s.paused {
		return nil
	}
	s.ticks++
	if m, ok := s.Collisions().(*collision.Manager); ok {
		s.collisions += m.LastPass().Hits
	}

	mv := s.Movement()
	if s.sim.Player.Normalized {
		mv.HandleWASDNormalized(s.player, s.player.Speed, dt)
	} else {
		mv.HandleWASD(s.player, s.player.Speed, dt)
	}
	mv.KeepInside(s.player, s.world)

	speed := s.difficulty.Speed(s.sim.NPC.Speed, s.caught, s.ticks)
	interval := s.sim.NPC.WanderInterval
	for _, a := range s.agents {
		if !a.Active() {
			continue
		}
		switch a.Kind {
		case KindChaser:
			if !mv.ChaseIfInRange(a, s.player, speed, s.sim.NPC.DetectRange, dt) {
				mv.WanderRandomly(a, speed, &a.heading, &a.timer, interval, dt)
			}
		case KindFleer:
			if !mv.FleeIfTooClose(a, s.player, speed, s.sim.NPC.DangerRange, dt) {
				mv.WanderRandomly(a, speed, &a.heading, &a.timer, interval, dt)
			}
		case KindWanderer:
			mv.WanderToRandomPoints(a, speed, &a.target, s.sim.NPC.StopDistance, s.world, dt)
		}
		mv.KeepInside(a, s.world)
	}

	return s.reinforce()
}

// reinforce spawns chasers until the difficulty's chaser count is reached.
func (s *Scene) reinforce() error {
	want := s.difficulty.Chasers(s.sim.NPC.Chasers, s.caught, s.ticks)
	for s.count(KindChaser) < want {
		if err := s.spawn(KindChaser); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) count(kind string) int {
	n := 0
	for _, a := range s.agents {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// OnRender draws the world and the HUD.
func (s *Scene) OnRender(dt float64) error {
	out := s.ctx.Output
	out.BeginFrame()
	render.DrawAll(out, s.Entities())

	status := ""
	if s.paused {
		status = "  PAUSED"
	}
	render.HUD(out,
		fmt.Sprintf("ARENA  caught:%d  tagged:%d  level:%.2f%s",
			s.caught, s.tagged, s.difficulty.Level(s.caught, s.ticks), status),
	)
	out.EndFrame()
	return nil
}

// OnResize has nothing to do: the world size is fixed and sinks re-project.
func (s *Scene) OnResize(w, h int) {}

// OnDispose drops the scene's own references; Base clears the entities.
func (s *Scene) OnDispose() {
	s.ctx.Logger.Debug("arena disposed", "caught", s.caught, "tagged", s.tagged)
	s.agents = nil
	s.player = nil
}

// Player returns the player entity, nil before Initialize.
func (s *Scene) Player() *entity.Player { return s.player }

// Caught returns how many times a chaser reached the player.
func (s *Scene) Caught() int { return s.caught }

// Tagged returns how many fleers the player reached.
func (s *Scene) Tagged() int { return s.tagged }

// Paused reports whether the simulation is paused.
func (s *Scene) Paused() bool { return s.paused }

// Stats implements engine.Reporter. Each tag scores a point and each catch costs one.
func (s *Scene) Stats() engine.Stats {
	return engine.Stats{
		Score:      s.tagged - s.caught,
		Collisions: s.collisions,
		Entities:   s.EntityManager().Size(),
	}
}

var (
	_ scene.Scene     = (*Scene)(nil)
	_ engine.Reporter = (*Scene)(nil)
)

// Package config provides YAML-based simulation configuration loading and
// difficulty management.
package config

import (
	"fmt"
	"strings"
)

// SimConfig contains all configuration for a simulation run.
type SimConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	NPC        NPCConfig        `yaml:"npc"`
	Audio      AudioConfig      `yaml:"audio"`
	Logging    LoggingConfig    `yaml:"logging"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the virtual world and frame rate.
type WorldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	TickRate int     `yaml:"tick_rate"`
}

// PlayerConfig defines the player-controlled entity.
type PlayerConfig struct {
	Speed      float64 `yaml:"speed"`
	Size       float64 `yaml:"size"`
	Normalized bool    `yaml:"normalized"` // normalize diagonal input
}

// NPCConfig defines the AI population of the arena scene.
type NPCConfig struct {
	Chasers        int     `yaml:"chasers"`
	Fleers         int     `yaml:"fleers"`
	Wanderers      int     `yaml:"wanderers"`
	Speed          float64 `yaml:"speed"`
	Size           float64 `yaml:"size"`
	DetectRange    float64 `yaml:"detect_range"`    // chasers engage inside this distance
	DangerRange    float64 `yaml:"danger_range"`    // fleers run inside this distance
	StopDistance   float64 `yaml:"stop_distance"`   // wanderers re-roll targets inside this distance
	WanderInterval float64 `yaml:"wander_interval"` // seconds between heading changes
}

// AudioConfig defines sound playback.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	AssetDir string  `yaml:"asset_dir"`
	Volume   float64 `yaml:"volume"` // 0.0 to 1.0
	Music    string  `yaml:"music"`
	HitSound string  `yaml:"hit_sound"`
}

// LoggingConfig defines log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty = ~/.simcore/simcore.log in the TUI
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "collisions", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Collisions/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to NPC speed at max difficulty
	ExtraChasers    int     `yaml:"extra_chasers"`    // Chasers spawned on top at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that the configuration can drive a simulation.
func (c SimConfig) Validate() error {
	var problems []string
	if c.World.Width <= 0 || c.World.Height <= 0 {
		problems = append(problems, "world size must be positive")
	}
	if c.World.TickRate < 1 || c.World.TickRate > 240 {
		problems = append(problems, "world.tick_rate must be between 1 and 240")
	}
	if c.Player.Speed < 0 || c.NPC.Speed < 0 {
		problems = append(problems, "speeds must not be negative")
	}
	if c.Player.Size <= 0 || c.NPC.Size <= 0 {
		problems = append(problems, "entity sizes must be positive")
	}
	if c.NPC.Chasers < 0 || c.NPC.Fleers < 0 || c.NPC.Wanderers < 0 {
		problems = append(problems, "npc counts must not be negative")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		problems = append(problems, "audio.volume must be between 0 and 1")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

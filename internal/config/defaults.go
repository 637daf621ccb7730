package config

import (
	_ "embed"
)

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the default simulation configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		World: WorldConfig{
			Width:    800,
			Height:   600,
			TickRate: 60,
		},
		Player: PlayerConfig{
			Speed:      100,
			Size:       24,
			Normalized: true,
		},
		NPC: NPCConfig{
			Chasers:        2,
			Fleers:         2,
			Wanderers:      3,
			Speed:          60,
			Size:           20,
			DetectRange:    220,
			DangerRange:    150,
			StopDistance:   5,
			WanderInterval: 1.5,
		},
		Audio: AudioConfig{
			Enabled:  false,
			AssetDir: "assets/audio",
			Volume:   0.8,
			Music:    "",
			HitSound: "hit",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				ExtraChasers:    3,
			},
		},
	}
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate      time.Duration `toml:"tick_rate"`
	Ticks         int           `toml:"ticks"` // 0 runs until interrupted
	WorldCapacity int           `toml:"world_capacity"`
	ScenePath     string        `toml:"scene_path"`
	StatsInterval int           `toml:"stats_interval"` // ticks between stats lines
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:      16 * time.Millisecond,
			Ticks:         600,
			WorldCapacity: 8192,
			ScenePath:     "data/scene.yaml",
			StatsInterval: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

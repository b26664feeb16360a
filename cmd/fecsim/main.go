package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Akihiro120/fecs"
	"github.com/Akihiro120/fecs/internal/config"
	"github.com/Akihiro120/fecs/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config/fecsim.toml", "path to the simulation config")
	seed := flag.Int64("seed", 1, "spawn RNG seed")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	scene, err := sim.LoadScene(cfg.Simulation.ScenePath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	world := fecs.NewWorld()
	world.Reserve(cfg.Simulation.WorldCapacity)

	bounds := fieldBounds(scene)
	spawner := sim.NewSpawnSystem(world, scene, *seed, log)
	stats, err := sim.NewStatsSystem(world, log, cfg.Simulation.StatsInterval)
	if err != nil {
		return fmt.Errorf("init stats: %w", err)
	}

	runner := sim.NewRunner(world)
	runner.Register(spawner)
	runner.Register(sim.NewMovementSystem(world, bounds, bounds))
	runner.Register(sim.NewDecaySystem(world))
	runner.Register(stats)

	log.Info("simulation starting",
		zap.Int("spawn_entries", len(scene.Spawns)),
		zap.Int("population_target", scene.TotalCount()),
		zap.Duration("tick_rate", cfg.Simulation.TickRate),
		zap.Int("ticks", cfg.Simulation.Ticks),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			log.Info("interrupted", zap.Uint64("ticks_run", runner.Ticks()))
			return nil
		case <-ticker.C:
			runner.Tick(cfg.Simulation.TickRate)
			if cfg.Simulation.Ticks > 0 && runner.Ticks() >= uint64(cfg.Simulation.Ticks) {
				log.Info("simulation finished",
					zap.Uint64("ticks_run", runner.Ticks()),
					zap.Int("live_entities", world.Live()),
				)
				return nil
			}
		}
	}
}

// fieldBounds sizes the wraparound field to the largest spawn area.
func fieldBounds(scene *sim.Scene) float64 {
	bounds := 1.0
	for _, e := range scene.Spawns {
		if e.AreaW > bounds {
			bounds = e.AreaW
		}
		if e.AreaH > bounds {
			bounds = e.AreaH
		}
	}
	return bounds
}

// newLogger builds a bare zapcore logger for the harness. A tick loop wants
// terse single-line output, so neither encoder carries caller or stacktrace
// fields; consumers that scrape the output pick the JSON encoder.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)), nil
}

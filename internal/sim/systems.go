package sim

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Akihiro120/fecs"
)

// SpawnSystem tops each scene population back up to its target count at the
// start of every tick.
type SpawnSystem struct {
	world *fecs.World
	scene *Scene
	rng   *rand.Rand
	log   *zap.Logger
}

func NewSpawnSystem(w *fecs.World, scene *Scene, seed int64, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{
		world: w,
		scene: scene,
		rng:   rand.New(rand.NewSource(seed)),
		log:   log,
	}
}

func (s *SpawnSystem) Phase() Phase { return PhaseSpawn }

func (s *SpawnSystem) Update(_ time.Duration) {
	counts := make([]int, len(s.scene.Spawns))
	fecs.RegisterPool[Species](s.world).Each(func(_ fecs.Entity, sp *Species) {
		if sp.ID >= 0 && sp.ID < len(counts) {
			counts[sp.ID]++
		}
	})
	for id, entry := range s.scene.Spawns {
		for counts[id] < entry.Count {
			if err := s.spawn(id, entry); err != nil {
				s.log.Warn("spawn failed", zap.String("species", entry.Name), zap.Error(err))
				return
			}
			counts[id]++
		}
	}
}

func (s *SpawnSystem) spawn(id int, entry SpawnEntry) error {
	e, err := s.world.CreateEntity()
	if err != nil {
		return err
	}
	if err := fecs.Attach(s.world, e, Species{ID: id}); err != nil {
		return err
	}
	fecs.Attach(s.world, e, Position{
		X: s.rng.Float64() * entry.AreaW,
		Y: s.rng.Float64() * entry.AreaH,
	})
	fecs.Attach(s.world, e, Velocity{
		DX: (s.rng.Float64()*2 - 1) * entry.MaxSpeed,
		DY: (s.rng.Float64()*2 - 1) * entry.MaxSpeed,
	})
	if entry.Lifetime > 0 {
		fecs.Attach(s.world, e, Lifetime{Remaining: entry.Lifetime * (0.5 + s.rng.Float64())})
	}
	if entry.HP > 0 {
		fecs.Attach(s.world, e, Health{Current: entry.HP, Max: entry.HP})
	}
	if entry.Disabled {
		fecs.Attach(s.world, e, Disabled{})
	}
	return nil
}

// MovementSystem integrates velocities, wrapping positions at the field
// bounds. Disabled entities are filtered out each pass; filters are
// one-shot, so the exclusion is re-applied every tick.
type MovementSystem struct {
	world  *fecs.World
	width  float64
	height float64
}

func NewMovementSystem(w *fecs.World, width, height float64) *MovementSystem {
	return &MovementSystem{world: w, width: width, height: height}
}

func (s *MovementSystem) Phase() Phase { return PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	step := dt.Seconds()
	view := fecs.Without2[Disabled](fecs.View2Of[Position, Velocity](s.world))
	view.Each(func(_ fecs.Entity, p *Position, v *Velocity) {
		p.X += v.DX * step
		p.Y += v.DY * step
		p.X = wrap(p.X, s.width)
		p.Y = wrap(p.Y, s.height)
	})
}

func wrap(v, max float64) float64 {
	if max <= 0 {
		return v
	}
	for v < 0 {
		v += max
	}
	for v >= max {
		v -= max
	}
	return v
}

// DecaySystem counts lifetimes down and queues expired entities for
// destruction. The runner flushes the queue at tick end, so the expiry pass
// never mutates the pool it is iterating.
type DecaySystem struct {
	world *fecs.World
}

func NewDecaySystem(w *fecs.World) *DecaySystem {
	return &DecaySystem{world: w}
}

func (s *DecaySystem) Phase() Phase { return PhaseUpdate }

func (s *DecaySystem) Update(dt time.Duration) {
	step := dt.Seconds()
	fecs.View1Of[Lifetime](s.world).Each(func(e fecs.Entity, l *Lifetime) {
		l.Remaining -= step
		if l.Remaining <= 0 {
			s.world.QueueDestroy(e)
		}
	})
}

// StatsSystem advances the world clock and periodically logs population
// counts.
type StatsSystem struct {
	world    *fecs.World
	log      *zap.Logger
	interval uint64
}

func NewStatsSystem(w *fecs.World, log *zap.Logger, interval int) (*StatsSystem, error) {
	e, err := w.CreateEntity()
	if err != nil {
		return nil, err
	}
	if err := fecs.Attach(w, e, Clock{}); err != nil {
		return nil, err
	}
	if interval < 1 {
		interval = 1
	}
	return &StatsSystem{world: w, log: log, interval: uint64(interval)}, nil
}

func (s *StatsSystem) Phase() Phase { return PhaseStats }

func (s *StatsSystem) Update(dt time.Duration) {
	clock, err := fecs.Singleton[Clock](s.world)
	if err != nil {
		s.log.Error("world clock lost", zap.Error(err))
		return
	}
	clock.Tick++
	clock.Elapsed += dt.Seconds()
	if clock.Tick%s.interval != 0 {
		return
	}
	s.log.Info("tick stats",
		zap.Uint64("tick", clock.Tick),
		zap.Float64("elapsed_s", clock.Elapsed),
		zap.Int("live", s.world.Live()),
		zap.Int("moving", fecs.RegisterPool[Velocity](s.world).Len()),
		zap.Int("decaying", fecs.RegisterPool[Lifetime](s.world).Len()),
	)
}

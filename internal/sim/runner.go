package sim

import (
	"time"

	"github.com/Akihiro120/fecs"
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseSpawn  Phase = iota // 0: top up populations from the scene
	PhaseUpdate              // 1: simulation logic over views
	PhaseStats               // 2: observation, logging

	phaseCount
)

// System is the interface every simulation system implements. The ECS core
// itself schedules nothing; this runner drives it.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Runner sweeps the registered systems phase by phase each tick. After the
// last phase it flushes the world's deferred destroy queue, so an entity a
// system queued mid-pass stays intact for every later system in the same
// tick and is gone by the next one.
type Runner struct {
	world  *fecs.World
	phases [phaseCount][]System
	ticks  uint64
}

func NewRunner(w *fecs.World) *Runner {
	return &Runner{world: w}
}

// Register adds a system to its phase bucket. Systems in the same phase run
// in registration order.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		p = PhaseUpdate
	}
	r.phases[p] = append(r.phases[p], s)
}

func (r *Runner) Tick(dt time.Duration) {
	for _, bucket := range r.phases {
		for _, s := range bucket {
			s.Update(dt)
		}
	}
	r.world.FlushDestroyQueue()
	r.ticks++
}

// Ticks returns how many full sweeps the runner has executed.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

// Profiling harness for the hot paths: entity churn plus cached view
// iteration.
//
//	go build ./cmd/fecsprof
//	go tool pprof -http=":8000" ./fecsprof cpu.pprof
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"

	"github.com/Akihiro120/fecs"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }

func main() {
	entities := flag.Int("entities", 10000, "live entities per round")
	iters := flag.Int("iters", 1000, "view passes per round")
	rounds := flag.Int("rounds", 20, "world rebuild rounds")
	mem := flag.Bool("mem", false, "profile allocations instead of CPU")
	flag.Parse()

	mode := profile.CPUProfile
	if *mem {
		mode = profile.MemProfileAllocs
	}
	p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook)
	if err := run(*rounds, *iters, *entities); err != nil {
		p.Stop()
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	p.Stop()
}

func run(rounds, iters, entities int) error {
	for range rounds {
		w := fecs.NewWorld()
		w.Reserve(entities)
		for i := range entities {
			e, err := w.CreateEntity()
			if err != nil {
				return err
			}
			fecs.Attach(w, e, position{X: float64(i)})
			if i%2 == 0 {
				fecs.Attach(w, e, velocity{DX: 1, DY: -1})
			}
		}
		view := fecs.View2Of[position, velocity](w)
		for range iters {
			view.Each(func(_ fecs.Entity, p *position, v *velocity) {
				p.X += v.DX
				p.Y += v.DY
			})
		}
		// Churn: destroy half the moving set, exercising the destroy fanout
		// and swap-remove paths. The next round starts from a fresh world.
		pool := fecs.RegisterPool[velocity](w)
		for pool.Len() > entities/4 {
			w.DestroyEntity(pool.EntityAt(pool.Len() - 1))
		}
	}
	return nil
}

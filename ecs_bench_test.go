package fecs_test

import (
	"testing"

	"github.com/Akihiro120/fecs"
)

func benchWorld(n int) *fecs.World {
	w := fecs.NewWorld()
	w.Reserve(n)
	for i := 0; i < n; i++ {
		e, _ := w.CreateEntity()
		fecs.Attach(w, e, Position{X: i})
		if i%2 == 0 {
			fecs.Attach(w, e, Velocity{DX: 1, DY: 1})
		}
	}
	return w
}

func BenchmarkCreateEntity(b *testing.B) {
	w := fecs.NewWorld()
	w.Reserve(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.CreateEntity(); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
}

func BenchmarkAttach(b *testing.B) {
	w := fecs.NewWorld()
	w.Reserve(b.N)
	entities := make([]fecs.Entity, b.N)
	for i := range entities {
		entities[i], _ = w.CreateEntity()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fecs.Attach(w, entities[i], Position{X: i})
	}
	b.ReportAllocs()
}

func BenchmarkGet(b *testing.B) {
	w := benchWorld(10000)
	e := fecs.RegisterPool[Position](w).EntityAt(5000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fecs.Get[Position](w, e); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
}

func BenchmarkView2Warm(b *testing.B) {
	w := benchWorld(10000)
	view := fecs.View2Of[Position, Velocity](w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.Each(func(_ fecs.Entity, p *Position, v *Velocity) {
			p.X += v.DX
		})
	}
	b.ReportAllocs()
}

func BenchmarkView2Rebuild(b *testing.B) {
	w := benchWorld(10000)
	view := fecs.View2Of[Position, Velocity](w)
	pool := fecs.RegisterPool[Velocity](w)
	e := pool.EntityAt(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Toggle membership so every pass pays a rebuild.
		if i%2 == 0 {
			fecs.Detach[Velocity](w, e)
		} else {
			fecs.Attach(w, e, Velocity{})
		}
		view.Each(func(fecs.Entity, *Position, *Velocity) {})
	}
	b.ReportAllocs()
}

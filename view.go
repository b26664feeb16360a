package fecs

import "reflect"

// viewKey identifies a view by its driver component types. Unused arity
// slots stay nil.
type viewKey struct {
	a, b, c reflect.Type
}

// viewCore is the arity-independent half of a view: the cached entity list,
// the structural-version snapshots that detect staleness, and the one-shot
// filter list.
type viewCore struct {
	world   *World
	pools   []store
	seen    []uint64
	cache   []Entity
	filters []func(Entity) bool
	built   bool
}

func (v *viewCore) init(w *World, pools ...store) {
	v.world = w
	v.pools = pools
	v.seen = make([]uint64, len(pools))
}

func (v *viewCore) addFilter(f func(Entity) bool) {
	v.filters = append(v.filters, f)
	v.built = false
}

// Reserve grows the cache capacity.
func (v *viewCore) Reserve(n int) {
	if cap(v.cache) < n {
		cache := make([]Entity, len(v.cache), n)
		copy(cache, v.cache)
		v.cache = cache
	}
}

// sync rebuilds the cache when it was never built or when any driver pool's
// structural version drifted from the snapshot. The rebuild iterates the
// smallest pool, since the intersection can be no larger, and keeps every
// entity the remaining pools also hold.
func (v *viewCore) sync() {
	if v.built {
		stale := false
		for i, p := range v.pools {
			if v.seen[i] != p.Version() {
				stale = true
				break
			}
		}
		if !stale {
			return
		}
	}
	v.cache = v.cache[:0]
	driver := v.pools[0]
	for _, p := range v.pools[1:] {
		if p.Len() < driver.Len() {
			driver = p
		}
	}
	for i, n := 0, driver.Len(); i < n; i++ {
		e := driver.EntityAt(i)
		keep := true
		for _, p := range v.pools {
			if p == driver {
				continue
			}
			if !p.Has(e) {
				keep = false
				break
			}
		}
		if keep {
			v.cache = append(v.cache, e)
		}
	}
	for i, p := range v.pools {
		v.seen[i] = p.Version()
	}
	v.built = true
}

func (v *viewCore) pass(e Entity) bool {
	for _, f := range v.filters {
		if !f(e) {
			return false
		}
	}
	return true
}

// finish clears one-shot filters after an iteration. A filtered pass also
// drops the cache so the next Each rebuilds cleanly.
func (v *viewCore) finish() {
	if len(v.filters) > 0 {
		v.filters = v.filters[:0]
		v.built = false
	}
}

// View1 iterates every entity holding an A component.
type View1[A any] struct {
	viewCore
	pa *Pool[A]
}

// View2 iterates every entity holding both an A and a B component.
type View2[A, B any] struct {
	viewCore
	pa *Pool[A]
	pb *Pool[B]
}

// View3 iterates every entity holding A, B and C components.
type View3[A, B, C any] struct {
	viewCore
	pa *Pool[A]
	pb *Pool[B]
	pc *Pool[C]
}

// View1Of returns the world's view over A, creating it on first use. Views
// are cached per type combination; repeated calls return the same view.
func View1Of[A any](w *World) *View1[A] {
	k := viewKey{a: typeOf[A]()}
	if v, ok := w.views[k]; ok {
		return v.(*View1[A])
	}
	v := &View1[A]{pa: RegisterPool[A](w)}
	v.init(w, v.pa)
	w.views[k] = v
	return v
}

// View2Of returns the world's view over A and B.
func View2Of[A, B any](w *World) *View2[A, B] {
	k := viewKey{a: typeOf[A](), b: typeOf[B]()}
	if v, ok := w.views[k]; ok {
		return v.(*View2[A, B])
	}
	v := &View2[A, B]{pa: RegisterPool[A](w), pb: RegisterPool[B](w)}
	v.init(w, v.pa, v.pb)
	w.views[k] = v
	return v
}

// View3Of returns the world's view over A, B and C.
func View3Of[A, B, C any](w *World) *View3[A, B, C] {
	k := viewKey{a: typeOf[A](), b: typeOf[B](), c: typeOf[C]()}
	if v, ok := w.views[k]; ok {
		return v.(*View3[A, B, C])
	}
	v := &View3[A, B, C]{pa: RegisterPool[A](w), pb: RegisterPool[B](w), pc: RegisterPool[C](w)}
	v.init(w, v.pa, v.pb, v.pc)
	w.views[k] = v
	return v
}

// Each invokes fn once per cached entity, rebuilding the cache first when
// stale. The cache is a snapshot: entities that become eligible inside fn
// are not visited until the next Each; entities fn itself detaches or
// destroys are skipped when their turn comes, never yielded with reassigned
// storage. Active filters apply to this pass only and are cleared when it
// ends.
func (v *View1[A]) Each(fn func(Entity, *A)) {
	v.sync()
	filtered := len(v.filters) > 0
	for _, e := range v.cache {
		if filtered && !v.pass(e) {
			continue
		}
		sa := v.pa.indexOf(e)
		if sa == npos {
			continue
		}
		fn(e, &v.pa.values[sa])
	}
	v.finish()
}

// Each invokes fn once per cached entity with both components. See
// View1.Each for the snapshot and filter rules.
func (v *View2[A, B]) Each(fn func(Entity, *A, *B)) {
	v.sync()
	filtered := len(v.filters) > 0
	for _, e := range v.cache {
		if filtered && !v.pass(e) {
			continue
		}
		sa := v.pa.indexOf(e)
		if sa == npos {
			continue
		}
		sb := v.pb.indexOf(e)
		if sb == npos {
			continue
		}
		fn(e, &v.pa.values[sa], &v.pb.values[sb])
	}
	v.finish()
}

// Each invokes fn once per cached entity with all three components. See
// View1.Each for the snapshot and filter rules.
func (v *View3[A, B, C]) Each(fn func(Entity, *A, *B, *C)) {
	v.sync()
	filtered := len(v.filters) > 0
	for _, e := range v.cache {
		if filtered && !v.pass(e) {
			continue
		}
		sa := v.pa.indexOf(e)
		if sa == npos {
			continue
		}
		sb := v.pb.indexOf(e)
		if sb == npos {
			continue
		}
		sc := v.pc.indexOf(e)
		if sc == npos {
			continue
		}
		fn(e, &v.pa.values[sa], &v.pb.values[sb], &v.pc.values[sc])
	}
	v.finish()
}

// With1 narrows the next pass of v to entities that also hold a C
// component. Filters are one-shot: they apply to exactly one Each and are
// cleared when it returns. Go methods cannot introduce type parameters, so
// the typed configurators are arity-suffixed free functions.
func With1[C, A any](v *View1[A]) *View1[A] {
	v.addFilter(RegisterPool[C](v.world).Has)
	return v
}

// With2 narrows the next pass of v to entities that also hold a C component.
func With2[C, A, B any](v *View2[A, B]) *View2[A, B] {
	v.addFilter(RegisterPool[C](v.world).Has)
	return v
}

// With3 narrows the next pass of v to entities that also hold a D component.
func With3[D, A, B, C any](v *View3[A, B, C]) *View3[A, B, C] {
	v.addFilter(RegisterPool[D](v.world).Has)
	return v
}

// Without1 narrows the next pass of v to entities lacking a C component.
func Without1[C, A any](v *View1[A]) *View1[A] {
	p := RegisterPool[C](v.world)
	v.addFilter(func(e Entity) bool { return !p.Has(e) })
	return v
}

// Without2 narrows the next pass of v to entities lacking a C component.
func Without2[C, A, B any](v *View2[A, B]) *View2[A, B] {
	p := RegisterPool[C](v.world)
	v.addFilter(func(e Entity) bool { return !p.Has(e) })
	return v
}

// Without3 narrows the next pass of v to entities lacking a D component.
func Without3[D, A, B, C any](v *View3[A, B, C]) *View3[A, B, C] {
	p := RegisterPool[D](v.world)
	v.addFilter(func(e Entity) bool { return !p.Has(e) })
	return v
}

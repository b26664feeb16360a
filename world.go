package fecs

import (
	"errors"
	"reflect"
)

// store is the type-erased face every Pool[T] presents to the World and to
// views: enough surface for destroy fanout, capacity hints, and cache
// rebuilds.
type store interface {
	Remove(Entity) bool
	Clear()
	Len() int
	Has(Entity) bool
	EntityAt(int) Entity
	Reserve(int)
	Version() uint64
}

// World is the façade over the entity allocator and the per-type component
// pools. Each component type observed through the generic helpers gets
// exactly one pool per world, looked up through a type-indexed directory, so
// independent worlds never share storage.
//
// A world and everything it owns must be used from a single goroutine. No
// lock is taken anywhere.
type World struct {
	alloc *Allocator
	pools map[reflect.Type]store
	order []store
	views map[viewKey]any

	// version increments on entity destruction; consumers that track
	// world-wide structural change read it. Per-pool view caches do not
	// depend on it.
	version uint64

	destroyQueue []Entity
	capacityHint int
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		alloc:        NewAllocator(),
		pools:        make(map[reflect.Type]store, 16),
		order:        make([]store, 0, 16),
		views:        make(map[viewKey]any, 8),
		destroyQueue: make([]Entity, 0, 64),
	}
}

// CreateEntity issues a fresh entity handle.
func (w *World) CreateEntity() (Entity, error) {
	return w.alloc.Create()
}

// Alive reports whether e is live in this world.
func (w *World) Alive(e Entity) bool {
	return w.alloc.Alive(e)
}

// DestroyEntity removes e's components from every registered pool, bumps the
// world structural version, then retires the handle. The fanout runs before
// the allocator bump so pools still observe e as alive while they drop its
// data. Destroying a dead handle fails with ErrNotAlive.
func (w *World) DestroyEntity(e Entity) error {
	if !w.alloc.Alive(e) {
		return ErrNotAlive
	}
	for _, s := range w.order {
		s.Remove(e)
	}
	w.version++
	return w.alloc.Destroy(e)
}

// QueueDestroy defers destruction of e until the next FlushDestroyQueue.
// Systems use this to drop entities from inside a view pass.
func (w *World) QueueDestroy(e Entity) {
	w.destroyQueue = append(w.destroyQueue, e)
}

// FlushDestroyQueue destroys every queued entity. Entities queued more than
// once, or already destroyed by other means, are skipped.
func (w *World) FlushDestroyQueue() {
	for _, e := range w.destroyQueue {
		if w.alloc.Alive(e) {
			w.DestroyEntity(e)
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// Reserve pre-sizes the allocator and every pool, current and future, for n
// entities.
func (w *World) Reserve(n int) {
	w.capacityHint = n
	w.alloc.Reserve(n)
	for _, s := range w.order {
		s.Reserve(n)
	}
}

// Live returns the number of currently live entities.
func (w *World) Live() int {
	return w.alloc.Live()
}

// StructuralVersion returns the world-wide destruction counter.
func (w *World) StructuralVersion() uint64 {
	return w.version
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterPool binds and returns the unique pool for T, creating it on first
// use. The returned pool identity is stable for the world's lifetime.
func RegisterPool[T any](w *World) *Pool[T] {
	t := typeOf[T]()
	if s, ok := w.pools[t]; ok {
		return s.(*Pool[T])
	}
	p := newPool[T](w.alloc)
	if w.capacityHint > 0 {
		p.Reserve(w.capacityHint)
	}
	w.pools[t] = p
	w.order = append(w.order, p)
	return p
}

// lookupPool is the read-only counterpart of RegisterPool: it never
// instantiates a pool, so query paths leave the directory untouched.
func lookupPool[T any](w *World) (*Pool[T], bool) {
	s, ok := w.pools[typeOf[T]()]
	if !ok {
		return nil, false
	}
	return s.(*Pool[T]), true
}

// Attach sets e's T component, overwriting in place when already present.
func Attach[T any](w *World, e Entity, v T) error {
	return RegisterPool[T](w).Insert(e, v)
}

// Detach removes e's T component. Detaching an absent component is a no-op;
// detaching from a dead handle fails with ErrNotAlive.
func Detach[T any](w *World, e Entity) error {
	if !w.alloc.Alive(e) {
		return ErrNotAlive
	}
	if p, ok := lookupPool[T](w); ok {
		p.Remove(e)
	}
	return nil
}

// Has reports whether e is alive and holds a T component.
func Has[T any](w *World, e Entity) bool {
	if !w.alloc.Alive(e) {
		return false
	}
	p, ok := lookupPool[T](w)
	return ok && p.Has(e)
}

// Get returns a pointer to e's T component. The pointer stays valid until
// the next membership mutation of T's pool.
func Get[T any](w *World, e Entity) (*T, error) {
	p, ok := lookupPool[T](w)
	if !ok {
		if !w.alloc.Alive(e) {
			return nil, ErrNotAlive
		}
		return nil, ErrNotPresent
	}
	return p.Get(e)
}

// GetOrAttach returns a pointer to e's T component, attaching v first when
// absent. The same pointer-validity contract as Get applies.
func GetOrAttach[T any](w *World, e Entity, v T) (*T, error) {
	p := RegisterPool[T](w)
	if c, err := p.Get(e); err == nil {
		return c, nil
	} else if errors.Is(err, ErrNotAlive) {
		return nil, err
	}
	if err := p.Insert(e, v); err != nil {
		return nil, err
	}
	return p.Get(e)
}

// Update applies fn to e's T component in place. It is the higher-order
// alternative to holding the pointer Get returns.
func Update[T any](w *World, e Entity, fn func(*T)) error {
	c, err := Get[T](w, e)
	if err != nil {
		return err
	}
	fn(c)
	return nil
}

// Singleton returns the sole T component in the world. Any other pool size
// fails with a SingletonError carrying the actual count.
func Singleton[T any](w *World) (*T, error) {
	p, ok := lookupPool[T](w)
	if !ok || p.Len() != 1 {
		n := 0
		if ok {
			n = p.Len()
		}
		return nil, &SingletonError{Type: typeOf[T](), Count: n}
	}
	return &p.values[0], nil
}

// SingletonEntity returns the entity owning the sole T component.
func SingletonEntity[T any](w *World) (Entity, error) {
	p, ok := lookupPool[T](w)
	if !ok || p.Len() != 1 {
		n := 0
		if ok {
			n = p.Len()
		}
		return NilEntity, &SingletonError{Type: typeOf[T](), Count: n}
	}
	return p.owners[0], nil
}

package fecs

// Handle bundles an entity with the world that issued it, for call-site
// chaining. It is a borrowed wrapper: the plain Entity stays the canonical,
// trivially copyable value type, and a Handle must not outlive its world.
// Component access stays on the generic world helpers, which a method set
// cannot express.
type Handle struct {
	Entity
	world *World
}

// Wrap returns a handle bundling e with this world.
func (w *World) Wrap(e Entity) Handle {
	return Handle{Entity: e, world: w}
}

// Alive reports whether the wrapped entity is live.
func (h Handle) Alive() bool {
	return h.world.Alive(h.Entity)
}

// Destroy destroys the wrapped entity in its world.
func (h Handle) Destroy() error {
	return h.world.DestroyEntity(h.Entity)
}

// World returns the world the handle is bound to.
func (h Handle) World() *World {
	return h.world
}

package fecs

// Entity is a packed 32-bit handle: a 20-bit slot index in the low bits and
// a 12-bit version in the high bits. The version increments each time the
// slot is recycled, so stale copies of a destroyed handle compare unequal to
// the slot's current occupant. Entities are plain values; they carry no
// reference to any world and may be stored or serialized as uint32.
type Entity uint32

const (
	indexBits   = 20
	indexMask   = 1<<indexBits - 1
	versionMask = 1<<12 - 1

	// MaxEntities is the number of addressable entity slots per world.
	MaxEntities = 1 << indexBits
)

// NilEntity is the reserved invalid handle.
const NilEntity Entity = 0xFFFFFFFF

func packEntity(index, version uint32) Entity {
	return Entity(version<<indexBits | index&indexMask)
}

// Index returns the slot index encoded in the handle.
func (e Entity) Index() uint32 { return uint32(e) & indexMask }

// Version returns the recycle counter encoded in the handle.
func (e Entity) Version() uint32 { return uint32(e) >> indexBits }

// IsNil reports whether the handle is the invalid sentinel.
func (e Entity) IsNil() bool { return e == NilEntity }

// Allocator issues and recycles entity handles with generational indices and
// a LIFO free list. Freed slots are reused most-recent-first, so a destroy
// immediately followed by a create hands back the same index under a new
// version.
type Allocator struct {
	versions []uint32
	free     []uint32
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		versions: make([]uint32, 0, 1024),
		free:     make([]uint32, 0, 256),
	}
}

// Create issues a fresh handle, recycling a freed slot when one exists.
// It fails with ErrCapacityExhausted once all slots are live.
func (a *Allocator) Create() (Entity, error) {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		return packEntity(idx, a.versions[idx]), nil
	}
	if len(a.versions) == MaxEntities {
		return NilEntity, ErrCapacityExhausted
	}
	idx := uint32(len(a.versions))
	a.versions = append(a.versions, 0)
	return packEntity(idx, 0), nil
}

// Alive reports whether the handle's version matches the slot's current one.
func (a *Allocator) Alive(e Entity) bool {
	idx := e.Index()
	return idx < uint32(len(a.versions)) && a.versions[idx] == e.Version()
}

// Destroy retires the handle and queues its slot for reuse. The version
// wraps within its 12-bit field; a handle held across 4096 recycles of the
// same slot will collide with a later occupant, and index 2^20-1 at version
// 4095 packs to the same value as NilEntity. Both are documented limits.
func (a *Allocator) Destroy(e Entity) error {
	if !a.Alive(e) {
		return ErrNotAlive
	}
	idx := e.Index()
	a.versions[idx] = (a.versions[idx] + 1) & versionMask
	a.free = append(a.free, idx)
	return nil
}

// Reserve grows the version table capacity to hold at least n slots.
func (a *Allocator) Reserve(n int) {
	if n > MaxEntities {
		n = MaxEntities
	}
	if cap(a.versions) < n {
		versions := make([]uint32, len(a.versions), n)
		copy(versions, a.versions)
		a.versions = versions
	}
}

// Len returns the number of slots the allocator has ever issued.
func (a *Allocator) Len() int {
	return len(a.versions)
}

// Live returns the number of currently live entities.
func (a *Allocator) Live() int {
	return len(a.versions) - len(a.free)
}

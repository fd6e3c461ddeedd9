// Package collision tracks xxHash64(name) -> name assignments for rtdb's
// hash-keyed field lookups, so a genuine collision (two distinct field
// names hashing to the same uint64) can be logged instead of silently
// falling back to a linear scan on every lookup.
package collision

// Tracker records the field names assigned to each hash a SeriesStore has
// seen, flagging when two distinct names map to the same hash.
type Tracker struct {
	names        map[uint64]string
	hasCollision bool
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{names: make(map[uint64]string)}
}

// Track records that h is name's hash, returning true if this name/hash
// pair is a genuine collision with a previously tracked, differently-named
// field.
func (t *Tracker) Track(name string, h uint64) (collided bool) {
	existing, ok := t.names[h]
	if !ok {
		t.names[h] = name

		return false
	}

	if existing == name {
		return false
	}

	t.hasCollision = true

	return true
}

// HasCollision reports whether Track has ever observed a genuine collision.
func (t *Tracker) HasCollision() bool { return t.hasCollision }

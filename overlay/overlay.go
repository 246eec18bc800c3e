// Package overlay implements a single staged layer of a transactional
// map: an ordered mapping from K to Maybe<V> where absence of a key
// means "not touched at this layer" and a present-but-tombstoned entry
// means "deleted at this layer". Layers are kept deliberately dumb —
// all merging logic lives in the transactional containers of package
// txn.
package overlay

import "github.com/google/btree"

// Less reports whether a sorts before b. Callers supply this instead
// of relying on Go's built-in ordering so that non-builtin key types
// (fixed-size addresses, composite keys) can be staged too.
type Less[K any] func(a, b K) bool

type entry[K any, V any] struct {
	key       K
	value     V
	tombstone bool
}

// Overlay is one layer of the transaction stack.
type Overlay[K any, V any] struct {
	staged *btree.BTreeG[entry[K, V]]
	less   Less[K]
}

// New returns an empty overlay ordered by less.
func New[K any, V any](less Less[K]) *Overlay[K, V] {
	return &Overlay[K, V]{
		staged: btree.NewG(32, func(a, b entry[K, V]) bool { return less(a.key, b.key) }),
		less:   less,
	}
}

// Stage records the decision for k at this layer: present with a value
// stages a write, tombstone=true stages a deletion.
func (o *Overlay[K, V]) Stage(k K, v V, tombstone bool) {
	o.staged.ReplaceOrInsert(entry[K, V]{key: k, value: v, tombstone: tombstone})
}

// Lookup reports whether this layer mentions k at all (mentioned), and
// if so whether it is a tombstone and what value (if any) it carries.
func (o *Overlay[K, V]) Lookup(k K) (value V, tombstone bool, mentioned bool) {
	e, ok := o.staged.Get(entry[K, V]{key: k})
	if !ok {
		var zero V
		return zero, false, false
	}
	return e.value, e.tombstone, true
}

// Keys enumerates the staged keys in ascending order, regardless of
// whether they are writes or tombstones.
func (o *Overlay[K, V]) Keys() []K {
	keys := make([]K, 0, o.staged.Len())
	o.staged.Ascend(func(e entry[K, V]) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

// Each calls fn for every staged entry in ascending key order.
func (o *Overlay[K, V]) Each(fn func(k K, v V, tombstone bool)) {
	o.staged.Ascend(func(e entry[K, V]) bool {
		fn(e.key, e.value, e.tombstone)
		return true
	})
}

// Len is the number of staged keys, tombstones included.
func (o *Overlay[K, V]) Len() int {
	return o.staged.Len()
}

// Clear drops every staged entry, leaving an empty layer in place.
func (o *Overlay[K, V]) Clear() {
	o.staged.Clear(false)
}

// Package txn implements the three transactional container wrappers —
// MapTxn, CellTxn, LogTxn — each composed of one backend plus a
// non-empty stack of staged layers, per spec §4.3-4.5.
package txn

import (
	"sort"

	"github.com/bobboyms/txstage/backend"
	"github.com/bobboyms/txstage/overlay"
)

// MapTxn is a transactional key/value map: a backend plus a non-empty
// stack of overlay.Overlay layers. The stack invariant — length >= 1 —
// is maintained by every operation below.
type MapTxn[K comparable, V any] struct {
	base   backend.Map[K, V]
	layers []*overlay.Overlay[K, V]
	less   overlay.Less[K]
}

// NewMapTxn wraps base with a single empty layer. less defines the
// total order used by IterEffective; it need not match Go's built-in
// operators, so non-builtin-ordered key types are welcome.
func NewMapTxn[K comparable, V any](base backend.Map[K, V], less overlay.Less[K]) *MapTxn[K, V] {
	return &MapTxn[K, V]{
		base:   base,
		layers: []*overlay.Overlay[K, V]{overlay.New[K, V](less)},
		less:   less,
	}
}

// Depth is the current number of staged layers (always >= 1).
func (t *MapTxn[K, V]) Depth() int {
	return len(t.layers)
}

func (t *MapTxn[K, V]) top() *overlay.Overlay[K, V] {
	return t.layers[len(t.layers)-1]
}

// PushLayer appends a fresh empty overlay.
func (t *MapTxn[K, V]) PushLayer() {
	t.layers = append(t.layers, overlay.New[K, V](t.less))
}

// Insert stages (k, v) into the top overlay.
func (t *MapTxn[K, V]) Insert(k K, v V) {
	t.top().Stage(k, v, false)
}

// Remove stages a tombstone for k into the top overlay.
func (t *MapTxn[K, V]) Remove(k K) {
	var zero V
	t.top().Stage(k, zero, true)
}

// Get walks the layers top-down; the first layer that mentions k
// decides the result. If no layer mentions it, the backend decides.
func (t *MapTxn[K, V]) Get(k K) (V, bool) {
	for i := len(t.layers) - 1; i >= 0; i-- {
		if v, tombstone, mentioned := t.layers[i].Lookup(k); mentioned {
			if tombstone {
				var zero V
				return zero, false
			}
			return v, true
		}
	}
	return t.base.Get(k)
}

// RevertTop pops the top layer if depth > 1, else clears the sole
// layer's staged mapping in place.
func (t *MapTxn[K, V]) RevertTop() {
	if len(t.layers) > 1 {
		t.layers = t.layers[:len(t.layers)-1]
		return
	}
	t.layers[0].Clear()
}

// CommitTop merges the top layer into the layer below and pops it
// (depth > 1), or drains it into the backend and replaces it with a
// fresh empty layer (depth == 1). A tombstone in the upper layer always overwrites
// whatever the lower layer or backend holds — that is what lets a
// deletion survive a commit instead of being silently undone.
func (t *MapTxn[K, V]) CommitTop() {
	n := len(t.layers)
	top := t.layers[n-1]
	if n > 1 {
		below := t.layers[n-2]
		top.Each(func(k K, v V, tombstone bool) {
			below.Stage(k, v, tombstone)
		})
		t.layers = t.layers[:n-1]
		return
	}
	top.Each(func(k K, v V, tombstone bool) {
		if tombstone {
			t.base.Remove(k)
		} else {
			t.base.Put(k, v)
		}
	})
	t.layers[0] = overlay.New[K, V](t.less)
}

// CommitAll repeatedly commits until the stack is a single fresh
// empty layer and every staged write has reached the backend.
func (t *MapTxn[K, V]) CommitAll() {
	for len(t.layers) > 1 {
		t.CommitTop()
	}
	t.CommitTop()
}

// CommitOldest removes layer 0 and drains it directly into the
// backend, bypassing every layer above it.
func (t *MapTxn[K, V]) CommitOldest() {
	oldest := t.layers[0]
	oldest.Each(func(k K, v V, tombstone bool) {
		if tombstone {
			t.base.Remove(k)
		} else {
			t.base.Put(k, v)
		}
	})
	if len(t.layers) > 1 {
		t.layers = t.layers[1:]
	} else {
		t.layers[0] = overlay.New[K, V](t.less)
	}
}

// ClearAll clears the backend and resets the stack to a single fresh
// empty layer. Irreversible.
func (t *MapTxn[K, V]) ClearAll() {
	t.base.Clear()
	t.layers = []*overlay.Overlay[K, V]{overlay.New[K, V](t.less)}
}

// IterEffective enumerates the union of backend keys and every staged
// key across every layer, in ascending order, yielding only keys whose
// effective value is present.
func (t *MapTxn[K, V]) IterEffective(fn func(k K, v V)) {
	seen := make(map[K]struct{})
	var keys []K
	for _, k := range t.base.Keys() {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	for _, layer := range t.layers {
		for _, k := range layer.Keys() {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool { return t.less(keys[i], keys[j]) })
	for _, k := range keys {
		if v, ok := t.Get(k); ok {
			fn(k, v)
		}
	}
}

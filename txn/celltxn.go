package txn

import "github.com/bobboyms/txstage/backend"

// CellTxn is a transactional at-most-one-value cell: a backend plus a
// non-empty stack of Maybe<T> slots, per spec §4.4.
type CellTxn[T any] struct {
	base   backend.Cell[T]
	layers []cellSlot[T]
}

type cellSlot[T any] struct {
	value T
	set   bool
}

// NewCellTxn wraps base with a single empty slot.
func NewCellTxn[T any](base backend.Cell[T]) *CellTxn[T] {
	return &CellTxn[T]{base: base, layers: []cellSlot[T]{{}}}
}

func (t *CellTxn[T]) Depth() int {
	return len(t.layers)
}

// PushLayer appends a fresh unset slot.
func (t *CellTxn[T]) PushLayer() {
	t.layers = append(t.layers, cellSlot[T]{})
}

// Set writes v into the top slot.
func (t *CellTxn[T]) Set(v T) {
	t.layers[len(t.layers)-1] = cellSlot[T]{value: v, set: true}
}

// Get returns the topmost set slot, else the backend's value.
func (t *CellTxn[T]) Get() (T, bool) {
	for i := len(t.layers) - 1; i >= 0; i-- {
		if t.layers[i].set {
			return t.layers[i].value, true
		}
	}
	return t.base.Get()
}

// RevertTop pops the top slot if depth > 1, else resets the sole slot
// to unset.
func (t *CellTxn[T]) RevertTop() {
	if len(t.layers) > 1 {
		t.layers = t.layers[:len(t.layers)-1]
		return
	}
	t.layers[0] = cellSlot[T]{}
}

// CommitTop merges the top slot into the layer below (depth > 1) or
// the backend (depth == 1). An unset top slot is a no-op with respect
// to whatever lies below it — an untouched layer must never erase a
// write an older layer made.
func (t *CellTxn[T]) CommitTop() {
	n := len(t.layers)
	top := t.layers[n-1]
	if n > 1 {
		if top.set {
			t.layers[n-2] = top
		}
		t.layers = t.layers[:n-1]
		return
	}
	if top.set {
		t.base.Set(top.value)
	}
	t.layers[0] = cellSlot[T]{}
}

// CommitAll repeatedly commits until the stack is a single fresh
// unset slot.
func (t *CellTxn[T]) CommitAll() {
	for len(t.layers) > 1 {
		t.CommitTop()
	}
	t.CommitTop()
}

// CommitOldest removes layer 0 and drains it directly into the
// backend if it was set.
func (t *CellTxn[T]) CommitOldest() {
	oldest := t.layers[0]
	if oldest.set {
		t.base.Set(oldest.value)
	}
	if len(t.layers) > 1 {
		t.layers = t.layers[1:]
	} else {
		t.layers[0] = cellSlot[T]{}
	}
}

// ClearAll clears the backend and resets the stack to a single fresh
// unset slot. Irreversible.
func (t *CellTxn[T]) ClearAll() {
	t.base.Clear()
	t.layers = []cellSlot[T]{{}}
}

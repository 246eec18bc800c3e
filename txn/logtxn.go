package txn

import "github.com/bobboyms/txstage/backend"

// LogTxn is a transactional append-only log: a backend plus a
// non-empty stack of staged sequences, per spec §4.5. There are no
// tombstones here — every layer is append-only.
type LogTxn[T any] struct {
	base   backend.Log[T]
	layers [][]T
}

// NewLogTxn wraps base with a single empty staged sequence.
func NewLogTxn[T any](base backend.Log[T]) *LogTxn[T] {
	return &LogTxn[T]{base: base, layers: [][]T{nil}}
}

func (t *LogTxn[T]) Depth() int {
	return len(t.layers)
}

// PushLayer appends a fresh empty sequence.
func (t *LogTxn[T]) PushLayer() {
	t.layers = append(t.layers, nil)
}

// Append pushes v onto the top sequence.
func (t *LogTxn[T]) Append(v T) {
	n := len(t.layers) - 1
	t.layers[n] = append(t.layers[n], v)
}

// Len is the backend length plus the sum of every staged length.
func (t *LogTxn[T]) Len() int {
	total := t.base.Len()
	for _, layer := range t.layers {
		total += len(layer)
	}
	return total
}

// Get resolves index i: backend first, then layers oldest to newest,
// deducting each layer's length until i falls inside one.
func (t *LogTxn[T]) Get(i int) (T, bool) {
	var zero T
	if i < 0 {
		return zero, false
	}
	if i < t.base.Len() {
		return t.base.Get(i)
	}
	remaining := i - t.base.Len()
	for _, layer := range t.layers {
		if remaining < len(layer) {
			return layer[remaining], true
		}
		remaining -= len(layer)
	}
	return zero, false
}

// RevertTop drops the top sequence if depth > 1, else clears it.
func (t *LogTxn[T]) RevertTop() {
	if len(t.layers) > 1 {
		t.layers = t.layers[:len(t.layers)-1]
		return
	}
	t.layers[0] = nil
}

// CommitTop appends the top sequence to the layer below, preserving
// order, and pops it (depth > 1), or extends the backend with it and
// replaces it with a fresh empty sequence (depth == 1).
func (t *LogTxn[T]) CommitTop() {
	n := len(t.layers)
	top := t.layers[n-1]
	if n > 1 {
		t.layers[n-2] = append(t.layers[n-2], top...)
		t.layers = t.layers[:n-1]
		return
	}
	t.base.Extend(top)
	t.layers[0] = nil
}

// CommitAll repeatedly commits until the stack is a single fresh
// empty sequence.
func (t *LogTxn[T]) CommitAll() {
	for len(t.layers) > 1 {
		t.CommitTop()
	}
	t.CommitTop()
}

// CommitOldest extends the backend with layer 0 and ensures depth >= 1.
func (t *LogTxn[T]) CommitOldest() {
	oldest := t.layers[0]
	t.base.Extend(oldest)
	if len(t.layers) > 1 {
		t.layers = t.layers[1:]
	} else {
		t.layers[0] = nil
	}
}

// ClearAll clears the backend and every staged layer, then resets the
// stack to a single fresh empty sequence. Irreversible.
func (t *LogTxn[T]) ClearAll() {
	t.base.Clear()
	t.layers = [][]T{nil}
}

// Package pebblekv is an on-disk implementation of the backend.Map,
// backend.Cell, and backend.Log capability interfaces, backed by a
// single *pebble.DB per instance. It is the illustrative "concrete
// persistent backend" the core spec treats purely as an external
// collaborator — nothing in backend, overlay, txn, ledger, or apply
// imports this package.
//
// Because the generic value types K and V are opaque to the
// substrate, callers supply their own marshal/unmarshal pair; this
// mirrors the teacher's checkpoint/serializer split, where the engine
// never hardcodes a wire format for a user-defined key or document.
//
// Backends are required to be total (spec §4.1): any unexpected pebble
// I/O error is treated as a fault, not a recoverable condition, and
// panics rather than returning a zero value that could be silently
// merged into an overlay.
package pebblekv

import (
	"encoding/binary"

	stagingerrors "github.com/bobboyms/txstage/pkg/errors"
	"github.com/cockroachdb/pebble"
)

func fault(op string, err error) {
	panic(stagingerrors.NewFaultError("pebblekv", op, err))
}

// Codec converts a value of T to and from bytes for storage. Encode
// must be total for every value the caller will ever store; Decode
// must be total for every byte string Encode can produce.
type Codec[T any] struct {
	Encode func(T) []byte
	Decode func([]byte) T
}

// Map is a pebble-backed implementation of backend.Map[K,V]. Keys live
// under prefix + encoded key; Keys() snapshots via a prefix iterator.
type Map[K any, V any] struct {
	db     *pebble.DB
	prefix []byte
	key    Codec[K]
	val    Codec[V]
}

func NewMap[K any, V any](db *pebble.DB, prefix string, key Codec[K], val Codec[V]) *Map[K, V] {
	return &Map[K, V]{db: db, prefix: []byte(prefix), key: key, val: val}
}

func (m *Map[K, V]) fullKey(k K) []byte {
	return append(append([]byte(nil), m.prefix...), m.key.Encode(k)...)
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	var zero V
	data, closer, err := m.db.Get(m.fullKey(k))
	if err == pebble.ErrNotFound {
		return zero, false
	}
	if err != nil {
		fault("get", err)
	}
	defer closer.Close()
	v := m.val.Decode(append([]byte(nil), data...))
	return v, true
}

func (m *Map[K, V]) Put(k K, v V) {
	if err := m.db.Set(m.fullKey(k), m.val.Encode(v), pebble.NoSync); err != nil {
		fault("put", err)
	}
}

func (m *Map[K, V]) Remove(k K) {
	if err := m.db.Delete(m.fullKey(k), pebble.NoSync); err != nil {
		fault("remove", err)
	}
}

func (m *Map[K, V]) Keys() []K {
	upper := prefixUpperBound(m.prefix)
	iter, err := m.db.NewIter(&pebble.IterOptions{LowerBound: m.prefix, UpperBound: upper})
	if err != nil {
		fault("keys: new iterator", err)
	}
	defer iter.Close()

	var keys []K
	for valid := iter.First(); valid; valid = iter.Next() {
		raw := iter.Key()[len(m.prefix):]
		keys = append(keys, m.key.Decode(append([]byte(nil), raw...)))
	}
	return keys
}

func (m *Map[K, V]) Clear() {
	upper := prefixUpperBound(m.prefix)
	if err := m.db.DeleteRange(m.prefix, upper, pebble.NoSync); err != nil {
		fault("clear", err)
	}
}

// Cell is a pebble-backed implementation of backend.Cell[T] using a
// single fixed key.
type Cell[T any] struct {
	db  *pebble.DB
	key []byte
	val Codec[T]
}

func NewCell[T any](db *pebble.DB, key string, val Codec[T]) *Cell[T] {
	return &Cell[T]{db: db, key: []byte(key), val: val}
}

func (c *Cell[T]) Get() (T, bool) {
	var zero T
	data, closer, err := c.db.Get(c.key)
	if err == pebble.ErrNotFound {
		return zero, false
	}
	if err != nil {
		fault("get", err)
	}
	defer closer.Close()
	return c.val.Decode(append([]byte(nil), data...)), true
}

func (c *Cell[T]) Set(v T) {
	if err := c.db.Set(c.key, c.val.Encode(v), pebble.NoSync); err != nil {
		fault("set", err)
	}
}

func (c *Cell[T]) Clear() {
	if err := c.db.Delete(c.key, pebble.NoSync); err != nil {
		fault("clear", err)
	}
}

// Log is a pebble-backed implementation of backend.Log[T]. Entries
// live under prefix + big-endian index so Get(i) is a point lookup;
// the length itself is cached in memory and refreshed on open by
// counting every key under the prefix, since pebble has no native
// counter primitive.
type Log[T any] struct {
	db     *pebble.DB
	prefix []byte
	val    Codec[T]
	length int
}

func NewLog[T any](db *pebble.DB, prefix string, val Codec[T]) *Log[T] {
	l := &Log[T]{db: db, prefix: []byte(prefix), val: val}
	l.length = l.scanLength()
	return l
}

func (l *Log[T]) indexKey(i int) []byte {
	buf := make([]byte, len(l.prefix)+8)
	copy(buf, l.prefix)
	binary.BigEndian.PutUint64(buf[len(l.prefix):], uint64(i))
	return buf
}

func (l *Log[T]) scanLength() int {
	upper := prefixUpperBound(l.prefix)
	iter, err := l.db.NewIter(&pebble.IterOptions{LowerBound: l.prefix, UpperBound: upper})
	if err != nil {
		fault("scan length: new iterator", err)
	}
	defer iter.Close()
	count := 0
	for valid := iter.First(); valid; valid = iter.Next() {
		count++
	}
	return count
}

func (l *Log[T]) Len() int {
	return l.length
}

func (l *Log[T]) Get(i int) (T, bool) {
	var zero T
	if i < 0 || i >= l.length {
		return zero, false
	}
	data, closer, err := l.db.Get(l.indexKey(i))
	if err != nil {
		fault("get", err)
	}
	defer closer.Close()
	return l.val.Decode(append([]byte(nil), data...)), true
}

func (l *Log[T]) Append(v T) {
	if err := l.db.Set(l.indexKey(l.length), l.val.Encode(v), pebble.NoSync); err != nil {
		fault("append", err)
	}
	l.length++
}

func (l *Log[T]) Extend(vs []T) {
	batch := l.db.NewBatch()
	for _, v := range vs {
		if err := batch.Set(l.indexKey(l.length), l.val.Encode(v), nil); err != nil {
			fault("extend", err)
		}
		l.length++
	}
	if err := batch.Commit(pebble.NoSync); err != nil {
		fault("extend: commit batch", err)
	}
}

func (l *Log[T]) Clear() {
	upper := prefixUpperBound(l.prefix)
	if err := l.db.DeleteRange(l.prefix, upper, pebble.NoSync); err != nil {
		fault("clear", err)
	}
	l.length = 0
}

// prefixUpperBound returns the smallest key that is strictly greater
// than every key sharing prefix, used to bound prefix iterators and
// range deletes.
func prefixUpperBound(prefix []byte) []byte {
	upper := append([]byte(nil), prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] != 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}

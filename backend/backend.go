// Package backend defines the three minimal capability interfaces a
// persistent storage provider must satisfy to back a transactional
// container: Map, Cell, and Log. The substrate never inspects backend
// identity and never surfaces a transient error from these interfaces
// — implementations are expected to be total.
package backend

// Map is a point get/put/remove store with key enumeration and clear.
// keys() must return a snapshot — the substrate never expects the
// returned slice to alias live backend state. Map only requires K to
// be comparable: nothing below the transactional containers needs a
// total order over keys, since iteration order (when it matters, e.g.
// MapTxn.IterEffective) is supplied explicitly by the caller as a
// less function rather than assumed from K itself.
type Map[K comparable, V any] interface {
	Get(k K) (V, bool)
	Put(k K, v V)
	Remove(k K)
	Keys() []K
	Clear()
}

// Cell is an at-most-one-value store.
type Cell[T any] interface {
	Get() (T, bool)
	Set(v T)
	Clear()
}

// Log is an append-only, index-addressable sequence store.
type Log[T any] interface {
	Len() int
	Get(i int) (T, bool)
	Append(v T)
	Extend(vs []T)
	Clear()
}

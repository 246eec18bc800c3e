// Package host is a thin adapter translating the composite store and
// block applier onto the "expected shape" entry points of spec §6 —
// it is explicitly not part of the core: a real deployment would
// replace this with RPC/agent plumbing, but the pagination budget rule
// has to live somewhere testable, so it lives here.
package host

import (
	"fmt"
	"log/slog"

	"github.com/bobboyms/txstage/apply"
	"github.com/bobboyms/txstage/codec"
	"github.com/bobboyms/txstage/ledger"
)

// defaultPageByteBudget is the reference cap on total encoded block
// bytes per GetBlocks page (spec §6: "the reference uses ~1 MB").
const defaultPageByteBudget = 1 << 20

// Host exposes the spec §6 entry points over a store + applier pair.
type Host struct {
	store          *ledger.Store
	applier        *apply.Applier
	pageByteBudget int
}

// Option configures a Host at construction time.
type Option func(*Host)

// WithPageByteBudget overrides the default ~1 MiB GetBlocks page cap.
func WithPageByteBudget(budget int) Option {
	return func(h *Host) {
		if budget > 0 {
			h.pageByteBudget = budget
		}
	}
}

func New(store *ledger.Store, reducers []ledger.Reducer, log *slog.Logger, opts ...Option) *Host {
	h := &Host{
		store:          store,
		applier:        apply.New(store, reducers, log),
		pageByteBudget: defaultPageByteBudget,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) PushLayer()    { h.store.PushLayer() }
func (h *Host) CommitTop()    { h.store.CommitTop() }
func (h *Host) CommitAll()    { h.store.CommitAll() }
func (h *Host) CommitOldest() { h.store.CommitOldest() }
func (h *Host) RevertTop()    { h.store.RevertTop() }

// ApplyBlock runs one atomic batch of actions (spec §4.8).
func (h *Host) ApplyBlock(actions []ledger.Action) ([]ledger.ApplyStatus, error) {
	return h.applier.ApplyBlock(actions)
}

// Replay rebuilds derived state from the blocks log (spec §4.9).
func (h *Host) Replay() error {
	return h.applier.Replay()
}

// GetBalance returns an account's effective balance, zero if unknown.
func (h *Host) GetBalance(addr ledger.Address) ledger.Balance {
	bal, _ := h.store.Accounts.Get(addr)
	return bal
}

// GetEvent returns the event at index i, if any.
func (h *Host) GetEvent(i int) (ledger.Event, bool) {
	return h.store.Events.Get(i)
}

// EventsLen returns the effective length of the events log.
func (h *Host) EventsLen() int {
	return h.store.Events.Len()
}

// MetaGetName returns the current meta name, empty if the cell is
// untouched.
func (h *Host) MetaGetName() string {
	m, ok := h.store.MetaCell.Get()
	if !ok {
		return ""
	}
	return m.Name
}

// MetaGetCounter returns the current meta counter, zero if untouched.
func (h *Host) MetaGetCounter() uint64 {
	m, ok := h.store.MetaCell.Get()
	if !ok {
		return 0
	}
	return m.Counter
}

// GetMeta returns a deep copy of the current meta value, safe for the
// caller to hold onto without aliasing the store's own Owner pointer.
func (h *Host) GetMeta() (ledger.Meta, bool) {
	m, ok := h.store.MetaCell.Get()
	if !ok {
		return ledger.Meta{}, false
	}
	return m.Clone(), true
}

// BlockPage is the paginated response shape of spec §6's get_blocks.
type BlockPage struct {
	Total  int
	Start  int
	Blocks []ledger.Block
}

// GetBlocks returns up to length blocks starting at start, capping
// total encoded bytes per page at the configured budget. The cap never
// produces a zero-block page unless the requested window itself is
// empty, and always includes at least the block at start if it
// exists — even when that one block alone exceeds the budget.
func (h *Host) GetBlocks(start, length int) (BlockPage, error) {
	total := h.store.Blocks.Len()
	page := BlockPage{Total: total, Start: start}

	if length <= 0 || start < 0 || start >= total {
		return page, nil
	}

	end := start + length
	if end > total {
		end = total
	}

	budget := h.pageByteBudget
	usedBytes := 0
	for i := start; i < end; i++ {
		raw, ok := h.store.Blocks.Get(i)
		if !ok {
			return BlockPage{}, fmt.Errorf("host: get_blocks: block %d missing from log", i)
		}
		if len(page.Blocks) > 0 && usedBytes+len(raw) > budget {
			break
		}
		block, err := codec.DecodeBlock(raw)
		if err != nil {
			return BlockPage{}, fmt.Errorf("host: get_blocks: block %d: %w", i, err)
		}
		page.Blocks = append(page.Blocks, block)
		usedBytes += len(raw)
	}

	return page, nil
}

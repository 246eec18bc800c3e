package host_test

import (
	"testing"

	"github.com/bobboyms/txstage/backend/memkv"
	"github.com/bobboyms/txstage/host"
	"github.com/bobboyms/txstage/ledger"
)

func addr(s string) ledger.Address {
	return ledger.AddressFromBytes([]byte(s))
}

func newHost(opts ...host.Option) *host.Host {
	store := ledger.NewStore(
		memkv.NewMap[ledger.Address, ledger.Balance](ledger.LessAddress),
		memkv.NewCell[ledger.Meta](),
		memkv.NewLog[ledger.Event](),
		memkv.NewLog[[]byte](),
	)
	return host.New(store, ledger.DefaultReducers(), nil, opts...)
}

func TestHost_ApplyBlockAndQuery(t *testing.T) {
	h := newHost()
	alice := addr("alice")

	results, err := h.ApplyBlock([]ledger.Action{ledger.NewCoinbase(alice, ledger.BalanceFromUint64(100))})
	if err != nil {
		t.Fatalf("ApplyBlock: %v", err)
	}
	if results[0].Kind != ledger.ApplyOk {
		t.Fatalf("results[0] = %+v, want Ok", results[0])
	}
	if h.GetBalance(alice).Lo != 100 {
		t.Fatalf("GetBalance = %d, want 100", h.GetBalance(alice).Lo)
	}
	if h.EventsLen() != 1 {
		t.Fatalf("EventsLen() = %d, want 1", h.EventsLen())
	}
}

func TestHost_GetBlocks_EmptyWindow(t *testing.T) {
	h := newHost()
	h.ApplyBlock([]ledger.Action{ledger.NewCoinbase(addr("a"), ledger.BalanceFromUint64(1))})

	page, err := h.GetBlocks(5, 10)
	if err != nil {
		t.Fatalf("GetBlocks: %v", err)
	}
	if len(page.Blocks) != 0 {
		t.Fatalf("len(page.Blocks) = %d, want 0 for a start beyond total", len(page.Blocks))
	}
	if page.Total != 1 {
		t.Fatalf("page.Total = %d, want 1", page.Total)
	}
}

func TestHost_GetBlocks_ZeroLengthIsEmpty(t *testing.T) {
	h := newHost()
	h.ApplyBlock([]ledger.Action{ledger.NewCoinbase(addr("a"), ledger.BalanceFromUint64(1))})

	page, err := h.GetBlocks(0, 0)
	if err != nil {
		t.Fatalf("GetBlocks: %v", err)
	}
	if len(page.Blocks) != 0 {
		t.Fatalf("len(page.Blocks) = %d, want 0 for length 0", len(page.Blocks))
	}
}

func TestHost_GetBlocks_AlwaysIncludesAtLeastOneBlock(t *testing.T) {
	// A tiny budget that cannot fit even a single encoded block must
	// still return that one block rather than an empty page.
	h := newHost(host.WithPageByteBudget(1))
	alice := addr("alice")
	for i := 0; i < 3; i++ {
		h.ApplyBlock([]ledger.Action{ledger.NewCoinbase(alice, ledger.BalanceFromUint64(1))})
	}

	page, err := h.GetBlocks(0, 10)
	if err != nil {
		t.Fatalf("GetBlocks: %v", err)
	}
	if len(page.Blocks) != 1 {
		t.Fatalf("len(page.Blocks) = %d, want 1 — the budget must never produce a zero-block page", len(page.Blocks))
	}
	if page.Total != 3 {
		t.Fatalf("page.Total = %d, want 3", page.Total)
	}
}

func TestHost_GetBlocks_DefaultBudgetFitsSeveralSmallBlocks(t *testing.T) {
	h := newHost()
	alice := addr("alice")
	for i := 0; i < 5; i++ {
		h.ApplyBlock([]ledger.Action{ledger.NewCoinbase(alice, ledger.BalanceFromUint64(1))})
	}

	page, err := h.GetBlocks(0, 10)
	if err != nil {
		t.Fatalf("GetBlocks: %v", err)
	}
	if len(page.Blocks) != 5 {
		t.Fatalf("len(page.Blocks) = %d, want 5 — small blocks should all fit under the ~1 MiB default", len(page.Blocks))
	}
}

func TestHost_GetMeta_ClonesOwner(t *testing.T) {
	store := ledger.NewStore(
		memkv.NewMap[ledger.Address, ledger.Balance](ledger.LessAddress),
		memkv.NewCell[ledger.Meta](),
		memkv.NewLog[ledger.Event](),
		memkv.NewLog[[]byte](),
	)
	want := addr("alice")
	stored := want
	store.MetaCell.Set(ledger.Meta{Owner: &stored})
	store.MetaCell.CommitAll()
	h := host.New(store, ledger.DefaultReducers(), nil)
	h.ApplyBlock([]ledger.Action{ledger.NewSetName("chain")})

	m1, ok := h.GetMeta()
	if !ok {
		t.Fatalf("GetMeta() ok = false, want true")
	}
	if m1.Name != "chain" {
		t.Fatalf("Name = %q, want %q", m1.Name, "chain")
	}

	*m1.Owner = addr("mallory")
	m2, _ := h.GetMeta()
	if m2.Owner == nil || *m2.Owner != want {
		t.Fatalf("mutating one clone's Owner leaked into a second GetMeta() call: %v", m2.Owner)
	}
}

func TestHost_Replay(t *testing.T) {
	h := newHost()
	alice, bob := addr("alice"), addr("bob")
	h.ApplyBlock([]ledger.Action{ledger.NewCoinbase(alice, ledger.BalanceFromUint64(100))})
	h.ApplyBlock([]ledger.Action{ledger.NewTransfer(alice, bob, ledger.BalanceFromUint64(40))})

	wantAlice, wantBob := h.GetBalance(alice), h.GetBalance(bob)

	if err := h.Replay(); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if h.GetBalance(alice) != wantAlice || h.GetBalance(bob) != wantBob {
		t.Fatalf("balances changed across replay: alice %v->%v, bob %v->%v",
			wantAlice, h.GetBalance(alice), wantBob, h.GetBalance(bob))
	}
}

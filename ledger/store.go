package ledger

import (
	"github.com/bobboyms/txstage/backend"
	"github.com/bobboyms/txstage/txn"
)

type (
	backendMap      = backend.Map[Address, Balance]
	backendCell     = backend.Cell[Meta]
	backendEventLog = backend.Log[Event]
	backendByteLog  = backend.Log[[]byte]
)

// Store is the fixed composite of spec §3/§4.6: one map (accounts),
// one cell (meta), and two logs (events, blocks). All four share a
// single logical layer stack — every transaction operation below
// fans out to all four, in this fixed order, so their depths stay
// equal as an emergent invariant.
type Store struct {
	Accounts *txn.MapTxn[Address, Balance]
	MetaCell *txn.CellTxn[Meta]
	Events   *txn.LogTxn[Event]
	Blocks   *txn.LogTxn[[]byte]
}

func NewStore(accounts backendMap, meta backendCell, events backendEventLog, blocks backendByteLog) *Store {
	return &Store{
		Accounts: txn.NewMapTxn[Address, Balance](accounts, LessAddress),
		MetaCell: txn.NewCellTxn[Meta](meta),
		Events:   txn.NewLogTxn[Event](events),
		Blocks:   txn.NewLogTxn[[]byte](blocks),
	}
}

func (s *Store) PushLayer() {
	s.Accounts.PushLayer()
	s.MetaCell.PushLayer()
	s.Events.PushLayer()
	s.Blocks.PushLayer()
}

func (s *Store) RevertTop() {
	s.Accounts.RevertTop()
	s.MetaCell.RevertTop()
	s.Events.RevertTop()
	s.Blocks.RevertTop()
}

func (s *Store) CommitTop() {
	s.Accounts.CommitTop()
	s.MetaCell.CommitTop()
	s.Events.CommitTop()
	s.Blocks.CommitTop()
}

func (s *Store) CommitAll() {
	s.Accounts.CommitAll()
	s.MetaCell.CommitAll()
	s.Events.CommitAll()
	s.Blocks.CommitAll()
}

func (s *Store) CommitOldest() {
	s.Accounts.CommitOldest()
	s.MetaCell.CommitOldest()
	s.Events.CommitOldest()
	s.Blocks.CommitOldest()
}

// ClearStatePreserveBlocks erases accounts, meta, and events, but
// deliberately skips the blocks log — it is append-only and never
// rewritten, even by a reset-and-replay.
func (s *Store) ClearStatePreserveBlocks() {
	s.Accounts.ClearAll()
	s.MetaCell.ClearAll()
	s.Events.ClearAll()
}

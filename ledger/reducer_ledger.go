package ledger

// ReduceLedger handles LedgerAction variants: Coinbase credits an
// account unconditionally; Transfer moves funds between two accounts
// after checking for a zero amount and sufficient balance. Both paths
// append an event and return Ok; anything outside this jurisdiction
// is a Pass.
func ReduceLedger(store *Store, action Action) ApplyStatus {
	switch action.Kind {
	case ActionCoinbase:
		a := action.Coinbase
		cur, _ := store.Accounts.Get(a.To)
		store.Accounts.Insert(a.To, cur.Add(a.Amount))
		store.Events.Append(coinbaseEvent(a.To, a.Amount))
		return Ok()

	case ActionTransfer:
		a := action.Transfer
		if a.Amount.IsZero() {
			return Pass("zero-amount transfer")
		}
		fromBal, _ := store.Accounts.Get(a.From)
		if fromBal.Less(a.Amount) {
			return Pass("insufficient funds")
		}
		toBal, _ := store.Accounts.Get(a.To)
		store.Accounts.Insert(a.From, fromBal.Sub(a.Amount))
		store.Accounts.Insert(a.To, toBal.Add(a.Amount))
		store.Events.Append(transferEvent(a.From, a.To, a.Amount))
		return Ok()

	default:
		return Pass(noJurisdictionReason)
	}
}

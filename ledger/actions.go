package ledger

// ActionKind tags which closed-universe variant an Action carries.
// The universe shipped here (ledger transfers, metadata bumps) is
// illustrative of reducer composition, not part of the staging
// substrate's contract.
type ActionKind string

const (
	ActionCoinbase    ActionKind = "ledger.coinbase"
	ActionTransfer    ActionKind = "ledger.transfer"
	ActionSetName     ActionKind = "meta.set_name"
	ActionBumpCounter ActionKind = "meta.bump_counter"
)

// Action is a tagged variant from the closed universe above. Exactly
// one of the pointer fields matching Kind is populated.
type Action struct {
	Kind        ActionKind
	Coinbase    *CoinbaseAction
	Transfer    *TransferAction
	SetName     *SetNameAction
	BumpCounter *BumpCounterAction
}

type CoinbaseAction struct {
	To     Address
	Amount Balance
}

type TransferAction struct {
	From, To Address
	Amount   Balance
}

type SetNameAction struct {
	Name string
}

type BumpCounterAction struct{}

func NewCoinbase(to Address, amount Balance) Action {
	return Action{Kind: ActionCoinbase, Coinbase: &CoinbaseAction{To: to, Amount: amount}}
}

func NewTransfer(from, to Address, amount Balance) Action {
	return Action{Kind: ActionTransfer, Transfer: &TransferAction{From: from, To: to, Amount: amount}}
}

func NewSetName(name string) Action {
	return Action{Kind: ActionSetName, SetName: &SetNameAction{Name: name}}
}

func NewBumpCounter() Action {
	return Action{Kind: ActionBumpCounter, BumpCounter: &BumpCounterAction{}}
}

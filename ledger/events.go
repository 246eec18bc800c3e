package ledger

// EventKind tags which variant an Event carries. Events mirror
// actions but record only what actually happened (e.g. BumpCounter
// records the resulting counter value).
type EventKind string

const (
	EventCoinbase    EventKind = "ledger.coinbase"
	EventTransfer    EventKind = "ledger.transfer"
	EventSetName     EventKind = "meta.set_name"
	EventBumpCounter EventKind = "meta.bump_counter"
)

type Event struct {
	Kind        EventKind
	Coinbase    *CoinbaseEvent
	Transfer    *TransferEvent
	SetName     *SetNameEvent
	BumpCounter *BumpCounterEvent
}

type CoinbaseEvent struct {
	To     Address
	Amount Balance
}

type TransferEvent struct {
	From, To Address
	Amount   Balance
}

type SetNameEvent struct {
	Name string
}

type BumpCounterEvent struct {
	NewCounter uint64
}

func coinbaseEvent(to Address, amount Balance) Event {
	return Event{Kind: EventCoinbase, Coinbase: &CoinbaseEvent{To: to, Amount: amount}}
}

func transferEvent(from, to Address, amount Balance) Event {
	return Event{Kind: EventTransfer, Transfer: &TransferEvent{From: from, To: to, Amount: amount}}
}

func setNameEvent(name string) Event {
	return Event{Kind: EventSetName, SetName: &SetNameEvent{Name: name}}
}

func bumpCounterEvent(newCounter uint64) Event {
	return Event{Kind: EventBumpCounter, BumpCounter: &BumpCounterEvent{NewCounter: newCounter}}
}

// Package codec provides the encode/decode collaborator the core
// consumes only at its boundary (spec §6): a pair of functions per
// stored type such that decode(encode(x)) == x. Blocks are encoded to
// bytes for the blocks log; events and meta are kept in their
// structured form by the store and only pass through this package
// when a host chooses to serialize them (e.g. for a snapshot).
//
// Encoding is BSON via the mongo driver, grounded on the teacher's own
// bson.go helpers, but the wire shapes below are private mirrors of
// the ledger types rather than the domain types themselves: Address is
// carried as a byte slice and Balance as two uint64 fields, so the
// wire format never depends on Address being a fixed-size array (the
// BSON array codec for Go arrays is not a format this package wants to
// commit to).
package codec

import (
	"fmt"

	"github.com/bobboyms/txstage/ledger"
	stagingerrors "github.com/bobboyms/txstage/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type wireBalance struct {
	Hi uint64 `bson:"hi"`
	Lo uint64 `bson:"lo"`
}

func toWireBalance(b ledger.Balance) wireBalance {
	return wireBalance{Hi: b.Hi, Lo: b.Lo}
}

func (w wireBalance) toBalance() ledger.Balance {
	return ledger.Balance{Hi: w.Hi, Lo: w.Lo}
}

func toWireAddress(a ledger.Address) []byte {
	return append([]byte(nil), a.Bytes()...)
}

func fromWireAddress(b []byte) ledger.Address {
	return ledger.AddressFromBytes(b)
}

type wireMeta struct {
	Name    string `bson:"name"`
	Owner   []byte `bson:"owner,omitempty"`
	Counter uint64 `bson:"counter"`
}

// EncodeMeta serializes a Meta value to BSON bytes.
func EncodeMeta(m ledger.Meta) ([]byte, error) {
	w := wireMeta{Name: m.Name, Counter: m.Counter}
	if m.Owner != nil {
		w.Owner = toWireAddress(*m.Owner)
	}
	data, err := bson.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("codec: encode meta: %w", err)
	}
	return data, nil
}

// DecodeMeta deserializes BSON bytes produced by EncodeMeta.
func DecodeMeta(data []byte) (ledger.Meta, error) {
	var w wireMeta
	if err := bson.Unmarshal(data, &w); err != nil {
		return ledger.Meta{}, stagingerrors.NewDecodeError("meta", err)
	}
	m := ledger.Meta{Name: w.Name, Counter: w.Counter}
	if len(w.Owner) > 0 {
		owner := fromWireAddress(w.Owner)
		m.Owner = &owner
	}
	return m, nil
}

type wireEvent struct {
	Kind        string          `bson:"kind"`
	Coinbase    *wireFlowEvent  `bson:"coinbase,omitempty"`
	Transfer    *wireFlowEvent  `bson:"transfer,omitempty"`
	SetName     *wireNameEvent  `bson:"set_name,omitempty"`
	BumpCounter *wireCountEvent `bson:"bump_counter,omitempty"`
}

type wireFlowEvent struct {
	From   []byte      `bson:"from,omitempty"`
	To     []byte      `bson:"to"`
	Amount wireBalance `bson:"amount"`
}

type wireNameEvent struct {
	Name string `bson:"name"`
}

type wireCountEvent struct {
	NewCounter uint64 `bson:"new_counter"`
}

func toWireEvent(e ledger.Event) wireEvent {
	w := wireEvent{Kind: string(e.Kind)}
	switch e.Kind {
	case ledger.EventCoinbase:
		w.Coinbase = &wireFlowEvent{To: toWireAddress(e.Coinbase.To), Amount: toWireBalance(e.Coinbase.Amount)}
	case ledger.EventTransfer:
		w.Transfer = &wireFlowEvent{
			From:   toWireAddress(e.Transfer.From),
			To:     toWireAddress(e.Transfer.To),
			Amount: toWireBalance(e.Transfer.Amount),
		}
	case ledger.EventSetName:
		w.SetName = &wireNameEvent{Name: e.SetName.Name}
	case ledger.EventBumpCounter:
		w.BumpCounter = &wireCountEvent{NewCounter: e.BumpCounter.NewCounter}
	}
	return w
}

func fromWireEvent(w wireEvent) (ledger.Event, error) {
	switch ledger.EventKind(w.Kind) {
	case ledger.EventCoinbase:
		if w.Coinbase == nil {
			return ledger.Event{}, stagingerrors.NewDecodeError("event", fmt.Errorf("missing coinbase payload"))
		}
		return ledger.Event{
			Kind: ledger.EventCoinbase,
			Coinbase: &ledger.CoinbaseEvent{
				To:     fromWireAddress(w.Coinbase.To),
				Amount: w.Coinbase.Amount.toBalance(),
			},
		}, nil
	case ledger.EventTransfer:
		if w.Transfer == nil {
			return ledger.Event{}, stagingerrors.NewDecodeError("event", fmt.Errorf("missing transfer payload"))
		}
		return ledger.Event{
			Kind: ledger.EventTransfer,
			Transfer: &ledger.TransferEvent{
				From:   fromWireAddress(w.Transfer.From),
				To:     fromWireAddress(w.Transfer.To),
				Amount: w.Transfer.Amount.toBalance(),
			},
		}, nil
	case ledger.EventSetName:
		if w.SetName == nil {
			return ledger.Event{}, stagingerrors.NewDecodeError("event", fmt.Errorf("missing set_name payload"))
		}
		return ledger.Event{Kind: ledger.EventSetName, SetName: &ledger.SetNameEvent{Name: w.SetName.Name}}, nil
	case ledger.EventBumpCounter:
		if w.BumpCounter == nil {
			return ledger.Event{}, stagingerrors.NewDecodeError("event", fmt.Errorf("missing bump_counter payload"))
		}
		return ledger.Event{
			Kind:        ledger.EventBumpCounter,
			BumpCounter: &ledger.BumpCounterEvent{NewCounter: w.BumpCounter.NewCounter},
		}, nil
	default:
		return ledger.Event{}, stagingerrors.NewDecodeError("event", fmt.Errorf("unknown kind %q", w.Kind))
	}
}

// EncodeEvent serializes an Event value to BSON bytes.
func EncodeEvent(e ledger.Event) ([]byte, error) {
	data, err := bson.Marshal(toWireEvent(e))
	if err != nil {
		return nil, fmt.Errorf("codec: encode event: %w", err)
	}
	return data, nil
}

// DecodeEvent deserializes BSON bytes produced by EncodeEvent.
func DecodeEvent(data []byte) (ledger.Event, error) {
	var w wireEvent
	if err := bson.Unmarshal(data, &w); err != nil {
		return ledger.Event{}, stagingerrors.NewDecodeError("event", err)
	}
	return fromWireEvent(w)
}

type wireAction struct {
	Kind        string          `bson:"kind"`
	Coinbase    *wireFlowAction `bson:"coinbase,omitempty"`
	Transfer    *wireFlowAction `bson:"transfer,omitempty"`
	SetName     *wireNameEvent  `bson:"set_name,omitempty"`
	BumpCounter *struct{}       `bson:"bump_counter,omitempty"`
}

type wireFlowAction struct {
	From   []byte      `bson:"from,omitempty"`
	To     []byte      `bson:"to"`
	Amount wireBalance `bson:"amount"`
}

func toWireAction(a ledger.Action) wireAction {
	w := wireAction{Kind: string(a.Kind)}
	switch a.Kind {
	case ledger.ActionCoinbase:
		w.Coinbase = &wireFlowAction{To: toWireAddress(a.Coinbase.To), Amount: toWireBalance(a.Coinbase.Amount)}
	case ledger.ActionTransfer:
		w.Transfer = &wireFlowAction{
			From:   toWireAddress(a.Transfer.From),
			To:     toWireAddress(a.Transfer.To),
			Amount: toWireBalance(a.Transfer.Amount),
		}
	case ledger.ActionSetName:
		w.SetName = &wireNameEvent{Name: a.SetName.Name}
	case ledger.ActionBumpCounter:
		w.BumpCounter = &struct{}{}
	}
	return w
}

func fromWireAction(w wireAction) (ledger.Action, error) {
	switch ledger.ActionKind(w.Kind) {
	case ledger.ActionCoinbase:
		if w.Coinbase == nil {
			return ledger.Action{}, stagingerrors.NewDecodeError("action", fmt.Errorf("missing coinbase payload"))
		}
		return ledger.NewCoinbase(fromWireAddress(w.Coinbase.To), w.Coinbase.Amount.toBalance()), nil
	case ledger.ActionTransfer:
		if w.Transfer == nil {
			return ledger.Action{}, stagingerrors.NewDecodeError("action", fmt.Errorf("missing transfer payload"))
		}
		return ledger.NewTransfer(
			fromWireAddress(w.Transfer.From),
			fromWireAddress(w.Transfer.To),
			w.Transfer.Amount.toBalance(),
		), nil
	case ledger.ActionSetName:
		if w.SetName == nil {
			return ledger.Action{}, stagingerrors.NewDecodeError("action", fmt.Errorf("missing set_name payload"))
		}
		return ledger.NewSetName(w.SetName.Name), nil
	case ledger.ActionBumpCounter:
		return ledger.NewBumpCounter(), nil
	default:
		return ledger.Action{}, stagingerrors.NewDecodeError("action", fmt.Errorf("unknown kind %q", w.Kind))
	}
}

type wireStatus struct {
	Kind   string `bson:"kind"`
	Reason string `bson:"reason,omitempty"`
	Error  string `bson:"error,omitempty"`
}

func toWireStatus(s ledger.ApplyStatus) wireStatus {
	return wireStatus{Kind: string(s.Kind), Reason: s.Reason, Error: s.Error}
}

func fromWireStatus(w wireStatus) ledger.ApplyStatus {
	return ledger.ApplyStatus{Kind: ledger.ApplyKind(w.Kind), Reason: w.Reason, Error: w.Error}
}

type wireBlock struct {
	ID      string       `bson:"id,omitempty"`
	Actions []wireAction `bson:"actions"`
	Results []wireStatus `bson:"results"`
}

// EncodeBlock serializes a Block to BSON bytes for storage in the
// blocks log.
func EncodeBlock(b ledger.Block) ([]byte, error) {
	w := wireBlock{
		ID:      b.ID,
		Actions: make([]wireAction, len(b.Actions)),
		Results: make([]wireStatus, len(b.Results)),
	}
	for i, a := range b.Actions {
		w.Actions[i] = toWireAction(a)
	}
	for i, r := range b.Results {
		w.Results[i] = toWireStatus(r)
	}
	data, err := bson.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("codec: encode block: %w", err)
	}
	return data, nil
}

// DecodeBlock deserializes BSON bytes produced by EncodeBlock. A
// malformed block is a codec fault: it is returned as an error, never
// silently skipped or defaulted.
func DecodeBlock(data []byte) (ledger.Block, error) {
	var w wireBlock
	if err := bson.Unmarshal(data, &w); err != nil {
		return ledger.Block{}, stagingerrors.NewDecodeError("block", err)
	}
	b := ledger.Block{
		ID:      w.ID,
		Actions: make([]ledger.Action, len(w.Actions)),
		Results: make([]ledger.ApplyStatus, len(w.Results)),
	}
	for i, wa := range w.Actions {
		a, err := fromWireAction(wa)
		if err != nil {
			return ledger.Block{}, err
		}
		b.Actions[i] = a
	}
	for i, wr := range w.Results {
		b.Results[i] = fromWireStatus(wr)
	}
	return b, nil
}

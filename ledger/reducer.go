package ledger

// Reducer is a pure-to-the-store mapping (store, action) -> status. A
// reducer is expected to Pass on actions outside its jurisdiction and
// Ok or Err only on actions it claims.
type Reducer func(store *Store, action Action) ApplyStatus

// noJurisdictionReason is the Pass reason every shipped reducer uses
// for an action kind it does not own. Dispatch treats it as the
// "nothing to say" sentinel: any other Pass reason is a business
// explanation (e.g. "insufficient funds") and takes priority over it
// regardless of which reducer ran first.
const noJurisdictionReason = "no reducer handled action"

// DefaultReducers returns the fixed, ordered reducer list this package
// ships: ledger first, then meta. Order matters only when two
// reducers would otherwise both claim the same action, which the
// shipped reducers never do.
func DefaultReducers() []Reducer {
	return []Reducer{ReduceLedger, ReduceMeta}
}

// Dispatch runs every reducer in order against one action and folds
// their statuses per spec §4.7: any Err wins (last one, if more than
// one reducer errors — the engine does not attempt to pick a
// "canonical" loser among multiple misconfigured reducers), else any
// Ok wins, else the most specific Pass wins (a reducer's business
// Pass reason, e.g. "insufficient funds", always beats another
// reducer's generic "not mine" Pass for the same action), else — when
// every reducer actually said "not mine", or there were no reducers at
// all — the shared noJurisdictionReason sentinel.
func Dispatch(reducers []Reducer, store *Store, action Action) ApplyStatus {
	sawOk := false
	var errStatus *ApplyStatus
	var passStatus *ApplyStatus
	for _, reduce := range reducers {
		status := reduce(store, action)
		switch status.Kind {
		case ApplyErr:
			s := status
			errStatus = &s
		case ApplyOk:
			sawOk = true
		case ApplyPass:
			if passStatus == nil || status.Reason != noJurisdictionReason {
				s := status
				passStatus = &s
			}
		}
	}
	if errStatus != nil {
		return *errStatus
	}
	if sawOk {
		return Ok()
	}
	if passStatus != nil {
		return *passStatus
	}
	return Pass(noJurisdictionReason)
}

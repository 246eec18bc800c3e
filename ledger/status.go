package ledger

// ApplyKind tags the outcome of running one reducer (or the fold of a
// whole dispatch) against one action.
type ApplyKind string

const (
	ApplyOk   ApplyKind = "ok"
	ApplyPass ApplyKind = "pass"
	ApplyErr  ApplyKind = "err"
)

// ApplyStatus is the per-action outcome: Ok, Pass{Reason}, or
// Err{Error}. Pass is not an error — a batch containing only Pass and
// Ok statuses still commits.
type ApplyStatus struct {
	Kind   ApplyKind
	Reason string
	Error  string
}

func Ok() ApplyStatus {
	return ApplyStatus{Kind: ApplyOk}
}

func Pass(reason string) ApplyStatus {
	return ApplyStatus{Kind: ApplyPass, Reason: reason}
}

func Err(err string) ApplyStatus {
	return ApplyStatus{Kind: ApplyErr, Error: err}
}

func (s ApplyStatus) IsErr() bool {
	return s.Kind == ApplyErr
}

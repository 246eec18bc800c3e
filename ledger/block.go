package ledger

import "github.com/google/uuid"

// Block is the (id, actions, results) triple recorded for one
// committed batch. len(Actions) == len(Results) always holds for a
// recorded block — a batch that produced an Err is never recorded at
// all. ID is a caller-facing correlation handle, not used by replay
// (which identifies blocks purely by their position in the log).
type Block struct {
	ID      string
	Actions []Action
	Results []ApplyStatus
}

// NewBlockID generates a time-ordered identifier for a newly committed
// block.
func NewBlockID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the entropy source itself is broken.
		panic(err)
	}
	return id.String()
}

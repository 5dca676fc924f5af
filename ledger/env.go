// Package ledger models the execution substrate the launchpad runs on: who is
// calling, how much native value is attached, what the ledger clock reads,
// where native value lives, and where emitted events go. Every operation runs
// to completion with no interleaving; the only ordering is the one imposed by
// the caller invoking operations one at a time.
package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Env is the per-call execution context. Operations read it, never mutate it.
type Env struct {
	// Caller is the account the operation executes as.
	Caller common.Address
	// Value is the native value attached to the call. Nil means zero.
	Value *uint256.Int
	// Now is the ledger timestamp, in seconds.
	Now uint64
}

// AttachedValue returns the attached value, treating nil as zero.
func (e *Env) AttachedValue() *uint256.Int {
	if e.Value == nil {
		return uint256.NewInt(0)
	}
	return e.Value
}

// As derives an env with the same value and clock but a different caller,
// used when a contract-like component calls into another on its own behalf.
func (e *Env) As(caller common.Address) *Env {
	return &Env{Caller: caller, Value: e.Value, Now: e.Now}
}

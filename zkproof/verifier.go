// Package zkproof defines the proof oracles the launchpad consults and their
// implementations. The oracles are opaque: a proof either verifies against
// its public inputs or it does not, and nothing in between is trusted.
package zkproof

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// WithdrawInputs are the public inputs a withdrawal proof commits to.
type WithdrawInputs struct {
	Root          common.Hash
	NullifierHash common.Hash
	Recipient     common.Address
	Relayer       common.Address
	Fee           *uint256.Int
	Refund        *uint256.Int
}

// WithdrawVerifier checks a withdrawal proof against its public inputs.
type WithdrawVerifier interface {
	VerifyWithdraw(proof []byte, in WithdrawInputs) bool
}

// MetadataVerifier checks a proof binding the declared token parameters
// (computed) to the hash committed before the deployment (declared).
type MetadataVerifier interface {
	VerifyMetadata(proof []byte, declared, computed common.Hash) bool
}

// Static accepts or rejects every proof. It stands in for the real proving
// system in tests.
type Static struct {
	Result bool
}

func (s Static) VerifyWithdraw([]byte, WithdrawInputs) bool {
	return s.Result
}

func (s Static) VerifyMetadata([]byte, common.Hash, common.Hash) bool {
	return s.Result
}

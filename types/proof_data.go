package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ProofData bundles a withdrawal proof with its public inputs and the
// metadata proof binding the declared token parameters.
type ProofData struct {
	InstanceIndex int
	Proof         []byte
	Root          common.Hash
	NullifierHash common.Hash
	Recipient     common.Address
	Relayer       common.Address
	Fee           *uint256.Int
	Refund        *uint256.Int

	MetadataProof []byte
	MetadataHash  common.Hash
}

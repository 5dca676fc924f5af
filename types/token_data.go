package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/ghostpad/ghostpad/utils"
)

// TokenData carries the full parameter set of a token deployment. The caller
// commits to the economically sensitive subset of these fields before the
// deployment transaction is broadcast (see MetadataHash), so a relayer cannot
// alter them in flight.
type TokenData struct {
	Name                 string
	Symbol               string
	InitialSupply        *uint256.Int
	Description          string
	TaxRate              uint64 // basis points
	TaxRecipient         common.Address
	BurnEnabled          bool
	LiquidityLockPeriod  uint64 // seconds
	LiquidityTokenAmount *uint256.Int
	UseProtocolFee       bool
	VestingEnabled       bool
}

// MetadataHash is the commitment the metadata proof is verified against:
// keccak over the RLP encoding of (name, supply, description, taxRate),
// reduced into the field.
func (td *TokenData) MetadataHash() common.Hash {
	enc, err := rlp.EncodeToBytes([]interface{}{
		td.Name,
		td.InitialSupply.ToBig(),
		td.Description,
		td.TaxRate,
	})
	if err != nil {
		panic(err) // all field types are RLP encodable
	}
	return utils.Keccak(enc)
}

package pool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type DepositEvent struct {
	Commitment common.Hash
	LeafIndex  uint32
	Timestamp  uint64
}

func (DepositEvent) EventName() string { return "Deposit" }

type WithdrawalEvent struct {
	To            common.Address
	NullifierHash common.Hash
	Relayer       common.Address
	Fee           *uint256.Int
}

func (WithdrawalEvent) EventName() string { return "Withdrawal" }

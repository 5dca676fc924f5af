package liquidity

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type LiquidityAddedEvent struct {
	Token       common.Address
	Pair        common.Address
	AmountToken *uint256.Int
	AmountETH   *uint256.Int
	Liquidity   *uint256.Int
}

func (LiquidityAddedEvent) EventName() string { return "LiquidityAdded" }

type LiquidityLockedEvent struct {
	Token      common.Address
	Pair       common.Address
	UnlockTime uint64
}

func (LiquidityLockedEvent) EventName() string { return "LiquidityLocked" }

type LPTokensTransferredEvent struct {
	Token  common.Address
	To     common.Address
	Amount *uint256.Int
}

func (LPTokensTransferredEvent) EventName() string { return "LPTokensTransferred" }

package launcher

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type TokenDeployedEvent struct {
	NullifierHash common.Hash
	Token         common.Address
	Name          string
	Symbol        string
}

func (TokenDeployedEvent) EventName() string { return "TokenDeployed" }

type LiquidityPoolCreatedEvent struct {
	Token          common.Address
	Pair           common.Address
	LiquidityAdded *uint256.Int
}

func (LiquidityPoolCreatedEvent) EventName() string { return "LiquidityPoolCreated" }

type GovernanceUpdatedEvent struct {
	Previous common.Address
	New      common.Address
}

func (GovernanceUpdatedEvent) EventName() string { return "GovernanceUpdated" }

type GovernanceFeeUpdatedEvent struct {
	Fee uint64
}

func (GovernanceFeeUpdatedEvent) EventName() string { return "GovernanceFeeUpdated" }

type UniswapHandlerUpdatedEvent struct {
	Handler common.Address
}

func (UniswapHandlerUpdatedEvent) EventName() string { return "UniswapHandlerUpdated" }

type MetadataVerifierUpdatedEvent struct{}

func (MetadataVerifierUpdatedEvent) EventName() string { return "MetadataVerifierUpdated" }

type LauncherOwnershipTransferredEvent struct {
	PreviousOwner common.Address
	NewOwner      common.Address
}

func (LauncherOwnershipTransferredEvent) EventName() string { return "OwnershipTransferred" }

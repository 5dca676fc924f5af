package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type InitializedEvent struct {
	Token  common.Address
	Name   string
	Symbol string
	Supply *uint256.Int
}

func (InitializedEvent) EventName() string { return "Initialized" }

type TransferEvent struct {
	Token common.Address
	From  common.Address
	To    common.Address
	Value *uint256.Int
}

func (TransferEvent) EventName() string { return "Transfer" }

type ApprovalEvent struct {
	Token   common.Address
	Owner   common.Address
	Spender common.Address
	Value   *uint256.Int
}

func (ApprovalEvent) EventName() string { return "Approval" }

type TaxRateUpdatedEvent struct {
	Token   common.Address
	TaxRate uint64
}

func (TaxRateUpdatedEvent) EventName() string { return "TaxRateUpdated" }

type TaxRecipientUpdatedEvent struct {
	Token     common.Address
	Recipient common.Address
}

func (TaxRecipientUpdatedEvent) EventName() string { return "TaxRecipientUpdated" }

type DescriptionUpdatedEvent struct {
	Token common.Address
}

func (DescriptionUpdatedEvent) EventName() string { return "DescriptionUpdated" }

type BurnEnabledUpdatedEvent struct {
	Token   common.Address
	Enabled bool
}

func (BurnEnabledUpdatedEvent) EventName() string { return "BurnEnabledUpdated" }

type ContractLockedEvent struct {
	Token common.Address
}

func (ContractLockedEvent) EventName() string { return "ContractLocked" }

type OwnershipTransferredEvent struct {
	Token         common.Address
	PreviousOwner common.Address
	NewOwner      common.Address
}

func (OwnershipTransferredEvent) EventName() string { return "OwnershipTransferred" }

type LiquidityLockedEvent struct {
	Token      common.Address
	Pool       common.Address
	UnlockTime uint64
}

func (LiquidityLockedEvent) EventName() string { return "LiquidityLocked" }

type LiquidityUnlockedEvent struct {
	Token common.Address
}

func (LiquidityUnlockedEvent) EventName() string { return "LiquidityUnlocked" }

type VestingScheduleCreatedEvent struct {
	Token       common.Address
	ScheduleID  common.Hash
	Beneficiary common.Address
	Amount      *uint256.Int
}

func (VestingScheduleCreatedEvent) EventName() string { return "VestingScheduleCreated" }

type VestingReleasedEvent struct {
	Token       common.Address
	ScheduleID  common.Hash
	Beneficiary common.Address
	Amount      *uint256.Int
}

func (VestingReleasedEvent) EventName() string { return "VestingReleased" }

type VestingScheduleRevokedEvent struct {
	Token      common.Address
	ScheduleID common.Hash
	Unvested   *uint256.Int
}

func (VestingScheduleRevokedEvent) EventName() string { return "VestingScheduleRevoked" }

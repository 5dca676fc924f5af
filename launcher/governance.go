package launcher

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/liquidity"
	"github.com/ghostpad/ghostpad/zkproof"
)

// UpdateGovernance hands the governance role to a new address. Only the
// current governance account may call it.
func (l *Launcher) UpdateGovernance(env *ledger.Env, newGovernance common.Address) error {
	if env.Caller != l.governance {
		return ErrUnauthorized
	}
	if newGovernance == (common.Address{}) {
		return ErrZeroAddress
	}
	prev := l.governance
	l.governance = newGovernance
	l.events.Emit(GovernanceUpdatedEvent{Previous: prev, New: newGovernance})
	return nil
}

// UpdateGovernanceFee adjusts the protocol's supply cut for future
// deployments. Governance only, capped at MaxGovernanceFee.
func (l *Launcher) UpdateGovernanceFee(env *ledger.Env, fee uint64) error {
	if env.Caller != l.governance {
		return ErrUnauthorized
	}
	if fee > MaxGovernanceFee {
		return ErrFeeTooHigh
	}
	l.governanceFee = fee
	l.events.Emit(GovernanceFeeUpdatedEvent{Fee: fee})
	return nil
}

// UpdateUniswapHandler swaps the liquidity adapter used by future
// liquidity deployments. Owner only.
func (l *Launcher) UpdateUniswapHandler(env *ledger.Env, adapter *liquidity.Adapter) error {
	if env.Caller != l.owner {
		return ErrUnauthorized
	}
	if adapter == nil {
		return ErrNilCollaborator
	}
	l.uniswap = adapter
	l.events.Emit(UniswapHandlerUpdatedEvent{Handler: adapter.Address()})
	return nil
}

// UpdateMetadataVerifier swaps the metadata proof verifier. Owner only.
func (l *Launcher) UpdateMetadataVerifier(env *ledger.Env, verifier zkproof.MetadataVerifier) error {
	if env.Caller != l.owner {
		return ErrUnauthorized
	}
	if verifier == nil {
		return ErrNilCollaborator
	}
	l.metadataVerifier = verifier
	l.events.Emit(MetadataVerifierUpdatedEvent{})
	return nil
}

// TransferOwnership moves the launcher's admin role.
func (l *Launcher) TransferOwnership(env *ledger.Env, newOwner common.Address) error {
	if env.Caller != l.owner {
		return ErrUnauthorized
	}
	if newOwner == (common.Address{}) {
		return ErrZeroAddress
	}
	prev := l.owner
	l.owner = newOwner
	l.events.Emit(LauncherOwnershipTransferredEvent{PreviousOwner: prev, NewOwner: newOwner})
	return nil
}

// RenounceOwnership leaves the launcher without an admin. Governance
// operations keep working.
func (l *Launcher) RenounceOwnership(env *ledger.Env) error {
	if env.Caller != l.owner {
		return ErrUnauthorized
	}
	prev := l.owner
	l.owner = common.Address{}
	l.events.Emit(LauncherOwnershipTransferredEvent{PreviousOwner: prev, NewOwner: common.Address{}})
	return nil
}

// RecoverETH sweeps native value stranded on the launcher account to the
// owner. Owner only.
func (l *Launcher) RecoverETH(env *ledger.Env) error {
	if env.Caller != l.owner {
		return ErrUnauthorized
	}
	bal := l.accounts.BalanceOf(l.address)
	if bal.IsZero() {
		return nil
	}
	return l.accounts.Transfer(l.address, l.owner, bal)
}

// RecoverERC20 sweeps launched-token balances stranded on the launcher
// account to the owner. Owner only.
func (l *Launcher) RecoverERC20(env *ledger.Env, tokenAddr common.Address, amount *uint256.Int) error {
	if env.Caller != l.owner {
		return ErrUnauthorized
	}
	tok, ok := l.factory.Get(tokenAddr)
	if !ok {
		return fmt.Errorf("token %s was not deployed by this launcher", tokenAddr.Hex())
	}
	launcherEnv := &ledger.Env{Caller: l.address, Now: env.Now}
	return tok.Transfer(launcherEnv, l.owner, amount)
}

package launcher

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/store"
	"github.com/ghostpad/ghostpad/token"
	"github.com/ghostpad/ghostpad/types"
	"github.com/ghostpad/ghostpad/zkproof"
)

// DeployToken redeems an anonymous deployment credential for a new token.
// The deposited value stays redeemable through the pool; only the credential
// is consumed here.
func (l *Launcher) DeployToken(env *ledger.Env, data *types.TokenData, pd *types.ProofData) (common.Address, error) {
	return l.deploy(env, data, pd, nil, nil)
}

// DeployTokenWithLiquidity additionally provisions liquidityTokenAmount from
// the token's contract-held share and liquidityEthAmount from the attached
// value into a locked AMM position.
func (l *Launcher) DeployTokenWithLiquidity(env *ledger.Env, data *types.TokenData, pd *types.ProofData, liquidityTokenAmount, liquidityEthAmount *uint256.Int) (common.Address, error) {
	if l.uniswap == nil {
		return common.Address{}, ErrNilCollaborator
	}
	return l.deploy(env, data, pd, liquidityTokenAmount, liquidityEthAmount)
}

func (l *Launcher) deploy(env *ledger.Env, data *types.TokenData, pd *types.ProofData, liqToken, liqETH *uint256.Int) (common.Address, error) {
	inst, err := l.GetInstance(pd.InstanceIndex)
	if err != nil {
		return common.Address{}, err
	}
	if err := l.gate.EnsureUnused(pd.NullifierHash); err != nil {
		return common.Address{}, err
	}

	in := zkproof.WithdrawInputs{
		Root:          pd.Root,
		NullifierHash: pd.NullifierHash,
		Recipient:     pd.Recipient,
		Relayer:       pd.Relayer,
		Fee:           pd.Fee,
		Refund:        pd.Refund,
	}
	if err := inst.CheckProof(pd.Proof, in); err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrProofInvalid, err)
	}
	if !l.metadataVerifier.VerifyMetadata(pd.MetadataProof, pd.MetadataHash, data.MetadataHash()) {
		return common.Address{}, ErrMetadataProofInvalid
	}

	required := new(uint256.Int).Add(pd.Fee, pd.Refund)
	if liqETH != nil {
		required.Add(required, liqETH)
	}
	if env.AttachedValue().Lt(required) {
		return common.Address{}, ErrInsufficientValue
	}

	// Everything Initialize checks is validated here first, so a rejected
	// deployment never leaves an uninitialized clone in the factory arena.
	if pd.Recipient == (common.Address{}) {
		return common.Address{}, token.ErrZeroAddress
	}
	if data.TaxRate > token.MaxTaxRate {
		return common.Address{}, token.ErrTaxRateTooHigh
	}
	split, err := l.supplySplit(data, liqToken)
	if err != nil {
		return common.Address{}, err
	}

	tok := l.factory.Clone(pd.NullifierHash)
	launcherEnv := &ledger.Env{Caller: l.address, Now: env.Now}
	if err := tok.Initialize(launcherEnv, token.InitParams{
		Name:                data.Name,
		Symbol:              data.Symbol,
		TotalSupply:         data.InitialSupply,
		Owner:               pd.Recipient,
		Description:         data.Description,
		TaxRate:             data.TaxRate,
		TaxRecipient:        data.TaxRecipient,
		BurnEnabled:         data.BurnEnabled,
		LiquidityLockPeriod: data.LiquidityLockPeriod,
		VestingEnabled:      data.VestingEnabled,
		Split:               split,
	}); err != nil {
		return common.Address{}, err
	}

	// All bookkeeping below is committed before the liquidity adapter (the
	// only collaborator that can call back into this system) runs.
	l.gate.Record(pd.NullifierHash, tok.Address())
	if l.journal != nil {
		rec := &store.DeploymentRecord{
			NullifierHash: pd.NullifierHash,
			Token:         tok.Address(),
			Name:          data.Name,
			Symbol:        data.Symbol,
		}
		if err := l.journal.PutDeployment(rec); err != nil {
			l.log.Error().Err(err).Msg("journal write failed")
		}
	}

	l.accounts.Credit(l.address, env.AttachedValue())
	if err := l.accounts.Transfer(l.address, pd.Relayer, pd.Fee); err != nil {
		return common.Address{}, err
	}
	if err := l.accounts.Transfer(l.address, pd.Recipient, pd.Refund); err != nil {
		return common.Address{}, err
	}

	l.events.Emit(TokenDeployedEvent{
		NullifierHash: pd.NullifierHash,
		Token:         tok.Address(),
		Name:          data.Name,
		Symbol:        data.Symbol,
	})
	l.log.Info().Str("token", tok.Address().Hex()).Str("symbol", data.Symbol).Msg("token deployed")

	if liqToken != nil {
		if err := l.provisionLiquidity(launcherEnv, tok, liqToken, liqETH, data.LiquidityLockPeriod); err != nil {
			return common.Address{}, err
		}
	}
	return tok.Address(), nil
}

func (l *Launcher) provisionLiquidity(launcherEnv *ledger.Env, tok *token.Token, liqToken, liqETH *uint256.Int, lockPeriod uint64) error {
	if err := tok.WithdrawToken(launcherEnv, l.uniswap.Address(), liqToken); err != nil {
		return err
	}
	if err := l.accounts.Transfer(l.address, l.uniswap.Address(), liqETH); err != nil {
		return err
	}
	info, err := l.uniswap.AddLiquidity(launcherEnv, tok, liqToken, liqETH, lockPeriod)
	if err != nil {
		return err
	}
	if err := tok.LockLiquidity(launcherEnv, info.Pair); err != nil {
		return err
	}

	l.events.Emit(LiquidityPoolCreatedEvent{
		Token:          tok.Address(),
		Pair:           info.Pair,
		LiquidityAdded: info.LPAmount,
	})
	return nil
}

// supplySplit computes the explicit initial distribution: the governance cut
// first (protocol-fee path only), then the contract-held liquidity share,
// the owner keeping the remainder.
func (l *Launcher) supplySplit(data *types.TokenData, liqToken *uint256.Int) (token.SupplySplit, error) {
	gov := uint256.NewInt(0)
	if data.UseProtocolFee {
		gov = bpShare(data.InitialSupply, l.governanceFee)
	}
	contract := uint256.NewInt(0)
	if liqToken != nil {
		contract = liqToken.Clone()
	}

	reserved := new(uint256.Int).Add(gov, contract)
	if data.InitialSupply.Lt(reserved) {
		return token.SupplySplit{}, token.ErrInvalidSupplySplit
	}
	return token.SupplySplit{
		Owner:             new(uint256.Int).Sub(data.InitialSupply, reserved),
		Governance:        gov,
		Contract:          contract,
		GovernanceAccount: l.governance,
	}, nil
}

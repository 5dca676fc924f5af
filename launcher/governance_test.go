package launcher

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/liquidity"
	"github.com/ghostpad/ghostpad/zkproof"
)

func asCaller(caller common.Address) *ledger.Env {
	return &ledger.Env{Caller: caller}
}

func Test_UpdateGovernance(t *testing.T) {
	fx := newFixture(t, zkproof.Static{Result: true})
	next := common.HexToAddress("0x0000000000000000000000000000000000000F07")

	err := fx.launcher.UpdateGovernance(asCaller(admin), next)
	require.ErrorIs(t, err, ErrUnauthorized)
	err = fx.launcher.UpdateGovernance(asCaller(governance), common.Address{})
	require.ErrorIs(t, err, ErrZeroAddress)

	require.NoError(t, fx.launcher.UpdateGovernance(asCaller(governance), next))
	require.Equal(t, next, fx.launcher.Governance())

	// The old governance account lost the role.
	err = fx.launcher.UpdateGovernance(asCaller(governance), governance)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.NoError(t, fx.launcher.UpdateGovernance(asCaller(next), governance))
}

func Test_UpdateGovernanceFee(t *testing.T) {
	fx := newFixture(t, zkproof.Static{Result: true})

	err := fx.launcher.UpdateGovernanceFee(asCaller(admin), 100)
	require.ErrorIs(t, err, ErrUnauthorized)
	err = fx.launcher.UpdateGovernanceFee(asCaller(governance), MaxGovernanceFee+1)
	require.ErrorIs(t, err, ErrFeeTooHigh)

	require.NoError(t, fx.launcher.UpdateGovernanceFee(asCaller(governance), 500))
	require.Equal(t, uint64(500), fx.launcher.GovernanceFee())
	require.Len(t, fx.events.Find("GovernanceFeeUpdated"), 1)
}

func Test_UpdateCollaborators(t *testing.T) {
	fx := newFixture(t, zkproof.Static{Result: true})

	err := fx.launcher.UpdateMetadataVerifier(asCaller(governance), metadataEquality{})
	require.ErrorIs(t, err, ErrUnauthorized)
	err = fx.launcher.UpdateMetadataVerifier(asCaller(admin), nil)
	require.ErrorIs(t, err, ErrNilCollaborator)
	require.NoError(t, fx.launcher.UpdateMetadataVerifier(asCaller(admin), zkproof.Static{Result: true}))

	err = fx.launcher.UpdateUniswapHandler(asCaller(admin), nil)
	require.ErrorIs(t, err, ErrNilCollaborator)
	replacement := liquidity.NewAdapter(liquidity.AdapterConfig{
		Tokens:   fx.factory,
		Accounts: fx.accounts,
		Events:   fx.events,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, fx.launcher.UpdateUniswapHandler(asCaller(admin), replacement))
}

func Test_LauncherOwnership(t *testing.T) {
	fx := newFixture(t, zkproof.Static{Result: true})
	next := common.HexToAddress("0x0000000000000000000000000000000000000F08")

	err := fx.launcher.TransferOwnership(asCaller(next), next)
	require.ErrorIs(t, err, ErrUnauthorized)
	err = fx.launcher.TransferOwnership(asCaller(admin), common.Address{})
	require.ErrorIs(t, err, ErrZeroAddress)

	require.NoError(t, fx.launcher.TransferOwnership(asCaller(admin), next))
	require.Equal(t, next, fx.launcher.Owner())

	require.NoError(t, fx.launcher.RenounceOwnership(asCaller(next)))
	require.Equal(t, common.Address{}, fx.launcher.Owner())
}

func Test_RecoverETH(t *testing.T) {
	fx := newFixture(t, zkproof.Static{Result: true})

	// Nothing to sweep is a no-op.
	require.NoError(t, fx.launcher.RecoverETH(asCaller(admin)))

	fx.accounts.Credit(fx.launcher.Address(), uint256.NewInt(1e18))
	err := fx.launcher.RecoverETH(asCaller(governance))
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, fx.launcher.RecoverETH(asCaller(admin)))
	require.True(t, fx.accounts.BalanceOf(admin).Eq(uint256.NewInt(1e18)))
	require.True(t, fx.accounts.BalanceOf(fx.launcher.Address()).IsZero())
}

func Test_RecoverERC20(t *testing.T) {
	fx := newFixture(t, zkproof.Static{Result: true})
	note := fx.deposit(t)
	data := tokenData()
	pd := proofData(fx, note, data)

	addr, err := fx.launcher.DeployToken(deployEnv(pd, nil), data, pd)
	require.NoError(t, err)
	tok, _ := fx.factory.Get(addr)

	// Tokens accidentally sent to the launcher are swept to its owner.
	require.NoError(t, tok.Transfer(&ledger.Env{Caller: creator}, fx.launcher.Address(), tokens(1_000)))

	err = fx.launcher.RecoverERC20(asCaller(governance), addr, tokens(1_000))
	require.ErrorIs(t, err, ErrUnauthorized)
	err = fx.launcher.RecoverERC20(asCaller(admin), common.HexToAddress("0xdead"), tokens(1))
	require.Error(t, err)

	require.NoError(t, fx.launcher.RecoverERC20(asCaller(admin), addr, tokens(1_000)))
	require.True(t, tok.BalanceOf(admin).Eq(tokens(1_000)))
	require.True(t, tok.BalanceOf(fx.launcher.Address()).IsZero())
}

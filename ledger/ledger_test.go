package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var (
	a = common.HexToAddress("0x01")
	b = common.HexToAddress("0x02")
)

func Test_Accounts(t *testing.T) {
	acc := NewAccounts()
	require.True(t, acc.BalanceOf(a).IsZero())

	acc.Credit(a, uint256.NewInt(100))
	require.True(t, acc.BalanceOf(a).Eq(uint256.NewInt(100)))

	require.NoError(t, acc.Transfer(a, b, uint256.NewInt(40)))
	require.True(t, acc.BalanceOf(a).Eq(uint256.NewInt(60)))
	require.True(t, acc.BalanceOf(b).Eq(uint256.NewInt(40)))

	// Overdraft fails without touching either balance.
	err := acc.Transfer(a, b, uint256.NewInt(61))
	require.ErrorIs(t, err, ErrInsufficientValue)
	require.True(t, acc.BalanceOf(a).Eq(uint256.NewInt(60)))
	require.True(t, acc.BalanceOf(b).Eq(uint256.NewInt(40)))

	// Zero transfers always succeed, even from unfunded accounts.
	require.NoError(t, acc.Transfer(common.HexToAddress("0x99"), b, uint256.NewInt(0)))

	// BalanceOf hands out copies.
	acc.BalanceOf(a).SetUint64(0)
	require.True(t, acc.BalanceOf(a).Eq(uint256.NewInt(60)))
}

func Test_Env(t *testing.T) {
	e := &Env{Caller: a, Now: 42}
	require.True(t, e.AttachedValue().IsZero())

	e.Value = uint256.NewInt(7)
	require.True(t, e.AttachedValue().Eq(uint256.NewInt(7)))

	derived := e.As(b)
	require.Equal(t, b, derived.Caller)
	require.Equal(t, uint64(42), derived.Now)
	require.True(t, derived.AttachedValue().Eq(uint256.NewInt(7)))
}

type testEvent struct{ N int }

func (testEvent) EventName() string { return "Test" }

type otherEvent struct{}

func (otherEvent) EventName() string { return "Other" }

func Test_Recorder(t *testing.T) {
	r := NewRecorder(zerolog.Nop())
	require.Empty(t, r.Events())

	r.Emit(testEvent{N: 1})
	r.Emit(otherEvent{})
	r.Emit(testEvent{N: 2})

	require.Len(t, r.Events(), 3)

	got := r.Find("Test")
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].(testEvent).N)
	require.Equal(t, 2, got[1].(testEvent).N)
	require.Empty(t, r.Find("Missing"))
}

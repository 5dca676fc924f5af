package zkproof

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func Test_Static(t *testing.T) {
	in := WithdrawInputs{Fee: uint256.NewInt(0), Refund: uint256.NewInt(0)}

	require.True(t, Static{Result: true}.VerifyWithdraw(nil, in))
	require.False(t, Static{Result: false}.VerifyWithdraw(nil, in))
	require.True(t, Static{Result: true}.VerifyMetadata(nil, common.Hash{}, common.Hash{}))
	require.False(t, Static{Result: false}.VerifyMetadata(nil, common.Hash{}, common.Hash{}))
}

func Test_PlonkRejectsMalformedProof(t *testing.T) {
	// A proof blob that does not even deserialize must be rejected, never
	// panic, regardless of the verifying key.
	w := NewPlonkWithdrawVerifier(nil, zerolog.Nop())
	in := WithdrawInputs{
		Root:          common.HexToHash("0x01"),
		NullifierHash: common.HexToHash("0x02"),
		Fee:           uint256.NewInt(1),
		Refund:        uint256.NewInt(0),
	}
	require.False(t, w.VerifyWithdraw([]byte("not a proof"), in))
	require.False(t, w.VerifyWithdraw(nil, in))

	m := NewPlonkMetadataVerifier(nil, zerolog.Nop())
	require.False(t, m.VerifyMetadata([]byte("not a proof"), common.HexToHash("0x01"), common.HexToHash("0x01")))
	require.False(t, m.VerifyMetadata(nil, common.HexToHash("0x01"), common.HexToHash("0x02")))
}

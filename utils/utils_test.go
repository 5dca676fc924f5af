package utils

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func Test_ZeroValue(t *testing.T) {
	// keccak256("ghostpad") reduced into the field, and stable.
	v := new(big.Int).SetBytes(ZeroValue[:])
	require.Less(t, v.Cmp(FieldSize), 0)
	require.NotEqual(t, common.Hash{}, ZeroValue)
}

func Test_MiMCHasherRegistered(t *testing.T) {
	// Constructing the hasher must not panic: the mimc package import
	// registers MIMC_BN254 with the gnark-crypto hash registry.
	require.NotPanics(t, func() {
		h := MiMCHasher()
		require.Equal(t, 32, h.Size())
	})
}

func Test_MiMCHash(t *testing.T) {
	h1 := MiMCHash([]byte{0x01})
	h2 := MiMCHash([]byte{0x01})
	require.Equal(t, h1, h2)
	require.NotEqual(t, h1, MiMCHash([]byte{0x02}))

	// Output is a field element.
	v := new(big.Int).SetBytes(h1)
	require.Less(t, v.Cmp(FieldSize), 0)

	// Multi-input hashing is order sensitive.
	ab := MiMCHash([]byte{0x0a}, []byte{0x0b})
	ba := MiMCHash([]byte{0x0b}, []byte{0x0a})
	require.NotEqual(t, ab, ba)

	// Inputs wider than the field are chunked and reduced, not rejected.
	wide := make([]byte, 64)
	for i := range wide {
		wide[i] = 0xff
	}
	require.NotEmpty(t, MiMCHash(wide))
}

func Test_HashLeftRight(t *testing.T) {
	l := common.BytesToHash(MiMCHash([]byte{0x01}))
	r := common.BytesToHash(MiMCHash([]byte{0x02}))

	lr := HashLeftRight(l, r)
	require.Equal(t, lr, HashLeftRight(l, r))
	require.NotEqual(t, lr, HashLeftRight(r, l))

	v := new(big.Int).SetBytes(lr[:])
	require.Less(t, v.Cmp(FieldSize), 0)
}

func Test_Keccak(t *testing.T) {
	h := Keccak([]byte("ghostpad"))
	require.Equal(t, h, Keccak([]byte("ghostpad")))
	require.NotEqual(t, h, Keccak([]byte("ghostpad2")))

	v := new(big.Int).SetBytes(h[:])
	require.Less(t, v.Cmp(FieldSize), 0)

	// Inputs are concatenated before hashing.
	require.Equal(t, Keccak([]byte("ab"), []byte("c")), Keccak([]byte("abc")))
}

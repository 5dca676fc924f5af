package types

import (
	crand "crypto/rand"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ghostpad/ghostpad/utils"
)

func Test_NoteRoundTrip(t *testing.T) {
	denom, _ := uint256.FromDecimal("1000000000000000000")
	n := NewNote(denom)

	s := n.String()
	require.True(t, strings.HasPrefix(s, "ghostpad-eth-"))

	parsed, err := ParseNote(s)
	require.NoError(t, err)
	require.Equal(t, n.Nullifier, parsed.Nullifier)
	require.Equal(t, n.Secret, parsed.Secret)
	require.True(t, n.Denomination.Eq(parsed.Denomination))
	require.Equal(t, n.Commitment(), parsed.Commitment())
	require.Equal(t, n.NullifierHash(), parsed.NullifierHash())
}

func Test_ParseNoteRejects(t *testing.T) {
	denom := uint256.NewInt(1)
	n := NewNote(denom)
	s := n.String()

	_, err := ParseNote("otherpad-eth-1-abcdef")
	require.Error(t, err)

	_, err = ParseNote("ghostpad-eth-1")
	require.Error(t, err)

	// Flipping a payload character breaks the base58 checksum.
	broken := []byte(s)
	last := broken[len(broken)-1]
	if last == 'z' {
		broken[len(broken)-1] = 'a'
	} else {
		broken[len(broken)-1] = last + 1
	}
	_, err = ParseNote(string(broken))
	require.Error(t, err)
}

func Test_CommitmentInField(t *testing.T) {
	n := NewNote(uint256.NewInt(1))

	c := new(uint256.Int).SetBytes(n.Commitment().Bytes())
	field, _ := uint256.FromBig(utils.FieldSize)
	require.True(t, c.Lt(field))

	nh := new(uint256.Int).SetBytes(n.NullifierHash().Bytes())
	require.True(t, nh.Lt(field))

	// Distinct notes commit to distinct leaves.
	m := NewNote(uint256.NewInt(1))
	require.NotEqual(t, n.Commitment(), m.Commitment())
	require.NotEqual(t, n.NullifierHash(), m.NullifierHash())
}

func Test_SealOpenNote(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)
	_, err := crand.Read(key)
	require.NoError(t, err)
	_, err = crand.Read(nonce)
	require.NoError(t, err)

	n := NewNote(uint256.NewInt(42))
	sealed, err := SealNote(key, nonce, n)
	require.NoError(t, err)

	opened, err := OpenNote(key, nonce, sealed)
	require.NoError(t, err)
	require.Equal(t, n.Nullifier, opened.Nullifier)
	require.Equal(t, n.Secret, opened.Secret)
	require.True(t, n.Denomination.Eq(opened.Denomination))

	// Tampered ciphertext fails authentication.
	sealed[0] ^= 0x01
	_, err = OpenNote(key, nonce, sealed)
	require.Error(t, err)
	sealed[0] ^= 0x01

	// Wrong key fails too.
	key[0] ^= 0x01
	_, err = OpenNote(key, nonce, sealed)
	require.Error(t, err)

	_, err = SealNote(key[:16], nonce, n)
	require.Error(t, err)
	_, err = SealNote(key, nonce[:8], n)
	require.Error(t, err)
}

func Test_MetadataHash(t *testing.T) {
	supply, _ := uint256.FromDecimal("1000000000000000000000000")
	td := &TokenData{
		Name:          "Ghost Token",
		Symbol:        "GHOST",
		InitialSupply: supply,
		Description:   "A privately launched token",
		TaxRate:       100,
	}

	h1 := td.MetadataHash()
	require.NotEqual(t, common.Hash{}, h1)
	require.Equal(t, h1, td.MetadataHash())

	// The hash commits to name, supply, description and tax rate.
	td2 := *td
	td2.TaxRate = 200
	require.NotEqual(t, h1, td2.MetadataHash())

	td3 := *td
	td3.Description = "changed"
	require.NotEqual(t, h1, td3.MetadataHash())

	// Symbol is not part of the commitment.
	td4 := *td
	td4.Symbol = "OTHER"
	require.Equal(t, h1, td4.MetadataHash())

	// The commitment fits the proof system's field.
	v := new(uint256.Int).SetBytes(h1.Bytes())
	field, _ := uint256.FromBig(utils.FieldSize)
	require.True(t, v.Lt(field))
}

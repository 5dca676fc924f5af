package types

import (
	crand "crypto/rand"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ghostpad/ghostpad/utils"
)

// noteVersion tags the base58 payload of an encoded note.
const noteVersion = 0x01

const notePrefix = "ghostpad-eth-"

// PreimageSize is the byte length of the nullifier and secret. 31 bytes keeps
// each preimage strictly below the BN254 scalar field modulus.
const PreimageSize = 31

// Note is the depositor's secret material. Its commitment is inserted into
// the pool's tree at deposit time; revealing the nullifier hash later proves
// knowledge of some commitment without identifying which one.
type Note struct {
	Nullifier    [PreimageSize]byte
	Secret       [PreimageSize]byte
	Denomination *uint256.Int
}

func NewNote(denomination *uint256.Int) *Note {
	n := &Note{Denomination: denomination.Clone()}
	if _, err := crand.Read(n.Nullifier[:]); err != nil {
		panic(err)
	}
	if _, err := crand.Read(n.Secret[:]); err != nil {
		panic(err)
	}
	return n
}

// Commitment is the tree leaf: MiMC(nullifier, secret).
func (n *Note) Commitment() common.Hash {
	return common.BytesToHash(utils.MiMCHash(n.Nullifier[:], n.Secret[:]))
}

// NullifierHash is the one-time-use credential: MiMC(nullifier).
func (n *Note) NullifierHash() common.Hash {
	return common.BytesToHash(utils.MiMCHash(n.Nullifier[:]))
}

// String encodes the note as "ghostpad-eth-<denomination>-<base58 payload>".
func (n *Note) String() string {
	payload := make([]byte, 0, 2*PreimageSize)
	payload = append(payload, n.Nullifier[:]...)
	payload = append(payload, n.Secret[:]...)
	return fmt.Sprintf("%s%s-%s", notePrefix, n.Denomination.Dec(), base58.CheckEncode(payload, noteVersion))
}

func ParseNote(s string) (*Note, error) {
	if !strings.HasPrefix(s, notePrefix) {
		return nil, fmt.Errorf("wrong note prefix: got(%s)", s)
	}
	rest := s[len(notePrefix):]
	sep := strings.LastIndexByte(rest, '-')
	if sep < 0 {
		return nil, fmt.Errorf("malformed note: missing payload separator")
	}

	denom, err := uint256.FromDecimal(rest[:sep])
	if err != nil {
		return nil, fmt.Errorf("malformed note denomination: %w", err)
	}

	payload, ver, err := base58.CheckDecode(rest[sep+1:])
	if err != nil {
		return nil, err
	}
	if ver != noteVersion {
		return nil, fmt.Errorf("wrong note version: expected(%d), got(%d)", noteVersion, ver)
	}
	if len(payload) != 2*PreimageSize {
		return nil, fmt.Errorf("wrong note payload size: expected(%d), got(%d)", 2*PreimageSize, len(payload))
	}

	n := &Note{Denomination: denom}
	copy(n.Nullifier[:], payload[:PreimageSize])
	copy(n.Secret[:], payload[PreimageSize:])
	return n, nil
}

package utils

import (
	"hash"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	_ "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc" // registers MIMC_BN254
	gnark_hash "github.com/consensys/gnark-crypto/hash"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// FieldSize is the BN254 scalar field modulus. Every value stored in the
// commitment tree must be a canonical element of this field.
var FieldSize = fr.Modulus()

// ZeroValue is the leaf value of an empty tree position:
// keccak256("ghostpad") reduced into the field.
var ZeroValue = func() common.Hash {
	h := new(big.Int).SetBytes(ethcrypto.Keccak256([]byte("ghostpad")))
	h.Mod(h, FieldSize)
	return common.BigToHash(h)
}()

func MiMCHasher() hash.Hash {
	return gnark_hash.MIMC_BN254.New()
}

// MiMCHash absorbs the inputs in 32-byte chunks, reducing each chunk into the
// field before it is written.
func MiMCHash(ins ...[]byte) []byte {
	hasher := MiMCHasher()

	blockSize := hasher.Size()

	hasher.Reset()
	for _, in := range ins {
		for i := 0; i < len(in); i += blockSize {
			end := i + blockSize
			if end > len(in) {
				end = len(in)
			}
			chunk := in[i:end]

			// this value may be greater than the modulus; convert to
			// fr.Element and write the canonical form. Short chunks are
			// left-padded to a full block the same way.
			var elem fr.Element
			elem.SetBytes(chunk)
			if _, err := hasher.Write(elem.Marshal()); err != nil {
				panic(err)
			}
		}
	}
	return hasher.Sum(nil)
}

// HashLeftRight is the 2-to-1 compression used at every tree level.
func HashLeftRight(left, right common.Hash) common.Hash {
	return common.BytesToHash(MiMCHash(left[:], right[:]))
}

// Keccak reduces keccak256(ins...) into the field, so the result is always a
// valid tree leaf.
func Keccak(ins ...[]byte) common.Hash {
	h := new(big.Int).SetBytes(ethcrypto.Keccak256(ins...))
	h.Mod(h, FieldSize)
	return common.BigToHash(h)
}

package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/chacha20poly1305"
)

// SealNote encrypts the note under a ChaCha20-Poly1305 AEAD so a depositor
// can hand an opaque backup of it to a relayer or a custodial store. The key
// is 32 bytes, the nonce 12 bytes and must be unique per key.
func SealNote(key, nonce []byte, note *Note) ([]byte, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("invalid key size: must be %d bytes", chacha20poly1305.KeySize)
	}
	if len(nonce) != chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("invalid nonce size: must be %d bytes", chacha20poly1305.NonceSize)
	}

	plaintext, err := rlp.EncodeToBytes([]interface{}{
		note.Nullifier[:],
		note.Secret[:],
		note.Denomination.ToBig(),
	})
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 AEAD: %w", err)
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// OpenNote decrypts and authenticates a sealed note.
func OpenNote(key, nonce, ciphertext []byte) (*Note, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("invalid key size: must be %d bytes", chacha20poly1305.KeySize)
	}
	if len(nonce) != chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("invalid nonce size: must be %d bytes", chacha20poly1305.NonceSize)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 AEAD: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// wrong key/nonce, or the ciphertext has been tampered with
		return nil, fmt.Errorf("failed to decrypt note: %w", err)
	}

	var dec struct {
		Nullifier    []byte
		Secret       []byte
		Denomination *big.Int
	}
	if err := rlp.DecodeBytes(plaintext, &dec); err != nil {
		return nil, err
	}
	if len(dec.Nullifier) != PreimageSize || len(dec.Secret) != PreimageSize {
		return nil, fmt.Errorf("wrong note payload size")
	}
	denom, overflow := uint256.FromBig(dec.Denomination)
	if overflow {
		return nil, fmt.Errorf("note denomination overflows uint256")
	}

	n := &Note{Denomination: denom}
	copy(n.Nullifier[:], dec.Nullifier)
	copy(n.Secret[:], dec.Secret)
	return n, nil
}

package zkproof

import (
	"bytes"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// withdrawAssignment shapes the public witness of a withdrawal proof. The
// constraint system itself is compiled and set up in the external proving
// toolchain; only the verifying key and this public-input layout are needed
// here.
type withdrawAssignment struct {
	Root          frontend.Variable `gnark:",public"`
	NullifierHash frontend.Variable `gnark:",public"`
	Recipient     frontend.Variable `gnark:",public"`
	Relayer       frontend.Variable `gnark:",public"`
	Fee           frontend.Variable `gnark:",public"`
	Refund        frontend.Variable `gnark:",public"`
}

func (c *withdrawAssignment) Define(frontend.API) error {
	// public-input layout only; constraints live with the proving setup
	return nil
}

type metadataAssignment struct {
	Declared frontend.Variable `gnark:",public"`
	Computed frontend.Variable `gnark:",public"`
}

func (c *metadataAssignment) Define(frontend.API) error {
	return nil
}

// PlonkWithdrawVerifier verifies PLONK withdrawal proofs against a verifying
// key produced by the pool's trusted setup.
type PlonkWithdrawVerifier struct {
	vk  plonk.VerifyingKey
	log zerolog.Logger
}

func NewPlonkWithdrawVerifier(vk plonk.VerifyingKey, log zerolog.Logger) *PlonkWithdrawVerifier {
	return &PlonkWithdrawVerifier{vk: vk, log: log}
}

func (v *PlonkWithdrawVerifier) VerifyWithdraw(bzProof []byte, in WithdrawInputs) bool {
	proof := plonk.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewBuffer(bzProof)); err != nil {
		v.log.Debug().Err(err).Msg("malformed withdrawal proof")
		return false
	}

	assignment := withdrawAssignment{
		Root:          new(big.Int).SetBytes(in.Root[:]),
		NullifierHash: new(big.Int).SetBytes(in.NullifierHash[:]),
		Recipient:     new(big.Int).SetBytes(in.Recipient[:]),
		Relayer:       new(big.Int).SetBytes(in.Relayer[:]),
		Fee:           in.Fee.ToBig(),
		Refund:        in.Refund.ToBig(),
	}
	pubWtn, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		v.log.Debug().Err(err).Msg("cannot build public witness")
		return false
	}
	if err := plonk.Verify(proof, v.vk, pubWtn); err != nil {
		v.log.Debug().Err(err).Msg("withdrawal proof rejected")
		return false
	}
	return true
}

// PlonkMetadataVerifier verifies PLONK proofs binding declared token
// parameters to their pre-deployment commitment.
type PlonkMetadataVerifier struct {
	vk  plonk.VerifyingKey
	log zerolog.Logger
}

func NewPlonkMetadataVerifier(vk plonk.VerifyingKey, log zerolog.Logger) *PlonkMetadataVerifier {
	return &PlonkMetadataVerifier{vk: vk, log: log}
}

func (v *PlonkMetadataVerifier) VerifyMetadata(bzProof []byte, declared, computed common.Hash) bool {
	proof := plonk.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewBuffer(bzProof)); err != nil {
		v.log.Debug().Err(err).Msg("malformed metadata proof")
		return false
	}

	assignment := metadataAssignment{
		Declared: new(big.Int).SetBytes(declared[:]),
		Computed: new(big.Int).SetBytes(computed[:]),
	}
	pubWtn, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		v.log.Debug().Err(err).Msg("cannot build public witness")
		return false
	}
	if err := plonk.Verify(proof, v.vk, pubWtn); err != nil {
		v.log.Debug().Err(err).Msg("metadata proof rejected")
		return false
	}
	return true
}

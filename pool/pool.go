// Package pool implements a fixed-denomination shielded pool: deposits insert
// commitments into a merkle accumulator, withdrawals redeem them against a
// zero-knowledge proof, and a write-once nullifier registry prevents any note
// from being spent twice.
package pool

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/merkle"
	"github.com/ghostpad/ghostpad/store"
	"github.com/ghostpad/ghostpad/utils"
	"github.com/ghostpad/ghostpad/zkproof"
)

var (
	ErrInvalidValue           = errors.New("attached value must equal the pool denomination")
	ErrCommitmentExists       = errors.New("commitment has already been submitted")
	ErrNoteAlreadySpent       = errors.New("note has already been spent")
	ErrUnknownRoot            = errors.New("root is not in the recent history")
	ErrProofInvalid           = errors.New("withdrawal proof rejected")
	ErrFeeExceedsDenomination = errors.New("fee exceeds the pool denomination")
	ErrNonZeroRefund          = errors.New("refund must be zero for a native-value pool")
)

// Config assembles a pool instance. Denomination and tree depth are fixed for
// the lifetime of the pool.
type Config struct {
	InstanceID   uint32
	Denomination *uint256.Int
	Levels       int
	Verifier     zkproof.WithdrawVerifier
	Accounts     *ledger.Accounts
	Events       *ledger.Recorder
	Journal      *store.Journal // optional
	Logger       zerolog.Logger
}

// Pool is one shielded pool instance. All mutating operations are
// all-or-nothing: every precondition is checked before the first state write.
type Pool struct {
	id           uint32
	address      common.Address
	denomination *uint256.Int
	tree         *merkle.Tree

	commitments map[common.Hash]bool
	spent       map[common.Hash]bool

	verifier zkproof.WithdrawVerifier
	accounts *ledger.Accounts
	events   *ledger.Recorder
	journal  *store.Journal
	log      zerolog.Logger
}

func NewPool(cfg Config) (*Pool, error) {
	if cfg.Denomination == nil || cfg.Denomination.IsZero() {
		return nil, fmt.Errorf("pool denomination must be non-zero")
	}
	tree, err := merkle.NewTree(cfg.Levels)
	if err != nil {
		return nil, err
	}

	denomBytes := cfg.Denomination.Bytes32()
	addr := common.BytesToAddress(utils.Keccak([]byte("ghostpad.pool"), denomBytes[:]).Bytes()[12:])

	return &Pool{
		id:           cfg.InstanceID,
		address:      addr,
		denomination: cfg.Denomination.Clone(),
		tree:         tree,
		commitments:  make(map[common.Hash]bool),
		spent:        make(map[common.Hash]bool),
		verifier:     cfg.Verifier,
		accounts:     cfg.Accounts,
		events:       cfg.Events,
		journal:      cfg.Journal,
		log:          cfg.Logger.With().Uint32("pool", cfg.InstanceID).Logger(),
	}, nil
}

func (p *Pool) Address() common.Address {
	return p.address
}

func (p *Pool) Denomination() *uint256.Int {
	return p.denomination.Clone()
}

func (p *Pool) LastRoot() common.Hash {
	return p.tree.LastRoot()
}

func (p *Pool) IsKnownRoot(root common.Hash) bool {
	return p.tree.IsKnownRoot(root)
}

func (p *Pool) NextIndex() uint32 {
	return p.tree.NextIndex()
}

// Deposit inserts a commitment, crediting the pool with the attached value.
// The attached value must equal the denomination exactly.
func (p *Pool) Deposit(env *ledger.Env, commitment common.Hash) (uint32, error) {
	if !env.AttachedValue().Eq(p.denomination) {
		return 0, ErrInvalidValue
	}
	if p.commitments[commitment] {
		return 0, ErrCommitmentExists
	}

	index, err := p.tree.Insert(commitment)
	if err != nil {
		return 0, err
	}
	p.commitments[commitment] = true
	p.accounts.Credit(p.address, p.denomination)

	if p.journal != nil {
		if err := p.journal.PutDeposit(p.id, index, commitment); err != nil {
			p.log.Error().Err(err).Uint32("leaf", index).Msg("journal write failed")
		}
	}

	p.events.Emit(DepositEvent{Commitment: commitment, LeafIndex: index, Timestamp: env.Now})
	p.log.Info().Hex("commitment", commitment[:]).Uint32("leaf", index).Msg("deposit recorded")
	return index, nil
}

// CheckProof verifies a withdrawal proof against this instance without
// spending anything. The launcher uses it to validate a deployment credential
// while leaving the deposited value redeemable.
func (p *Pool) CheckProof(proof []byte, in zkproof.WithdrawInputs) error {
	if !p.tree.IsKnownRoot(in.Root) {
		return ErrUnknownRoot
	}
	if !p.verifier.VerifyWithdraw(proof, in) {
		return ErrProofInvalid
	}
	return nil
}

// Withdraw redeems a note: verifies the proof, marks the nullifier hash spent
// and pays out the denomination, fee to the relayer and the rest to the
// recipient. The spent mark is committed before any value moves.
func (p *Pool) Withdraw(env *ledger.Env, proof []byte, in zkproof.WithdrawInputs) error {
	if in.Fee.Gt(p.denomination) {
		return ErrFeeExceedsDenomination
	}
	// The refund public input exists for token-denominated instances; this
	// pool pays out native value, so a non-zero refund is meaningless here.
	if in.Refund != nil && !in.Refund.IsZero() {
		return ErrNonZeroRefund
	}
	if p.spent[in.NullifierHash] {
		return ErrNoteAlreadySpent
	}
	if err := p.CheckProof(proof, in); err != nil {
		return err
	}

	p.spent[in.NullifierHash] = true

	payout := new(uint256.Int).Sub(p.denomination, in.Fee)
	if err := p.accounts.Transfer(p.address, in.Recipient, payout); err != nil {
		return err
	}
	if err := p.accounts.Transfer(p.address, in.Relayer, in.Fee); err != nil {
		return err
	}

	p.events.Emit(WithdrawalEvent{To: in.Recipient, NullifierHash: in.NullifierHash, Relayer: in.Relayer, Fee: in.Fee.Clone()})
	p.log.Info().Hex("nullifierHash", in.NullifierHash[:]).Msg("withdrawal recorded")
	return nil
}

// IsSpent reports whether the nullifier hash has been redeemed.
func (p *Pool) IsSpent(nullifierHash common.Hash) bool {
	return p.spent[nullifierHash]
}

func (p *Pool) IsSpentArray(nullifierHashes []common.Hash) []bool {
	out := make([]bool, len(nullifierHashes))
	for i, h := range nullifierHashes {
		out[i] = p.spent[h]
	}
	return out
}

// Restore replays the journaled deposit log into a freshly constructed pool.
func (p *Pool) Restore() error {
	if p.journal == nil {
		return nil
	}
	commitments, err := p.journal.Deposits(p.id)
	if err != nil {
		return err
	}
	for _, c := range commitments {
		if _, err := p.tree.Insert(c); err != nil {
			return err
		}
		p.commitments[c] = true
		p.accounts.Credit(p.address, p.denomination)
	}
	if len(commitments) > 0 {
		p.log.Info().Int("deposits", len(commitments)).Msg("pool state restored from journal")
	}
	return nil
}

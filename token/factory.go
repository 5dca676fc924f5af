package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/utils"
)

// Factory is the clone arena: every launched token is a record in it, shared
// logic lives on Token. Identity is derived from the deployment credential,
// so re-cloning for the same nullifier hash is idempotent and the address is
// computable before deployment.
type Factory struct {
	tokens []*Token
	byAddr map[common.Address]*Token

	events *ledger.Recorder
	log    zerolog.Logger
}

func NewFactory(events *ledger.Recorder, log zerolog.Logger) *Factory {
	return &Factory{
		byAddr: make(map[common.Address]*Token),
		events: events,
		log:    log,
	}
}

// CloneAddress is the deterministic address of the token cloned for a given
// nullifier hash.
func CloneAddress(nullifierHash common.Hash) common.Address {
	h := utils.Keccak([]byte("ghostpad.token"), nullifierHash[:])
	return common.BytesToAddress(h[12:])
}

// Clone returns the token instance bound to the nullifier hash, creating an
// uninitialized one on first use.
func (f *Factory) Clone(nullifierHash common.Hash) *Token {
	addr := CloneAddress(nullifierHash)
	if t, ok := f.byAddr[addr]; ok {
		return t
	}
	t := newToken(addr, f.events, f.log)
	f.tokens = append(f.tokens, t)
	f.byAddr[addr] = t
	return t
}

func (f *Factory) Get(addr common.Address) (*Token, bool) {
	t, ok := f.byAddr[addr]
	return t, ok
}

func (f *Factory) Count() int {
	return len(f.tokens)
}

package launcher

import (
	"github.com/ethereum/go-ethereum/common"
)

// DeploymentGate enforces at-most-one token deployment per nullifier hash.
// The used mark transitions false to true exactly once and is never reset;
// the record is written before any external collaborator is called, so a
// re-entrant call cannot observe the hash as unused.
type DeploymentGate struct {
	used   map[common.Hash]bool
	tokens map[common.Hash]common.Address
}

func NewDeploymentGate() *DeploymentGate {
	return &DeploymentGate{
		used:   make(map[common.Hash]bool),
		tokens: make(map[common.Hash]common.Address),
	}
}

func (g *DeploymentGate) EnsureUnused(nullifierHash common.Hash) error {
	if g.used[nullifierHash] {
		return ErrNullifierAlreadyUsed
	}
	return nil
}

func (g *DeploymentGate) Used(nullifierHash common.Hash) bool {
	return g.used[nullifierHash]
}

// Record marks the hash used and binds it to the deployed token.
// Irreversible.
func (g *DeploymentGate) Record(nullifierHash common.Hash, tok common.Address) {
	g.used[nullifierHash] = true
	g.tokens[nullifierHash] = tok
}

// Token returns the token deployed for the nullifier hash, if any.
func (g *DeploymentGate) Token(nullifierHash common.Hash) (common.Address, bool) {
	tok, ok := g.tokens[nullifierHash]
	return tok, ok
}

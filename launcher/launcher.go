// Package launcher is the deployment orchestrator: it validates a withdrawal
// credential against a shielded pool instance, gates it through the one-time
// nullifier registry, clones and initializes the token, and optionally
// provisions locked liquidity. All bookkeeping is committed before any call
// out to an external collaborator.
package launcher

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/liquidity"
	"github.com/ghostpad/ghostpad/pool"
	"github.com/ghostpad/ghostpad/store"
	"github.com/ghostpad/ghostpad/token"
	"github.com/ghostpad/ghostpad/utils"
	"github.com/ghostpad/ghostpad/zkproof"
)

// MaxGovernanceFee caps the protocol's cut of newly deployed supply, in
// basis points.
const MaxGovernanceFee = 1000

type Config struct {
	Owner            common.Address
	Governance       common.Address
	GovernanceFee    uint64
	TokenFactory     *token.Factory
	Instances        []*pool.Pool
	MetadataVerifier zkproof.MetadataVerifier
	Uniswap          *liquidity.Adapter
	Accounts         *ledger.Accounts
	Events           *ledger.Recorder
	Journal          *store.Journal // optional
	Logger           zerolog.Logger
}

// Launcher coordinates proof checks, nullifier gating, token instantiation
// and fee/liquidity distribution. The pool instance registry is fixed at
// construction.
type Launcher struct {
	address    common.Address
	owner      common.Address
	governance common.Address

	governanceFee uint64

	factory          *token.Factory
	instances        []*pool.Pool
	metadataVerifier zkproof.MetadataVerifier
	uniswap          *liquidity.Adapter
	gate             *DeploymentGate

	accounts *ledger.Accounts
	events   *ledger.Recorder
	journal  *store.Journal
	log      zerolog.Logger
}

func New(cfg Config) (*Launcher, error) {
	if cfg.Owner == (common.Address{}) || cfg.Governance == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	if cfg.GovernanceFee > MaxGovernanceFee {
		return nil, ErrFeeTooHigh
	}
	if cfg.TokenFactory == nil || cfg.MetadataVerifier == nil {
		return nil, ErrNilCollaborator
	}
	if len(cfg.Instances) == 0 {
		return nil, fmt.Errorf("at least one pool instance is required")
	}

	return &Launcher{
		address:          common.BytesToAddress(utils.Keccak([]byte("ghostpad.launcher")).Bytes()[12:]),
		owner:            cfg.Owner,
		governance:       cfg.Governance,
		governanceFee:    cfg.GovernanceFee,
		factory:          cfg.TokenFactory,
		instances:        cfg.Instances,
		metadataVerifier: cfg.MetadataVerifier,
		uniswap:          cfg.Uniswap,
		gate:             NewDeploymentGate(),
		accounts:         cfg.Accounts,
		events:           cfg.Events,
		journal:          cfg.Journal,
		log:              cfg.Logger,
	}, nil
}

func (l *Launcher) Address() common.Address { return l.address }
func (l *Launcher) Owner() common.Address { return l.owner }
func (l *Launcher) Governance() common.Address { return l.governance }
func (l *Launcher) GovernanceFee() uint64 { return l.governanceFee }
func (l *Launcher) InstanceCount() int { return len(l.instances) }

// GetInstance returns the pool at the given registry index.
func (l *Launcher) GetInstance(index int) (*pool.Pool, error) {
	if index < 0 || index >= len(l.instances) {
		return nil, ErrInvalidInstanceIndex
	}
	return l.instances[index], nil
}

// NullifierHashUsed reports whether a deployment consumed the hash.
func (l *Launcher) NullifierHashUsed(nullifierHash common.Hash) bool {
	return l.gate.Used(nullifierHash)
}

// GetDeployedToken returns the token deployed for the nullifier hash.
func (l *Launcher) GetDeployedToken(nullifierHash common.Hash) (common.Address, bool) {
	return l.gate.Token(nullifierHash)
}

// RestoreDeployments re-arms the deployment gate from the journal.
func (l *Launcher) RestoreDeployments() error {
	if l.journal == nil {
		return nil
	}
	recs, err := l.journal.Deployments()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		l.gate.Record(rec.NullifierHash, rec.Token)
	}
	if len(recs) > 0 {
		l.log.Info().Int("deployments", len(recs)).Msg("deployment gate restored from journal")
	}
	return nil
}

// bpShare computes amount * bp / 10000 without intermediate overflow.
func bpShare(amount *uint256.Int, bp uint64) *uint256.Int {
	rate := uint256.NewInt(bp)
	denom := uint256.NewInt(10000)
	q := new(uint256.Int).Div(amount, denom)
	r := new(uint256.Int).Mod(amount, denom)
	q.Mul(q, rate)
	r.Mul(r, rate)
	r.Div(r, denom)
	return q.Add(q, r)
}

// Package liquidity wraps the external automated market maker: pair
// creation, initial liquidity provisioning, and time-locked custody of the
// LP position until the lock expires and the token owner may claim it.
package liquidity

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/token"
	"github.com/ghostpad/ghostpad/utils"
)

var (
	ErrLiquidityStillLocked = errors.New("liquidity lock period has not elapsed")
	ErrNoLiquidity          = errors.New("no liquidity recorded for token")
	ErrAlreadyTransferred   = errors.New("LP tokens already transferred")
)

// deadlineWindow is how far in the future the AMM deadline is set, in
// seconds. The deadline is a wall-clock check inside the router, not a wait.
const deadlineWindow = 600

// Pair is the AMM pair's LP token surface the adapter needs.
type Pair interface {
	Address() common.Address
	BalanceOf(owner common.Address) *uint256.Int
	Transfer(from, to common.Address, amount *uint256.Int) error
}

// PairFactory is the external AMM factory.
type PairFactory interface {
	GetPair(tokenA, tokenB common.Address) (Pair, bool)
	CreatePair(tokenA, tokenB common.Address) (Pair, error)
}

// Router is the external AMM router. AddLiquidityETH takes the native side
// from the caller's account and mints the LP position to the adapter.
type Router interface {
	Address() common.Address
	WETH() common.Address
	AddLiquidityETH(env *ledger.Env, tok common.Address, amountToken, amountETH *uint256.Int, to common.Address, deadline uint64) (addedToken, addedETH, liquidity *uint256.Int, err error)
}

// Info is the adapter's custody record for one token's LP position.
type Info struct {
	Pair        common.Address
	LPAmount    *uint256.Int
	IsLocked    bool
	UnlockTime  uint64
	Transferred bool
}

type AdapterConfig struct {
	Router   Router
	Pairs    PairFactory
	Tokens   *token.Factory
	Accounts *ledger.Accounts
	Events   *ledger.Recorder
	Logger   zerolog.Logger
}

// Adapter holds the LP positions of launched tokens until their lock
// expires.
type Adapter struct {
	address common.Address
	router  Router
	pairs   PairFactory
	tokens  *token.Factory

	infos    map[common.Address]*Info
	pairRefs map[common.Address]Pair

	accounts *ledger.Accounts
	events   *ledger.Recorder
	log      zerolog.Logger
}

func NewAdapter(cfg AdapterConfig) *Adapter {
	addr := common.BytesToAddress(utils.Keccak([]byte("ghostpad.liquidity")).Bytes()[12:])
	return &Adapter{
		address:  addr,
		router:   cfg.Router,
		pairs:    cfg.Pairs,
		tokens:   cfg.Tokens,
		infos:    make(map[common.Address]*Info),
		pairRefs: make(map[common.Address]Pair),
		accounts: cfg.Accounts,
		events:   cfg.Events,
		log:      cfg.Logger,
	}
}

func (a *Adapter) Address() common.Address {
	return a.address
}

// CreatePair returns the token/WETH pair, asking the factory to create it
// only if it does not exist yet.
func (a *Adapter) CreatePair(tok common.Address) (Pair, error) {
	if p, ok := a.pairs.GetPair(tok, a.router.WETH()); ok {
		return p, nil
	}
	return a.pairs.CreatePair(tok, a.router.WETH())
}

// PairExists reports whether the AMM already has a pair for the token.
func (a *Adapter) PairExists(tok common.Address) bool {
	_, ok := a.pairs.GetPair(tok, a.router.WETH())
	return ok
}

// AddLiquidity supplies tokenAmount (already held by the adapter) and
// ethAmount (already credited to the adapter's account) to the AMM, and
// locks the minted LP position for lockPeriod seconds.
func (a *Adapter) AddLiquidity(env *ledger.Env, tok *token.Token, tokenAmount, ethAmount *uint256.Int, lockPeriod uint64) (*Info, error) {
	pair, err := a.CreatePair(tok.Address())
	if err != nil {
		return nil, err
	}

	adapterEnv := &ledger.Env{Caller: a.address, Now: env.Now}
	if err := tok.Approve(adapterEnv, a.router.Address(), tokenAmount); err != nil {
		return nil, err
	}
	addedToken, addedETH, lp, err := a.router.AddLiquidityETH(
		adapterEnv, tok.Address(), tokenAmount, ethAmount, a.address, env.Now+deadlineWindow)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Pair:       pair.Address(),
		LPAmount:   lp.Clone(),
		IsLocked:   true,
		UnlockTime: env.Now + lockPeriod,
	}
	a.infos[tok.Address()] = info
	a.pairRefs[tok.Address()] = pair

	a.events.Emit(LiquidityAddedEvent{Token: tok.Address(), Pair: pair.Address(), AmountToken: addedToken.Clone(), AmountETH: addedETH.Clone(), Liquidity: lp.Clone()})
	a.events.Emit(LiquidityLockedEvent{Token: tok.Address(), Pair: pair.Address(), UnlockTime: info.UnlockTime})
	a.log.Info().Str("token", tok.Address().Hex()).Str("pair", pair.Address().Hex()).Msg("liquidity added and locked")

	cp := *info
	return &cp, nil
}

// TransferLPTokens releases the held LP position to the token's current
// owner once the lock has expired. One-shot per token.
func (a *Adapter) TransferLPTokens(env *ledger.Env, tokenAddr common.Address) error {
	info, ok := a.infos[tokenAddr]
	if !ok {
		return ErrNoLiquidity
	}
	if info.Transferred {
		return ErrAlreadyTransferred
	}
	if env.Now < info.UnlockTime {
		return ErrLiquidityStillLocked
	}
	tok, ok := a.tokens.Get(tokenAddr)
	if !ok {
		return ErrNoLiquidity
	}

	pair := a.pairRefs[tokenAddr]
	balance := pair.BalanceOf(a.address)
	if err := pair.Transfer(a.address, tok.Owner(), balance); err != nil {
		return err
	}
	info.Transferred = true
	info.IsLocked = false

	a.events.Emit(LPTokensTransferredEvent{Token: tokenAddr, To: tok.Owner(), Amount: balance})
	return nil
}

// GetLiquidityInfo returns a copy of the custody record for the token.
func (a *Adapter) GetLiquidityInfo(tokenAddr common.Address) (Info, bool) {
	info, ok := a.infos[tokenAddr]
	if !ok {
		return Info{}, false
	}
	cp := *info
	cp.LPAmount = info.LPAmount.Clone()
	return cp, true
}

package liquidity

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/token"
	"github.com/ghostpad/ghostpad/utils"
)

// Mock AMM used in tests and local runs: constant-free pair bookkeeping with
// sqrt(k) LP minting and no pricing curve.

var ErrDeadlineExpired = errors.New("AMM deadline expired")

type MockPair struct {
	address      common.Address
	balances     map[common.Address]*uint256.Int
	reserveToken *uint256.Int
	reserveETH   *uint256.Int
}

func (p *MockPair) Address() common.Address {
	return p.address
}

func (p *MockPair) BalanceOf(owner common.Address) *uint256.Int {
	if b, ok := p.balances[owner]; ok {
		return b.Clone()
	}
	return uint256.NewInt(0)
}

func (p *MockPair) Transfer(from, to common.Address, amount *uint256.Int) error {
	b, ok := p.balances[from]
	if !ok || b.Lt(amount) {
		return errors.New("LP balance too low")
	}
	b.Sub(b, amount)
	p.mint(to, amount)
	return nil
}

func (p *MockPair) mint(to common.Address, amount *uint256.Int) {
	b, ok := p.balances[to]
	if !ok {
		b = uint256.NewInt(0)
		p.balances[to] = b
	}
	b.Add(b, amount)
}

type MockPairFactory struct {
	pairs map[[2]common.Address]*MockPair
}

func NewMockPairFactory() *MockPairFactory {
	return &MockPairFactory{pairs: make(map[[2]common.Address]*MockPair)}
}

func pairKey(a, b common.Address) [2]common.Address {
	if b.Cmp(a) < 0 {
		a, b = b, a
	}
	return [2]common.Address{a, b}
}

func (f *MockPairFactory) GetPair(tokenA, tokenB common.Address) (Pair, bool) {
	p, ok := f.pairs[pairKey(tokenA, tokenB)]
	if !ok {
		return nil, false
	}
	return p, true
}

func (f *MockPairFactory) CreatePair(tokenA, tokenB common.Address) (Pair, error) {
	key := pairKey(tokenA, tokenB)
	if p, ok := f.pairs[key]; ok {
		return p, nil
	}
	addr := common.BytesToAddress(utils.Keccak([]byte("ghostpad.pair"), key[0][:], key[1][:]).Bytes()[12:])
	p := &MockPair{
		address:      addr,
		balances:     make(map[common.Address]*uint256.Int),
		reserveToken: uint256.NewInt(0),
		reserveETH:   uint256.NewInt(0),
	}
	f.pairs[key] = p
	return p, nil
}

type MockRouter struct {
	address  common.Address
	weth     common.Address
	tokens   *token.Factory
	accounts *ledger.Accounts
	pairs    *MockPairFactory
}

func NewMockRouter(tokens *token.Factory, accounts *ledger.Accounts, pairs *MockPairFactory) *MockRouter {
	return &MockRouter{
		address:  common.BytesToAddress(utils.Keccak([]byte("ghostpad.mockrouter")).Bytes()[12:]),
		weth:     common.BytesToAddress(utils.Keccak([]byte("ghostpad.weth")).Bytes()[12:]),
		tokens:   tokens,
		accounts: accounts,
		pairs:    pairs,
	}
}

func (r *MockRouter) Address() common.Address { return r.address }
func (r *MockRouter) WETH() common.Address { return r.weth }

// AddLiquidityETH pulls the token side from the caller via its allowance,
// moves the native side from the caller's account into the pair, and mints
// sqrt(amountToken * amountETH) LP to the recipient.
func (r *MockRouter) AddLiquidityETH(env *ledger.Env, tokAddr common.Address, amountToken, amountETH *uint256.Int, to common.Address, deadline uint64) (*uint256.Int, *uint256.Int, *uint256.Int, error) {
	if env.Now > deadline {
		return nil, nil, nil, ErrDeadlineExpired
	}
	tok, ok := r.tokens.Get(tokAddr)
	if !ok {
		return nil, nil, nil, errors.New("unknown token")
	}
	pair, err := r.pairs.CreatePair(tokAddr, r.weth)
	if err != nil {
		return nil, nil, nil, err
	}
	mp := pair.(*MockPair)

	// A tax-on-transfer token delivers less than amountToken to the pair;
	// reserves track what actually arrived.
	before := tok.BalanceOf(mp.address)
	routerEnv := &ledger.Env{Caller: r.address, Now: env.Now}
	if err := tok.TransferFrom(routerEnv, env.Caller, mp.address, amountToken); err != nil {
		return nil, nil, nil, err
	}
	delivered := tok.BalanceOf(mp.address)
	delivered.Sub(delivered, before)
	if err := r.accounts.Transfer(env.Caller, mp.address, amountETH); err != nil {
		return nil, nil, nil, err
	}

	mp.reserveToken.Add(mp.reserveToken, delivered)
	mp.reserveETH.Add(mp.reserveETH, amountETH)

	lp := new(uint256.Int).Mul(delivered, amountETH)
	lp.Sqrt(lp)
	mp.mint(to, lp)

	return delivered, amountETH.Clone(), lp, nil
}

// Package token implements the launchpad's token economics engine: an ERC20
// style balance map with tax-on-transfer, an owner-gated burn toggle, linear
// vesting with cliffs, a liquidity time lock, and a one-way configuration
// lock. Instances are cloned from a factory arena and initialized exactly
// once by the deployment orchestrator.
package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/ghostpad/ghostpad/ledger"
)

// Decimals is fixed for every launched token.
const Decimals = 18

// MaxTaxRate is the protocol ceiling on the transfer tax, in basis points.
const MaxTaxRate = 1000

const bpDenominator = 10000

// SupplySplit is the explicit initial distribution of the total supply. The
// orchestrator computes it; initialize only checks that it sums to the total.
type SupplySplit struct {
	Owner             *uint256.Int
	Governance        *uint256.Int
	Contract          *uint256.Int // backs liquidity provisioning and vesting
	GovernanceAccount common.Address
}

// InitParams is everything initialize needs. All amounts are final; nothing
// here is recomputed later.
type InitParams struct {
	Name                string
	Symbol              string
	TotalSupply         *uint256.Int
	Owner               common.Address
	Description         string
	TaxRate             uint64
	TaxRecipient        common.Address
	BurnEnabled         bool
	LiquidityLockPeriod uint64
	VestingEnabled      bool
	Split               SupplySplit
}

// Token is one launched token. All mutating operations verify every
// precondition before the first state write, so a failed call leaves no
// partial effects.
type Token struct {
	address     common.Address
	deployer    common.Address // the orchestrator that initialized the token
	initialized bool

	name        string
	symbol      string
	description string
	totalSupply *uint256.Int
	owner       common.Address

	taxRate      uint64
	taxRecipient common.Address
	burnEnabled  bool

	liquidityLockPeriod  uint64
	liquidityLockEndTime uint64
	liquidityPool        common.Address
	liquidityUnlocked    bool

	contractLocked bool
	vestingEnabled bool

	balances   map[common.Address]*uint256.Int
	allowances map[common.Address]map[common.Address]*uint256.Int

	schedules      map[common.Hash]*VestingSchedule
	scheduleIDs    []common.Hash
	holderCount    map[common.Address]uint64
	vestingReserve *uint256.Int // created - released - revoked-unvested

	events *ledger.Recorder
	log    zerolog.Logger
}

func newToken(address common.Address, events *ledger.Recorder, log zerolog.Logger) *Token {
	return &Token{
		address:        address,
		totalSupply:    uint256.NewInt(0),
		balances:       make(map[common.Address]*uint256.Int),
		allowances:     make(map[common.Address]map[common.Address]*uint256.Int),
		schedules:      make(map[common.Hash]*VestingSchedule),
		holderCount:    make(map[common.Address]uint64),
		vestingReserve: uint256.NewInt(0),
		events:         events,
		log:            log.With().Str("token", address.Hex()).Logger(),
	}
}

// Initialize configures a cloned token. It succeeds at most once.
func (t *Token) Initialize(env *ledger.Env, p InitParams) error {
	if t.initialized {
		return ErrAlreadyInitialized
	}
	if p.Owner == (common.Address{}) {
		return ErrZeroAddress
	}
	if p.TaxRate > MaxTaxRate {
		return ErrTaxRateTooHigh
	}
	sum := new(uint256.Int).Add(p.Split.Owner, p.Split.Governance)
	sum.Add(sum, p.Split.Contract)
	if !sum.Eq(p.TotalSupply) {
		return ErrInvalidSupplySplit
	}

	t.initialized = true
	t.deployer = env.Caller
	t.name = p.Name
	t.symbol = p.Symbol
	t.description = p.Description
	t.totalSupply = p.TotalSupply.Clone()
	t.owner = p.Owner
	t.taxRate = p.TaxRate
	t.taxRecipient = p.TaxRecipient
	t.burnEnabled = p.BurnEnabled
	t.liquidityLockPeriod = p.LiquidityLockPeriod
	t.vestingEnabled = p.VestingEnabled

	t.credit(p.Owner, p.Split.Owner)
	if !p.Split.Governance.IsZero() {
		t.credit(p.Split.GovernanceAccount, p.Split.Governance)
	}
	if !p.Split.Contract.IsZero() {
		t.credit(t.address, p.Split.Contract)
	}

	t.events.Emit(InitializedEvent{Token: t.address, Name: p.Name, Symbol: p.Symbol, Supply: p.TotalSupply.Clone()})
	t.log.Info().Str("name", p.Name).Str("symbol", p.Symbol).Msg("token initialized")
	return nil
}

//
// ERC20 surface
//

func (t *Token) Address() common.Address { return t.address }
func (t *Token) Name() string { return t.name }
func (t *Token) Symbol() string { return t.symbol }
func (t *Token) Description() string { return t.description }
func (t *Token) Owner() common.Address { return t.owner }
func (t *Token) TaxRate() uint64 { return t.taxRate }
func (t *Token) TaxRecipient() common.Address { return t.taxRecipient }
func (t *Token) BurnEnabled() bool { return t.burnEnabled }
func (t *Token) ContractLocked() bool { return t.contractLocked }
func (t *Token) VestingEnabled() bool { return t.vestingEnabled }

func (t *Token) TotalSupply() *uint256.Int {
	return t.totalSupply.Clone()
}

func (t *Token) BalanceOf(addr common.Address) *uint256.Int {
	if b, ok := t.balances[addr]; ok {
		return b.Clone()
	}
	return uint256.NewInt(0)
}

func (t *Token) Allowance(owner, spender common.Address) *uint256.Int {
	if m, ok := t.allowances[owner]; ok {
		if a, ok := m[spender]; ok {
			return a.Clone()
		}
	}
	return uint256.NewInt(0)
}

// Transfer moves amount from the caller, deducting the transfer tax.
func (t *Token) Transfer(env *ledger.Env, to common.Address, amount *uint256.Int) error {
	return t.transferTaxed(env.Caller, to, amount)
}

// TransferFrom spends the caller's allowance on the from account. The tax
// applies exactly as for Transfer.
func (t *Token) TransferFrom(env *ledger.Env, from, to common.Address, amount *uint256.Int) error {
	if err := t.spendAllowance(from, env.Caller, amount); err != nil {
		return err
	}
	return t.transferTaxed(from, to, amount)
}

func (t *Token) Approve(env *ledger.Env, spender common.Address, amount *uint256.Int) error {
	if spender == (common.Address{}) {
		return ErrZeroAddress
	}
	t.setAllowance(env.Caller, spender, amount.Clone())
	t.events.Emit(ApprovalEvent{Token: t.address, Owner: env.Caller, Spender: spender, Value: amount.Clone()})
	return nil
}

func (t *Token) IncreaseAllowance(env *ledger.Env, spender common.Address, added *uint256.Int) error {
	cur := t.Allowance(env.Caller, spender)
	return t.Approve(env, spender, cur.Add(cur, added))
}

func (t *Token) DecreaseAllowance(env *ledger.Env, spender common.Address, removed *uint256.Int) error {
	cur := t.Allowance(env.Caller, spender)
	if cur.Lt(removed) {
		return ErrInsufficientAllowance
	}
	return t.Approve(env, spender, cur.Sub(cur, removed))
}

// Mint creates new supply for the given account. Owner only.
func (t *Token) Mint(env *ledger.Env, to common.Address, amount *uint256.Int) error {
	if env.Caller != t.owner {
		return ErrUnauthorized
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	t.totalSupply.Add(t.totalSupply, amount)
	t.credit(to, amount)
	t.events.Emit(TransferEvent{Token: t.address, From: common.Address{}, To: to, Value: amount.Clone()})
	return nil
}

// Burn destroys amount of the caller's balance, if burning is enabled.
func (t *Token) Burn(env *ledger.Env, amount *uint256.Int) error {
	return t.burnFrom(env.Caller, amount)
}

// BurnFrom destroys amount of the from account's balance, spending the
// caller's allowance first.
func (t *Token) BurnFrom(env *ledger.Env, from common.Address, amount *uint256.Int) error {
	if err := t.spendAllowance(from, env.Caller, amount); err != nil {
		return err
	}
	return t.burnFrom(from, amount)
}

func (t *Token) burnFrom(from common.Address, amount *uint256.Int) error {
	if !t.burnEnabled {
		return ErrBurnDisabled
	}
	b := t.balances[from]
	if b == nil || b.Lt(amount) {
		return ErrInsufficientBalance
	}
	b.Sub(b, amount)
	t.totalSupply.Sub(t.totalSupply, amount)
	t.events.Emit(TransferEvent{Token: t.address, From: from, To: common.Address{}, Value: amount.Clone()})
	return nil
}

//
// Owner configuration, frozen by LockContract
//

func (t *Token) SetBurnEnabled(env *ledger.Env, enabled bool) error {
	if err := t.configGuard(env); err != nil {
		return err
	}
	t.burnEnabled = enabled
	t.events.Emit(BurnEnabledUpdatedEvent{Token: t.address, Enabled: enabled})
	return nil
}

func (t *Token) UpdateTaxRate(env *ledger.Env, rate uint64) error {
	if err := t.configGuard(env); err != nil {
		return err
	}
	if rate > MaxTaxRate {
		return ErrTaxRateTooHigh
	}
	t.taxRate = rate
	t.events.Emit(TaxRateUpdatedEvent{Token: t.address, TaxRate: rate})
	return nil
}

func (t *Token) UpdateTaxRecipient(env *ledger.Env, recipient common.Address) error {
	if err := t.configGuard(env); err != nil {
		return err
	}
	if recipient == (common.Address{}) {
		return ErrZeroAddress
	}
	t.taxRecipient = recipient
	t.events.Emit(TaxRecipientUpdatedEvent{Token: t.address, Recipient: recipient})
	return nil
}

func (t *Token) UpdateDescription(env *ledger.Env, description string) error {
	if err := t.configGuard(env); err != nil {
		return err
	}
	t.description = description
	t.events.Emit(DescriptionUpdatedEvent{Token: t.address})
	return nil
}

// LockContract permanently freezes tax, burn and description configuration.
// There is no unlock.
func (t *Token) LockContract(env *ledger.Env) error {
	if env.Caller != t.owner {
		return ErrUnauthorized
	}
	t.contractLocked = true
	t.events.Emit(ContractLockedEvent{Token: t.address})
	t.log.Info().Msg("contract configuration locked")
	return nil
}

func (t *Token) TransferOwnership(env *ledger.Env, newOwner common.Address) error {
	if env.Caller != t.owner {
		return ErrUnauthorized
	}
	if newOwner == (common.Address{}) {
		return ErrZeroAddress
	}
	prev := t.owner
	t.owner = newOwner
	t.events.Emit(OwnershipTransferredEvent{Token: t.address, PreviousOwner: prev, NewOwner: newOwner})
	return nil
}

func (t *Token) RenounceOwnership(env *ledger.Env) error {
	if env.Caller != t.owner {
		return ErrUnauthorized
	}
	prev := t.owner
	t.owner = common.Address{}
	t.events.Emit(OwnershipTransferredEvent{Token: t.address, PreviousOwner: prev, NewOwner: common.Address{}})
	return nil
}

// WithdrawToken moves contract-held tokens that are not reserved for vesting.
// Available to the owner and to the deployer, which uses it to fund the
// liquidity adapter.
func (t *Token) WithdrawToken(env *ledger.Env, to common.Address, amount *uint256.Int) error {
	if env.Caller != t.owner && env.Caller != t.deployer {
		return ErrUnauthorized
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	available := t.BalanceOf(t.address)
	available.Sub(available, t.vestingReserve)
	if available.Lt(amount) {
		return ErrInsufficientBalance
	}
	return t.move(t.address, to, amount)
}

//
// Liquidity hooks
//

func (t *Token) LiquidityPool() common.Address { return t.liquidityPool }
func (t *Token) LiquidityLockPeriod() uint64 { return t.liquidityLockPeriod }
func (t *Token) LiquidityLockEndTime() uint64 { return t.liquidityLockEndTime }

// LockLiquidity records the pool pair and starts the liquidity lock clock.
// Called by the deployer right after liquidity is provisioned.
func (t *Token) LockLiquidity(env *ledger.Env, pool common.Address) error {
	if env.Caller != t.owner && env.Caller != t.deployer {
		return ErrUnauthorized
	}
	if pool == (common.Address{}) {
		return ErrZeroAddress
	}
	t.liquidityPool = pool
	t.liquidityLockEndTime = env.Now + t.liquidityLockPeriod
	t.events.Emit(LiquidityLockedEvent{Token: t.address, Pool: pool, UnlockTime: t.liquidityLockEndTime})
	return nil
}

func (t *Token) UnlockLiquidity(env *ledger.Env) error {
	if env.Caller != t.owner {
		return ErrUnauthorized
	}
	if env.Now < t.liquidityLockEndTime {
		return ErrLiquidityStillLocked
	}
	t.liquidityUnlocked = true
	t.events.Emit(LiquidityUnlockedEvent{Token: t.address})
	return nil
}

//
// internals
//

func (t *Token) configGuard(env *ledger.Env) error {
	if env.Caller != t.owner {
		return ErrUnauthorized
	}
	if t.contractLocked {
		return ErrContractLocked
	}
	return nil
}

func (t *Token) credit(addr common.Address, amount *uint256.Int) {
	b, ok := t.balances[addr]
	if !ok {
		b = uint256.NewInt(0)
		t.balances[addr] = b
	}
	b.Add(b, amount)
}

// move transfers without tax. Used for vesting payouts and contract-held
// funds; sum(balances) is conserved.
func (t *Token) move(from, to common.Address, amount *uint256.Int) error {
	b := t.balances[from]
	if b == nil || b.Lt(amount) {
		return ErrInsufficientBalance
	}
	b.Sub(b, amount)
	t.credit(to, amount)
	t.events.Emit(TransferEvent{Token: t.address, From: from, To: to, Value: amount.Clone()})
	return nil
}

// transferTaxed deducts taxOf(amount) for the tax recipient; the remainder
// reaches the destination. received + tax == amount always holds.
func (t *Token) transferTaxed(from, to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	b := t.balances[from]
	if b == nil || b.Lt(amount) {
		return ErrInsufficientBalance
	}

	tax := t.taxOf(amount)
	received := new(uint256.Int).Sub(amount, tax)

	b.Sub(b, amount)
	t.credit(to, received)
	if !tax.IsZero() {
		t.credit(t.taxRecipient, tax)
		t.events.Emit(TransferEvent{Token: t.address, From: from, To: t.taxRecipient, Value: tax})
	}
	t.events.Emit(TransferEvent{Token: t.address, From: from, To: to, Value: received})
	return nil
}

// taxOf computes amount * taxRate / 10000 without intermediate overflow.
func (t *Token) taxOf(amount *uint256.Int) *uint256.Int {
	if t.taxRate == 0 || t.taxRecipient == (common.Address{}) {
		return uint256.NewInt(0)
	}
	rate := uint256.NewInt(t.taxRate)
	bp := uint256.NewInt(bpDenominator)

	q := new(uint256.Int).Div(amount, bp)
	r := new(uint256.Int).Mod(amount, bp)
	q.Mul(q, rate)
	r.Mul(r, rate)
	r.Div(r, bp)
	return q.Add(q, r)
}

func (t *Token) spendAllowance(owner, spender common.Address, amount *uint256.Int) error {
	cur := t.Allowance(owner, spender)
	if cur.Lt(amount) {
		return ErrInsufficientAllowance
	}
	t.setAllowance(owner, spender, cur.Sub(cur, amount))
	return nil
}

func (t *Token) setAllowance(owner, spender common.Address, amount *uint256.Int) {
	m, ok := t.allowances[owner]
	if !ok {
		m = make(map[common.Address]*uint256.Int)
		t.allowances[owner] = m
	}
	m[spender] = amount
}

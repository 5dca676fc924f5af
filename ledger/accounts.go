package ledger

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var ErrInsufficientValue = errors.New("insufficient native value for transfer")

// Accounts tracks native-value balances for the system's contract accounts
// and for the recipients it pays out to. Attached call value is credited to
// the receiving component before it disburses anything, so payouts can never
// exceed what the component actually holds.
type Accounts struct {
	balances map[common.Address]*uint256.Int
}

func NewAccounts() *Accounts {
	return &Accounts{balances: make(map[common.Address]*uint256.Int)}
}

func (a *Accounts) BalanceOf(addr common.Address) *uint256.Int {
	if b, ok := a.balances[addr]; ok {
		return b.Clone()
	}
	return uint256.NewInt(0)
}

func (a *Accounts) Credit(addr common.Address, amount *uint256.Int) {
	if amount.IsZero() {
		return
	}
	b, ok := a.balances[addr]
	if !ok {
		b = uint256.NewInt(0)
		a.balances[addr] = b
	}
	b.Add(b, amount)
}

// Transfer moves native value between accounts, failing without any state
// change when the source balance does not cover the amount.
func (a *Accounts) Transfer(from, to common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	b, ok := a.balances[from]
	if !ok || b.Lt(amount) {
		return ErrInsufficientValue
	}
	b.Sub(b, amount)
	a.Credit(to, amount)
	return nil
}

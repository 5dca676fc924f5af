package token

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ghostpad/ghostpad/ledger"
	"github.com/ghostpad/ghostpad/utils"
)

// VestingSchedule is a linear grant: nothing is releasable before the cliff,
// then the vested amount grows proportionally with elapsed time until the
// full duration has passed. Cliff is stored as an absolute timestamp.
type VestingSchedule struct {
	Beneficiary common.Address
	Start       uint64
	Cliff       uint64
	Duration    uint64
	AmountTotal *uint256.Int
	Released    *uint256.Int
	Revocable   bool
	Revoked     bool
}

// ScheduleID derives the deterministic identifier of the index-th schedule
// created for a beneficiary.
func ScheduleID(beneficiary common.Address, index uint64) common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], index)
	return utils.Keccak(beneficiary[:], idx[:])
}

// CreateVestingSchedule locks amount of the contract-held balance into a new
// schedule for the beneficiary. Owner only; the token must have been
// initialized with vesting enabled.
func (t *Token) CreateVestingSchedule(env *ledger.Env, beneficiary common.Address, start, cliff, duration uint64, revocable bool, amount *uint256.Int) (common.Hash, error) {
	if env.Caller != t.owner {
		return common.Hash{}, ErrUnauthorized
	}
	if !t.vestingEnabled {
		return common.Hash{}, ErrVestingDisabled
	}
	if beneficiary == (common.Address{}) {
		return common.Hash{}, ErrZeroAddress
	}
	if duration == 0 || cliff > duration || amount.IsZero() {
		return common.Hash{}, ErrInvalidSchedule
	}
	available := t.BalanceOf(t.address)
	available.Sub(available, t.vestingReserve)
	if available.Lt(amount) {
		return common.Hash{}, ErrVestingFunds
	}

	id := ScheduleID(beneficiary, t.holderCount[beneficiary])
	t.holderCount[beneficiary]++
	t.schedules[id] = &VestingSchedule{
		Beneficiary: beneficiary,
		Start:       start,
		Cliff:       start + cliff,
		Duration:    duration,
		AmountTotal: amount.Clone(),
		Released:    uint256.NewInt(0),
		Revocable:   revocable,
	}
	t.scheduleIDs = append(t.scheduleIDs, id)
	t.vestingReserve.Add(t.vestingReserve, amount)

	t.events.Emit(VestingScheduleCreatedEvent{Token: t.address, ScheduleID: id, Beneficiary: beneficiary, Amount: amount.Clone()})
	return id, nil
}

// ComputeReleasableAmount returns what the schedule owes at the given time:
// zero before the cliff, the linear share afterwards, everything once the
// duration has elapsed. For a revoked schedule the frozen total applies.
func (t *Token) ComputeReleasableAmount(id common.Hash, now uint64) (*uint256.Int, error) {
	s, ok := t.schedules[id]
	if !ok {
		return nil, ErrUnknownSchedule
	}
	return new(uint256.Int).Sub(s.vestedAt(now), s.Released), nil
}

// Release pays out up to amount of the releasable balance to the
// beneficiary. Callable by the beneficiary and the owner.
func (t *Token) Release(env *ledger.Env, id common.Hash, amount *uint256.Int) error {
	s, ok := t.schedules[id]
	if !ok {
		return ErrUnknownSchedule
	}
	if env.Caller != s.Beneficiary && env.Caller != t.owner {
		return ErrUnauthorized
	}
	releasable := new(uint256.Int).Sub(s.vestedAt(env.Now), s.Released)
	if releasable.IsZero() {
		return ErrNothingToRelease
	}
	pay := amount
	if releasable.Lt(pay) {
		pay = releasable
	}

	s.Released.Add(s.Released, pay)
	t.vestingReserve.Sub(t.vestingReserve, pay)
	if err := t.move(t.address, s.Beneficiary, pay); err != nil {
		return err
	}

	t.events.Emit(VestingReleasedEvent{Token: t.address, ScheduleID: id, Beneficiary: s.Beneficiary, Amount: pay.Clone()})
	return nil
}

// Revoke stops a revocable schedule: the unvested remainder returns to the
// owner, while already-vested-but-unreleased tokens stay claimable.
func (t *Token) Revoke(env *ledger.Env, id common.Hash) error {
	if env.Caller != t.owner {
		return ErrUnauthorized
	}
	s, ok := t.schedules[id]
	if !ok {
		return ErrUnknownSchedule
	}
	if !s.Revocable {
		return ErrNotRevocable
	}
	if s.Revoked {
		return ErrScheduleRevoked
	}

	vested := s.vestedAt(env.Now)
	unvested := new(uint256.Int).Sub(s.AmountTotal, vested)

	s.Revoked = true
	s.AmountTotal = vested // freeze further vesting
	t.vestingReserve.Sub(t.vestingReserve, unvested)
	if !unvested.IsZero() {
		if err := t.move(t.address, t.owner, unvested); err != nil {
			return err
		}
	}

	t.events.Emit(VestingScheduleRevokedEvent{Token: t.address, ScheduleID: id, Unvested: unvested})
	return nil
}

func (t *Token) GetVestingSchedule(id common.Hash) (*VestingSchedule, error) {
	s, ok := t.schedules[id]
	if !ok {
		return nil, ErrUnknownSchedule
	}
	cp := *s
	cp.AmountTotal = s.AmountTotal.Clone()
	cp.Released = s.Released.Clone()
	return &cp, nil
}

func (t *Token) VestingSchedulesCount() int {
	return len(t.scheduleIDs)
}

// VestingSchedulesTotalAmount is the contract-held balance still reserved
// for vesting.
func (t *Token) VestingSchedulesTotalAmount() *uint256.Int {
	return t.vestingReserve.Clone()
}

// vestedAt is monotonically non-decreasing in now and capped at AmountTotal.
func (s *VestingSchedule) vestedAt(now uint64) *uint256.Int {
	if s.Revoked {
		return s.AmountTotal.Clone()
	}
	if now < s.Cliff {
		return uint256.NewInt(0)
	}
	elapsed := now - s.Start
	if elapsed >= s.Duration {
		return s.AmountTotal.Clone()
	}
	v := new(uint256.Int).Mul(s.AmountTotal, uint256.NewInt(elapsed))
	return v.Div(v, uint256.NewInt(s.Duration))
}

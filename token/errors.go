package token

import "errors"

var (
	ErrAlreadyInitialized    = errors.New("contract already initialized")
	ErrUnauthorized          = errors.New("caller is not the owner")
	ErrContractLocked        = errors.New("contract configuration is locked")
	ErrBurnDisabled          = errors.New("burning is disabled for this token")
	ErrZeroAddress           = errors.New("zero address is not allowed")
	ErrTaxRateTooHigh        = errors.New("tax rate exceeds the protocol maximum")
	ErrInsufficientBalance   = errors.New("amount exceeds balance")
	ErrInsufficientAllowance = errors.New("amount exceeds allowance")
	ErrInvalidSupplySplit    = errors.New("supply split does not sum to the total supply")
	ErrLiquidityStillLocked  = errors.New("liquidity lock period has not elapsed")

	ErrVestingDisabled  = errors.New("vesting is not enabled for this token")
	ErrVestingFunds     = errors.New("contract-held balance cannot cover the vesting amount")
	ErrInvalidSchedule  = errors.New("invalid vesting schedule parameters")
	ErrUnknownSchedule  = errors.New("unknown vesting schedule")
	ErrNothingToRelease = errors.New("no vested tokens are due for release")
	ErrNotRevocable     = errors.New("vesting schedule is not revocable")
	ErrScheduleRevoked  = errors.New("vesting schedule already revoked")
)

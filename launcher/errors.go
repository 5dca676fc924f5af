package launcher

import "errors"

var (
	ErrNullifierAlreadyUsed = errors.New("nullifier hash already used for a deployment")
	ErrInvalidInstanceIndex = errors.New("instance index out of range")
	ErrProofInvalid         = errors.New("withdrawal proof rejected")
	ErrMetadataProofInvalid = errors.New("metadata proof rejected")
	ErrInsufficientValue    = errors.New("attached value cannot cover fee, refund and liquidity")
	ErrUnauthorized         = errors.New("caller lacks the required role")
	ErrZeroAddress          = errors.New("zero address is not allowed")
	ErrFeeTooHigh           = errors.New("governance fee exceeds the protocol maximum")
	ErrNilCollaborator      = errors.New("collaborator must not be nil")
)

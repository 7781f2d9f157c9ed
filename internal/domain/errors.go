package domain

import "errors"

var (
	ErrLockedAccount              = errors.New("account locked")
	ErrInsufficientAvailableFunds = errors.New("insufficient available funds")
	ErrInsufficientHeldFunds      = errors.New("insufficient held funds")
	ErrUnknownAccount             = errors.New("unknown account")
	ErrUnknownTransaction         = errors.New("unknown transaction")
	ErrClientMismatch             = errors.New("client does not own transaction")
	ErrInvalidDisputeState        = errors.New("invalid dispute state")
	ErrNotDisputable              = errors.New("transaction kind not disputable")
	ErrDuplicateTransaction       = errors.New("duplicate transaction id")
	ErrAmountOverflow             = errors.New("amount overflow")
	ErrInvalidAmount              = errors.New("invalid amount")
	ErrUnknownKind                = errors.New("unknown transaction kind")
)

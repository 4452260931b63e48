package errors

import "errors"

var (
	ErrInvalidInput             = errors.New("invalid admission input")
	ErrInvalidAddress           = errors.New("invalid chain address")
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationExists        = errors.New("candidate already under consideration")
	ErrPriorDepositsOutstanding = errors.New("prior application still holds escrowed deposits")
	ErrInvalidPhase             = errors.New("operation not allowed in current phase")
	ErrDeadlineNotReached       = errors.New("phase deadline not reached")
	ErrRoundNotFound            = errors.New("vote round not found")
	ErrDepositNotFound          = errors.New("vote deposit not found")
	ErrRoundClosed              = errors.New("vote round is closed")
	ErrRoundResolved            = errors.New("vote round is already resolved")
	ErrQuorumNotMet             = errors.New("round turnout below quorum floor")
	ErrBelowMinimumDeposit      = errors.New("deposit below per-round minimum")
	ErrInsufficientFee          = errors.New("offered fee below submission fee")
	ErrInsufficientStake        = errors.New("challenge stake below cumulative support requirement")
	ErrInsufficientBalance      = errors.New("insufficient asset balance")
	ErrSideLocked               = errors.New("participant already deposited on the other side")
	ErrNothingToWithdraw        = errors.New("no withdrawable deposits")
	ErrNotOwner                 = errors.New("caller is not the track owner")
	ErrNotRegistrySubmitter     = errors.New("caller may not submit on behalf of another applicant")
	ErrAmountOverflow           = errors.New("amount arithmetic overflow")
	ErrIdempotencyKeyRequired   = errors.New("idempotency key is required")
	ErrIdempotencyConflict      = errors.New("idempotency key conflict")
	ErrSettingsNotFound         = errors.New("track settings not found")
)

package wallet

import (
	"github.com/iov-one/quorum/errors"
)

// Error codes 1030-1036 are reserved for this package.
var (
	// ErrAlreadyExecuted is returned when a terminal proposal is acted
	// upon. Executed proposals can never be voted on or executed again.
	ErrAlreadyExecuted = errors.Register(1030, "already executed")

	// ErrAlreadyVoted is returned when an owner approves a proposal that
	// already carries their approval.
	ErrAlreadyVoted = errors.Register(1031, "already voted")

	// ErrNotVoted is returned when an owner revokes an approval they
	// never gave.
	ErrNotVoted = errors.Register(1032, "not voted")

	// ErrInsufficientApprovals is returned when a proposal is executed
	// before collecting the threshold of approvals.
	ErrInsufficientApprovals = errors.Register(1033, "insufficient approvals")

	// ErrCallFailed is returned when the forwarded call of an executed
	// proposal reports a failure. The whole execution is rolled back.
	ErrCallFailed = errors.Register(1034, "forwarded call failed")

	// ErrInvalidThreshold is returned for a threshold outside of the
	// [1, number of owners] range.
	ErrInvalidThreshold = errors.Register(1035, "invalid threshold")

	// ErrInvalidOwner is returned for a null or duplicate owner identity,
	// or an attempt to remove the last owner.
	ErrInvalidOwner = errors.Register(1036, "invalid owner")
)

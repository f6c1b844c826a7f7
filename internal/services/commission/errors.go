package commission

import "errors"

// Engine errors
var (
	// ErrNoSchemeAssigned means the initiating user has no scheme; no
	// commission can be determined and settlement must not proceed.
	ErrNoSchemeAssigned = errors.New("user has no scheme assigned")

	// ErrNoCommissionConfigured means no ancestor scheme configures any
	// role's rate for the service. Not fatal: settlement proceeds with
	// zero ledger entries.
	ErrNoCommissionConfigured = errors.New("no commission configured for service")

	// ErrSchemeCycle and ErrUserCycle flag cyclic parent links. The data
	// layer is supposed to keep both trees acyclic; the walks guard
	// anyway and abort instead of looping.
	ErrSchemeCycle = errors.New("cycle detected in scheme hierarchy")
	ErrUserCycle   = errors.New("cycle detected in user hierarchy")

	// ErrInvalidCommissionKind means a cap record carries an unknown
	// kind. Fatal configuration error, never defaulted.
	ErrInvalidCommissionKind = errors.New("invalid commission kind")

	// ErrUserNotFound means the transaction references a user the
	// directory cannot resolve.
	ErrUserNotFound = errors.New("user not found")
)

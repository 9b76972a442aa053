// Package apperrors defines the sentinel errors shared across the application.
package apperrors

import "errors"

// ErrInvalidAmount indicates an expense or settlement amount that is not strictly positive.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInvalidSplit indicates a split configuration rejected by its strategy,
// e.g. percentages that do not sum to 100.
var ErrInvalidSplit = errors.New("invalid split configuration")

// ErrInconsistentLedger indicates that lender and borrower totals disagree
// after balance calculation, which means the caller fed the ledger records
// that do not conserve value (e.g. a member was removed mid-history).
var ErrInconsistentLedger = errors.New("inconsistent ledger")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

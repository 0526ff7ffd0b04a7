package apperrors

import "errors"

// Core errors are raised by the pure report and lifecycle packages.
// Every one of them is a decision point for the caller, never a crash.
var (
	// ErrInvalidRange indicates that a date range is inverted, incomplete, or ends in the future.
	// Seeing it from the aggregator means the caller skipped normalization.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrIllegalTransition indicates that an alert transition was requested from a status
	// that does not permit it. The caller should refresh the alert and decide again.
	ErrIllegalTransition = errors.New("illegal alert transition")

	// ErrInvalidInput indicates that a transition was attempted with missing actor or resolution text.
	ErrInvalidInput = errors.New("invalid input")
)

// Domain entity errors represent missing entities in the system.
var (
	// ErrClientNotFound indicates that a client with the given ID does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAlertNotFound indicates that an alert with the given ID does not exist.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrSnapshotNotFound indicates that no report snapshot has been calculated for a client yet.
	ErrSnapshotNotFound = errors.New("report snapshot not found")
)

// Concurrency errors are reported by the persistence layer.
var (
	// ErrStaleAlert indicates that the stored alert no longer has the status the transition
	// started from, meaning another writer advanced it first.
	ErrStaleAlert = errors.New("alert was modified concurrently")
)

// Business logic errors represent validation failures or constraint violations.
var (
	ErrInvalidClientID = errors.New("invalid client ID")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
	ErrNegativeAmount  = errors.New("amount cannot be negative")

	// ErrCounterpartyMismatch indicates a counterparty on a non-transfer, or a transfer without one.
	ErrCounterpartyMismatch = errors.New("counterparty is only allowed on transfers")

	// ErrInconsistentResolution indicates that an alert's resolution fields disagree with its status.
	ErrInconsistentResolution = errors.New("resolution fields inconsistent with status")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors are used as public messages by the HTTP layer.
var (
	ErrFailedToRetrieveClients      = errors.New("failed to retrieve clients")
	ErrFailedToRetrieveClient       = errors.New("failed to retrieve client")
	ErrFailedToCreateClient         = errors.New("failed to create client")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToCreateTransaction    = errors.New("failed to create transaction")
	ErrFailedToRetrieveAlerts       = errors.New("failed to retrieve alerts")
	ErrFailedToRetrieveAlert        = errors.New("failed to retrieve alert")
	ErrFailedToCreateAlert          = errors.New("failed to create alert")
	ErrFailedToTransitionAlert      = errors.New("failed to transition alert")
	ErrFailedToBuildReport          = errors.New("failed to build report")
	ErrFailedToRetrieveSnapshot     = errors.New("failed to retrieve report snapshot")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)

package tracker

import "errors"

// Cycle-stage error taxonomy. Errors returned from RunCycle wrap exactly one
// of these sentinels so callers can tell which stage failed with errors.Is.
var (
	// ErrConfigMissing means the config row is absent or its thresholds are
	// unset. Nothing can be decided this cycle.
	ErrConfigMissing = errors.New("trading config missing or incomplete")

	// ErrPriceSource means the price feed call failed. No snapshot was written.
	ErrPriceSource = errors.New("price source unavailable")

	// ErrStorage means a database write failed.
	ErrStorage = errors.New("storage failure")

	// ErrVenue means the venue rejected or failed the execution call. The
	// cycle's snapshot is retained; no order row was written.
	ErrVenue = errors.New("venue execution failed")

	// ErrOrphanedExecution means the venue executed but the order row could
	// not be written. Funds may have moved with no local record; operator
	// reconciliation is required.
	ErrOrphanedExecution = errors.New("venue executed but order record was not persisted")
)

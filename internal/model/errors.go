package model

import "errors"

// Error taxonomy for the optimization core (spec.md §7). These are
// sentinel errors meant to participate in errors.Is / %w chains, the same
// plain-wrap style the teacher uses in internal/project/backup.go and
// internal/project/profiles.go.
var (
	// ErrConfigInvalid is raised before the first generation when an
	// EngineConfig fails validation.
	ErrConfigInvalid = errors.New("config invalid")

	// ErrDemandEmpty marks a sub-problem with no rows left after cleaning;
	// the driver treats it as a no-op, not a failure.
	ErrDemandEmpty = errors.New("demand empty")

	// ErrNoBarFits marks a single demanded piece longer than every
	// candidate bar. It is recorded, not raised: the piece stays
	// uncovered and surfaces through the completeness report.
	ErrNoBarFits = errors.New("no bar fits piece")

	// ErrPatternOverflow signals a constructor invariant violation
	// (internal bug signal): a pattern's cuts exceed its source bar.
	ErrPatternOverflow = errors.New("pattern overflow")

	// ErrEngineFailure wraps an uncaught failure inside the GA loop. The
	// driver catches it and re-runs the sub-problem through the
	// deterministic fallback.
	ErrEngineFailure = errors.New("engine failure")
)

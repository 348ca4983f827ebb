package assignment

import "fmt"

// The engine never returns a partial assignment: a run either passes the
// final verification or fails with one of the typed errors below. All of
// them describe a structural property of the inputs, so callers must change
// the inputs (more matches, fewer players, lower target) before retrying.

// InsufficientResourcesForPairsError means the pool cannot give every
// unordered player pair its own match.
type InsufficientResourcesForPairsError struct {
	Required  int
	Available int
}

func (e *InsufficientResourcesForPairsError) Error() string {
	return fmt.Sprintf("not enough matches to cover every player pair: need %d, have %d", e.Required, e.Available)
}

// TargetTooLowError means the per-player target is below the minimum of
// n-1, under which a player cannot share a distinct match with every other
// player.
type TargetTooLowError struct {
	MinimumRequired int
	Given           int
}

func (e *TargetTooLowError) Error() string {
	return fmt.Sprintf("target count %d is too low: each player needs at least %d matches", e.Given, e.MinimumRequired)
}

// InsufficientResourcesTotalError means the pool is smaller than the lower
// bound ceil(n*t/2) on the number of matches any valid assignment consumes.
type InsufficientResourcesTotalError struct {
	Required  int
	Available int
}

func (e *InsufficientResourcesTotalError) Error() string {
	return fmt.Sprintf("not enough matches in total: need at least %d, have %d", e.Required, e.Available)
}

// PairAssignmentExhaustedError means the pool ran dry before every pair got
// a match. The feasibility check should preclude this; it is re-checked
// defensively during construction.
type PairAssignmentExhaustedError struct {
	UnsatisfiedPairs int
}

func (e *PairAssignmentExhaustedError) Error() string {
	return fmt.Sprintf("pool exhausted with %d player pairs still without a shared match", e.UnsatisfiedPairs)
}

// DeficitFillExhaustedError means a player could not be topped up to the
// target without pushing some pair over its shared-match cap.
type DeficitFillExhaustedError struct {
	PlayerID string
	ShortBy  int
}

func (e *DeficitFillExhaustedError) Error() string {
	return fmt.Sprintf("player %s cannot reach the target count, short by %d matches", e.PlayerID, e.ShortBy)
}

// AssignmentInvariantViolatedError means the completed assignment failed
// the independent final verification. It names the offending player or
// pair and the observed-vs-expected counts.
type AssignmentInvariantViolatedError struct {
	Detail string
}

func (e *AssignmentInvariantViolatedError) Error() string {
	return fmt.Sprintf("assignment failed verification: %s", e.Detail)
}

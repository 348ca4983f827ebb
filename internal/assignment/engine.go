// Package assignment assigns football matches to drinking-game players so
// that every player ends up with the same number of matches and every pair
// of players shares an exact number of them: one in pairwise mode, or two
// in common mode where one designated match is seeded into every player's
// set. The engine is pure and side-effect free; it never mutates its
// inputs and carries no state between calls, so every reroll builds a
// fresh assignment.
package assignment

import (
	"fmt"
	"math/rand"
)

// Engine builds validated match assignments. The zero value is not usable;
// construct one with New or NewWithShuffle.
type Engine struct {
	shuffle ShuffleFunc
}

// New returns an engine backed by math/rand shuffling.
func New() *Engine {
	return &Engine{shuffle: rand.Shuffle}
}

// NewWithShuffle returns an engine using the given permutation source.
// Tests pass a fixed permutation to make the output deterministic.
func NewWithShuffle(shuffle ShuffleFunc) *Engine {
	return &Engine{shuffle: shuffle}
}

// Assign produces a complete assignment or a typed error. Stages run in
// strict sequence: feasibility, pair assignment, slot filling, final
// verification. Any stage failure aborts the whole call; a partial
// assignment is never returned. There is no internal retry; a failed run
// reflects the inputs, and the caller must adjust them before re-invoking.
func (e *Engine) Assign(players []Player, resources []Resource, commonResourceID string, targetCount int, mode Mode) (Assignment, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("no players provided")
	}
	if len(resources) == 0 {
		return nil, fmt.Errorf("no matches provided")
	}
	if mode == ModeCommon && commonResourceID == "" {
		return nil, fmt.Errorf("mode %s requires a common match", mode)
	}
	if mode == ModePairwise && commonResourceID != "" {
		return nil, fmt.Errorf("mode %s does not take a common match", mode)
	}

	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate player %s", p.ID)
		}
		seen[p.ID] = true
	}

	// The common match never enters the general pool.
	pool := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if r.ID != commonResourceID {
			pool = append(pool, r)
		}
	}

	if err := checkFeasibility(len(players), len(pool), targetCount); err != nil {
		return nil, err
	}

	asg := make(Assignment, len(players))
	for _, p := range players {
		asg[p.ID] = make(map[string]bool)
		if mode == ModeCommon {
			asg[p.ID][commonResourceID] = true
		}
	}

	if _, err := assignPairs(asg, players, pool, e.shuffle); err != nil {
		return nil, err
	}

	expectedSize := targetCount
	if mode == ModeCommon {
		expectedSize++
	}
	if err := fillDeficits(asg, players, pool, expectedSize, mode.RequiredSharedCount(), e.shuffle); err != nil {
		return nil, err
	}

	if err := verifyAssignment(asg, players, targetCount, commonResourceID, mode.RequiredSharedCount()); err != nil {
		return nil, err
	}

	return asg, nil
}

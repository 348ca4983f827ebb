package assignment

import "fmt"

// verifyAssignment independently re-derives pair shares from the completed
// assignment, ignoring any bookkeeping from earlier stages, and checks the
// result exhaustively. The engine never surfaces an assignment that fails
// here. Verification is read-only, so re-running it on the same assignment
// always yields the same outcome.
func verifyAssignment(asg Assignment, players []Player, targetCount int, commonResourceID string, requiredShared int) error {
	expectedSize := targetCount
	if commonResourceID != "" {
		expectedSize++
	}

	for _, p := range players {
		got := asg.Count(p.ID)
		if got != expectedSize {
			return &AssignmentInvariantViolatedError{
				Detail: fmt.Sprintf("player %s holds %d matches, expected %d", p.ID, got, expectedSize),
			}
		}
		if commonResourceID != "" && !asg.Has(p.ID, commonResourceID) {
			return &AssignmentInvariantViolatedError{
				Detail: fmt.Sprintf("player %s is missing the common match %s", p.ID, commonResourceID),
			}
		}
	}

	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			shared := asg.SharedCount(players[i].ID, players[j].ID)
			if shared != requiredShared {
				return &AssignmentInvariantViolatedError{
					Detail: fmt.Sprintf("players %s and %s share %d matches, expected %d",
						players[i].ID, players[j].ID, shared, requiredShared),
				}
			}
		}
	}

	return nil
}

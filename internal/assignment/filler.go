package assignment

import "sort"

// fillDeficits tops up every player to expectedSize matches while keeping
// every pair's shared count at requiredShared. Players with the largest
// deficit go first to reduce starvation. For each open slot the first
// acceptable candidate is taken; a match already held by other players is a
// valid candidate as long as it does not push any pair over the cap. The
// scan is greedy and never backtracks, so inputs exist that are only
// solvable via backtracking and fail here instead.
func fillDeficits(asg Assignment, players []Player, pool []Resource, expectedSize, requiredShared int, shuffle ShuffleFunc) error {
	candidates := make([]Resource, len(pool))
	copy(candidates, pool)
	shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	order := make([]Player, len(players))
	copy(order, players)
	sort.SliceStable(order, func(i, j int) bool {
		return expectedSize-asg.Count(order[i].ID) > expectedSize-asg.Count(order[j].ID)
	})

	for _, p := range order {
		for asg.Count(p.ID) < expectedSize {
			if !fillOneSlot(asg, p, players, candidates, requiredShared) {
				return &DeficitFillExhaustedError{
					PlayerID: p.ID,
					ShortBy:  expectedSize - asg.Count(p.ID),
				}
			}
		}
	}

	return nil
}

// fillOneSlot assigns the first candidate match that the player does not
// already hold and whose addition keeps every affected pair at or below
// the shared cap.
func fillOneSlot(asg Assignment, p Player, players []Player, candidates []Resource, requiredShared int) bool {
	for _, r := range candidates {
		if asg.Has(p.ID, r.ID) {
			continue
		}
		if fillWouldExceedCap(asg, p.ID, r.ID, players, requiredShared) {
			continue
		}
		asg.add(p.ID, r.ID)
		return true
	}
	return false
}

func fillWouldExceedCap(asg Assignment, playerID, resourceID string, players []Player, requiredShared int) bool {
	for _, q := range players {
		if q.ID == playerID || !asg.Has(q.ID, resourceID) {
			continue
		}
		if asg.SharedCount(playerID, q.ID)+1 > requiredShared {
			return true
		}
	}
	return false
}

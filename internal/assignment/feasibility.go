package assignment

// checkFeasibility decides, before any construction, whether a valid
// assignment can exist for n players, a pool of m matches (the common match
// already excluded) and a per-player target of t pool matches.
//
// The total-resource bound ceil(n*t/2) assumes every match is shared by
// exactly two players during pairing; it is a lower bound, so inputs that
// pass here can still fail during slot filling.
func checkFeasibility(n, m, t int) error {
	requiredPairs := n * (n - 1) / 2
	if m < requiredPairs {
		return &InsufficientResourcesForPairsError{Required: requiredPairs, Available: m}
	}

	if t < n-1 {
		return &TargetTooLowError{MinimumRequired: n - 1, Given: t}
	}

	totalNeeded := (n*t + 1) / 2
	if m < totalNeeded {
		return &InsufficientResourcesTotalError{Required: totalNeeded, Available: m}
	}

	return nil
}

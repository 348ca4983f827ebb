package assignment

// assignPairs gives every unordered player pair exactly one pool match of
// its own, recording it in both players' sets. Both the pair order and the
// draw order are shuffled once per run, so repeated rerolls with the same
// inputs produce different assignments.
func assignPairs(asg Assignment, players []Player, pool []Resource, shuffle ShuffleFunc) (map[pairKey]string, error) {
	pairs := make([]pairKey, 0, len(players)*(len(players)-1)/2)
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			pairs = append(pairs, makePairKey(players[i].ID, players[j].ID))
		}
	}
	shuffle(len(pairs), func(i, j int) {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	})

	draw := make([]Resource, len(pool))
	copy(draw, pool)
	shuffle(len(draw), func(i, j int) {
		draw[i], draw[j] = draw[j], draw[i]
	})

	used := make(map[string]bool, len(draw))
	pairResources := make(map[pairKey]string, len(pairs))

	for idx, pk := range pairs {
		found := false
		for _, r := range draw {
			if used[r.ID] {
				continue
			}
			used[r.ID] = true
			asg.add(pk.A, r.ID)
			asg.add(pk.B, r.ID)
			pairResources[pk] = r.ID
			found = true
			break
		}
		if !found {
			// Feasibility should have ruled this out already.
			return nil, &PairAssignmentExhaustedError{UnsatisfiedPairs: len(pairs) - idx}
		}
	}

	return pairResources, nil
}

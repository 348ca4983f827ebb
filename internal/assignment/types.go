package assignment

// Player is a participant in the session. Identity is the ID; the name is
// carried along for error messages only.
type Player struct {
	ID   string
	Name string
}

// Resource is an assignable match drawn from a finite pool. Only identity
// matters to the engine.
type Resource struct {
	ID string
}

// Mode selects the sharing contract between player pairs.
type Mode string

const (
	// ModePairwise gives every pair of players exactly one shared match
	// from the pool and no common match.
	ModePairwise Mode = "PAIRWISE"
	// ModeCommon additionally seeds one designated match into every
	// player's assignment, so every pair ends up sharing two matches:
	// the common one plus their own pool match.
	ModeCommon Mode = "COMMON_PAIRWISE"
)

// RequiredSharedCount is the exact number of matches every pair of players
// must share in a valid assignment.
func (m Mode) RequiredSharedCount() int {
	if m == ModeCommon {
		return 2
	}
	return 1
}

// Assignment maps a player ID to the set of match IDs that player holds.
type Assignment map[string]map[string]bool

func (a Assignment) add(playerID, resourceID string) {
	if a[playerID] == nil {
		a[playerID] = make(map[string]bool)
	}
	a[playerID][resourceID] = true
}

// Has reports whether the player holds the given match.
func (a Assignment) Has(playerID, resourceID string) bool {
	return a[playerID][resourceID]
}

// Count returns the number of matches the player holds, including the
// common match if one was seeded.
func (a Assignment) Count(playerID string) int {
	return len(a[playerID])
}

// SharedCount returns the number of matches held by both players.
func (a Assignment) SharedCount(playerID, otherID string) int {
	p, q := a[playerID], a[otherID]
	if len(q) < len(p) {
		p, q = q, p
	}
	shared := 0
	for resourceID := range p {
		if q[resourceID] {
			shared++
		}
	}
	return shared
}

// ShuffleFunc permutes n elements via swap, matching the signature of
// rand.Shuffle. Tests substitute a fixed permutation to make runs
// deterministic; production uses math/rand.
type ShuffleFunc func(n int, swap func(i, j int))

// pairKey identifies an unordered player pair. A sorts before B.
type pairKey struct {
	A string
	B string
}

func makePairKey(p, q string) pairKey {
	if q < p {
		p, q = q, p
	}
	return pairKey{A: p, B: q}
}

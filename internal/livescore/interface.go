package livescore

// LiveScoreClient defines the interface for fetching live match scores.
// This allows for mock implementations to be used in tests.
type LiveScoreClient interface {
	GetScore(matchID string) (MatchScore, error)
	GetScores(matchIDs []string) ([]MatchScore, error)
}

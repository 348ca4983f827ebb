package livescore

import "sync"

// MockClient is a mock implementation of the LiveScoreClient interface for
// testing. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetScoreFunc  func(matchID string) (MatchScore, error)
	GetScoresFunc func(matchIDs []string) ([]MatchScore, error)

	// Call records
	GetScoreCalls  []string
	GetScoresCalls [][]string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetScoreCalls = nil
	m.GetScoresCalls = nil
}

func (m *MockClient) GetScore(matchID string) (MatchScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetScoreCalls = append(m.GetScoreCalls, matchID)
	if m.GetScoreFunc != nil {
		return m.GetScoreFunc(matchID)
	}
	return MatchScore{MatchID: matchID}, nil
}

func (m *MockClient) GetScores(matchIDs []string) ([]MatchScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetScoresCalls = append(m.GetScoresCalls, matchIDs)
	if m.GetScoresFunc != nil {
		return m.GetScoresFunc(matchIDs)
	}
	return []MatchScore{}, nil
}

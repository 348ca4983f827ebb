package session

import (
	"sync"

	"github.com/klarskov/matchpint/internal/assignment"
)

// MockStore is a mock implementation of the SessionStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc                   func(playerID, name string) error
	RemovePlayerFunc                func(playerID string) error
	GetAllPlayersFunc               func() ([]PlayerInfo, error)
	GetPlayersFunc                  func(playerIDs []string) ([]PlayerInfo, error)
	IsKnownPlayerFunc               func(playerID string) bool
	UpsertMatchFunc                 func(match *Match) error
	UpsertMatchesFunc               func(matches []*Match) error
	GetAllMatchesFunc               func() ([]*Match, error)
	GetMatchFunc                    func(matchID string) (*Match, error)
	GetMatchesForProcessingFunc     func() ([]*Match, error)
	UpdateScoreFunc                 func(matchID string, homeScore, awayScore int, status MatchStatus) error
	UpdateProcessingStatusFunc      func(matchID string, status ProcessingStatus) error
	UpdateNotificationTimestampFunc func(matchID string, notificationType string) error
	SaveSettingsFunc                func(settings Settings) error
	GetSettingsFunc                 func() (*Settings, error)
	SaveAssignmentFunc              func(asg assignment.Assignment) error
	GetAssignmentFunc               func() (assignment.Assignment, error)
	PlayersForMatchFunc             func(matchID string) ([]PlayerInfo, error)
	AddSipsFunc                     func(playerIDs []string, sips int) error
	GetSipLeaderboardFunc           func() ([]PlayerInfo, error)
	ClearFunc                       func()
	ClearMatchFunc                  func(matchID string)

	// Call records
	AddPlayerCalls              []PlayerInfo
	RemovePlayerCalls           []string
	UpsertMatchCalls            []*Match
	UpsertMatchesCalls          [][]*Match
	UpdateScoreCalls            []*Match
	UpdateProcessingStatusCalls []struct {
		MatchID string
		Status  ProcessingStatus
	}
	UpdateNotificationTimestampCalls []struct {
		MatchID string
		Type    string
	}
	SaveSettingsCalls   []Settings
	SaveAssignmentCalls []assignment.Assignment
	AddSipsCalls        []struct {
		PlayerIDs []string
		Sips      int
	}
	ClearMatchCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.RemovePlayerCalls = nil
	m.UpsertMatchCalls = nil
	m.UpsertMatchesCalls = nil
	m.UpdateScoreCalls = nil
	m.UpdateProcessingStatusCalls = nil
	m.UpdateNotificationTimestampCalls = nil
	m.SaveSettingsCalls = nil
	m.SaveAssignmentCalls = nil
	m.AddSipsCalls = nil
	m.ClearMatchCalls = nil
}

func (m *MockStore) AddPlayer(playerID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, PlayerInfo{ID: playerID, Name: name})
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(playerID, name)
	}
	return nil
}

func (m *MockStore) RemovePlayer(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemovePlayerCalls = append(m.RemovePlayerCalls, playerID)
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return []PlayerInfo{}, nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return []PlayerInfo{}, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) UpsertMatch(match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match)
	if m.UpsertMatchFunc != nil {
		return m.UpsertMatchFunc(match)
	}
	return nil
}

func (m *MockStore) UpsertMatches(matches []*Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchesCalls = append(m.UpsertMatchesCalls, matches)
	if m.UpsertMatchesFunc != nil {
		return m.UpsertMatchesFunc(matches)
	}
	return nil
}

func (m *MockStore) GetAllMatches() ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return []*Match{}, nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return &Match{ID: matchID}, nil
}

func (m *MockStore) GetMatchesForProcessing() ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesForProcessingFunc != nil {
		return m.GetMatchesForProcessingFunc()
	}
	return []*Match{}, nil
}

func (m *MockStore) UpdateScore(matchID string, homeScore, awayScore int, status MatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateScoreCalls = append(m.UpdateScoreCalls, &Match{ID: matchID, HomeScore: homeScore, AwayScore: awayScore, Status: status})
	if m.UpdateScoreFunc != nil {
		return m.UpdateScoreFunc(matchID, homeScore, awayScore, status)
	}
	return nil
}

func (m *MockStore) UpdateProcessingStatus(matchID string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		MatchID string
		Status  ProcessingStatus
	}{matchID, status})
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(matchID, status)
	}
	return nil
}

func (m *MockStore) UpdateNotificationTimestamp(matchID string, notificationType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateNotificationTimestampCalls = append(m.UpdateNotificationTimestampCalls, struct {
		MatchID string
		Type    string
	}{matchID, notificationType})
	if m.UpdateNotificationTimestampFunc != nil {
		return m.UpdateNotificationTimestampFunc(matchID, notificationType)
	}
	return nil
}

func (m *MockStore) SaveSettings(settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveSettingsCalls = append(m.SaveSettingsCalls, settings)
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(settings)
	}
	return nil
}

func (m *MockStore) GetSettings() (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc()
	}
	return &Settings{Mode: assignment.ModePairwise, TargetCount: 1}, nil
}

func (m *MockStore) SaveAssignment(asg assignment.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveAssignmentCalls = append(m.SaveAssignmentCalls, asg)
	if m.SaveAssignmentFunc != nil {
		return m.SaveAssignmentFunc(asg)
	}
	return nil
}

func (m *MockStore) GetAssignment() (assignment.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAssignmentFunc != nil {
		return m.GetAssignmentFunc()
	}
	return assignment.Assignment{}, nil
}

func (m *MockStore) PlayersForMatch(matchID string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayersForMatchFunc != nil {
		return m.PlayersForMatchFunc(matchID)
	}
	return []PlayerInfo{}, nil
}

func (m *MockStore) AddSips(playerIDs []string, sips int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddSipsCalls = append(m.AddSipsCalls, struct {
		PlayerIDs []string
		Sips      int
	}{playerIDs, sips})
	if m.AddSipsFunc != nil {
		return m.AddSipsFunc(playerIDs, sips)
	}
	return nil
}

func (m *MockStore) GetSipLeaderboard() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSipLeaderboardFunc != nil {
		return m.GetSipLeaderboardFunc()
	}
	return []PlayerInfo{}, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	if m.ClearMatchFunc != nil {
		m.ClearMatchFunc(matchID)
	}
}

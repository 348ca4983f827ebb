package session

import "github.com/klarskov/matchpint/internal/assignment"

// SessionStore defines the interface for interacting with the session's data.
type SessionStore interface {
	AddPlayer(playerID, name string) error
	RemovePlayer(playerID string) error
	GetAllPlayers() ([]PlayerInfo, error)
	GetPlayers(playerIDs []string) ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool
	UpsertMatch(match *Match) error
	UpsertMatches(matches []*Match) error
	GetAllMatches() ([]*Match, error)
	GetMatch(matchID string) (*Match, error)
	GetMatchesForProcessing() ([]*Match, error)
	UpdateScore(matchID string, homeScore, awayScore int, status MatchStatus) error
	UpdateProcessingStatus(matchID string, status ProcessingStatus) error
	UpdateNotificationTimestamp(matchID string, notificationType string) error
	SaveSettings(settings Settings) error
	GetSettings() (*Settings, error)
	SaveAssignment(asg assignment.Assignment) error
	GetAssignment() (assignment.Assignment, error)
	PlayersForMatch(matchID string) ([]PlayerInfo, error)
	AddSips(playerIDs []string, sips int) error
	GetSipLeaderboard() ([]PlayerInfo, error)
	Clear()
	ClearMatch(matchID string)
}

package processor

import (
	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/notifier"
	"github.com/klarskov/matchpint/internal/session"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetAllPlayers() ([]session.PlayerInfo, error)
	GetAllMatches() ([]*session.Match, error)
	GetMatchesForProcessing() ([]*session.Match, error)
	UpdateScore(matchID string, homeScore, awayScore int, status session.MatchStatus) error
	UpdateProcessingStatus(matchID string, status session.ProcessingStatus) error
	UpdateNotificationTimestamp(matchID string, notificationType string) error
	GetSettings() (*session.Settings, error)
	SaveAssignment(asg assignment.Assignment) error
	PlayersForMatch(matchID string) ([]session.PlayerInfo, error)
	AddSips(playerIDs []string, sips int) error
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}

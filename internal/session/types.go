package session

import (
	"database/sql"
	"sync"

	"github.com/klarskov/matchpint/internal/assignment"
)

// store handles all database operations for the session.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo represents a player in the store.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sips int    `json:"sips"`
}

// MatchStatus is the live state of a football match as reported by the
// scores API.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchLive      MatchStatus = "LIVE"
	MatchPaused    MatchStatus = "PAUSED"
	MatchFinished  MatchStatus = "FINISHED"
	MatchPostponed MatchStatus = "POSTPONED"
)

// ProcessingStatus is the internal processing state of a match.
type ProcessingStatus string

const (
	StatusNew             ProcessingStatus = "NEW"
	StatusKickoffNotified ProcessingStatus = "KICKOFF_NOTIFIED"
	StatusResultNotified  ProcessingStatus = "RESULT_NOTIFIED"
	StatusCompleted       ProcessingStatus = "COMPLETED"
)

// Match represents a football match tracked by the session.
type Match struct {
	ID                string           `json:"id"`
	HomeTeam          string           `json:"home_team"`
	AwayTeam          string           `json:"away_team"`
	Kickoff           int64            `json:"kickoff"`
	Status            MatchStatus      `json:"status"`
	HomeScore         int              `json:"home_score"`
	AwayScore         int              `json:"away_score"`
	ProcessingStatus  ProcessingStatus `json:"processing_status"`
	KickoffNotifiedTs *int64           `json:"kickoff_notified_ts,omitempty"`
	ResultNotifiedTs  *int64           `json:"result_notified_ts,omitempty"`
}

// Goals returns the combined score of the match.
func (m *Match) Goals() int {
	return m.HomeScore + m.AwayScore
}

// Settings holds the session-wide assignment configuration supplied by the
// user controls.
type Settings struct {
	Mode          assignment.Mode `json:"mode"`
	TargetCount   int             `json:"target_count"`
	CommonMatchID string          `json:"common_match_id,omitempty"`
}

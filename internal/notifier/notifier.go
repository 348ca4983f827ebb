package notifier

import (
	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/session"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly accepted assignment (including rerolls)
	SendAssignmentNotification(players []session.PlayerInfo, matches []*session.Match, asg assignment.Assignment, dryRun bool) error
	// For a run the engine rejected; reason is the user-facing message
	SendAssignmentFailed(reason string, dryRun bool) error
	// For every goal detected in a tracked match
	SendGoalNotification(match *session.Match, drinkers []session.PlayerInfo, dryRun bool) error
	// For finished matches
	SendResultNotification(match *session.Match, dryRun bool) error
	// For the sip tally
	SendSipLeaderboard(players []session.PlayerInfo, dryRun bool) error
}

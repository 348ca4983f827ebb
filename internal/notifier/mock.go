package notifier

import (
	"sync"

	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/session"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendAssignmentNotificationFunc func(players []session.PlayerInfo, matches []*session.Match, asg assignment.Assignment, dryRun bool) error
	SendAssignmentFailedFunc       func(reason string, dryRun bool) error
	SendGoalNotificationFunc       func(match *session.Match, drinkers []session.PlayerInfo, dryRun bool) error
	SendResultNotificationFunc     func(match *session.Match, dryRun bool) error
	SendSipLeaderboardFunc         func(players []session.PlayerInfo, dryRun bool) error

	// Call records
	AssignmentNotificationCalls []assignment.Assignment
	AssignmentFailedCalls       []string
	GoalNotificationCalls       []*session.Match
	ResultNotificationCalls     []*session.Match
	SipLeaderboardCalls         [][]session.PlayerInfo
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssignmentNotificationCalls = nil
	m.AssignmentFailedCalls = nil
	m.GoalNotificationCalls = nil
	m.ResultNotificationCalls = nil
	m.SipLeaderboardCalls = nil
}

func (m *Mock) SendAssignmentNotification(players []session.PlayerInfo, matches []*session.Match, asg assignment.Assignment, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssignmentNotificationCalls = append(m.AssignmentNotificationCalls, asg)
	if m.SendAssignmentNotificationFunc != nil {
		return m.SendAssignmentNotificationFunc(players, matches, asg, dryRun)
	}
	return nil
}

func (m *Mock) SendAssignmentFailed(reason string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssignmentFailedCalls = append(m.AssignmentFailedCalls, reason)
	if m.SendAssignmentFailedFunc != nil {
		return m.SendAssignmentFailedFunc(reason, dryRun)
	}
	return nil
}

func (m *Mock) SendGoalNotification(match *session.Match, drinkers []session.PlayerInfo, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GoalNotificationCalls = append(m.GoalNotificationCalls, match)
	if m.SendGoalNotificationFunc != nil {
		return m.SendGoalNotificationFunc(match, drinkers, dryRun)
	}
	return nil
}

func (m *Mock) SendResultNotification(match *session.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResultNotificationCalls = append(m.ResultNotificationCalls, match)
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendSipLeaderboard(players []session.PlayerInfo, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SipLeaderboardCalls = append(m.SipLeaderboardCalls, players)
	if m.SendSipLeaderboardFunc != nil {
		return m.SendSipLeaderboardFunc(players, dryRun)
	}
	return nil
}

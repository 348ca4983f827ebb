package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	assignmentRuns      int
	assignmentFailures  int
	assignmentDurations []float64
	pollerRuns          int
	goalsDetected       int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		assignmentDurations: make([]float64, 0),
	}
}

func (m *Mock) IncAssignmentRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignmentRuns++
}

func (m *Mock) IncAssignmentFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignmentFailures++
}

func (m *Mock) ObserveAssignmentDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignmentDurations = append(m.assignmentDurations, duration)
}

func (m *Mock) IncPollerRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollerRuns++
}

func (m *Mock) IncGoalsDetected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goalsDetected++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Accessors for test assertions.

func (m *Mock) AssignmentRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assignmentRuns
}

func (m *Mock) AssignmentFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assignmentFailures
}

func (m *Mock) AssignmentDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.assignmentDurations...)
}

func (m *Mock) PollerRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollerRuns
}

func (m *Mock) GoalsDetected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goalsDetected
}

func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

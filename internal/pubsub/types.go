package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventKickoff           EventType = "kickoff"
	EventGoalScored        EventType = "goal-scored"
	EventAssignmentCreated EventType = "assignment-created"
	EventMatchFinished     EventType = "match-finished"
)

// KickoffEvent is published when a tracked match goes live.
type KickoffEvent struct {
	MatchID  string `msgpack:"match_id"`
	HomeTeam string `msgpack:"home_team"`
	AwayTeam string `msgpack:"away_team"`
	Kickoff  int64  `msgpack:"kickoff"`
}

// GoalEvent is published for every goal detected in a tracked match, so
// downstream consumers (e.g. a party display) can react in real time.
type GoalEvent struct {
	MatchID   string   `msgpack:"match_id"`
	HomeTeam  string   `msgpack:"home_team"`
	AwayTeam  string   `msgpack:"away_team"`
	HomeScore int      `msgpack:"home_score"`
	AwayScore int      `msgpack:"away_score"`
	PlayerIDs []string `msgpack:"player_ids"`
}

// AssignmentEvent is published when a new assignment is accepted.
type AssignmentEvent struct {
	Mode        string `msgpack:"mode"`
	TargetCount int    `msgpack:"target_count"`
	PlayerCount int    `msgpack:"player_count"`
}

package processor

import (
	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/livescore"
	"github.com/klarskov/matchpint/internal/metrics"
	"github.com/klarskov/matchpint/internal/pubsub"
)

// Processor handles the business logic of tracking matches and running
// assignments.
type Processor struct {
	store    Store
	scores   livescore.LiveScoreClient
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	engine   *assignment.Engine
}

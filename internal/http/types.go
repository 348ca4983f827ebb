package http

import (
	"net/http"

	"github.com/klarskov/matchpint/internal/config"
	"github.com/klarskov/matchpint/internal/livescore"
	"github.com/klarskov/matchpint/internal/metrics"
	"github.com/klarskov/matchpint/internal/notifier"
	"github.com/klarskov/matchpint/internal/processor"
	"github.com/klarskov/matchpint/internal/pubsub"
	"github.com/klarskov/matchpint/internal/session"
)

type Server struct {
	Store          session.SessionStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	ScoresClient   livescore.LiveScoreClient
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

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

func NewServer(store session.SessionStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, scoresClient livescore.LiveScoreClient, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		ScoresClient:   scoresClient,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.MatchesHandler(), paramsMiddleware))
	s.Router.Handle("/assign", Chain(s.AssignHandler(), paramsMiddleware))
	s.Router.Handle("/assignments", Chain(s.ListAssignmentsHandler(), paramsMiddleware))
	s.Router.Handle("/poll", Chain(s.PollHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/notify-leaderboard", Chain(s.NotifyLeaderboardHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

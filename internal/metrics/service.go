package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		AssignmentRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchpint_assignment_runs_total",
			Help: "The total number of assignment engine runs, including rerolls.",
		}),
		AssignmentFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchpint_assignment_failures_total",
			Help: "The total number of assignment runs that ended in a typed failure.",
		}),
		AssignmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchpint_assignment_duration_seconds",
			Help:    "The duration of individual assignment engine runs.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		PollerRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchpint_poller_runs_total",
			Help: "The total number of times the live-score poller has run.",
		}),
		GoalsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchpint_goals_detected_total",
			Help: "The total number of goals detected across tracked matches.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchpint_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchpint_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchpint_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.AssignmentRuns,
		s.AssignmentFailures,
		s.AssignmentDuration,
		s.PollerRuns,
		s.GoalsDetected,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncAssignmentRuns() {
	s.AssignmentRuns.Inc()
}

func (s *Service) IncAssignmentFailures() {
	s.AssignmentFailures.Inc()
}

func (s *Service) ObserveAssignmentDuration(duration float64) {
	s.AssignmentDuration.Observe(duration)
}

func (s *Service) IncPollerRuns() {
	s.PollerRuns.Inc()
}

func (s *Service) IncGoalsDetected() {
	s.GoalsDetected.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

package http

import (
	"net/http"

	"github.com/openpitch/pickup/internal/availability"
	"github.com/openpitch/pickup/internal/config"
	"github.com/openpitch/pickup/internal/fields"
	"github.com/openpitch/pickup/internal/matchmaking"
	"github.com/openpitch/pickup/internal/metrics"
	"github.com/openpitch/pickup/internal/pubsub"
)

func NewServer(registry availability.Registry, fieldStore fields.FieldStore, coordinator matchmaking.Coordinator, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Availability:   registry,
		Fields:         fieldStore,
		Coordinator:    coordinator,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
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
	s.Router.Handle("/availability", Chain(s.AvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/fields/slots", Chain(s.IngestFieldSlotsHandler(), paramsMiddleware))
	s.Router.Handle("/fields/schedule", Chain(s.FieldScheduleHandler(), paramsMiddleware))
	s.Router.Handle("/match-requests", Chain(s.CreateMatchRequestHandler(), paramsMiddleware))
	s.Router.Handle("/match-requests/open", Chain(s.OpenMatchRequestsHandler(), paramsMiddleware))
	s.Router.Handle("/match-requests/mine", Chain(s.MatchRequestsForUserHandler(), paramsMiddleware))
	s.Router.Handle("/match-requests/join", Chain(s.JoinMatchRequestHandler(), paramsMiddleware))
	s.Router.Handle("/match-requests/leave", Chain(s.LeaveMatchRequestHandler(), paramsMiddleware))
	s.Router.Handle("/match-requests/confirm", Chain(s.ConfirmMatchRequestHandler(), paramsMiddleware))
	s.Router.Handle("/match-requests/cancel", Chain(s.CancelMatchRequestHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

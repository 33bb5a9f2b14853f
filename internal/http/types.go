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

type Server struct {
	Availability   availability.Registry
	Fields         fields.FieldStore
	Coordinator    matchmaking.Coordinator
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

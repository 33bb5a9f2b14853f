package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	RequestsCreated     prometheus.Counter
	PlayersJoined       prometheus.Counter
	RequestsConfirmed   prometheus.Counter
	RequestsCancelled   prometheus.Counter
	AvailabilityRecords prometheus.Counter
	SlotIngests         prometheus.Counter
	ConfirmDuration     prometheus.Histogram
	StartupTimeSeconds  prometheus.Gauge
}

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
		RequestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickup_match_requests_created_total",
			Help: "The total number of match requests created.",
		}),
		PlayersJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickup_match_request_joins_total",
			Help: "The total number of successful join actions on match requests.",
		}),
		RequestsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickup_match_requests_confirmed_total",
			Help: "The total number of match requests confirmed against a field slot.",
		}),
		RequestsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickup_match_requests_cancelled_total",
			Help: "The total number of match requests cancelled.",
		}),
		AvailabilityRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickup_availability_records_total",
			Help: "The total number of user availability records added.",
		}),
		SlotIngests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickup_field_slot_ingests_total",
			Help: "The total number of field slot ingest calls.",
		}),
		ConfirmDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pickup_confirmation_duration_seconds",
			Help:    "The duration of individual match request confirmations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pickup_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RequestsCreated,
		s.PlayersJoined,
		s.RequestsConfirmed,
		s.RequestsCancelled,
		s.AvailabilityRecords,
		s.SlotIngests,
		s.ConfirmDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRequestsCreated() {
	s.RequestsCreated.Inc()
}

func (s *Service) IncPlayersJoined() {
	s.PlayersJoined.Inc()
}

func (s *Service) IncRequestsConfirmed() {
	s.RequestsConfirmed.Inc()
}

func (s *Service) IncRequestsCancelled() {
	s.RequestsCancelled.Inc()
}

func (s *Service) IncAvailabilityRecords() {
	s.AvailabilityRecords.Inc()
}

func (s *Service) IncSlotIngests() {
	s.SlotIngests.Inc()
}

func (s *Service) ObserveConfirmDuration(duration float64) {
	s.ConfirmDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

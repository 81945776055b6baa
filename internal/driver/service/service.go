// Package service holds the registration intake and admin action
// services. Both are stateless per request; all shared state lives in
// the store and the identifier sequence.
package service

import (
	"log/slog"

	"drivergate/internal/audit"
	drivermetrics "drivergate/internal/driver/metrics"
	"drivergate/internal/driver/sequence"
	"drivergate/internal/driver/store"
)

// Service orchestrates the driver lifecycle: intake creates pending
// records, admin actions move them through the state machine.
type Service struct {
	drivers store.DriverStore
	issuer  sequence.Issuer
	log     *slog.Logger
	auditor audit.Publisher
	metrics *drivermetrics.Metrics
}

type Option func(s *Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

func WithMetrics(m *drivermetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service. The issuer is required because approve must
// never mark a record Active without a driver id.
func New(drivers store.DriverStore, issuer sequence.Issuer, opts ...Option) *Service {
	s := &Service{
		drivers: drivers,
		issuer:  issuer,
		log:     slog.Default(),
		auditor: audit.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

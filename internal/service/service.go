package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/metrics"
	"github.com/Dan9191/bank-clients/internal/repository"
)

// Service bundles the reference catalog, the financial record store and the
// client manager. Every operation runs in its own unit of work.
type Service struct {
	Catalog *Catalog
	Finance *Finance
	Clients *Clients
}

// NewService initializes a new service. rates and m may be nil.
func NewService(uow repository.UnitOfWork, log *logrus.Logger, rates KeyRateProvider, m *metrics.Metrics) *Service {
	finance := &Finance{uow: uow, log: log}
	return &Service{
		Catalog: &Catalog{uow: uow, rates: rates, log: log},
		Finance: finance,
		Clients: &Clients{uow: uow, finance: finance, log: log, metrics: m},
	}
}

// inTx runs fn in a unit of work and hands back its result once committed.
func inTx[T any](ctx context.Context, uow repository.UnitOfWork, fn func(repository.Store) (T, error)) (T, error) {
	var out T
	err := uow.RunInTx(ctx, func(st repository.Store) error {
		var err error
		out, err = fn(st)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

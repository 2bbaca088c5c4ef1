package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/models"
	"github.com/Dan9191/bank-clients/internal/repository"
)

// KeyRateProvider supplies the current central bank key rate, margin included.
type KeyRateProvider interface {
	GetKeyRate(ctx context.Context) (float64, error)
}

// Catalog serves the read-only reference tables
type Catalog struct {
	uow   repository.UnitOfWork
	rates KeyRateProvider
	log   *logrus.Logger
}

func (c *Catalog) ListJobs(ctx context.Context) ([]models.Job, error) {
	return inTx(ctx, c.uow, func(st repository.Store) ([]models.Job, error) {
		return st.ListJobs(ctx)
	})
}

func (c *Catalog) ListEducationLevels(ctx context.Context) ([]models.EducationLevel, error) {
	return inTx(ctx, c.uow, func(st repository.Store) ([]models.EducationLevel, error) {
		return st.ListEducationLevels(ctx)
	})
}

func (c *Catalog) ListMaritalStatuses(ctx context.Context) ([]models.MaritalStatus, error) {
	return inTx(ctx, c.uow, func(st repository.Store) ([]models.MaritalStatus, error) {
		return st.ListMaritalStatuses(ctx)
	})
}

func (c *Catalog) ListDepositTypes(ctx context.Context) ([]models.DepositType, error) {
	return inTx(ctx, c.uow, func(st repository.Store) ([]models.DepositType, error) {
		return st.ListDepositTypes(ctx)
	})
}

// KeyRate returns the key rate used as a reference for new loans and
// deposits. It fails with apperr.ErrUnavailable when no provider is wired or
// the provider cannot answer.
func (c *Catalog) KeyRate(ctx context.Context) (float64, error) {
	if c.rates == nil {
		return 0, fmt.Errorf("key rate provider not configured: %w", apperr.ErrUnavailable)
	}
	rate, err := c.rates.GetKeyRate(ctx)
	if err != nil {
		c.log.WithError(err).Warn("Key rate lookup failed")
		return 0, fmt.Errorf("key rate lookup failed: %w", apperr.ErrUnavailable)
	}
	return rate, nil
}

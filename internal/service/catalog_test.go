package service

import (
	"context"
	"errors"

	"github.com/Dan9191/bank-clients/internal/apperr"
)

type stubRates struct {
	rate float64
	err  error
}

func (r stubRates) GetKeyRate(context.Context) (float64, error) {
	return r.rate, r.err
}

func (s *ServiceSuite) TestReferences() {
	jobs, err := s.svc.Catalog.ListJobs(s.ctx)
	s.Require().NoError(err)
	s.Len(jobs, 1)
	s.Equal(s.job, jobs[0])

	levels, err := s.svc.Catalog.ListEducationLevels(s.ctx)
	s.Require().NoError(err)
	s.Len(levels, 1)

	statuses, err := s.svc.Catalog.ListMaritalStatuses(s.ctx)
	s.Require().NoError(err)
	s.Len(statuses, 1)

	types, err := s.svc.Catalog.ListDepositTypes(s.ctx)
	s.Require().NoError(err)
	s.Len(types, 2)
	s.Equal(s.savings.ID, types[0].ID)
	s.Equal(s.termDeposit.ID, types[1].ID)
}

func (s *ServiceSuite) TestKeyRate() {
	s.Run("not configured", func() {
		_, err := s.svc.Catalog.KeyRate(s.ctx)
		s.Require().ErrorIs(err, apperr.ErrUnavailable)
	})

	s.Run("provider answers", func() {
		svc := NewService(s.store, s.log, stubRates{rate: 21}, nil)
		rate, err := svc.Catalog.KeyRate(s.ctx)
		s.Require().NoError(err)
		s.Equal(21.0, rate)
	})

	s.Run("provider fails", func() {
		svc := NewService(s.store, s.log, stubRates{err: errors.New("soap fault")}, nil)
		_, err := svc.Catalog.KeyRate(s.ctx)
		s.Require().ErrorIs(err, apperr.ErrUnavailable)
	})
}

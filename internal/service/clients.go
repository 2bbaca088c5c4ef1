package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/metrics"
	"github.com/Dan9191/bank-clients/internal/models"
	"github.com/Dan9191/bank-clients/internal/repository"
)

// Clients owns client records, their three read projections and the
// cascading deletion protocol
type Clients struct {
	uow     repository.UnitOfWork
	finance *Finance
	log     *logrus.Logger
	metrics *metrics.Metrics
}

// List returns a page of clients in summary form; references are not resolved.
func (c *Clients) List(ctx context.Context, skip, limit int) ([]models.Client, error) {
	ve := &apperr.ValidationError{}
	if skip < 0 {
		ve.Add("skip", "must be greater than or equal to 0")
	}
	if limit < 0 {
		ve.Add("limit", "must be greater than or equal to 0")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	return inTx(ctx, c.uow, func(st repository.Store) ([]models.Client, error) {
		return st.ListClients(ctx, skip, limit)
	})
}

// GetDetail returns the client with job, education level and marital status
// resolved. Loans and deposits are never loaded here.
func (c *Clients) GetDetail(ctx context.Context, id int64) (*models.ClientDetail, error) {
	return inTx(ctx, c.uow, func(st repository.Store) (*models.ClientDetail, error) {
		return st.GetClientDetail(ctx, id)
	})
}

// GetFull returns the full dossier: detail plus every loan and deposit.
func (c *Clients) GetFull(ctx context.Context, id int64) (*models.ClientFull, error) {
	return inTx(ctx, c.uow, func(st repository.Store) (*models.ClientFull, error) {
		detail, err := st.GetClientDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		loans, deposits, err := c.finance.attached(ctx, st, id)
		if err != nil {
			return nil, err
		}
		return &models.ClientFull{ClientDetail: *detail, Loans: loans, Deposits: deposits}, nil
	})
}

// Create validates and stores a new client
func (c *Clients) Create(ctx context.Context, in models.ClientCreate) (*models.Client, error) {
	ve := &apperr.ValidationError{}
	checkStruct(ve, in)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	client := in.Client()
	if err := c.uow.RunInTx(ctx, func(st repository.Store) error {
		return st.CreateClient(ctx, client)
	}); err != nil {
		return nil, err
	}

	c.log.Infof("Client %d created: %s", client.ID, client.FullName)
	return client, nil
}

// Update applies the fields present in patch, commits, and returns the
// client re-read in detail form.
func (c *Clients) Update(ctx context.Context, id int64, patch models.ClientUpdate) (*models.ClientDetail, error) {
	if err := validateClientUpdate(patch); err != nil {
		return nil, err
	}

	err := c.uow.RunInTx(ctx, func(st repository.Store) error {
		client, err := st.GetClient(ctx, id)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		patch.Apply(client)
		return st.UpdateClient(ctx, client)
	})
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		c.log.Infof("Client %d updated", id)
	}
	return c.GetDetail(ctx, id)
}

// Delete removes a client. Without force, a client that still has loans or
// deposits is rejected with *apperr.ConflictError and nothing changes. With
// force, its loans and then its deposits are deleted before the client, all
// in one unit of work.
func (c *Clients) Delete(ctx context.Context, id int64, force bool) (*models.ClientDeletion, error) {
	result, err := inTx(ctx, c.uow, func(st repository.Store) (*models.ClientDeletion, error) {
		if _, err := st.GetClient(ctx, id); err != nil {
			return nil, err
		}

		loans, deposits, err := c.finance.attached(ctx, st, id)
		if err != nil {
			return nil, err
		}
		if !force && (len(loans) > 0 || len(deposits) > 0) {
			return nil, &apperr.ConflictError{ClientID: id, Loans: len(loans), Deposits: len(deposits)}
		}

		deletedLoans, deletedDeposits, err := c.finance.purge(ctx, st, loans, deposits)
		if err != nil {
			return nil, err
		}
		if err := st.DeleteClient(ctx, id); err != nil {
			return nil, err
		}

		return &models.ClientDeletion{
			Deleted:         true,
			ClientID:        id,
			DeletedLoans:    deletedLoans,
			DeletedDeposits: deletedDeposits,
		}, nil
	})
	if err != nil {
		var conflict *apperr.ConflictError
		if errors.As(err, &conflict) {
			c.metrics.IncrementDeletionsBlocked()
			c.log.Warnf("Deletion of client %d blocked: %d loan(s), %d deposit(s)", id, conflict.Loans, conflict.Deposits)
		}
		return nil, err
	}

	c.metrics.RecordClientDeletion(force, result.DeletedLoans, result.DeletedDeposits)
	c.log.Infof("Client %d deleted (loans: %d, deposits: %d)", id, result.DeletedLoans, result.DeletedDeposits)
	return result, nil
}

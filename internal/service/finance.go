package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/models"
	"github.com/Dan9191/bank-clients/internal/repository"
)

// Finance manages loans and deposits
type Finance struct {
	uow repository.UnitOfWork
	log *logrus.Logger
}

// CreateLoan issues a new loan to an existing client
func (f *Finance) CreateLoan(ctx context.Context, in models.LoanCreate) (*models.Loan, error) {
	ve := &apperr.ValidationError{}
	checkStruct(ve, in)
	checkDateRange(ve, in.StartDate, in.EndDate)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	loan := in.Loan()
	if err := f.uow.RunInTx(ctx, func(st repository.Store) error {
		return st.CreateLoan(ctx, loan)
	}); err != nil {
		return nil, err
	}

	f.log.Infof("Loan %d issued to client %d: %.2f at %.2f%%", loan.ID, loan.ClientID, loan.Amount, loan.InterestRate)
	return loan, nil
}

func (f *Finance) GetLoan(ctx context.Context, id int64) (*models.Loan, error) {
	return inTx(ctx, f.uow, func(st repository.Store) (*models.Loan, error) {
		return st.GetLoan(ctx, id)
	})
}

// ListLoansByClient returns every loan of the client; the client must exist.
func (f *Finance) ListLoansByClient(ctx context.Context, clientID int64) ([]models.Loan, error) {
	return inTx(ctx, f.uow, func(st repository.Store) ([]models.Loan, error) {
		if _, err := st.GetClient(ctx, clientID); err != nil {
			return nil, err
		}
		return st.ListLoansByClient(ctx, clientID)
	})
}

// ListOverdueLoans returns every loan flagged overdue
func (f *Finance) ListOverdueLoans(ctx context.Context) ([]models.Loan, error) {
	return inTx(ctx, f.uow, func(st repository.Store) ([]models.Loan, error) {
		return st.ListOverdueLoans(ctx)
	})
}

// UpdateLoan applies the fields present in patch. An empty patch returns the
// stored loan untouched.
func (f *Finance) UpdateLoan(ctx context.Context, id int64, patch models.LoanUpdate) (*models.Loan, error) {
	if err := validateLoanUpdate(patch); err != nil {
		return nil, err
	}

	loan, err := inTx(ctx, f.uow, func(st repository.Store) (*models.Loan, error) {
		loan, err := st.GetLoan(ctx, id)
		if err != nil {
			return nil, err
		}
		if patch.IsEmpty() {
			return loan, nil
		}
		patch.Apply(loan)

		ve := &apperr.ValidationError{}
		checkDateRange(ve, loan.StartDate, loan.EndDate)
		if err := ve.OrNil(); err != nil {
			return nil, err
		}
		if err := st.UpdateLoan(ctx, loan); err != nil {
			return nil, err
		}
		return loan, nil
	})
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		f.log.Infof("Loan %d updated", id)
	}
	return loan, nil
}

// DeleteLoan removes a loan and reports whether it existed
func (f *Finance) DeleteLoan(ctx context.Context, id int64) (bool, error) {
	err := f.uow.RunInTx(ctx, func(st repository.Store) error {
		return st.DeleteLoan(ctx, id)
	})
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	f.log.Infof("Loan %d deleted", id)
	return true, nil
}

// CreateDeposit opens a deposit and returns it with its type resolved
func (f *Finance) CreateDeposit(ctx context.Context, in models.DepositCreate) (*models.Deposit, error) {
	ve := &apperr.ValidationError{}
	checkStruct(ve, in)
	checkDateRange(ve, in.StartDate, in.EndDate)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	deposit, err := inTx(ctx, f.uow, func(st repository.Store) (*models.Deposit, error) {
		row := in.Deposit()
		if err := st.CreateDeposit(ctx, row); err != nil {
			return nil, err
		}
		return st.GetDeposit(ctx, row.ID)
	})
	if err != nil {
		return nil, err
	}

	f.log.Infof("Deposit %d opened for client %d: %.2f (%s)", deposit.ID, deposit.ClientID, deposit.Amount, deposit.Type.Name)
	return deposit, nil
}

func (f *Finance) GetDeposit(ctx context.Context, id int64) (*models.Deposit, error) {
	return inTx(ctx, f.uow, func(st repository.Store) (*models.Deposit, error) {
		return st.GetDeposit(ctx, id)
	})
}

// ListDepositsByClient returns every deposit of the client; the client must exist.
func (f *Finance) ListDepositsByClient(ctx context.Context, clientID int64) ([]models.Deposit, error) {
	return inTx(ctx, f.uow, func(st repository.Store) ([]models.Deposit, error) {
		if _, err := st.GetClient(ctx, clientID); err != nil {
			return nil, err
		}
		return st.ListDepositsByClient(ctx, clientID)
	})
}

// UpdateDeposit applies the fields present in patch and returns the deposit
// with its type re-resolved.
func (f *Finance) UpdateDeposit(ctx context.Context, id int64, patch models.DepositUpdate) (*models.Deposit, error) {
	if err := validateDepositUpdate(patch); err != nil {
		return nil, err
	}

	deposit, err := inTx(ctx, f.uow, func(st repository.Store) (*models.Deposit, error) {
		deposit, err := st.GetDeposit(ctx, id)
		if err != nil {
			return nil, err
		}
		if patch.IsEmpty() {
			return deposit, nil
		}
		patch.Apply(deposit)

		ve := &apperr.ValidationError{}
		checkDateRange(ve, deposit.StartDate, deposit.EndDate)
		if err := ve.OrNil(); err != nil {
			return nil, err
		}
		if err := st.UpdateDeposit(ctx, deposit); err != nil {
			return nil, err
		}
		return st.GetDeposit(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		f.log.Infof("Deposit %d updated", id)
	}
	return deposit, nil
}

// DeleteDeposit removes a deposit and reports whether it existed
func (f *Finance) DeleteDeposit(ctx context.Context, id int64) (bool, error) {
	err := f.uow.RunInTx(ctx, func(st repository.Store) error {
		return st.DeleteDeposit(ctx, id)
	})
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	f.log.Infof("Deposit %d deleted", id)
	return true, nil
}

// attached lists a client's loans and deposits inside the caller's unit of work.
func (f *Finance) attached(ctx context.Context, st repository.Store, clientID int64) ([]models.Loan, []models.Deposit, error) {
	loans, err := st.ListLoansByClient(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	deposits, err := st.ListDepositsByClient(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	return loans, deposits, nil
}

// purge deletes the given loans, then the given deposits, inside the caller's
// unit of work and counts each removal.
func (f *Finance) purge(ctx context.Context, st repository.Store, loans []models.Loan, deposits []models.Deposit) (int, int, error) {
	var deletedLoans, deletedDeposits int
	for _, l := range loans {
		if err := st.DeleteLoan(ctx, l.ID); err != nil {
			return 0, 0, err
		}
		deletedLoans++
	}
	for _, d := range deposits {
		if err := st.DeleteDeposit(ctx, d.ID); err != nil {
			return 0, 0, err
		}
		deletedDeposits++
	}
	return deletedLoans, deletedDeposits, nil
}

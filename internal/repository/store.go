package repository

import (
	"context"

	"github.com/Dan9191/bank-clients/internal/models"
)

// Store is the persistence port used by the services. Lookups of a missing
// row, and updates or deletes that touch no row, return apperr.ErrNotFound.
type Store interface {
	ReferenceStore
	ClientStore
	LoanStore
	DepositStore
}

// UnitOfWork runs fn against a Store bound to a single transaction. The
// transaction commits only when fn returns nil and is rolled back otherwise.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(Store) error) error
}

// ReferenceStore reads the lookup tables in ascending id order. The Create
// methods exist for seeding only.
type ReferenceStore interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	ListEducationLevels(ctx context.Context) ([]models.EducationLevel, error)
	ListMaritalStatuses(ctx context.Context) ([]models.MaritalStatus, error)
	ListDepositTypes(ctx context.Context) ([]models.DepositType, error)

	CreateJob(ctx context.Context, job *models.Job) error
	CreateEducationLevel(ctx context.Context, level *models.EducationLevel) error
	CreateMaritalStatus(ctx context.Context, status *models.MaritalStatus) error
	CreateDepositType(ctx context.Context, depositType *models.DepositType) error
}

// ClientStore persists client rows. GetClientDetail resolves the reference
// relations in the same fetch.
type ClientStore interface {
	ListClients(ctx context.Context, skip, limit int) ([]models.Client, error)
	CountClients(ctx context.Context) (int, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)
	GetClientDetail(ctx context.Context, id int64) (*models.ClientDetail, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClient(ctx context.Context, client *models.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

type LoanStore interface {
	CreateLoan(ctx context.Context, loan *models.Loan) error
	GetLoan(ctx context.Context, id int64) (*models.Loan, error)
	ListLoansByClient(ctx context.Context, clientID int64) ([]models.Loan, error)
	ListOverdueLoans(ctx context.Context) ([]models.Loan, error)
	UpdateLoan(ctx context.Context, loan *models.Loan) error
	DeleteLoan(ctx context.Context, id int64) error
}

// DepositStore persists deposits. Every read resolves the deposit type;
// CreateDeposit and UpdateDeposit only write the row.
type DepositStore interface {
	CreateDeposit(ctx context.Context, deposit *models.Deposit) error
	GetDeposit(ctx context.Context, id int64) (*models.Deposit, error)
	ListDepositsByClient(ctx context.Context, clientID int64) ([]models.Deposit, error)
	UpdateDeposit(ctx context.Context, deposit *models.Deposit) error
	DeleteDeposit(ctx context.Context, id int64) error
}

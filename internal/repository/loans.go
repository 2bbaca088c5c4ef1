package repository

import (
	"context"

	"github.com/Dan9191/bank-clients/internal/models"
)

const loanColumns = `id, client_id, amount, interest_rate, start_date, end_date, is_overdue, overdue_amount`

func scanLoan(row rowScanner, l *models.Loan) error {
	return row.Scan(&l.ID, &l.ClientID, &l.Amount, &l.InterestRate, &l.StartDate, &l.EndDate, &l.IsOverdue, &l.OverdueAmount)
}

func (r *Repository) queryLoans(ctx context.Context, op, query string, args ...any) ([]models.Loan, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, op)
	}
	defer rows.Close()

	out := []models.Loan{}
	for rows.Next() {
		var l models.Loan
		if err := scanLoan(rows, &l); err != nil {
			return nil, mapError(err, "scan loan")
		}
		out = append(out, l)
	}
	return out, mapError(rows.Err(), op)
}

// CreateLoan inserts a loan and fills its id
func (r *Repository) CreateLoan(ctx context.Context, l *models.Loan) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO bank.loans (client_id, amount, interest_rate, start_date, end_date, is_overdue, overdue_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		l.ClientID, l.Amount, l.InterestRate, l.StartDate, l.EndDate, l.IsOverdue, l.OverdueAmount,
	).Scan(&l.ID)
	return mapError(err, "create loan")
}

func (r *Repository) GetLoan(ctx context.Context, id int64) (*models.Loan, error) {
	l := &models.Loan{}
	row := r.q.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM bank.loans WHERE id = $1`, id)
	if err := scanLoan(row, l); err != nil {
		return nil, mapError(err, "find loan")
	}
	return l, nil
}

func (r *Repository) ListLoansByClient(ctx context.Context, clientID int64) ([]models.Loan, error) {
	return r.queryLoans(ctx, "list client loans",
		`SELECT `+loanColumns+` FROM bank.loans WHERE client_id = $1 ORDER BY id`, clientID)
}

// ListOverdueLoans returns every loan flagged overdue, largest debt first
func (r *Repository) ListOverdueLoans(ctx context.Context) ([]models.Loan, error) {
	return r.queryLoans(ctx, "list overdue loans",
		`SELECT `+loanColumns+` FROM bank.loans WHERE is_overdue ORDER BY overdue_amount DESC, id`)
}

func (r *Repository) UpdateLoan(ctx context.Context, l *models.Loan) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE bank.loans
		SET amount = $2, interest_rate = $3, start_date = $4, end_date = $5,
			is_overdue = $6, overdue_amount = $7
		WHERE id = $1`,
		l.ID, l.Amount, l.InterestRate, l.StartDate, l.EndDate, l.IsOverdue, l.OverdueAmount,
	)
	if err != nil {
		return mapError(err, "update loan")
	}
	return expectAffected(res, "update loan")
}

func (r *Repository) DeleteLoan(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM bank.loans WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete loan")
	}
	return expectAffected(res, "delete loan")
}

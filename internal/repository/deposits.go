package repository

import (
	"context"

	"github.com/Dan9191/bank-clients/internal/models"
)

const depositSelect = `
	SELECT d.id, d.client_id, d.type_id, d.amount, d.interest_rate, d.start_date, d.end_date, d.final_amount,
		t.id, t.name
	FROM bank.deposits d
	JOIN bank.deposit_types t ON t.id = d.type_id`

func scanDeposit(row rowScanner, d *models.Deposit) error {
	t := &models.DepositType{}
	err := row.Scan(&d.ID, &d.ClientID, &d.TypeID, &d.Amount, &d.InterestRate, &d.StartDate, &d.EndDate, &d.FinalAmount,
		&t.ID, &t.Name)
	if err != nil {
		return err
	}
	d.Type = t
	return nil
}

// CreateDeposit inserts a deposit and fills its id. The type is not resolved.
func (r *Repository) CreateDeposit(ctx context.Context, d *models.Deposit) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO bank.deposits (client_id, type_id, amount, interest_rate, start_date, end_date, final_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		d.ClientID, d.TypeID, d.Amount, d.InterestRate, d.StartDate, d.EndDate, d.FinalAmount,
	).Scan(&d.ID)
	return mapError(err, "create deposit")
}

// GetDeposit retrieves a deposit with its type resolved
func (r *Repository) GetDeposit(ctx context.Context, id int64) (*models.Deposit, error) {
	d := &models.Deposit{}
	if err := scanDeposit(r.q.QueryRowContext(ctx, depositSelect+` WHERE d.id = $1`, id), d); err != nil {
		return nil, mapError(err, "find deposit")
	}
	return d, nil
}

// ListDepositsByClient returns the client's deposits with types resolved
func (r *Repository) ListDepositsByClient(ctx context.Context, clientID int64) ([]models.Deposit, error) {
	rows, err := r.q.QueryContext(ctx, depositSelect+` WHERE d.client_id = $1 ORDER BY d.id`, clientID)
	if err != nil {
		return nil, mapError(err, "list client deposits")
	}
	defer rows.Close()

	out := []models.Deposit{}
	for rows.Next() {
		var d models.Deposit
		if err := scanDeposit(rows, &d); err != nil {
			return nil, mapError(err, "scan deposit")
		}
		out = append(out, d)
	}
	return out, mapError(rows.Err(), "list client deposits")
}

func (r *Repository) UpdateDeposit(ctx context.Context, d *models.Deposit) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE bank.deposits
		SET type_id = $2, amount = $3, interest_rate = $4, start_date = $5, end_date = $6, final_amount = $7
		WHERE id = $1`,
		d.ID, d.TypeID, d.Amount, d.InterestRate, d.StartDate, d.EndDate, d.FinalAmount,
	)
	if err != nil {
		return mapError(err, "update deposit")
	}
	return expectAffected(res, "update deposit")
}

func (r *Repository) DeleteDeposit(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM bank.deposits WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete deposit")
	}
	return expectAffected(res, "delete deposit")
}

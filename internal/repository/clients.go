package repository

import (
	"context"
	"database/sql"

	"github.com/Dan9191/bank-clients/internal/models"
)

const clientColumns = `c.id, c.full_name, c.age, c.is_bankrupt, c.job_id, c.education_level_id, c.marital_status_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner, c *models.Client, extra ...any) error {
	var jobID, educationID, maritalID sql.NullInt64
	dest := append([]any{&c.ID, &c.FullName, &c.Age, &c.IsBankrupt, &jobID, &educationID, &maritalID}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	c.JobID = int64Ptr(jobID)
	c.EducationLevelID = int64Ptr(educationID)
	c.MaritalStatusID = int64Ptr(maritalID)
	return nil
}

// ListClients returns a page of client rows ordered by id
func (r *Repository) ListClients(ctx context.Context, skip, limit int) ([]models.Client, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+clientColumns+`
		FROM bank.clients c
		ORDER BY c.id
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, mapError(err, "list clients")
	}
	defer rows.Close()

	out := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, mapError(err, "scan client")
		}
		out = append(out, c)
	}
	return out, mapError(rows.Err(), "list clients")
}

func (r *Repository) CountClients(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM bank.clients`).Scan(&n)
	return n, mapError(err, "count clients")
}

// GetClient retrieves a client row by id
func (r *Repository) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	c := &models.Client{}
	row := r.q.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM bank.clients c WHERE c.id = $1`, id)
	if err := scanClient(row, c); err != nil {
		return nil, mapError(err, "find client")
	}
	return c, nil
}

// GetClientDetail retrieves a client together with its job, education level
// and marital status in one query
func (r *Repository) GetClientDetail(ctx context.Context, id int64) (*models.ClientDetail, error) {
	var (
		d                     models.ClientDetail
		jobID, jobSalary      sql.NullInt64
		jobName               sql.NullString
		educationID, statusID sql.NullInt64
		educationName         sql.NullString
		statusName            sql.NullString
	)
	row := r.q.QueryRowContext(ctx, `
		SELECT `+clientColumns+`,
			j.id, j.name, j.salary,
			e.id, e.name,
			m.id, m.name
		FROM bank.clients c
		LEFT JOIN bank.jobs j ON j.id = c.job_id
		LEFT JOIN bank.education_levels e ON e.id = c.education_level_id
		LEFT JOIN bank.marital_statuses m ON m.id = c.marital_status_id
		WHERE c.id = $1`, id)
	err := scanClient(row, &d.Client,
		&jobID, &jobName, &jobSalary,
		&educationID, &educationName,
		&statusID, &statusName,
	)
	if err != nil {
		return nil, mapError(err, "find client detail")
	}

	if jobID.Valid {
		d.Job = &models.Job{ID: jobID.Int64, Name: jobName.String, Salary: jobSalary.Int64}
	}
	if educationID.Valid {
		d.EducationLevel = &models.EducationLevel{ID: educationID.Int64, Name: educationName.String}
	}
	if statusID.Valid {
		d.MaritalStatus = &models.MaritalStatus{ID: statusID.Int64, Name: statusName.String}
	}
	return &d, nil
}

// CreateClient inserts a client and fills its id
func (r *Repository) CreateClient(ctx context.Context, c *models.Client) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO bank.clients (full_name, age, is_bankrupt, job_id, education_level_id, marital_status_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		c.FullName, c.Age, c.IsBankrupt, c.JobID, c.EducationLevelID, c.MaritalStatusID,
	).Scan(&c.ID)
	return mapError(err, "create client")
}

// UpdateClient writes every column of an already patched client row
func (r *Repository) UpdateClient(ctx context.Context, c *models.Client) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE bank.clients
		SET full_name = $2, age = $3, is_bankrupt = $4,
			job_id = $5, education_level_id = $6, marital_status_id = $7
		WHERE id = $1`,
		c.ID, c.FullName, c.Age, c.IsBankrupt, c.JobID, c.EducationLevelID, c.MaritalStatusID,
	)
	if err != nil {
		return mapError(err, "update client")
	}
	return expectAffected(res, "update client")
}

func (r *Repository) DeleteClient(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM bank.clients WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete client")
	}
	return expectAffected(res, "delete client")
}

package repository

import (
	"context"

	"github.com/Dan9191/bank-clients/internal/models"
)

// ListJobs returns every job ordered by id
func (r *Repository) ListJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, salary FROM bank.jobs ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list jobs")
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Name, &j.Salary); err != nil {
			return nil, mapError(err, "scan job")
		}
		out = append(out, j)
	}
	return out, mapError(rows.Err(), "list jobs")
}

// ListEducationLevels returns every education level ordered by id
func (r *Repository) ListEducationLevels(ctx context.Context) ([]models.EducationLevel, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM bank.education_levels ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list education levels")
	}
	defer rows.Close()

	out := []models.EducationLevel{}
	for rows.Next() {
		var e models.EducationLevel
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, mapError(err, "scan education level")
		}
		out = append(out, e)
	}
	return out, mapError(rows.Err(), "list education levels")
}

// ListMaritalStatuses returns every marital status ordered by id
func (r *Repository) ListMaritalStatuses(ctx context.Context) ([]models.MaritalStatus, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM bank.marital_statuses ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list marital statuses")
	}
	defer rows.Close()

	out := []models.MaritalStatus{}
	for rows.Next() {
		var m models.MaritalStatus
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, mapError(err, "scan marital status")
		}
		out = append(out, m)
	}
	return out, mapError(rows.Err(), "list marital statuses")
}

// ListDepositTypes returns every deposit type ordered by id
func (r *Repository) ListDepositTypes(ctx context.Context) ([]models.DepositType, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM bank.deposit_types ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list deposit types")
	}
	defer rows.Close()

	out := []models.DepositType{}
	for rows.Next() {
		var t models.DepositType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, mapError(err, "scan deposit type")
		}
		out = append(out, t)
	}
	return out, mapError(rows.Err(), "list deposit types")
}

func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO bank.jobs (name, salary) VALUES ($1, $2) RETURNING id`,
		job.Name, job.Salary).Scan(&job.ID)
	return mapError(err, "create job")
}

func (r *Repository) CreateEducationLevel(ctx context.Context, level *models.EducationLevel) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO bank.education_levels (name) VALUES ($1) RETURNING id`,
		level.Name).Scan(&level.ID)
	return mapError(err, "create education level")
}

func (r *Repository) CreateMaritalStatus(ctx context.Context, status *models.MaritalStatus) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO bank.marital_statuses (name) VALUES ($1) RETURNING id`,
		status.Name).Scan(&status.ID)
	return mapError(err, "create marital status")
}

func (r *Repository) CreateDepositType(ctx context.Context, depositType *models.DepositType) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO bank.deposit_types (name) VALUES ($1) RETURNING id`,
		depositType.Name).Scan(&depositType.ID)
	return mapError(err, "create deposit type")
}

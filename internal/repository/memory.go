package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/models"
)

// Memory is an in-process Store used for development and tests. Units of
// work are serialized; each runs on a copy of the state that replaces the
// live state only on success, so a failed unit leaves nothing behind.
type Memory struct {
	mu    sync.Mutex
	state *memState
}

type memState struct {
	jobs         map[int64]models.Job
	educations   map[int64]models.EducationLevel
	maritals     map[int64]models.MaritalStatus
	depositTypes map[int64]models.DepositType
	clients      map[int64]models.Client
	loans        map[int64]models.Loan
	deposits     map[int64]models.Deposit
	lastID       map[string]int64
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{state: &memState{
		jobs:         map[int64]models.Job{},
		educations:   map[int64]models.EducationLevel{},
		maritals:     map[int64]models.MaritalStatus{},
		depositTypes: map[int64]models.DepositType{},
		clients:      map[int64]models.Client{},
		loans:        map[int64]models.Loan{},
		deposits:     map[int64]models.Deposit{},
		lastID:       map[string]int64{},
	}}
}

func (s *memState) clone() *memState {
	return &memState{
		jobs:         maps.Clone(s.jobs),
		educations:   maps.Clone(s.educations),
		maritals:     maps.Clone(s.maritals),
		depositTypes: maps.Clone(s.depositTypes),
		clients:      maps.Clone(s.clients),
		loans:        maps.Clone(s.loans),
		deposits:     maps.Clone(s.deposits),
		lastID:       maps.Clone(s.lastID),
	}
}

func (s *memState) nextID(table string) int64 {
	s.lastID[table]++
	return s.lastID[table]
}

// RunInTx implements UnitOfWork.
func (m *Memory) RunInTx(ctx context.Context, fn func(Store) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(&memoryTx{s: work}); err != nil {
		return err
	}
	m.state = work
	return nil
}

type memoryTx struct {
	s *memState
}

func sortedValues[T any](m map[int64]T) []T {
	keys := slices.Sorted(maps.Keys(m))
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
}

func invalidRef(op, column string, id int64) error {
	return fmt.Errorf("%s: %w: %s=%d is not present", op, apperr.ErrInvalidReference, column, id)
}

func (t *memoryTx) ListJobs(context.Context) ([]models.Job, error) {
	return sortedValues(t.s.jobs), nil
}

func (t *memoryTx) ListEducationLevels(context.Context) ([]models.EducationLevel, error) {
	return sortedValues(t.s.educations), nil
}

func (t *memoryTx) ListMaritalStatuses(context.Context) ([]models.MaritalStatus, error) {
	return sortedValues(t.s.maritals), nil
}

func (t *memoryTx) ListDepositTypes(context.Context) ([]models.DepositType, error) {
	return sortedValues(t.s.depositTypes), nil
}

func (t *memoryTx) CreateJob(_ context.Context, job *models.Job) error {
	job.ID = t.s.nextID("jobs")
	t.s.jobs[job.ID] = *job
	return nil
}

func (t *memoryTx) CreateEducationLevel(_ context.Context, level *models.EducationLevel) error {
	level.ID = t.s.nextID("education_levels")
	t.s.educations[level.ID] = *level
	return nil
}

func (t *memoryTx) CreateMaritalStatus(_ context.Context, status *models.MaritalStatus) error {
	status.ID = t.s.nextID("marital_statuses")
	t.s.maritals[status.ID] = *status
	return nil
}

func (t *memoryTx) CreateDepositType(_ context.Context, depositType *models.DepositType) error {
	depositType.ID = t.s.nextID("deposit_types")
	t.s.depositTypes[depositType.ID] = *depositType
	return nil
}

func (t *memoryTx) ListClients(_ context.Context, skip, limit int) ([]models.Client, error) {
	all := sortedValues(t.s.clients)
	if skip >= len(all) {
		return []models.Client{}, nil
	}
	// skip+limit may overflow for large limits
	if limit > len(all)-skip {
		limit = len(all) - skip
	}
	return all[skip : skip+limit], nil
}

func (t *memoryTx) CountClients(context.Context) (int, error) {
	return len(t.s.clients), nil
}

func (t *memoryTx) GetClient(_ context.Context, id int64) (*models.Client, error) {
	c, ok := t.s.clients[id]
	if !ok {
		return nil, notFound("find client")
	}
	return &c, nil
}

func (t *memoryTx) GetClientDetail(_ context.Context, id int64) (*models.ClientDetail, error) {
	c, ok := t.s.clients[id]
	if !ok {
		return nil, notFound("find client detail")
	}
	d := &models.ClientDetail{Client: c}
	if c.JobID != nil {
		if j, ok := t.s.jobs[*c.JobID]; ok {
			d.Job = &j
		}
	}
	if c.EducationLevelID != nil {
		if e, ok := t.s.educations[*c.EducationLevelID]; ok {
			d.EducationLevel = &e
		}
	}
	if c.MaritalStatusID != nil {
		if m, ok := t.s.maritals[*c.MaritalStatusID]; ok {
			d.MaritalStatus = &m
		}
	}
	return d, nil
}

func (t *memoryTx) checkClientRefs(op string, c *models.Client) error {
	if c.JobID != nil {
		if _, ok := t.s.jobs[*c.JobID]; !ok {
			return invalidRef(op, "job_id", *c.JobID)
		}
	}
	if c.EducationLevelID != nil {
		if _, ok := t.s.educations[*c.EducationLevelID]; !ok {
			return invalidRef(op, "education_level_id", *c.EducationLevelID)
		}
	}
	if c.MaritalStatusID != nil {
		if _, ok := t.s.maritals[*c.MaritalStatusID]; !ok {
			return invalidRef(op, "marital_status_id", *c.MaritalStatusID)
		}
	}
	return nil
}

func (t *memoryTx) CreateClient(_ context.Context, c *models.Client) error {
	if err := t.checkClientRefs("create client", c); err != nil {
		return err
	}
	c.ID = t.s.nextID("clients")
	t.s.clients[c.ID] = *c
	return nil
}

func (t *memoryTx) UpdateClient(_ context.Context, c *models.Client) error {
	if _, ok := t.s.clients[c.ID]; !ok {
		return notFound("update client")
	}
	if err := t.checkClientRefs("update client", c); err != nil {
		return err
	}
	t.s.clients[c.ID] = *c
	return nil
}

// DeleteClient mirrors ON DELETE CASCADE on loans and deposits.
func (t *memoryTx) DeleteClient(_ context.Context, id int64) error {
	if _, ok := t.s.clients[id]; !ok {
		return notFound("delete client")
	}
	maps.DeleteFunc(t.s.loans, func(_ int64, l models.Loan) bool { return l.ClientID == id })
	maps.DeleteFunc(t.s.deposits, func(_ int64, d models.Deposit) bool { return d.ClientID == id })
	delete(t.s.clients, id)
	return nil
}

func (t *memoryTx) CreateLoan(_ context.Context, l *models.Loan) error {
	if _, ok := t.s.clients[l.ClientID]; !ok {
		return invalidRef("create loan", "client_id", l.ClientID)
	}
	l.ID = t.s.nextID("loans")
	t.s.loans[l.ID] = *l
	return nil
}

func (t *memoryTx) GetLoan(_ context.Context, id int64) (*models.Loan, error) {
	l, ok := t.s.loans[id]
	if !ok {
		return nil, notFound("find loan")
	}
	return &l, nil
}

func (t *memoryTx) ListLoansByClient(_ context.Context, clientID int64) ([]models.Loan, error) {
	out := []models.Loan{}
	for _, l := range sortedValues(t.s.loans) {
		if l.ClientID == clientID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (t *memoryTx) ListOverdueLoans(context.Context) ([]models.Loan, error) {
	out := []models.Loan{}
	for _, l := range sortedValues(t.s.loans) {
		if l.IsOverdue {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OverdueAmount > out[j].OverdueAmount })
	return out, nil
}

func (t *memoryTx) UpdateLoan(_ context.Context, l *models.Loan) error {
	if _, ok := t.s.loans[l.ID]; !ok {
		return notFound("update loan")
	}
	t.s.loans[l.ID] = *l
	return nil
}

func (t *memoryTx) DeleteLoan(_ context.Context, id int64) error {
	if _, ok := t.s.loans[id]; !ok {
		return notFound("delete loan")
	}
	delete(t.s.loans, id)
	return nil
}

func (t *memoryTx) withType(d models.Deposit) models.Deposit {
	if dt, ok := t.s.depositTypes[d.TypeID]; ok {
		d.Type = &dt
	}
	return d
}

func (t *memoryTx) CreateDeposit(_ context.Context, d *models.Deposit) error {
	if _, ok := t.s.clients[d.ClientID]; !ok {
		return invalidRef("create deposit", "client_id", d.ClientID)
	}
	if _, ok := t.s.depositTypes[d.TypeID]; !ok {
		return invalidRef("create deposit", "type_id", d.TypeID)
	}
	d.ID = t.s.nextID("deposits")
	row := *d
	row.Type = nil
	t.s.deposits[d.ID] = row
	return nil
}

func (t *memoryTx) GetDeposit(_ context.Context, id int64) (*models.Deposit, error) {
	d, ok := t.s.deposits[id]
	if !ok {
		return nil, notFound("find deposit")
	}
	d = t.withType(d)
	return &d, nil
}

func (t *memoryTx) ListDepositsByClient(_ context.Context, clientID int64) ([]models.Deposit, error) {
	out := []models.Deposit{}
	for _, d := range sortedValues(t.s.deposits) {
		if d.ClientID == clientID {
			out = append(out, t.withType(d))
		}
	}
	return out, nil
}

func (t *memoryTx) UpdateDeposit(_ context.Context, d *models.Deposit) error {
	if _, ok := t.s.deposits[d.ID]; !ok {
		return notFound("update deposit")
	}
	if _, ok := t.s.depositTypes[d.TypeID]; !ok {
		return invalidRef("update deposit", "type_id", d.TypeID)
	}
	row := *d
	row.Type = nil
	t.s.deposits[d.ID] = row
	return nil
}

func (t *memoryTx) DeleteDeposit(_ context.Context, id int64) error {
	if _, ok := t.s.deposits[id]; !ok {
		return notFound("delete deposit")
	}
	delete(t.s.deposits, id)
	return nil
}

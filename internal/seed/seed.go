package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/models"
	"github.com/Dan9191/bank-clients/internal/repository"
	"github.com/Dan9191/bank-clients/internal/utils"
)

var jobs = []models.Job{
	{Name: "Программист", Salary: 150000},
	{Name: "Менеджер", Salary: 80000},
	{Name: "Бухгалтер", Salary: 70000},
	{Name: "Врач", Salary: 100000},
	{Name: "Инженер", Salary: 90000},
	{Name: "Учитель", Salary: 50000},
	{Name: "Юрист", Salary: 120000},
	{Name: "Дизайнер", Salary: 85000},
}

var educationLevels = []string{
	"Среднее",
	"Среднее специальное",
	"Неоконченное высшее",
	"Бакалавр",
	"Магистр",
}

var maritalStatuses = []string{
	"Холост/Не замужем",
	"Женат/Замужем",
	"Разведён/Разведена",
	"Вдовец/Вдова",
}

var depositTypes = []string{
	"Накопительный",
	"Срочный",
	"До востребования",
	"Пенсионный",
}

type person struct{ first, patronymic, last string }

var men = person{
	first:      "Александр Дмитрий Максим Сергей Андрей Алексей Иван Михаил Никита Павел",
	patronymic: "Александрович Дмитриевич Сергеевич Андреевич Иванович Михайлович Павлович Олегович",
	last:       "Иванов Смирнов Кузнецов Попов Васильев Петров Соколов Михайлов Новиков Фёдоров",
}

var women = person{
	first:      "Анна Мария Елена Ольга Татьяна Наталья Ирина Светлана Екатерина Юлия",
	patronymic: "Александровна Дмитриевна Сергеевна Андреевна Ивановна Михайловна Павловна Олеговна",
	last:       "Иванова Смирнова Кузнецова Попова Васильева Петрова Соколова Михайлова Новикова Фёдорова",
}

// Options controls the volume of generated data
type Options struct {
	Clients              int
	MaxLoansPerClient    int
	MaxDepositsPerClient int
	OverdueShare         float64
	BankruptShare        float64
}

func DefaultOptions() Options {
	return Options{
		Clients:              100,
		MaxLoansPerClient:    3,
		MaxDepositsPerClient: 2,
		OverdueShare:         0.15,
		BankruptShare:        0.05,
	}
}

// Stats counts what a seeding run created
type Stats struct {
	Jobs            int
	EducationLevels int
	MaritalStatuses int
	DepositTypes    int
	Clients         int
	Loans           int
	Deposits        int
}

// Seeder fills an empty store with reference lists and random clients
type Seeder struct {
	uow   repository.UnitOfWork
	log   *logrus.Logger
	rng   *rand.Rand
	today models.Date
	opts  Options
}

func NewSeeder(uow repository.UnitOfWork, log *logrus.Logger, rng *rand.Rand, today models.Date, opts Options) *Seeder {
	return &Seeder{uow: uow, log: log, rng: rng, today: today, opts: opts}
}

// Run seeds everything in one unit of work. It does nothing and reports
// seeded=false when any client already exists.
func (s *Seeder) Run(ctx context.Context) (stats Stats, seeded bool, err error) {
	err = s.uow.RunInTx(ctx, func(st repository.Store) error {
		n, err := st.CountClients(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		seeded = true
		stats, err = s.seed(ctx, st)
		return err
	})
	if err != nil {
		return Stats{}, false, fmt.Errorf("seeding failed: %w", err)
	}

	if !seeded {
		s.log.Info("Database already seeded, skipping")
		return stats, false, nil
	}
	s.log.WithFields(logrus.Fields{
		"jobs":             stats.Jobs,
		"education_levels": stats.EducationLevels,
		"marital_statuses": stats.MaritalStatuses,
		"deposit_types":    stats.DepositTypes,
		"clients":          stats.Clients,
		"loans":            stats.Loans,
		"deposits":         stats.Deposits,
	}).Info("Database seeded")
	return stats, true, nil
}

func (s *Seeder) seed(ctx context.Context, st repository.Store) (Stats, error) {
	var stats Stats

	jobIDs := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		if err := st.CreateJob(ctx, &j); err != nil {
			return stats, err
		}
		jobIDs = append(jobIDs, j.ID)
	}
	levelIDs := make([]int64, 0, len(educationLevels))
	for _, name := range educationLevels {
		level := models.EducationLevel{Name: name}
		if err := st.CreateEducationLevel(ctx, &level); err != nil {
			return stats, err
		}
		levelIDs = append(levelIDs, level.ID)
	}
	statusIDs := make([]int64, 0, len(maritalStatuses))
	for _, name := range maritalStatuses {
		status := models.MaritalStatus{Name: name}
		if err := st.CreateMaritalStatus(ctx, &status); err != nil {
			return stats, err
		}
		statusIDs = append(statusIDs, status.ID)
	}
	typeIDs := make([]int64, 0, len(depositTypes))
	for _, name := range depositTypes {
		dt := models.DepositType{Name: name}
		if err := st.CreateDepositType(ctx, &dt); err != nil {
			return stats, err
		}
		typeIDs = append(typeIDs, dt.ID)
	}
	stats.Jobs, stats.EducationLevels = len(jobIDs), len(levelIDs)
	stats.MaritalStatuses, stats.DepositTypes = len(statusIDs), len(typeIDs)

	for range s.opts.Clients {
		client := &models.Client{
			FullName:         s.fullName(),
			Age:              s.between(21, 70),
			IsBankrupt:       s.rng.Float64() < s.opts.BankruptShare,
			JobID:            pick(s.rng, jobIDs),
			EducationLevelID: pick(s.rng, levelIDs),
			MaritalStatusID:  pick(s.rng, statusIDs),
		}
		if err := st.CreateClient(ctx, client); err != nil {
			return stats, err
		}
		stats.Clients++

		for range s.rng.IntN(s.opts.MaxLoansPerClient + 1) {
			if err := st.CreateLoan(ctx, s.loan(client.ID)); err != nil {
				return stats, err
			}
			stats.Loans++
		}
		for range s.rng.IntN(s.opts.MaxDepositsPerClient + 1) {
			if err := st.CreateDeposit(ctx, s.deposit(client.ID, *pick(s.rng, typeIDs))); err != nil {
				return stats, err
			}
			stats.Deposits++
		}
	}
	return stats, nil
}

// loan starts within the last two years and runs six months to five years.
func (s *Seeder) loan(clientID int64) *models.Loan {
	start := s.today.AddDays(-s.rng.IntN(2*365 + 1))
	amount := s.amount(50000, 5000000)
	l := &models.Loan{
		ClientID:     clientID,
		Amount:       amount,
		InterestRate: s.amount(8, 25),
		StartDate:    start,
		EndDate:      start.AddDays(s.between(180, 1825)),
	}
	if s.rng.Float64() < s.opts.OverdueShare {
		l.IsOverdue = true
		l.OverdueAmount = utils.PercentOf(amount, 1+s.rng.Float64()*19)
	}
	return l
}

// deposit starts within the last three years and runs three months to three years.
func (s *Seeder) deposit(clientID, typeID int64) *models.Deposit {
	start := s.today.AddDays(-s.rng.IntN(3*365 + 1))
	end := start.AddDays(s.between(90, 1095))
	amount := s.amount(10000, 2000000)
	rate := s.amount(4, 12)
	return &models.Deposit{
		ClientID:     clientID,
		TypeID:       typeID,
		Amount:       amount,
		InterestRate: rate,
		StartDate:    start,
		EndDate:      end,
		FinalAmount:  utils.SimpleInterestFinal(amount, rate, start, end),
	}
}

func (s *Seeder) fullName() string {
	p := men
	if s.rng.IntN(2) == 0 {
		p = women
	}
	return word(s.rng, p.last) + " " + word(s.rng, p.first) + " " + word(s.rng, p.patronymic)
}

func (s *Seeder) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

func (s *Seeder) amount(lo, hi float64) float64 {
	return math.Round((lo+s.rng.Float64()*(hi-lo))*100) / 100
}

func pick(rng *rand.Rand, ids []int64) *int64 {
	id := ids[rng.IntN(len(ids))]
	return &id
}

func word(rng *rand.Rand, list string) string {
	words := strings.Fields(list)
	return words[rng.IntN(len(words))]
}

package service

import (
	"time"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/models"
)

func (s *ServiceSuite) TestLoans() {
	client := s.createClient("Виктор Смирнов")

	s.Run("create and read back", func() {
		loan := s.addLoan(client.ID, 250000)
		s.NotZero(loan.ID)

		got, err := s.svc.Finance.GetLoan(s.ctx, loan.ID)
		s.Require().NoError(err)
		s.Equal(loan, got)
	})

	s.Run("create rejects unknown client", func() {
		_, err := s.svc.Finance.CreateLoan(s.ctx, models.LoanCreate{
			ClientID:     999,
			Amount:       float64Ptr(1000),
			InterestRate: float64Ptr(12),
			StartDate:    models.NewDate(2024, time.May, 1),
			EndDate:      models.NewDate(2025, time.May, 1),
		})
		s.Require().ErrorIs(err, apperr.ErrInvalidReference)
	})

	s.Run("create rejects inverted dates and missing fields", func() {
		_, err := s.svc.Finance.CreateLoan(s.ctx, models.LoanCreate{
			ClientID:     client.ID,
			Amount:       float64Ptr(1000),
			InterestRate: float64Ptr(12),
			StartDate:    models.NewDate(2025, time.May, 1),
			EndDate:      models.NewDate(2024, time.May, 1),
		})
		var ve *apperr.ValidationError
		s.Require().ErrorAs(err, &ve)
		s.Equal([]string{"end_date"}, fieldNames(ve))

		_, err = s.svc.Finance.CreateLoan(s.ctx, models.LoanCreate{ClientID: client.ID})
		s.Require().ErrorAs(err, &ve)
		s.Equal([]string{"amount", "interest_rate", "start_date", "end_date"}, fieldNames(ve))

		loans, err := s.svc.Finance.ListLoansByClient(s.ctx, client.ID)
		s.Require().NoError(err)
		s.Empty(loans)
	})

	s.Run("explicit zero amounts are accepted", func() {
		loan, err := s.svc.Finance.CreateLoan(s.ctx, models.LoanCreate{
			ClientID:     client.ID,
			Amount:       float64Ptr(0),
			InterestRate: float64Ptr(0),
			StartDate:    models.NewDate(2024, time.May, 1),
			EndDate:      models.NewDate(2025, time.May, 1),
		})
		s.Require().NoError(err)
		s.Zero(loan.Amount)
	})

	s.Run("partial update keeps other fields", func() {
		loan := s.addLoan(client.ID, 80000)

		updated, err := s.svc.Finance.UpdateLoan(s.ctx, loan.ID, models.LoanUpdate{
			IsOverdue:     models.Some(true),
			OverdueAmount: models.Some(4000.0),
		})
		s.Require().NoError(err)
		s.True(updated.IsOverdue)
		s.Equal(4000.0, updated.OverdueAmount)
		s.Equal(loan.Amount, updated.Amount)
		s.Equal(loan.StartDate, updated.StartDate)
	})

	s.Run("update validates the merged date range", func() {
		loan := s.addLoan(client.ID, 80000)

		_, err := s.svc.Finance.UpdateLoan(s.ctx, loan.ID, models.LoanUpdate{
			EndDate: models.Some(models.NewDate(2020, time.January, 1)),
		})
		s.Require().ErrorIs(err, apperr.ErrValidation)

		got, err := s.svc.Finance.GetLoan(s.ctx, loan.ID)
		s.Require().NoError(err)
		s.Equal(loan.EndDate, got.EndDate)
	})

	s.Run("update rejects null on required fields", func() {
		loan := s.addLoan(client.ID, 80000)

		_, err := s.svc.Finance.UpdateLoan(s.ctx, loan.ID, models.LoanUpdate{Amount: models.Null[float64]()})
		s.Require().ErrorIs(err, apperr.ErrValidation)
	})

	s.Run("empty update returns the stored loan", func() {
		loan := s.addLoan(client.ID, 80000)

		got, err := s.svc.Finance.UpdateLoan(s.ctx, loan.ID, models.LoanUpdate{})
		s.Require().NoError(err)
		s.Equal(loan, got)

		_, err = s.svc.Finance.UpdateLoan(s.ctx, 999, models.LoanUpdate{})
		s.Require().ErrorIs(err, apperr.ErrNotFound)
	})

	s.Run("delete reports existence", func() {
		loan := s.addLoan(client.ID, 80000)

		deleted, err := s.svc.Finance.DeleteLoan(s.ctx, loan.ID)
		s.Require().NoError(err)
		s.True(deleted)

		deleted, err = s.svc.Finance.DeleteLoan(s.ctx, loan.ID)
		s.Require().NoError(err)
		s.False(deleted)
	})
}

func (s *ServiceSuite) TestListByClient() {
	client := s.createClient("Светлана Белова")
	other := s.createClient("Константин Белов")
	loan := s.addLoan(client.ID, 1000)
	s.addLoan(other.ID, 2000)
	deposit := s.addDeposit(client.ID, s.savings.ID)

	loans, err := s.svc.Finance.ListLoansByClient(s.ctx, client.ID)
	s.Require().NoError(err)
	s.Equal([]models.Loan{*loan}, loans)

	deposits, err := s.svc.Finance.ListDepositsByClient(s.ctx, client.ID)
	s.Require().NoError(err)
	s.Equal([]models.Deposit{*deposit}, deposits)

	deposits, err = s.svc.Finance.ListDepositsByClient(s.ctx, other.ID)
	s.Require().NoError(err)
	s.Empty(deposits)

	_, err = s.svc.Finance.ListLoansByClient(s.ctx, 999)
	s.Require().ErrorIs(err, apperr.ErrNotFound)
	_, err = s.svc.Finance.ListDepositsByClient(s.ctx, 999)
	s.Require().ErrorIs(err, apperr.ErrNotFound)
}

func (s *ServiceSuite) TestOverdueLoans() {
	client := s.createClient("Григорий Фомин")
	small := s.addLoan(client.ID, 10000)
	large := s.addLoan(client.ID, 90000)
	s.addLoan(client.ID, 50000)

	for _, u := range []struct {
		id     int64
		amount float64
	}{{small.ID, 500}, {large.ID, 9000}} {
		_, err := s.svc.Finance.UpdateLoan(s.ctx, u.id, models.LoanUpdate{
			IsOverdue:     models.Some(true),
			OverdueAmount: models.Some(u.amount),
		})
		s.Require().NoError(err)
	}

	overdue, err := s.svc.Finance.ListOverdueLoans(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(overdue, 2)
	s.Equal(large.ID, overdue[0].ID)
	s.Equal(small.ID, overdue[1].ID)
}

func (s *ServiceSuite) TestDeposits() {
	client := s.createClient("Людмила Гусева")

	s.Run("create resolves the type", func() {
		deposit := s.addDeposit(client.ID, s.savings.ID)
		s.Require().NotNil(deposit.Type)
		s.Equal(s.savings, *deposit.Type)
		s.Equal(108000.0, deposit.FinalAmount)
	})

	s.Run("create rejects unknown type", func() {
		_, err := s.svc.Finance.CreateDeposit(s.ctx, models.DepositCreate{
			ClientID:     client.ID,
			TypeID:       999,
			Amount:       float64Ptr(5000),
			InterestRate: float64Ptr(6),
			StartDate:    models.NewDate(2024, time.June, 1),
			EndDate:      models.NewDate(2025, time.June, 1),
			FinalAmount:  float64Ptr(5300),
		})
		s.Require().ErrorIs(err, apperr.ErrInvalidReference)
	})

	s.Run("create rejects missing fields before persisting", func() {
		_, err := s.svc.Finance.CreateDeposit(s.ctx, models.DepositCreate{ClientID: client.ID, TypeID: s.savings.ID})
		var ve *apperr.ValidationError
		s.Require().ErrorAs(err, &ve)
		s.Equal([]string{"amount", "interest_rate", "start_date", "end_date", "final_amount"}, fieldNames(ve))
	})

	s.Run("type change is re-resolved", func() {
		deposit := s.addDeposit(client.ID, s.savings.ID)

		updated, err := s.svc.Finance.UpdateDeposit(s.ctx, deposit.ID, models.DepositUpdate{
			TypeID: models.Some(s.termDeposit.ID),
			Amount: models.Some(120000.0),
		})
		s.Require().NoError(err)
		s.Equal(s.termDeposit.ID, updated.TypeID)
		s.Require().NotNil(updated.Type)
		s.Equal(s.termDeposit.Name, updated.Type.Name)
		s.Equal(120000.0, updated.Amount)
		s.Equal(deposit.FinalAmount, updated.FinalAmount)
	})

	s.Run("update to an unknown type leaves the deposit unchanged", func() {
		deposit := s.addDeposit(client.ID, s.savings.ID)

		_, err := s.svc.Finance.UpdateDeposit(s.ctx, deposit.ID, models.DepositUpdate{TypeID: models.Some(int64(999))})
		s.Require().ErrorIs(err, apperr.ErrInvalidReference)

		got, err := s.svc.Finance.GetDeposit(s.ctx, deposit.ID)
		s.Require().NoError(err)
		s.Equal(deposit, got)
	})

	s.Run("delete reports existence", func() {
		deposit := s.addDeposit(client.ID, s.savings.ID)

		deleted, err := s.svc.Finance.DeleteDeposit(s.ctx, deposit.ID)
		s.Require().NoError(err)
		s.True(deleted)

		_, err = s.svc.Finance.GetDeposit(s.ctx, deposit.ID)
		s.Require().ErrorIs(err, apperr.ErrNotFound)

		deleted, err = s.svc.Finance.DeleteDeposit(s.ctx, deposit.ID)
		s.Require().NoError(err)
		s.False(deleted)
	})
}

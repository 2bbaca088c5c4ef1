package service

import (
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/models"
)

func (s *ServiceSuite) TestDelete() {
	s.Run("client without records is deleted without force", func() {
		client := s.createClient("Ольга Кузнецова")

		result, err := s.svc.Clients.Delete(s.ctx, client.ID, false)
		s.Require().NoError(err)
		s.Equal(&models.ClientDeletion{Deleted: true, ClientID: client.ID}, result)

		_, err = s.svc.Clients.GetDetail(s.ctx, client.ID)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
	})

	s.Run("client with records is protected without force", func() {
		client := s.createClient("Сергей Иванов")
		loanA := s.addLoan(client.ID, 500000)
		loanB := s.addLoan(client.ID, 750000)
		deposit := s.addDeposit(client.ID, s.savings.ID)

		_, err := s.svc.Clients.Delete(s.ctx, client.ID, false)
		s.Require().ErrorIs(err, apperr.ErrConflict)
		s.Contains(err.Error(), "2")
		s.Contains(err.Error(), "1")

		var conflict *apperr.ConflictError
		s.Require().ErrorAs(err, &conflict)
		s.Equal(2, conflict.Loans)
		s.Equal(1, conflict.Deposits)

		full, err := s.svc.Clients.GetFull(s.ctx, client.ID)
		s.Require().NoError(err)
		s.Len(full.Loans, 2)
		s.Len(full.Deposits, 1)
		s.Equal([]int64{loanA.ID, loanB.ID}, []int64{full.Loans[0].ID, full.Loans[1].ID})
		s.Equal(deposit.ID, full.Deposits[0].ID)
	})

	s.Run("forced deletion cascades loans and deposits", func() {
		client := s.createClient("Мария Соколова")
		loanA := s.addLoan(client.ID, 100000)
		s.addLoan(client.ID, 200000)
		deposit := s.addDeposit(client.ID, s.termDeposit.ID)
		other := s.createClient("Павел Орлов")
		otherLoan := s.addLoan(other.ID, 300000)

		result, err := s.svc.Clients.Delete(s.ctx, client.ID, true)
		s.Require().NoError(err)
		s.Equal(&models.ClientDeletion{Deleted: true, ClientID: client.ID, DeletedLoans: 2, DeletedDeposits: 1}, result)

		_, err = s.svc.Clients.GetDetail(s.ctx, client.ID)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
		_, err = s.svc.Clients.GetFull(s.ctx, client.ID)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
		_, err = s.svc.Finance.GetLoan(s.ctx, loanA.ID)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
		_, err = s.svc.Finance.GetDeposit(s.ctx, deposit.ID)
		s.Require().ErrorIs(err, apperr.ErrNotFound)

		kept, err := s.svc.Finance.GetLoan(s.ctx, otherLoan.ID)
		s.Require().NoError(err)
		s.Equal(other.ID, kept.ClientID)
	})

	s.Run("forced deletion of a client without records reports zero", func() {
		client := s.createClient("Никита Волков")

		result, err := s.svc.Clients.Delete(s.ctx, client.ID, true)
		s.Require().NoError(err)
		s.Zero(result.DeletedLoans)
		s.Zero(result.DeletedDeposits)
	})

	s.Run("unknown client is not found rather than conflicting", func() {
		_, err := s.svc.Clients.Delete(s.ctx, 999, false)
		s.Require().ErrorIs(err, apperr.ErrNotFound)
		s.NotErrorIs(err, apperr.ErrConflict)
	})
}

func (s *ServiceSuite) TestDeleteMetrics() {
	blocked := s.createClient("Алексей Морозов")
	s.addLoan(blocked.ID, 1000)
	_, err := s.svc.Clients.Delete(s.ctx, blocked.ID, false)
	s.Require().Error(err)

	_, err = s.svc.Clients.Delete(s.ctx, blocked.ID, true)
	s.Require().NoError(err)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.DeletionsBlocked))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ClientsDeleted.WithLabelValues("forced")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CascadedRecords.WithLabelValues("loan")))
}

func (s *ServiceSuite) TestForcedDeleteIsAtomic() {
	client := s.createClient("Елена Попова")
	loan := s.addLoan(client.ID, 400000)
	deposit := s.addDeposit(client.ID, s.savings.ID)

	broken := NewService(&failingUnitOfWork{inner: s.store}, s.log, nil, nil)
	_, err := broken.Clients.Delete(s.ctx, client.ID, true)
	s.Require().ErrorIs(err, errConnectionReset)

	full, err := s.svc.Clients.GetFull(s.ctx, client.ID)
	s.Require().NoError(err)
	s.Require().Len(full.Loans, 1)
	s.Require().Len(full.Deposits, 1)
	s.Equal(loan.ID, full.Loans[0].ID)
	s.Equal(deposit.ID, full.Deposits[0].ID)
}

func (s *ServiceSuite) TestCreate() {
	s.Run("stores a summary with defaults", func() {
		client, err := s.svc.Clients.Create(s.ctx, models.ClientCreate{FullName: "Ян Ли", Age: intPtr(0)})
		s.Require().NoError(err)
		s.NotZero(client.ID)
		s.False(client.IsBankrupt)
		s.Nil(client.JobID)

		detail, err := s.svc.Clients.GetDetail(s.ctx, client.ID)
		s.Require().NoError(err)
		s.Nil(detail.Job)
		s.Nil(detail.EducationLevel)
		s.Nil(detail.MaritalStatus)
	})

	s.Run("rejects out of range age before persisting", func() {
		_, err := s.svc.Clients.Create(s.ctx, models.ClientCreate{FullName: "Иван Петров", Age: intPtr(200)})
		s.Require().ErrorIs(err, apperr.ErrValidation)

		var ve *apperr.ValidationError
		s.Require().ErrorAs(err, &ve)
		s.Equal("age", ve.Fields[0].Field)

		clients, err := s.svc.Clients.List(s.ctx, 0, 100)
		s.Require().NoError(err)
		for _, c := range clients {
			s.NotEqual("Иван Петров", c.FullName)
		}
	})

	s.Run("rejects missing and short fields", func() {
		_, err := s.svc.Clients.Create(s.ctx, models.ClientCreate{FullName: "Я"})
		var ve *apperr.ValidationError
		s.Require().ErrorAs(err, &ve)

		fields := map[string]string{}
		for _, f := range ve.Fields {
			fields[f.Field] = f.Reason
		}
		s.Equal("must be at least 2 characters long", fields["full_name"])
		s.Equal("field required", fields["age"])
	})

	s.Run("rejects unknown reference ids", func() {
		_, err := s.svc.Clients.Create(s.ctx, models.ClientCreate{
			FullName: "Борис Ефимов",
			Age:      intPtr(50),
			JobID:    int64Ptr(4242),
		})
		s.Require().ErrorIs(err, apperr.ErrInvalidReference)
	})
}

func (s *ServiceSuite) TestUpdate() {
	s.Run("empty patch returns the resolved detail unchanged", func() {
		client := s.createClient("Дарья Новикова")

		detail, err := s.svc.Clients.Update(s.ctx, client.ID, models.ClientUpdate{})
		s.Require().NoError(err)
		s.Equal(*client, detail.Client)
		s.Require().NotNil(detail.Job)
		s.Equal(s.job, *detail.Job)
		s.Equal(s.education, *detail.EducationLevel)
		s.Equal(s.marital, *detail.MaritalStatus)
	})

	s.Run("only present fields change", func() {
		client := s.createClient("Игорь Лебедев")

		detail, err := s.svc.Clients.Update(s.ctx, client.ID, models.ClientUpdate{
			Age:        models.Some(35),
			IsBankrupt: models.Some(true),
			JobID:      models.Null[int64](),
		})
		s.Require().NoError(err)
		s.Equal("Игорь Лебедев", detail.FullName)
		s.Equal(35, detail.Age)
		s.True(detail.IsBankrupt)
		s.Nil(detail.JobID)
		s.Nil(detail.Job)
		s.Require().NotNil(detail.EducationLevel)
		s.Equal(s.education.Name, detail.EducationLevel.Name)
	})

	s.Run("unknown client", func() {
		_, err := s.svc.Clients.Update(s.ctx, 999, models.ClientUpdate{Age: models.Some(20)})
		s.Require().ErrorIs(err, apperr.ErrNotFound)
	})

	s.Run("null on a required field is rejected", func() {
		client := s.createClient("Роман Козлов")

		_, err := s.svc.Clients.Update(s.ctx, client.ID, models.ClientUpdate{FullName: models.Null[string]()})
		s.Require().ErrorIs(err, apperr.ErrValidation)
		_, err = s.svc.Clients.Update(s.ctx, client.ID, models.ClientUpdate{Age: models.Some(151)})
		s.Require().ErrorIs(err, apperr.ErrValidation)

		detail, err := s.svc.Clients.GetDetail(s.ctx, client.ID)
		s.Require().NoError(err)
		s.Equal("Роман Козлов", detail.FullName)
		s.Equal(34, detail.Age)
	})
}

func (s *ServiceSuite) TestProjections() {
	client := s.createClient("Татьяна Зайцева")
	s.addLoan(client.ID, 90000)
	s.addDeposit(client.ID, s.savings.ID)
	s.addDeposit(client.ID, s.termDeposit.ID)

	s.Run("list exposes only the summary", func() {
		page, err := s.svc.Clients.List(s.ctx, 0, 10)
		s.Require().NoError(err)
		s.Require().Len(page, 1)
		s.Equal(*client, page[0])
	})

	s.Run("detail resolves references only", func() {
		detail, err := s.svc.Clients.GetDetail(s.ctx, client.ID)
		s.Require().NoError(err)
		s.Equal(s.job, *detail.Job)
		s.Equal(s.marital, *detail.MaritalStatus)
	})

	s.Run("full carries every record with deposit types", func() {
		full, err := s.svc.Clients.GetFull(s.ctx, client.ID)
		s.Require().NoError(err)
		s.Equal(s.job, *full.Job)
		s.Len(full.Loans, 1)
		s.Require().Len(full.Deposits, 2)
		for _, d := range full.Deposits {
			s.Require().NotNil(d.Type)
			s.Equal(d.TypeID, d.Type.ID)
		}
		s.Equal(s.termDeposit.Name, full.Deposits[1].Type.Name)
	})
}

func (s *ServiceSuite) TestList() {
	var ids []int64
	for _, name := range []string{"Анна", "Борис", "Вера", "Глеб", "Дина"} {
		ids = append(ids, s.createClient(name+" Тестова").ID)
	}

	page, err := s.svc.Clients.List(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(ids[1], page[0].ID)
	s.Equal(ids[2], page[1].ID)

	page, err = s.svc.Clients.List(s.ctx, 10, 5)
	s.Require().NoError(err)
	s.Empty(page)

	page, err = s.svc.Clients.List(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Empty(page)

	_, err = s.svc.Clients.List(s.ctx, -1, 10)
	s.Require().ErrorIs(err, apperr.ErrValidation)
	_, err = s.svc.Clients.List(s.ctx, 0, -5)
	s.Require().ErrorIs(err, apperr.ErrValidation)
}

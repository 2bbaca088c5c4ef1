package models

// Loan represents a loan issued to a client
type Loan struct {
	ID            int64   `json:"id"`
	ClientID      int64   `json:"client_id"`
	Amount        float64 `json:"amount"`
	InterestRate  float64 `json:"interest_rate"`
	StartDate     Date    `json:"start_date"`
	EndDate       Date    `json:"end_date"`
	IsOverdue     bool    `json:"is_overdue"`
	OverdueAmount float64 `json:"overdue_amount"`
}

// LoanCreate is the input for issuing a loan
type LoanCreate struct {
	ClientID      int64    `json:"client_id" validate:"required,gt=0"`
	Amount        *float64 `json:"amount" validate:"required"`
	InterestRate  *float64 `json:"interest_rate" validate:"required"`
	StartDate     Date     `json:"start_date" validate:"required"`
	EndDate       Date     `json:"end_date" validate:"required"`
	IsOverdue     bool     `json:"is_overdue"`
	OverdueAmount float64  `json:"overdue_amount"`
}

func (in LoanCreate) Loan() *Loan {
	return &Loan{
		ClientID:      in.ClientID,
		Amount:        deref(in.Amount),
		InterestRate:  deref(in.InterestRate),
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		IsOverdue:     in.IsOverdue,
		OverdueAmount: in.OverdueAmount,
	}
}

// LoanUpdate is a partial loan update. The owning client cannot change.
type LoanUpdate struct {
	Amount        Optional[float64] `json:"amount"`
	InterestRate  Optional[float64] `json:"interest_rate"`
	StartDate     Optional[Date]    `json:"start_date"`
	EndDate       Optional[Date]    `json:"end_date"`
	IsOverdue     Optional[bool]    `json:"is_overdue"`
	OverdueAmount Optional[float64] `json:"overdue_amount"`
}

func (u LoanUpdate) IsEmpty() bool {
	return !u.Amount.Set && !u.InterestRate.Set && !u.StartDate.Set &&
		!u.EndDate.Set && !u.IsOverdue.Set && !u.OverdueAmount.Set
}

func (u LoanUpdate) Apply(l *Loan) {
	if u.Amount.Set {
		l.Amount = u.Amount.Value
	}
	if u.InterestRate.Set {
		l.InterestRate = u.InterestRate.Value
	}
	if u.StartDate.Set {
		l.StartDate = u.StartDate.Value
	}
	if u.EndDate.Set {
		l.EndDate = u.EndDate.Value
	}
	if u.IsOverdue.Set {
		l.IsOverdue = u.IsOverdue.Value
	}
	if u.OverdueAmount.Set {
		l.OverdueAmount = u.OverdueAmount.Value
	}
}

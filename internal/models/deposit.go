package models

// Deposit represents a deposit opened by a client. Type is resolved on every
// read path.
type Deposit struct {
	ID           int64        `json:"id"`
	ClientID     int64        `json:"client_id"`
	TypeID       int64        `json:"type_id"`
	Type         *DepositType `json:"type"`
	Amount       float64      `json:"amount"`
	InterestRate float64      `json:"interest_rate"`
	StartDate    Date         `json:"start_date"`
	EndDate      Date         `json:"end_date"`
	FinalAmount  float64      `json:"final_amount"` // supplied by the caller, stored as-is
}

// DepositCreate is the input for opening a deposit
type DepositCreate struct {
	ClientID     int64    `json:"client_id" validate:"required,gt=0"`
	TypeID       int64    `json:"type_id" validate:"required,gt=0"`
	Amount       *float64 `json:"amount" validate:"required"`
	InterestRate *float64 `json:"interest_rate" validate:"required"`
	StartDate    Date     `json:"start_date" validate:"required"`
	EndDate      Date     `json:"end_date" validate:"required"`
	FinalAmount  *float64 `json:"final_amount" validate:"required"`
}

func (in DepositCreate) Deposit() *Deposit {
	return &Deposit{
		ClientID:     in.ClientID,
		TypeID:       in.TypeID,
		Amount:       deref(in.Amount),
		InterestRate: deref(in.InterestRate),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		FinalAmount:  deref(in.FinalAmount),
	}
}

// DepositUpdate is a partial deposit update
type DepositUpdate struct {
	TypeID       Optional[int64]   `json:"type_id"`
	Amount       Optional[float64] `json:"amount"`
	InterestRate Optional[float64] `json:"interest_rate"`
	StartDate    Optional[Date]    `json:"start_date"`
	EndDate      Optional[Date]    `json:"end_date"`
	FinalAmount  Optional[float64] `json:"final_amount"`
}

func (u DepositUpdate) IsEmpty() bool {
	return !u.TypeID.Set && !u.Amount.Set && !u.InterestRate.Set &&
		!u.StartDate.Set && !u.EndDate.Set && !u.FinalAmount.Set
}

func (u DepositUpdate) Apply(d *Deposit) {
	if u.TypeID.Set && u.TypeID.Value != d.TypeID {
		d.TypeID = u.TypeID.Value
		d.Type = nil
	}
	if u.Amount.Set {
		d.Amount = u.Amount.Value
	}
	if u.InterestRate.Set {
		d.InterestRate = u.InterestRate.Value
	}
	if u.StartDate.Set {
		d.StartDate = u.StartDate.Value
	}
	if u.EndDate.Set {
		d.EndDate = u.EndDate.Value
	}
	if u.FinalAmount.Set {
		d.FinalAmount = u.FinalAmount.Value
	}
}

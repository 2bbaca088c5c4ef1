package models

// Client is the stored client row and, as-is, the summary projection used by
// list views. It carries reference ids but never resolved references.
type Client struct {
	ID               int64  `json:"id"`
	FullName         string `json:"full_name"`
	Age              int    `json:"age"`
	IsBankrupt       bool   `json:"is_bankrupt"`
	JobID            *int64 `json:"job_id"`
	EducationLevelID *int64 `json:"education_level_id"`
	MaritalStatusID  *int64 `json:"marital_status_id"`
}

// ClientDetail is a client with its reference relations resolved.
type ClientDetail struct {
	Client
	Job            *Job            `json:"job"`
	EducationLevel *EducationLevel `json:"education_level"`
	MaritalStatus  *MaritalStatus  `json:"marital_status"`
}

// ClientFull is the full dossier: detail plus every loan and deposit.
type ClientFull struct {
	ClientDetail
	Loans    []Loan    `json:"loans"`
	Deposits []Deposit `json:"deposits"`
}

// ClientCreate is the input for creating a client
type ClientCreate struct {
	FullName         string `json:"full_name" validate:"required,min=2,max=256"`
	Age              *int   `json:"age" validate:"required,gte=0,lte=150"`
	IsBankrupt       bool   `json:"is_bankrupt"`
	JobID            *int64 `json:"job_id" validate:"omitempty,gt=0"`
	EducationLevelID *int64 `json:"education_level_id" validate:"omitempty,gt=0"`
	MaritalStatusID  *int64 `json:"marital_status_id" validate:"omitempty,gt=0"`
}

// Client converts the input into a row ready for insertion.
func (in ClientCreate) Client() *Client {
	c := &Client{
		FullName:         in.FullName,
		IsBankrupt:       in.IsBankrupt,
		JobID:            in.JobID,
		EducationLevelID: in.EducationLevelID,
		MaritalStatusID:  in.MaritalStatusID,
	}
	if in.Age != nil {
		c.Age = *in.Age
	}
	return c
}

// ClientUpdate is a partial client update; only present fields change.
// Reference ids accept an explicit null to clear the relation.
type ClientUpdate struct {
	FullName         Optional[string] `json:"full_name"`
	Age              Optional[int]    `json:"age"`
	IsBankrupt       Optional[bool]   `json:"is_bankrupt"`
	JobID            Optional[int64]  `json:"job_id"`
	EducationLevelID Optional[int64]  `json:"education_level_id"`
	MaritalStatusID  Optional[int64]  `json:"marital_status_id"`
}

// IsEmpty reports whether the update carries no field at all.
func (u ClientUpdate) IsEmpty() bool {
	return !u.FullName.Set && !u.Age.Set && !u.IsBankrupt.Set &&
		!u.JobID.Set && !u.EducationLevelID.Set && !u.MaritalStatusID.Set
}

// Apply copies present fields onto c.
func (u ClientUpdate) Apply(c *Client) {
	if u.FullName.Set {
		c.FullName = u.FullName.Value
	}
	if u.Age.Set {
		c.Age = u.Age.Value
	}
	if u.IsBankrupt.Set {
		c.IsBankrupt = u.IsBankrupt.Value
	}
	if u.JobID.Set {
		c.JobID = u.JobID.Ptr()
	}
	if u.EducationLevelID.Set {
		c.EducationLevelID = u.EducationLevelID.Ptr()
	}
	if u.MaritalStatusID.Set {
		c.MaritalStatusID = u.MaritalStatusID.Ptr()
	}
}

// ClientDeletion reports the outcome of a client deletion
type ClientDeletion struct {
	Deleted         bool  `json:"deleted"`
	ClientID        int64 `json:"client_id"`
	DeletedLoans    int   `json:"deleted_loans"`
	DeletedDeposits int   `json:"deleted_deposits"`
}

package models

// Job represents an occupation with its typical salary
type Job struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Salary int64  `json:"salary"`
}

// EducationLevel represents a level of education
type EducationLevel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MaritalStatus represents a marital status
type MaritalStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DepositType represents a kind of deposit product
type DepositType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

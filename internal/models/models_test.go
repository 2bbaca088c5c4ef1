package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var loan Loan
	err := json.Unmarshal([]byte(`{"start_date":"2024-02-29","end_date":"2025-03-01"}`), &loan)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), loan.StartDate)
	assert.Equal(t, 366, loan.StartDate.DaysUntil(loan.EndDate))

	out, err := json.Marshal(loan.EndDate)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-03-01"`, string(out))

	err = json.Unmarshal([]byte(`{"start_date":"01.02.2024"}`), &loan)
	assert.Error(t, err)
}

func TestDateJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed string", `{"start_date":"01.02.2024"}`},
		{"number", `{"start_date":20240201}`},
		{"object", `{"start_date":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in LoanCreate
			err := json.Unmarshal([]byte(tt.body), &in)

			var typeErr *json.UnmarshalTypeError
			require.ErrorAs(t, err, &typeErr)
			assert.Equal(t, "start_date", typeErr.Field)
		})
	}
}

func TestDateJSONNullIsAbsent(t *testing.T) {
	var in DepositCreate
	require.NoError(t, json.Unmarshal([]byte(`{"start_date":null,"end_date":"2025-01-01"}`), &in))
	assert.True(t, in.StartDate.IsZero())
	assert.Equal(t, NewDate(2025, time.January, 1), in.EndDate)

	var patch LoanUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"end_date":null}`), &patch))
	assert.True(t, patch.EndDate.Set)
	assert.True(t, patch.EndDate.Null)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, 5, 17, 13, 45, 0, 0, time.FixedZone("MSK", 3*3600))))
	assert.Equal(t, "2023-05-17", d.String())

	require.NoError(t, d.Scan([]byte("2020-01-02")))
	assert.Equal(t, NewDate(2020, time.January, 2), d)

	assert.Error(t, d.Scan(42))
}

func TestClientUpdatePresence(t *testing.T) {
	var u ClientUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"age":41,"job_id":null}`), &u))

	assert.True(t, u.Age.Set)
	assert.False(t, u.FullName.Set)
	assert.True(t, u.JobID.Set)
	assert.True(t, u.JobID.Null)
	assert.False(t, u.EducationLevelID.Set)

	jobID := int64(3)
	eduID := int64(2)
	c := &Client{FullName: "Иван Петров", Age: 30, JobID: &jobID, EducationLevelID: &eduID}
	u.Apply(c)

	assert.Equal(t, "Иван Петров", c.FullName)
	assert.Equal(t, 41, c.Age)
	assert.Nil(t, c.JobID)
	require.NotNil(t, c.EducationLevelID)
	assert.Equal(t, int64(2), *c.EducationLevelID)
}

func TestEmptyUpdates(t *testing.T) {
	assert.True(t, ClientUpdate{}.IsEmpty())
	assert.True(t, LoanUpdate{}.IsEmpty())
	assert.True(t, DepositUpdate{}.IsEmpty())
	assert.False(t, LoanUpdate{IsOverdue: Some(true)}.IsEmpty())
}

func TestDepositUpdateTypeChangeDropsResolvedType(t *testing.T) {
	d := &Deposit{TypeID: 1, Type: &DepositType{ID: 1, Name: "Срочный"}}

	DepositUpdate{TypeID: Some(int64(1))}.Apply(d)
	assert.NotNil(t, d.Type)

	DepositUpdate{TypeID: Some(int64(2))}.Apply(d)
	assert.Equal(t, int64(2), d.TypeID)
	assert.Nil(t, d.Type)
}

func TestClientFullFlattensJSON(t *testing.T) {
	full := ClientFull{
		ClientDetail: ClientDetail{
			Client: Client{ID: 1, FullName: "Анна Смирнова", Age: 35},
			Job:    &Job{ID: 2, Name: "Врач", Salary: 100000},
		},
		Loans:    []Loan{},
		Deposits: []Deposit{},
	}
	out, err := json.Marshal(full)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, "Анна Смирнова", raw["full_name"])
	assert.Contains(t, raw, "job")
	assert.Contains(t, raw, "loans")
	assert.Nil(t, raw["marital_status"])
}

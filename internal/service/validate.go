package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// A zero Date counts as missing.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(models.Date); ok && !d.IsZero() {
			return d.Time
		}
		return nil
	}, models.Date{})
	return v
}

// checkStruct records every tag violation of s in ve.
func checkStruct(ve *apperr.ValidationError, s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		ve.Add("body", err.Error())
		return
	}
	for _, fe := range verrs {
		ve.Add(fe.Field(), describe(fe))
	}
}

// checkVar validates a single present value against tag.
func checkVar(ve *apperr.ValidationError, field string, value any, tag string) {
	err := validate.Var(value, tag)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		ve.Add(field, err.Error())
		return
	}
	for _, fe := range verrs {
		ve.Add(field, describe(fe))
	}
}

func notNull[T any](ve *apperr.ValidationError, field string, o models.Optional[T]) {
	if o.Set && o.Null {
		ve.Add(field, "must not be null")
	}
}

func checkDateRange(ve *apperr.ValidationError, start, end models.Date) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start.Time) {
		ve.Add("end_date", "must not be earlier than start_date")
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

func validateClientUpdate(u models.ClientUpdate) error {
	ve := &apperr.ValidationError{}
	notNull(ve, "full_name", u.FullName)
	notNull(ve, "age", u.Age)
	notNull(ve, "is_bankrupt", u.IsBankrupt)
	if u.FullName.Set && !u.FullName.Null {
		checkVar(ve, "full_name", u.FullName.Value, "min=2,max=256")
	}
	if u.Age.Set && !u.Age.Null {
		checkVar(ve, "age", u.Age.Value, "gte=0,lte=150")
	}
	refs := []struct {
		field string
		id    models.Optional[int64]
	}{
		{"job_id", u.JobID},
		{"education_level_id", u.EducationLevelID},
		{"marital_status_id", u.MaritalStatusID},
	}
	for _, ref := range refs {
		if ref.id.Set && !ref.id.Null {
			checkVar(ve, ref.field, ref.id.Value, "gt=0")
		}
	}
	return ve.OrNil()
}

func validateLoanUpdate(u models.LoanUpdate) error {
	ve := &apperr.ValidationError{}
	notNull(ve, "amount", u.Amount)
	notNull(ve, "interest_rate", u.InterestRate)
	notNull(ve, "start_date", u.StartDate)
	notNull(ve, "end_date", u.EndDate)
	notNull(ve, "is_overdue", u.IsOverdue)
	notNull(ve, "overdue_amount", u.OverdueAmount)
	return ve.OrNil()
}

func validateDepositUpdate(u models.DepositUpdate) error {
	ve := &apperr.ValidationError{}
	notNull(ve, "type_id", u.TypeID)
	notNull(ve, "amount", u.Amount)
	notNull(ve, "interest_rate", u.InterestRate)
	notNull(ve, "start_date", u.StartDate)
	notNull(ve, "end_date", u.EndDate)
	notNull(ve, "final_amount", u.FinalAmount)
	if u.TypeID.Set && !u.TypeID.Null {
		checkVar(ve, "type_id", u.TypeID.Value, "gt=0")
	}
	return ve.OrNil()
}

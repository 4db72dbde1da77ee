package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

func validCreateRequest() CreateWorkerRequest {
	return CreateWorkerRequest{
		FirstName:      "Budi",
		LastName:       "Santoso",
		Phone:          "081234567890",
		Specialization: "mason",
		DailyRate:      "150.00",
		Status:         "ACTIVE",
		HireDate:       "2026-01-05",
	}
}

func TestCreateWorkerRequestValid(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateWorkerRequestMissingFields(t *testing.T) {
	req := CreateWorkerRequest{}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "daily_rate")
	assert.Contains(t, fields, "hire_date")
}

func TestCreateWorkerRequestRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateWorkerRequest)
		field  string
	}{
		{"negative rate", func(r *CreateWorkerRequest) { r.DailyRate = "-5" }, "daily_rate"},
		{"non-numeric rate", func(r *CreateWorkerRequest) { r.DailyRate = "lots" }, "daily_rate"},
		{"bad status", func(r *CreateWorkerRequest) { r.Status = "RETIRED" }, "status"},
		{"bad hire date", func(r *CreateWorkerRequest) { r.HireDate = "05-01-2026" }, "hire_date"},
		{"bad phone", func(r *CreateWorkerRequest) { r.Phone = "call me" }, "phone"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validCreateRequest()
			c.mutate(&req)
			err := req.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), c.field)
		})
	}
}

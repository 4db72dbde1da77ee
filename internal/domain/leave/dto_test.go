package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

func validRequest() CreateRequestRequest {
	return CreateRequestRequest{
		EmployeeID: "e-1",
		LeaveType:  "ANNUAL",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-10",
		Reason:     "family trip",
	}
}

func TestCreateRequestValid(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateRequestEndBeforeStart(t *testing.T) {
	req := validRequest()
	req.StartDate = "2026-04-10"
	req.EndDate = "2026-04-06"

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "end_date must not be before start_date", errs.ToMap()["end_date"])
}

func TestCreateRequestUnknownLeaveType(t *testing.T) {
	req := validRequest()
	req.LeaveType = "SABBATICAL"

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "leave_type")
}

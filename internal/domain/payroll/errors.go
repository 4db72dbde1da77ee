package payroll

import "errors"

var (
	ErrLineItemNotFound   = errors.New("payroll line item not found")
	ErrLineItemPaid       = errors.New("payroll line item already paid, cannot modify")
	ErrAdjustmentNotFound = errors.New("payroll adjustment not found")
	ErrInvalidPeriod      = errors.New("invalid payroll period")
)

package payroll

import "context"

// PayrollService defines business logic for payroll runs and adjustments.
type PayrollService interface {
	// Calculate computes one line item per worker for the period. Workers
	// are computed independently and concurrently; a single worker's
	// failure is logged and excluded, never aborting the batch.
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)

	// Save recomputes the run and persists it; penalties consumed by daily
	// items are flagged applied_to_payroll in the same transaction.
	Save(ctx context.Context, req SaveRequest) (CalculateResponse, error)

	List(ctx context.Context, filter LineItemFilter) (ListLineItemsResponse, error)
	Get(ctx context.Context, id string) (LineItemResponse, error)
	MarkPaid(ctx context.Context, req MarkPaidRequest) error

	// Payslip renders a saved line item as a PDF payslip.
	Payslip(ctx context.Context, id string) ([]byte, error)

	// Export renders the line items of a period as an xlsx workbook.
	Export(ctx context.Context, filter LineItemFilter) ([]byte, error)

	CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	ListAdjustments(ctx context.Context, filter AdjustmentFilter) (ListAdjustmentsResponse, error)
	DeleteAdjustment(ctx context.Context, kind AdjustmentKind, id string) error
}

package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/config"
	"github.com/sitehr/sitehr-backend-go/internal/domain/attendance"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/payroll"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/payslip"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/spreadsheet"
	"github.com/sitehr/sitehr-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.LineItemRepository
	payroll.AdjustmentRepository
	attendanceRepo attendance.RecordRepository
	workerRepo     worker.WorkerRepository
	employeeRepo   employee.EmployeeRepository
	workday        config.WorkdayConfig
	logger         *slog.Logger
}

func NewPayrollService(
	db *database.DB,
	lineItemRepo payroll.LineItemRepository,
	adjustmentRepo payroll.AdjustmentRepository,
	attendanceRepo attendance.RecordRepository,
	workerRepo worker.WorkerRepository,
	employeeRepo employee.EmployeeRepository,
	workday config.WorkdayConfig,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                   db,
		LineItemRepository:   lineItemRepo,
		AdjustmentRepository: adjustmentRepo,
		attendanceRepo:       attendanceRepo,
		workerRepo:           workerRepo,
		employeeRepo:         employeeRepo,
		workday:              workday,
		logger:               logger,
	}
}

// calcResult carries one computed item, or nil when the worker was skipped.
type calcResult struct {
	item       *payroll.LineItem
	penaltyIDs []string
}

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculateResponse{}, err
	}

	items, _, err := s.calculate(ctx, req)
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	resp := payroll.CalculateResponse{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Items:       make([]payroll.LineItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toLineItemResponse(item))
	}

	return resp, nil
}

// Save implements payroll.PayrollService. The recomputed run is persisted
// and the consumed penalties flagged inside one transaction, so a partial
// save can never leave penalties double-countable.
func (s *PayrollServiceImpl) Save(ctx context.Context, req payroll.SaveRequest) (payroll.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculateResponse{}, err
	}

	calcReq := payroll.CalculateRequest{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		WorkerType:  req.WorkerType,
	}
	items, penaltyIDs, err := s.calculate(ctx, calcReq)
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	var saved []payroll.LineItem
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		for _, item := range items {
			item.Status = payroll.StatusPending
			stored, err := s.LineItemRepository.Create(ctx, item)
			if err != nil {
				return fmt.Errorf("failed to save payroll line item: %w", err)
			}
			saved = append(saved, stored)
		}
		if err := s.AdjustmentRepository.MarkPenaltiesApplied(ctx, penaltyIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return payroll.CalculateResponse{}, err
	}

	resp := payroll.CalculateResponse{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Items:       make([]payroll.LineItemResponse, 0, len(saved)),
	}
	for _, item := range saved {
		resp.Items = append(resp.Items, toLineItemResponse(item))
	}

	return resp, nil
}

// calculate fans out one goroutine per worker and collects the surviving
// line items. Failed workers are logged and excluded.
func (s *PayrollServiceImpl) calculate(ctx context.Context, req payroll.CalculateRequest) ([]payroll.LineItem, []string, error) {
	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		items   []payroll.LineItem
		applied []string
	)

	collect := func(res calcResult) {
		mu.Lock()
		defer mu.Unlock()
		if res.item != nil {
			items = append(items, *res.item)
			applied = append(applied, res.penaltyIDs...)
		}
	}

	if req.WorkerType == string(worker.TypeDaily) || req.WorkerType == payroll.WorkerTypeAll {
		workers, err := s.workerRepo.ListActive(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list active daily workers: %w", err)
		}
		for _, w := range workers {
			wg.Add(1)
			go func(w worker.DailyWorker) {
				defer wg.Done()
				res, err := s.calculateDaily(ctx, w, periodStart, periodEnd)
				if err != nil {
					s.logger.Error("payroll calculation failed for daily worker",
						slog.String("worker_id", w.ID),
						slog.String("error", err.Error()),
					)
					return
				}
				collect(res)
			}(w)
		}
	}

	if req.WorkerType == string(worker.TypeRegular) || req.WorkerType == payroll.WorkerTypeAll {
		employees, err := s.employeeRepo.ListActive(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list active employees: %w", err)
		}
		for _, e := range employees {
			wg.Add(1)
			go func(e employee.Employee) {
				defer wg.Done()
				res, err := s.calculateSalaried(ctx, e, periodStart, periodEnd)
				if err != nil {
					s.logger.Error("payroll calculation failed for employee",
						slog.String("employee_id", e.ID),
						slog.String("error", err.Error()),
					)
					return
				}
				collect(res)
			}(e)
		}
	}

	wg.Wait()

	sort.Slice(items, func(i, j int) bool { return items[i].WorkerName < items[j].WorkerName })

	return items, applied, nil
}

// calculateDaily computes one daily worker's pay: days worked times the
// daily rate, minus unapplied penalties. Workers with no attendance in the
// period are skipped entirely.
func (s *PayrollServiceImpl) calculateDaily(ctx context.Context, w worker.DailyWorker, periodStart, periodEnd time.Time) (calcResult, error) {
	records, err := s.attendanceRepo.ListByWorkerAndPeriod(ctx, w.ID, periodStart, periodEnd)
	if err != nil {
		return calcResult{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if len(records) == 0 {
		return calcResult{}, nil
	}

	totalDays := 0
	totalHours := decimal.Zero
	for _, rec := range records {
		if rec.Status == attendance.StatusPresent || rec.Status == attendance.StatusLate {
			totalDays++
		}
		if rec.HoursWorked != nil {
			totalHours = totalHours.Add(*rec.HoursWorked)
		}
	}

	penalties, err := s.AdjustmentRepository.ListPenalties(ctx, w.ID, periodStart, periodEnd, true)
	if err != nil {
		return calcResult{}, fmt.Errorf("failed to load penalties: %w", err)
	}

	deduction := decimal.Zero
	penaltyIDs := make([]string, 0, len(penalties))
	for _, p := range penalties {
		deduction = deduction.Add(p.Amount)
		penaltyIDs = append(penaltyIDs, p.ID)
	}

	base := w.DailyRate.Mul(decimal.NewFromInt(int64(totalDays)))
	item := payroll.LineItem{
		WorkerID:        w.ID,
		WorkerName:      w.FullName(),
		WorkerType:      worker.TypeDaily,
		Specialization:  w.Specialization,
		TotalDays:       totalDays,
		TotalHours:      totalHours,
		DailyRate:       w.DailyRate,
		BaseAmount:      base,
		BonusAmount:     decimal.Zero,
		DeductionAmount: deduction,
		NetAmount:       base.Sub(deduction),
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		Status:          payroll.StatusCalculated,
	}

	return calcResult{item: &item, penaltyIDs: penaltyIDs}, nil
}

// calculateSalaried computes one employee's pay: the monthly salary minus
// absence-proportional and recorded deductions, plus bonuses.
func (s *PayrollServiceImpl) calculateSalaried(ctx context.Context, e employee.Employee, periodStart, periodEnd time.Time) (calcResult, error) {
	records, err := s.attendanceRepo.ListByWorkerAndPeriod(ctx, e.ID, periodStart, periodEnd)
	if err != nil {
		return calcResult{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	absentDays := 0
	for _, rec := range records {
		if rec.Status == attendance.StatusAbsent {
			absentDays++
		}
	}

	workingDays := s.workday.WorkingDaysPerMonth
	dailyValue := e.MonthlySalary.Div(decimal.NewFromInt(int64(workingDays)))
	attendanceDeduction := dailyValue.Mul(decimal.NewFromInt(int64(absentDays)))

	deductions, err := s.AdjustmentRepository.ListDeductions(ctx, e.ID, periodStart, periodEnd)
	if err != nil {
		return calcResult{}, fmt.Errorf("failed to load deductions: %w", err)
	}
	totalDeduction := attendanceDeduction
	for _, d := range deductions {
		totalDeduction = totalDeduction.Add(d.Amount)
	}

	bonuses, err := s.AdjustmentRepository.ListBonuses(ctx, e.ID, periodStart, periodEnd)
	if err != nil {
		return calcResult{}, fmt.Errorf("failed to load bonuses: %w", err)
	}
	totalBonus := decimal.Zero
	for _, b := range bonuses {
		totalBonus = totalBonus.Add(b.Amount)
	}

	totalDays := workingDays - absentDays
	totalHours := decimal.NewFromInt(int64(totalDays * s.workday.HoursPerDay))

	item := payroll.LineItem{
		WorkerID:        e.ID,
		WorkerName:      e.FullName(),
		WorkerType:      worker.TypeRegular,
		Specialization:  e.Position,
		TotalDays:       totalDays,
		TotalHours:      totalHours,
		DailyRate:       dailyValue.Round(2),
		BaseAmount:      e.MonthlySalary,
		BonusAmount:     totalBonus,
		DeductionAmount: totalDeduction,
		NetAmount:       e.MonthlySalary.Add(totalBonus).Sub(totalDeduction),
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		Status:          payroll.StatusCalculated,
	}

	return calcResult{item: &item}, nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.LineItemFilter) (payroll.ListLineItemsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	items, total, err := s.LineItemRepository.List(ctx, filter)
	if err != nil {
		return payroll.ListLineItemsResponse{}, fmt.Errorf("failed to list payroll line items: %w", err)
	}

	resp := payroll.ListLineItemsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Items:      make([]payroll.LineItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toLineItemResponse(item))
	}

	return resp, nil
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.LineItemResponse, error) {
	item, err := s.LineItemRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.LineItemResponse{}, err
	}

	return toLineItemResponse(item), nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	paidBy := ""
	if userID := userIDFromClaims(ctx); userID != nil {
		paidBy = *userID
	}

	return s.LineItemRepository.MarkPaid(ctx, req.IDs, paidBy)
}

// Payslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, id string) ([]byte, error) {
	item, err := s.LineItemRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data := payslip.Data{
		WorkerName:      item.WorkerName,
		WorkerType:      string(item.WorkerType),
		Specialization:  item.Specialization,
		PeriodStart:     item.PeriodStart,
		PeriodEnd:       item.PeriodEnd,
		TotalDays:       item.TotalDays,
		TotalHours:      item.TotalHours,
		BaseAmount:      item.BaseAmount,
		BonusAmount:     item.BonusAmount,
		DeductionAmount: item.DeductionAmount,
		NetAmount:       item.NetAmount,
		Status:          string(item.Status),
	}

	pdf, err := payslip.Render(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	return pdf, nil
}

// Export implements payroll.PayrollService.
func (s *PayrollServiceImpl) Export(ctx context.Context, filter payroll.LineItemFilter) ([]byte, error) {
	filter.Page = 1
	filter.Limit = 10000

	items, _, err := s.LineItemRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll line items: %w", err)
	}

	period := exportPeriodLabel(filter, items)

	rows := make([]spreadsheet.PayrollRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, spreadsheet.PayrollRow{
			WorkerName:      item.WorkerName,
			WorkerType:      string(item.WorkerType),
			TotalDays:       item.TotalDays,
			TotalHours:      item.TotalHours.String(),
			BaseAmount:      item.BaseAmount.String(),
			BonusAmount:     item.BonusAmount.String(),
			DeductionAmount: item.DeductionAmount.String(),
			NetAmount:       item.NetAmount.String(),
			Status:          string(item.Status),
		})
	}

	data, err := spreadsheet.WritePayroll(period, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to write payroll workbook: %w", err)
	}

	return data, nil
}

// exportPeriodLabel labels the report with the requested filter bounds. The
// result set may mix periods, so a bound missing from the filter falls back
// to the earliest start / latest end among the items.
func exportPeriodLabel(filter payroll.LineItemFilter, items []payroll.LineItem) string {
	start := ""
	if filter.PeriodStart != nil && *filter.PeriodStart != "" {
		start = *filter.PeriodStart
	}
	end := ""
	if filter.PeriodEnd != nil && *filter.PeriodEnd != "" {
		end = *filter.PeriodEnd
	}

	for _, item := range items {
		itemStart := item.PeriodStart.Format("2006-01-02")
		itemEnd := item.PeriodEnd.Format("2006-01-02")
		if filter.PeriodStart == nil || *filter.PeriodStart == "" {
			if start == "" || itemStart < start {
				start = itemStart
			}
		}
		if filter.PeriodEnd == nil || *filter.PeriodEnd == "" {
			if end == "" || itemEnd > end {
				end = itemEnd
			}
		}
	}

	if start == "" && end == "" {
		return ""
	}
	return start + " to " + end
}

// CreateAdjustment implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateAdjustment(ctx context.Context, req payroll.CreateAdjustmentRequest) (payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdjustmentResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	amount, _ := decimal.NewFromString(req.Amount)

	switch req.Kind {
	case payroll.KindPenalty:
		if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
			return payroll.AdjustmentResponse{}, err
		}
		p, err := s.AdjustmentRepository.CreatePenalty(ctx, payroll.Penalty{
			WorkerID: req.WorkerID,
			Date:     date,
			Amount:   amount,
			Reason:   req.Reason,
		})
		if err != nil {
			return payroll.AdjustmentResponse{}, err
		}
		applied := p.AppliedToPayroll
		return payroll.AdjustmentResponse{
			ID:               p.ID,
			Kind:             string(req.Kind),
			WorkerID:         p.WorkerID,
			Date:             p.Date.Format("2006-01-02"),
			Amount:           p.Amount.String(),
			Reason:           p.Reason,
			AppliedToPayroll: &applied,
			CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		}, nil

	case payroll.KindDeduction:
		if _, err := s.employeeRepo.GetByID(ctx, req.WorkerID); err != nil {
			return payroll.AdjustmentResponse{}, err
		}
		d, err := s.AdjustmentRepository.CreateDeduction(ctx, payroll.Deduction{
			WorkerID: req.WorkerID,
			Date:     date,
			Amount:   amount,
			Reason:   req.Reason,
		})
		if err != nil {
			return payroll.AdjustmentResponse{}, err
		}
		return payroll.AdjustmentResponse{
			ID:        d.ID,
			Kind:      string(req.Kind),
			WorkerID:  d.WorkerID,
			Date:      d.Date.Format("2006-01-02"),
			Amount:    d.Amount.String(),
			Reason:    d.Reason,
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
		}, nil

	default:
		if _, err := s.employeeRepo.GetByID(ctx, req.WorkerID); err != nil {
			return payroll.AdjustmentResponse{}, err
		}
		b, err := s.AdjustmentRepository.CreateBonus(ctx, payroll.Bonus{
			WorkerID: req.WorkerID,
			Date:     date,
			Amount:   amount,
			Reason:   req.Reason,
		})
		if err != nil {
			return payroll.AdjustmentResponse{}, err
		}
		return payroll.AdjustmentResponse{
			ID:        b.ID,
			Kind:      string(req.Kind),
			WorkerID:  b.WorkerID,
			Date:      b.Date.Format("2006-01-02"),
			Amount:    b.Amount.String(),
			Reason:    b.Reason,
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		}, nil
	}
}

// ListAdjustments implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListAdjustments(ctx context.Context, filter payroll.AdjustmentFilter) (payroll.ListAdjustmentsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	adjustments, total, err := s.AdjustmentRepository.ListAdjustments(ctx, filter)
	if err != nil {
		return payroll.ListAdjustmentsResponse{}, fmt.Errorf("failed to list adjustments: %w", err)
	}

	return payroll.ListAdjustmentsResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Adjustments: adjustments,
	}, nil
}

// DeleteAdjustment implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteAdjustment(ctx context.Context, kind payroll.AdjustmentKind, id string) error {
	if !kind.Valid() {
		return payroll.ErrAdjustmentNotFound
	}

	return s.AdjustmentRepository.DeleteAdjustment(ctx, kind, id)
}

func userIDFromClaims(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return &userID
	}
	return nil
}

func toLineItemResponse(item payroll.LineItem) payroll.LineItemResponse {
	resp := payroll.LineItemResponse{
		ID:              item.ID,
		WorkerID:        item.WorkerID,
		WorkerName:      item.WorkerName,
		WorkerType:      string(item.WorkerType),
		Specialization:  item.Specialization,
		TotalDays:       item.TotalDays,
		TotalHours:      item.TotalHours.String(),
		DailyRate:       item.DailyRate.String(),
		BaseAmount:      item.BaseAmount.String(),
		BonusAmount:     item.BonusAmount.String(),
		DeductionAmount: item.DeductionAmount.String(),
		NetAmount:       item.NetAmount.String(),
		PeriodStart:     item.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       item.PeriodEnd.Format("2006-01-02"),
		Status:          string(item.Status),
	}
	if item.PaidAt != nil {
		v := item.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

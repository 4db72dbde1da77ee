package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type WorkerServiceImpl struct {
	db *database.DB
	worker.WorkerRepository
	logger *slog.Logger
}

func NewWorkerService(db *database.DB, workerRepo worker.WorkerRepository, logger *slog.Logger) worker.WorkerService {
	return &WorkerServiceImpl{
		db:               db,
		WorkerRepository: workerRepo,
		logger:           logger,
	}
}

// Create implements worker.WorkerService.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.buildWorker(ctx, req)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	stored, err := s.WorkerRepository.Create(ctx, w)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create daily worker: %w", err)
	}

	return toWorkerResponse(stored), nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return toWorkerResponse(w), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context, filter worker.WorkerFilter) (worker.ListWorkersResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	workers, total, err := s.WorkerRepository.List(ctx, filter)
	if err != nil {
		return worker.ListWorkersResponse{}, fmt.Errorf("failed to list daily workers: %w", err)
	}

	resp := worker.ListWorkersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Workers:    make([]worker.WorkerResponse, 0, len(workers)),
	}
	for _, w := range workers {
		resp.Workers = append(resp.Workers, toWorkerResponse(w))
	}

	return resp, nil
}

// Update implements worker.WorkerService.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.FirstName != nil {
		w.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		w.LastName = *req.LastName
	}
	if req.Phone != nil {
		w.Phone = *req.Phone
	}
	if req.Specialization != nil {
		w.Specialization = *req.Specialization
	}
	if req.DailyRate != nil {
		rate, err := decimal.NewFromString(*req.DailyRate)
		if err != nil {
			return worker.WorkerResponse{}, fmt.Errorf("failed to parse daily_rate: %w", err)
		}
		w.DailyRate = rate
	}
	if req.Status != nil {
		w.Status = worker.Status(*req.Status)
	}
	if req.BankName != nil {
		w.BankName = req.BankName
	}
	if req.AccountNumber != nil {
		w.AccountNumber = req.AccountNumber
	}
	if req.Notes != nil {
		w.Notes = req.Notes
	}

	if err := s.WorkerRepository.Update(ctx, w); err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to update daily worker: %w", err)
	}

	return toWorkerResponse(w), nil
}

// Delete implements worker.WorkerService.
func (s *WorkerServiceImpl) Delete(ctx context.Context, id string) error {
	return s.WorkerRepository.SoftDelete(ctx, id)
}

// Import implements worker.WorkerService. Rows fail one at a time; a bad
// row bumps the error count and the rest of the batch proceeds.
func (s *WorkerServiceImpl) Import(ctx context.Context, rows []worker.CreateWorkerRequest) (worker.ImportWorkersResult, error) {
	var result worker.ImportWorkersResult
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			s.logger.Warn("skipping worker import row",
				slog.Int("row", i+1),
				slog.String("error", err.Error()),
			)
			result.Errors++
			continue
		}

		w, err := s.buildWorker(ctx, row)
		if err != nil {
			result.Errors++
			continue
		}

		if _, err := s.WorkerRepository.Create(ctx, w); err != nil {
			s.logger.Warn("failed to import worker row",
				slog.Int("row", i+1),
				slog.String("error", err.Error()),
			)
			result.Errors++
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *WorkerServiceImpl) buildWorker(ctx context.Context, req worker.CreateWorkerRequest) (worker.DailyWorker, error) {
	rate, err := decimal.NewFromString(req.DailyRate)
	if err != nil {
		return worker.DailyWorker{}, fmt.Errorf("failed to parse daily_rate: %w", err)
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return worker.DailyWorker{}, fmt.Errorf("failed to parse hire_date: %w", err)
	}

	return worker.DailyWorker{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		DailyRate:      rate,
		Status:         worker.Status(req.Status),
		HireDate:       hireDate,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		Notes:          req.Notes,
		CreatedBy:      userIDFromClaims(ctx),
	}, nil
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

func toWorkerResponse(w worker.DailyWorker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:             w.ID,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		Phone:          w.Phone,
		Specialization: w.Specialization,
		DailyRate:      w.DailyRate.String(),
		Status:         string(w.Status),
		HireDate:       w.HireDate.Format("2006-01-02"),
		BankName:       w.BankName,
		AccountNumber:  w.AccountNumber,
		Notes:          w.Notes,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      w.UpdatedAt.Format(time.RFC3339),
	}
}

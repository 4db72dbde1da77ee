package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/evaluation"
	"github.com/sitehr/sitehr-backend-go/internal/domain/worker"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type EvaluationServiceImpl struct {
	db *database.DB
	evaluation.EvaluationRepository
	workerRepo   worker.WorkerRepository
	employeeRepo employee.EmployeeRepository
}

func NewEvaluationService(
	db *database.DB,
	evaluationRepo evaluation.EvaluationRepository,
	workerRepo worker.WorkerRepository,
	employeeRepo employee.EmployeeRepository,
) evaluation.EvaluationService {
	return &EvaluationServiceImpl{
		db:                   db,
		EvaluationRepository: evaluationRepo,
		workerRepo:           workerRepo,
		employeeRepo:         employeeRepo,
	}
}

// Create implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) Create(ctx context.Context, req evaluation.CreateEvaluationRequest) (evaluation.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	workerType := worker.Type(req.WorkerType)
	if workerType == worker.TypeDaily {
		if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
			return evaluation.EvaluationResponse{}, err
		}
	} else {
		if _, err := s.employeeRepo.GetByID(ctx, req.WorkerID); err != nil {
			return evaluation.EvaluationResponse{}, err
		}
	}

	existing, err := s.EvaluationRepository.GetByWorkerAndPeriod(ctx, req.WorkerID, req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return evaluation.EvaluationResponse{}, fmt.Errorf("failed to check existing evaluation: %w", err)
	}
	if existing != nil {
		return evaluation.EvaluationResponse{}, evaluation.ErrDuplicatePeriod
	}

	evaluatorID := ""
	if userID := userIDFromClaims(ctx); userID != nil {
		evaluatorID = *userID
	}

	e := evaluation.Evaluation{
		WorkerID:      req.WorkerID,
		WorkerType:    workerType,
		EvaluatorID:   evaluatorID,
		PeriodMonth:   req.PeriodMonth,
		PeriodYear:    req.PeriodYear,
		Quality:       req.Quality,
		Productivity:  req.Productivity,
		Punctuality:   req.Punctuality,
		Teamwork:      req.Teamwork,
		OverallRating: evaluation.Rating(req.Quality, req.Productivity, req.Punctuality, req.Teamwork),
		Comments:      req.Comments,
	}

	stored, err := s.EvaluationRepository.Create(ctx, e)
	if err != nil {
		if errors.Is(err, evaluation.ErrDuplicatePeriod) {
			return evaluation.EvaluationResponse{}, evaluation.ErrDuplicatePeriod
		}
		return evaluation.EvaluationResponse{}, fmt.Errorf("failed to create evaluation: %w", err)
	}

	return toEvaluationResponse(stored), nil
}

// List implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) List(ctx context.Context, filter evaluation.EvaluationFilter) (evaluation.ListEvaluationsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	evaluations, total, err := s.EvaluationRepository.List(ctx, filter)
	if err != nil {
		return evaluation.ListEvaluationsResponse{}, fmt.Errorf("failed to list evaluations: %w", err)
	}

	resp := evaluation.ListEvaluationsResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Evaluations: make([]evaluation.EvaluationResponse, 0, len(evaluations)),
	}
	for _, e := range evaluations {
		resp.Evaluations = append(resp.Evaluations, toEvaluationResponse(e))
	}

	return resp, nil
}

// Get implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) Get(ctx context.Context, id string) (evaluation.EvaluationResponse, error) {
	e, err := s.EvaluationRepository.GetByID(ctx, id)
	if err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	return toEvaluationResponse(e), nil
}

// Summary implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) Summary(ctx context.Context, year int) ([]evaluation.WorkerSummary, error) {
	summaries, err := s.EvaluationRepository.Summary(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize evaluations: %w", err)
	}

	return summaries, nil
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

func toEvaluationResponse(e evaluation.Evaluation) evaluation.EvaluationResponse {
	return evaluation.EvaluationResponse{
		ID:            e.ID,
		WorkerID:      e.WorkerID,
		WorkerType:    string(e.WorkerType),
		WorkerName:    e.WorkerName,
		EvaluatorID:   e.EvaluatorID,
		PeriodMonth:   e.PeriodMonth,
		PeriodYear:    e.PeriodYear,
		Quality:       e.Quality,
		Productivity:  e.Productivity,
		Punctuality:   e.Punctuality,
		Teamwork:      e.Teamwork,
		OverallRating: e.OverallRating.String(),
		Comments:      e.Comments,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

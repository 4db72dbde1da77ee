package site

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/site"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type SiteServiceImpl struct {
	db *database.DB
	site.SiteRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewSiteService(db *database.DB, siteRepo site.SiteRepository, employeeRepo employee.EmployeeRepository, logger *slog.Logger) site.SiteService {
	return &SiteServiceImpl{
		db:             db,
		SiteRepository: siteRepo,
		employeeRepo:   employeeRepo,
		logger:         logger,
	}
}

// Create implements site.SiteService.
func (s *SiteServiceImpl) Create(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	if req.ProjectManagerID != nil && *req.ProjectManagerID != "" {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ProjectManagerID); err != nil {
			return site.SiteResponse{}, err
		}
	}

	budget, err := decimal.NewFromString(req.Budget)
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to parse budget: %w", err)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	expectedEnd, err := time.Parse("2006-01-02", req.ExpectedEndDate)
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to parse expected_end_date: %w", err)
	}

	cs := site.ConstructionSite{
		Name:             req.Name,
		Location:         req.Location,
		ClientName:       req.ClientName,
		StartDate:        startDate,
		ExpectedEndDate:  expectedEnd,
		Status:           site.Status(req.Status),
		Budget:           budget,
		ProjectManagerID: req.ProjectManagerID,
		Description:      req.Description,
		CreatedBy:        userIDFromClaims(ctx),
	}
	if req.ActualEndDate != nil {
		actualEnd, err := time.Parse("2006-01-02", *req.ActualEndDate)
		if err != nil {
			return site.SiteResponse{}, fmt.Errorf("failed to parse actual_end_date: %w", err)
		}
		cs.ActualEndDate = &actualEnd
	}
	if req.Progress != nil {
		cs.Progress = *req.Progress
	}

	stored, err := s.SiteRepository.Create(ctx, cs)
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to create construction site: %w", err)
	}

	return toSiteResponse(stored), nil
}

// Get implements site.SiteService.
func (s *SiteServiceImpl) Get(ctx context.Context, id string) (site.SiteResponse, error) {
	cs, err := s.SiteRepository.GetByID(ctx, id)
	if err != nil {
		return site.SiteResponse{}, err
	}

	return toSiteResponse(cs), nil
}

// List implements site.SiteService.
func (s *SiteServiceImpl) List(ctx context.Context, filter site.SiteFilter) (site.ListSitesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	sites, total, err := s.SiteRepository.List(ctx, filter)
	if err != nil {
		return site.ListSitesResponse{}, fmt.Errorf("failed to list construction sites: %w", err)
	}

	resp := site.ListSitesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Sites:      make([]site.SiteResponse, 0, len(sites)),
	}
	for _, cs := range sites {
		resp.Sites = append(resp.Sites, toSiteResponse(cs))
	}

	return resp, nil
}

// Update implements site.SiteService.
func (s *SiteServiceImpl) Update(ctx context.Context, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	cs, err := s.SiteRepository.GetByID(ctx, req.ID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	if req.Name != nil {
		cs.Name = *req.Name
	}
	if req.Location != nil {
		cs.Location = *req.Location
	}
	if req.ClientName != nil {
		cs.ClientName = *req.ClientName
	}
	if req.ExpectedEndDate != nil {
		expectedEnd, err := time.Parse("2006-01-02", *req.ExpectedEndDate)
		if err != nil {
			return site.SiteResponse{}, fmt.Errorf("failed to parse expected_end_date: %w", err)
		}
		cs.ExpectedEndDate = expectedEnd
	}
	if req.ActualEndDate != nil {
		actualEnd, err := time.Parse("2006-01-02", *req.ActualEndDate)
		if err != nil {
			return site.SiteResponse{}, fmt.Errorf("failed to parse actual_end_date: %w", err)
		}
		cs.ActualEndDate = &actualEnd
	}
	if req.Status != nil {
		cs.Status = site.Status(*req.Status)
	}
	if req.Budget != nil {
		budget, err := decimal.NewFromString(*req.Budget)
		if err != nil {
			return site.SiteResponse{}, fmt.Errorf("failed to parse budget: %w", err)
		}
		cs.Budget = budget
	}
	if req.ProjectManagerID != nil {
		if *req.ProjectManagerID != "" {
			if _, err := s.employeeRepo.GetByID(ctx, *req.ProjectManagerID); err != nil {
				return site.SiteResponse{}, err
			}
		}
		cs.ProjectManagerID = req.ProjectManagerID
	}
	if req.Description != nil {
		cs.Description = req.Description
	}
	if req.Progress != nil {
		cs.Progress = *req.Progress
	}

	if err := s.SiteRepository.Update(ctx, cs); err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to update construction site: %w", err)
	}

	return toSiteResponse(cs), nil
}

// Delete implements site.SiteService.
func (s *SiteServiceImpl) Delete(ctx context.Context, id string) error {
	return s.SiteRepository.SoftDelete(ctx, id)
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

func toSiteResponse(cs site.ConstructionSite) site.SiteResponse {
	resp := site.SiteResponse{
		ID:                 cs.ID,
		Name:               cs.Name,
		Location:           cs.Location,
		ClientName:         cs.ClientName,
		StartDate:          cs.StartDate.Format("2006-01-02"),
		ExpectedEndDate:    cs.ExpectedEndDate.Format("2006-01-02"),
		Status:             string(cs.Status),
		Budget:             cs.Budget.String(),
		ProjectManagerID:   cs.ProjectManagerID,
		ProjectManagerName: cs.ProjectManagerName,
		Description:        cs.Description,
		Progress:           cs.Progress,
		CreatedAt:          cs.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          cs.UpdatedAt.Format(time.RFC3339),
	}
	if cs.ActualEndDate != nil {
		formatted := cs.ActualEndDate.Format("2006-01-02")
		resp.ActualEndDate = &formatted
	}
	return resp
}

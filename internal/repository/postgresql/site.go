package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/site"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type siteRepository struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepository{db: db}
}

const siteColumns = `
	s.id, s.name, s.location, s.client_name, s.start_date, s.expected_end_date,
	s.actual_end_date, s.status, s.budget, s.project_manager_id, s.description,
	s.progress, s.deleted, s.created_by, s.created_at, s.updated_at,
	CASE WHEN e.id IS NULL THEN NULL ELSE e.first_name || ' ' || e.last_name END`

const siteJoin = `
	FROM construction_sites s
	LEFT JOIN employees e ON e.id = s.project_manager_id AND e.deleted = FALSE`

// Create implements site.SiteRepository.
func (r *siteRepository) Create(ctx context.Context, s site.ConstructionSite) (site.ConstructionSite, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO construction_sites (
			name, location, client_name, start_date, expected_end_date,
			actual_end_date, status, budget, project_manager_id, description,
			progress, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.Name, s.Location, s.ClientName, s.StartDate, s.ExpectedEndDate,
		s.ActualEndDate, s.Status, s.Budget, s.ProjectManagerID, s.Description,
		s.Progress, s.CreatedBy,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return site.ConstructionSite{}, fmt.Errorf("failed to create construction site: %w", err)
	}

	return s, nil
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string) (site.ConstructionSite, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + siteColumns + siteJoin + ` WHERE s.id = $1 AND s.deleted = FALSE`

	s, err := scanSite(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.ConstructionSite{}, site.ErrSiteNotFound
		}
		return site.ConstructionSite{}, fmt.Errorf("failed to get construction site by ID: %w", err)
	}

	return s, nil
}

// List implements site.SiteRepository.
func (r *siteRepository) List(ctx context.Context, filter site.SiteFilter) ([]site.ConstructionSite, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "s.deleted = FALSE"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (s.name ILIKE $%d OR s.location ILIKE $%d OR s.client_name ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM construction_sites s WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count construction sites: %w", err)
	}

	query := `SELECT ` + siteColumns + siteJoin + ` WHERE ` + baseWhere +
		fmt.Sprintf(" ORDER BY s.start_date DESC, s.name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list construction sites: %w", err)
	}
	defer rows.Close()

	var sites []site.ConstructionSite
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan construction site: %w", err)
		}
		sites = append(sites, s)
	}

	return sites, total, rows.Err()
}

// Update implements site.SiteRepository.
func (r *siteRepository) Update(ctx context.Context, s site.ConstructionSite) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE construction_sites SET
			name = $2, location = $3, client_name = $4, expected_end_date = $5,
			actual_end_date = $6, status = $7, budget = $8,
			project_manager_id = $9, description = $10, progress = $11,
			updated_at = NOW()
		WHERE id = $1 AND deleted = FALSE
	`

	tag, err := q.Exec(ctx, query,
		s.ID, s.Name, s.Location, s.ClientName, s.ExpectedEndDate,
		s.ActualEndDate, s.Status, s.Budget, s.ProjectManagerID, s.Description,
		s.Progress,
	)
	if err != nil {
		return fmt.Errorf("failed to update construction site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}

// SoftDelete implements site.SiteRepository.
func (r *siteRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE construction_sites SET deleted = TRUE, updated_at = NOW() WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete construction site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}

func scanSite(row pgx.Row) (site.ConstructionSite, error) {
	var s site.ConstructionSite
	err := row.Scan(
		&s.ID, &s.Name, &s.Location, &s.ClientName, &s.StartDate, &s.ExpectedEndDate,
		&s.ActualEndDate, &s.Status, &s.Budget, &s.ProjectManagerID, &s.Description,
		&s.Progress, &s.Deleted, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
		&s.ProjectManagerName,
	)
	return s, err
}

package site

import "context"

// SiteService defines business logic for construction site administration.
type SiteService interface {
	Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
	Get(ctx context.Context, id string) (SiteResponse, error)
	List(ctx context.Context, filter SiteFilter) (ListSitesResponse, error)
	Update(ctx context.Context, req UpdateSiteRequest) (SiteResponse, error)
	Delete(ctx context.Context, id string) error
}

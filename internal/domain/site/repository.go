package site

import "context"

type SiteRepository interface {
	Create(ctx context.Context, s ConstructionSite) (ConstructionSite, error)
	GetByID(ctx context.Context, id string) (ConstructionSite, error)
	List(ctx context.Context, filter SiteFilter) ([]ConstructionSite, int64, error)
	Update(ctx context.Context, s ConstructionSite) error
	SoftDelete(ctx context.Context, id string) error
}

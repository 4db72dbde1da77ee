package site

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitehr/sitehr-backend-go/internal/domain/employee"
	"github.com/sitehr/sitehr-backend-go/internal/domain/site"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/validator"
)

type fakeSiteRepo struct {
	sites  map[string]site.ConstructionSite
	nextID int
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: make(map[string]site.ConstructionSite)}
}

func (f *fakeSiteRepo) Create(ctx context.Context, cs site.ConstructionSite) (site.ConstructionSite, error) {
	f.nextID++
	cs.ID = fmt.Sprintf("site-%d", f.nextID)
	f.sites[cs.ID] = cs
	return cs, nil
}

func (f *fakeSiteRepo) GetByID(ctx context.Context, id string) (site.ConstructionSite, error) {
	cs, ok := f.sites[id]
	if !ok || cs.Deleted {
		return site.ConstructionSite{}, site.ErrSiteNotFound
	}
	return cs, nil
}

func (f *fakeSiteRepo) List(ctx context.Context, filter site.SiteFilter) ([]site.ConstructionSite, int64, error) {
	var out []site.ConstructionSite
	for _, cs := range f.sites {
		if cs.Deleted {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(cs.Status) != *filter.Status {
			continue
		}
		out = append(out, cs)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSiteRepo) Update(ctx context.Context, cs site.ConstructionSite) error {
	if _, ok := f.sites[cs.ID]; !ok {
		return site.ErrSiteNotFound
	}
	f.sites[cs.ID] = cs
	return nil
}

func (f *fakeSiteRepo) SoftDelete(ctx context.Context, id string) error {
	cs, ok := f.sites[id]
	if !ok || cs.Deleted {
		return site.ErrSiteNotFound
	}
	cs.Deleted = true
	f.sites[id] = cs
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error       { return nil }

func newTestService(sites *fakeSiteRepo, employees *fakeEmployeeRepo) *SiteServiceImpl {
	return &SiteServiceImpl{
		SiteRepository: sites,
		employeeRepo:   employees,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testFixtures() (*fakeSiteRepo, *fakeEmployeeRepo) {
	sites := newFakeSiteRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e-1": {ID: "e-1", FirstName: "Siti", LastName: "Aminah", Email: "siti@example.com"},
	}}
	return sites, employees
}

func TestCreateSite(t *testing.T) {
	sites, employees := testFixtures()
	svc := newTestService(sites, employees)

	manager := "e-1"
	resp, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:             "Menara Sudirman",
		Location:         "Jakarta Selatan",
		ClientName:       "PT Bangun Jaya",
		StartDate:        "2026-01-15",
		ExpectedEndDate:  "2027-06-30",
		Status:           "IN_PROGRESS",
		Budget:           "12500000000",
		ProjectManagerID: &manager,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Menara Sudirman", resp.Name)
	assert.Equal(t, "IN_PROGRESS", resp.Status)
	assert.Equal(t, "12500000000", resp.Budget)
	require.NotNil(t, resp.ProjectManagerID)
	assert.Equal(t, "e-1", *resp.ProjectManagerID)
	assert.Len(t, sites.sites, 1)
}

func TestCreateSiteUnknownManager(t *testing.T) {
	sites, employees := testFixtures()
	svc := newTestService(sites, employees)

	manager := "nobody"
	_, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:             "Gudang Cikarang",
		Location:         "Bekasi",
		ClientName:       "PT Logistik Prima",
		StartDate:        "2026-02-01",
		ExpectedEndDate:  "2026-08-31",
		Status:           "PLANNING",
		Budget:           "3000000000",
		ProjectManagerID: &manager,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, sites.sites)
}

func TestCreateSiteInvalidStatus(t *testing.T) {
	sites, employees := testFixtures()
	svc := newTestService(sites, employees)

	_, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:            "Gudang Cikarang",
		Location:        "Bekasi",
		ClientName:      "PT Logistik Prima",
		StartDate:       "2026-02-01",
		ExpectedEndDate: "2026-08-31",
		Status:          "DEMOLISHED",
		Budget:          "3000000000",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestUpdateSiteNotFound(t *testing.T) {
	sites, employees := testFixtures()
	svc := newTestService(sites, employees)

	name := "Renamed"
	_, err := svc.Update(context.Background(), site.UpdateSiteRequest{ID: "missing", Name: &name})
	assert.ErrorIs(t, err, site.ErrSiteNotFound)
}

func TestUpdateSiteProgressAndStatus(t *testing.T) {
	sites, employees := testFixtures()
	svc := newTestService(sites, employees)

	created, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:            "Menara Sudirman",
		Location:        "Jakarta Selatan",
		ClientName:      "PT Bangun Jaya",
		StartDate:       "2026-01-15",
		ExpectedEndDate: "2027-06-30",
		Status:          "IN_PROGRESS",
		Budget:          "12500000000",
	})
	require.NoError(t, err)

	status := "COMPLETED"
	progress := 100
	actualEnd := "2027-05-20"
	resp, err := svc.Update(context.Background(), site.UpdateSiteRequest{
		ID:            created.ID,
		Status:        &status,
		Progress:      &progress,
		ActualEndDate: &actualEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, 100, resp.Progress)
	require.NotNil(t, resp.ActualEndDate)
	assert.Equal(t, "2027-05-20", *resp.ActualEndDate)
}

func TestDeleteSiteThenGet(t *testing.T) {
	sites, employees := testFixtures()
	svc := newTestService(sites, employees)

	created, err := svc.Create(context.Background(), site.CreateSiteRequest{
		Name:            "Gudang Cikarang",
		Location:        "Bekasi",
		ClientName:      "PT Logistik Prima",
		StartDate:       "2026-02-01",
		ExpectedEndDate: "2026-08-31",
		Status:          "PLANNING",
		Budget:          "3000000000",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, site.ErrSiteNotFound)
}

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type fakeTenantRepo struct {
	repositories.TenantRepository
	byID map[uuid.UUID]*models.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	return f.byID[id], nil
}

type fakeLeaseRepo struct {
	repositories.LeaseRepository
	byID     map[uuid.UUID]*models.Lease
	created  []*models.Lease
	upcoming []repositories.UpcomingLease

	expired     int64
	windowFrom  time.Time
	windowUntil time.Time
}

func (f *fakeLeaseRepo) Create(_ context.Context, l *models.Lease) error {
	f.byID[l.ID] = l
	f.created = append(f.created, l)
	return nil
}

func (f *fakeLeaseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Lease, error) {
	return f.byID[id], nil
}

func (f *fakeLeaseRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, l := range f.byID {
		if l.Status == models.LeaseStatusActive && l.EndDate.Before(now) {
			l.Status = models.LeaseStatusExpired
			n++
		}
	}
	f.expired += n
	return n, nil
}

func (f *fakeLeaseRepo) ListUpcomingDue(_ context.Context, now, until time.Time) ([]repositories.UpcomingLease, error) {
	f.windowFrom = now
	f.windowUntil = until
	return f.upcoming, nil
}

func (f *fakeLocalRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Local, error) {
	return f.locals[id], nil
}

type leaseFixture struct {
	leaseRepo  *fakeLeaseRepo
	tenantRepo *fakeTenantRepo
	localRepo  *fakeLocalRepo
	propRepo   *fakePropRepo
	svc        LeaseService

	tenant *models.Tenant
	local  *models.Local
}

func newLeaseFixture() *leaseFixture {
	fx := &leaseFixture{
		leaseRepo:  &fakeLeaseRepo{byID: map[uuid.UUID]*models.Lease{}},
		tenantRepo: &fakeTenantRepo{byID: map[uuid.UUID]*models.Tenant{}},
		localRepo:  &fakeLocalRepo{locals: map[uuid.UUID]*models.Local{}},
		propRepo:   &fakePropRepo{byID: map[uuid.UUID]*models.Property{}},
	}
	fx.svc = NewLeaseService(fx.leaseRepo, fx.tenantRepo, fx.localRepo, fx.propRepo)

	p := &models.Property{ID: uuid.New(), Name: "Tower"}
	fx.propRepo.byID[p.ID] = p
	fx.local = &models.Local{ID: uuid.New(), PropertyID: p.ID, Status: models.LocalStatusAvailable}
	fx.localRepo.locals[fx.local.ID] = fx.local
	fx.tenant = &models.Tenant{ID: uuid.New(), FullName: "Jane Doe"}
	fx.tenantRepo.byID[fx.tenant.ID] = fx.tenant
	return fx
}

func TestCreateLeaseDerivesReference(t *testing.T) {
	fx := newLeaseFixture()
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	lease, err := fx.svc.Create(context.Background(), admin, dtos.CreateLeaseRequest{
		TenantID:    fx.tenant.ID,
		LocalID:     fx.local.ID,
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		LeaseAmount: 1500,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(lease.Reference, "LEASE-JANE-DOE-"), lease.Reference)
	assert.Equal(t, models.LeaseStatusActive, lease.Status)
	assert.True(t, lease.EndDate.After(lease.StartDate))
}

func TestCreateLeaseRejectsInvertedDates(t *testing.T) {
	fx := newLeaseFixture()
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	_, err := fx.svc.Create(context.Background(), admin, dtos.CreateLeaseRequest{
		TenantID:    fx.tenant.ID,
		LocalID:     fx.local.ID,
		StartDate:   "2026-12-31",
		EndDate:     "2026-01-01",
		LeaseAmount: 1500,
	})
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestCreateLeaseRejectsMalformedDate(t *testing.T) {
	fx := newLeaseFixture()
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	_, err := fx.svc.Create(context.Background(), admin, dtos.CreateLeaseRequest{
		TenantID:    fx.tenant.ID,
		LocalID:     fx.local.ID,
		StartDate:   "01/01/2026",
		EndDate:     "2026-12-31",
		LeaseAmount: 1500,
	})
	assert.Error(t, err)
}

func TestCreateLeaseUnknownTenantNotFound(t *testing.T) {
	fx := newLeaseFixture()
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	_, err := fx.svc.Create(context.Background(), admin, dtos.CreateLeaseRequest{
		TenantID:    uuid.New(),
		LocalID:     fx.local.ID,
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		LeaseAmount: 1500,
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestExpireDueIsIdempotent(t *testing.T) {
	fx := newLeaseFixture()

	past := time.Now().AddDate(0, -1, 0)
	lease := &models.Lease{
		ID:        uuid.New(),
		Status:    models.LeaseStatusActive,
		StartDate: past.AddDate(-1, 0, 0),
		EndDate:   past,
	}
	fx.leaseRepo.byID[lease.ID] = lease

	n, err := fx.svc.ExpireDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, models.LeaseStatusExpired, lease.Status)

	n, err = fx.svc.ExpireDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetLeaseScopesManagers(t *testing.T) {
	fx := newLeaseFixture()

	lease := &models.Lease{
		ID:        uuid.New(),
		LocalID:   fx.local.ID,
		Status:    models.LeaseStatusActive,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(1, 0, 0),
	}
	fx.leaseRepo.byID[lease.ID] = lease

	stranger := Actor{ID: uuid.New(), Role: models.RoleManager}
	_, err := fx.svc.Get(context.Background(), stranger, lease.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	got, err := fx.svc.Get(context.Background(), admin, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, lease.ID, got.ID)
}

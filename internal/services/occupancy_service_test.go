package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
)

type fakeFloorRepo struct {
	repositories.FloorRepository
	floors []*models.Floor
	byID   map[uuid.UUID]*models.Floor

	updateErr        error
	lastManagerScope *uuid.UUID
}

func (f *fakeFloorRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Floor, error) {
	return f.byID[id], nil
}

func (f *fakeFloorRepo) ListVisible(_ context.Context, managerID *uuid.UUID) ([]*models.Floor, error) {
	f.lastManagerScope = managerID
	return f.floors, nil
}

type fakeLocalRepo struct {
	repositories.LocalRepository
	counts map[uuid.UUID]repositories.StatusCounts
	locals map[uuid.UUID]*models.Local
}

func (f *fakeLocalRepo) CountByFloorID(_ context.Context, floorID uuid.UUID) (repositories.StatusCounts, error) {
	return f.counts[floorID], nil
}

type fakePropRepo struct {
	repositories.PropertyRepository
	byID          map[uuid.UUID]*models.Property
	createdFloors []*models.Floor
}

func (f *fakePropRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	return f.byID[id], nil
}

func newOccupancyFixture() (*fakeFloorRepo, *fakeLocalRepo, *fakePropRepo, OccupancyService) {
	floorRepo := &fakeFloorRepo{byID: map[uuid.UUID]*models.Floor{}}
	localRepo := &fakeLocalRepo{counts: map[uuid.UUID]repositories.StatusCounts{}}
	propRepo := &fakePropRepo{byID: map[uuid.UUID]*models.Property{}}
	svc := NewOccupancyService(floorRepo, localRepo, propRepo)
	return floorRepo, localRepo, propRepo, svc
}

func addFloor(floorRepo *fakeFloorRepo, propRepo *fakePropRepo, localRepo *fakeLocalRepo, managerID *uuid.UUID, c repositories.StatusCounts) *models.Floor {
	p := &models.Property{ID: uuid.New(), ManagerID: managerID, Name: "Test"}
	propRepo.byID[p.ID] = p
	f := &models.Floor{ID: uuid.New(), PropertyID: p.ID, Name: "Ground Floor", Level: 0}
	floorRepo.byID[f.ID] = f
	floorRepo.floors = append(floorRepo.floors, f)
	localRepo.counts[f.ID] = c
	return f
}

func TestFloorOccupancyRate(t *testing.T) {
	floorRepo, localRepo, propRepo, svc := newOccupancyFixture()
	f := addFloor(floorRepo, propRepo, localRepo, nil, repositories.StatusCounts{
		Total: 3, Occupied: 1, Available: 1, Maintenance: 1,
	})

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	occ, err := svc.FloorOccupancy(context.Background(), admin, f.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, occ.TotalLocals)
	assert.Equal(t, occ.TotalLocals, occ.Occupied+occ.Available+occ.Maintenance)
	assert.InDelta(t, 33.3, occ.OccupancyRate, 0.001)
}

func TestFloorOccupancyEmptyFloorIsZero(t *testing.T) {
	floorRepo, localRepo, propRepo, svc := newOccupancyFixture()
	f := addFloor(floorRepo, propRepo, localRepo, nil, repositories.StatusCounts{})

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	occ, err := svc.FloorOccupancy(context.Background(), admin, f.ID)
	require.NoError(t, err)

	assert.Zero(t, occ.TotalLocals)
	assert.Zero(t, occ.OccupancyRate)
}

func TestFloorOccupancyUnknownFloorNotFound(t *testing.T) {
	_, _, _, svc := newOccupancyFixture()

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	_, err := svc.FloorOccupancy(context.Background(), admin, uuid.New())
	assert.Error(t, err)
}

func TestFloorOccupancyManagerOutOfScopeReadsNotFound(t *testing.T) {
	floorRepo, localRepo, propRepo, svc := newOccupancyFixture()
	otherManager := uuid.New()
	f := addFloor(floorRepo, propRepo, localRepo, &otherManager, repositories.StatusCounts{Total: 1, Occupied: 1})

	manager := Actor{ID: uuid.New(), Role: models.RoleManager}
	_, err := svc.FloorOccupancy(context.Background(), manager, f.ID)
	assert.Error(t, err)
}

func TestReportAggregatesAndRounds(t *testing.T) {
	floorRepo, localRepo, propRepo, svc := newOccupancyFixture()
	addFloor(floorRepo, propRepo, localRepo, nil, repositories.StatusCounts{Total: 4, Occupied: 3, Available: 1})
	addFloor(floorRepo, propRepo, localRepo, nil, repositories.StatusCounts{Total: 2, Occupied: 0, Available: 1, Maintenance: 1})

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	report, err := svc.Report(context.Background(), admin)
	require.NoError(t, err)

	assert.Len(t, report.Floors, 2)
	assert.Equal(t, 6, report.TotalLocals)
	assert.Equal(t, 3, report.Occupied)
	assert.Equal(t, report.TotalLocals, report.Occupied+report.Available+report.Maintenance)
	assert.InDelta(t, 50.0, report.OccupancyRate, 0.001)
	assert.InDelta(t, 75.0, report.Floors[0].OccupancyRate, 0.001)
	assert.Zero(t, report.Floors[1].OccupancyRate)
}

func TestReportScopesManagersButNotAdmins(t *testing.T) {
	floorRepo, _, _, svc := newOccupancyFixture()

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	_, err := svc.Report(context.Background(), admin)
	require.NoError(t, err)
	assert.Nil(t, floorRepo.lastManagerScope)

	manager := Actor{ID: uuid.New(), Role: models.RoleManager}
	_, err = svc.Report(context.Background(), manager)
	require.NoError(t, err)
	require.NotNil(t, floorRepo.lastManagerScope)
	assert.Equal(t, manager.ID, *floorRepo.lastManagerScope)
}

func TestOccupancyRateRounding(t *testing.T) {
	assert.InDelta(t, 66.7, occupancyRate(2, 3), 0.001)
	assert.InDelta(t, 100.0, occupancyRate(5, 5), 0.001)
	assert.Zero(t, occupancyRate(0, 0))
	assert.Zero(t, occupancyRate(0, 10))
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

func (f *fakePropRepo) CreateWithFloors(_ context.Context, p *models.Property, floors []*models.Floor) error {
	f.byID[p.ID] = p
	f.createdFloors = floors
	return nil
}

func (f *fakePropRepo) List(_ context.Context, filter repositories.PropertyFilter, _, _ int) ([]*models.Property, int64, error) {
	var out []*models.Property
	for _, p := range f.byID {
		if filter.ManagerID != nil && (p.ManagerID == nil || *p.ManagerID != *filter.ManagerID) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	repositories.UserRepository
	byID map[uuid.UUID]*models.User

	lastRoleFilter *models.RoleType
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return f.byID[id], nil
}

func TestBuildFloorsWithBasement(t *testing.T) {
	p := &models.Property{ID: uuid.New(), NumberOfFloors: 3, HasBasement: true}
	floors := BuildFloors(p)

	require.Len(t, floors, 4)
	assert.Equal(t, "Basement", floors[0].Name)
	assert.Equal(t, int16(-1), floors[0].Level)
	assert.Equal(t, "Ground Floor", floors[1].Name)
	assert.Equal(t, int16(0), floors[1].Level)
	assert.Equal(t, "Floor 2", floors[3].Name)
	assert.Equal(t, int16(2), floors[3].Level)
	for _, f := range floors {
		assert.Equal(t, p.ID, f.PropertyID)
	}
}

func TestBuildFloorsWithoutBasement(t *testing.T) {
	p := &models.Property{ID: uuid.New(), NumberOfFloors: 1}
	floors := BuildFloors(p)

	require.Len(t, floors, 1)
	assert.Equal(t, "Ground Floor", floors[0].Name)
}

func newPropertyFixture() (*fakePropRepo, *fakeUserRepo, PropertyService) {
	propRepo := &fakePropRepo{byID: map[uuid.UUID]*models.Property{}}
	userRepo := &fakeUserRepo{byID: map[uuid.UUID]*models.User{}}
	svc := NewPropertyService(propRepo, &fakeFloorRepo{byID: map[uuid.UUID]*models.Floor{}}, &fakeLocalRepo{}, userRepo)
	return propRepo, userRepo, svc
}

func TestCreatePropertyIsAdminOnly(t *testing.T) {
	_, _, svc := newPropertyFixture()
	req := dtos.CreatePropertyRequest{Name: "Tower", Location: "Douala", NumberOfFloors: 2}

	for _, role := range []models.RoleType{models.RoleManager, models.RoleEmployee} {
		_, _, err := svc.Create(context.Background(), Actor{ID: uuid.New(), Role: role}, req)
		assert.ErrorIs(t, err, utils.ErrForbidden)
	}
}

func TestCreatePropertyBuildsFloorRows(t *testing.T) {
	propRepo, _, svc := newPropertyFixture()
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	p, floors, err := svc.Create(context.Background(), admin, dtos.CreatePropertyRequest{
		Name:           "Tower",
		Location:       "Douala",
		NumberOfFloors: 2,
		HasBasement:    true,
	})
	require.NoError(t, err)

	assert.Len(t, floors, 3)
	assert.Equal(t, floors, propRepo.createdFloors)
	assert.Equal(t, int16(2), p.NumberOfFloors)
}

func TestCreatePropertyRejectsNonManagerAssignee(t *testing.T) {
	_, userRepo, svc := newPropertyFixture()
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	employee := &models.User{ID: uuid.New(), Role: models.RoleEmployee, IsActive: true}
	userRepo.byID[employee.ID] = employee

	_, _, err := svc.Create(context.Background(), admin, dtos.CreatePropertyRequest{
		Name:           "Tower",
		Location:       "Douala",
		NumberOfFloors: 1,
		ManagerID:      &employee.ID,
	})
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestGetPropertyHidesOtherManagersProperties(t *testing.T) {
	propRepo, _, svc := newPropertyFixture()
	owner := uuid.New()
	p := &models.Property{ID: uuid.New(), ManagerID: &owner, Name: "Tower"}
	propRepo.byID[p.ID] = p

	stranger := Actor{ID: uuid.New(), Role: models.RoleManager}
	_, err := svc.Get(context.Background(), stranger, p.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	assigned := Actor{ID: owner, Role: models.RoleManager}
	got, err := svc.Get(context.Background(), assigned, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	employee := Actor{ID: uuid.New(), Role: models.RoleEmployee}
	_, err = svc.Get(context.Background(), employee, p.ID)
	assert.NoError(t, err)
}

func TestDeletePropertyIsAdminOnly(t *testing.T) {
	propRepo, _, svc := newPropertyFixture()
	p := &models.Property{ID: uuid.New(), Name: "Tower"}
	propRepo.byID[p.ID] = p

	manager := Actor{ID: uuid.New(), Role: models.RoleManager}
	assert.ErrorIs(t, svc.Delete(context.Background(), manager, p.ID), utils.ErrForbidden)
}

package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/utils"
)

func (f *fakeFloorRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Floor) error) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	fl, ok := f.byID[id]
	if !ok {
		return utils.ErrNotFound
	}
	return mutate(fl)
}

type floorFixture struct {
	floorRepo *fakeFloorRepo
	localRepo *fakeLocalRepo
	propRepo  *fakePropRepo
	svc       FloorService

	floor *models.Floor
}

func newFloorFixture() *floorFixture {
	fx := &floorFixture{
		floorRepo: &fakeFloorRepo{byID: map[uuid.UUID]*models.Floor{}},
		localRepo: &fakeLocalRepo{locals: map[uuid.UUID]*models.Local{}},
		propRepo:  &fakePropRepo{byID: map[uuid.UUID]*models.Property{}},
	}
	fx.svc = NewFloorService(fx.floorRepo, fx.localRepo, fx.propRepo)

	p := &models.Property{ID: uuid.New(), Name: "Tower"}
	fx.propRepo.byID[p.ID] = p
	fx.floor = &models.Floor{ID: uuid.New(), PropertyID: p.ID, Name: "Ground Floor", Level: 0}
	fx.floorRepo.byID[fx.floor.ID] = fx.floor
	return fx
}

func TestUpdateFloorRenames(t *testing.T) {
	fx := newFloorFixture()
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	name := "Lobby"
	f, err := fx.svc.Update(context.Background(), admin, fx.floor.ID, dtos.UpdateFloorRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Lobby", f.Name)
}

func TestUpdateFloorDuplicateLevelIsConflict(t *testing.T) {
	fx := newFloorFixture()
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	fx.floorRepo.updateErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_floors_property_level"}

	level := int16(0)
	_, err := fx.svc.Update(context.Background(), admin, fx.floor.ID, dtos.UpdateFloorRequest{Level: &level})
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	assert.Equal(t, utils.ErrCodeConflict, appErr.Code)
}

func TestUpdateFloorForbiddenForEmployees(t *testing.T) {
	fx := newFloorFixture()
	employee := Actor{ID: uuid.New(), Role: models.RoleEmployee}

	name := "Lobby"
	_, err := fx.svc.Update(context.Background(), employee, fx.floor.ID, dtos.UpdateFloorRequest{Name: &name})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestListFloorLocalsScopesManagers(t *testing.T) {
	fx := newFloorFixture()
	owner := uuid.New()
	fx.propRepo.byID[fx.floor.PropertyID].ManagerID = &owner

	stranger := Actor{ID: uuid.New(), Role: models.RoleManager}
	_, _, err := fx.svc.ListLocals(context.Background(), stranger, fx.floor.ID, utils.PageQuery{Page: 1, Limit: 20})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

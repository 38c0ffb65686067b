package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/utils"
)

func (f *fakeLocalRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Local) error) error {
	l, ok := f.locals[id]
	if !ok {
		return utils.ErrNotFound
	}
	return mutate(l)
}

func (f *fakeLocalRepo) GetByIDAny(_ context.Context, id uuid.UUID) (*models.Local, error) {
	return f.locals[id], nil
}

func (f *fakeLocalRepo) Restore(_ context.Context, id uuid.UUID) error {
	if l, ok := f.locals[id]; ok {
		l.DeletedAt = nil
	}
	return nil
}

type localFixture struct {
	localRepo *fakeLocalRepo
	floorRepo *fakeFloorRepo
	propRepo  *fakePropRepo
	svc       LocalService

	property *models.Property
	local    *models.Local
}

func newLocalFixture(managerID *uuid.UUID) *localFixture {
	fx := &localFixture{
		localRepo: &fakeLocalRepo{locals: map[uuid.UUID]*models.Local{}},
		floorRepo: &fakeFloorRepo{byID: map[uuid.UUID]*models.Floor{}},
		propRepo:  &fakePropRepo{byID: map[uuid.UUID]*models.Property{}},
	}
	fx.svc = NewLocalService(fx.localRepo, fx.floorRepo, fx.propRepo)

	fx.property = &models.Property{ID: uuid.New(), ManagerID: managerID, Name: "Tower"}
	fx.propRepo.byID[fx.property.ID] = fx.property

	floor := &models.Floor{ID: uuid.New(), PropertyID: fx.property.ID, Name: "Ground Floor"}
	fx.floorRepo.byID[floor.ID] = floor

	fx.local = &models.Local{
		ID:            uuid.New(),
		ReferenceCode: "A-101",
		Status:        models.LocalStatusAvailable,
		PropertyID:    fx.property.ID,
		FloorID:       floor.ID,
	}
	fx.localRepo.locals[fx.local.ID] = fx.local
	return fx
}

func TestEmployeeCanFlipLocalStatus(t *testing.T) {
	fx := newLocalFixture(nil)
	employee := Actor{ID: uuid.New(), Role: models.RoleEmployee}

	l, err := fx.svc.UpdateStatus(context.Background(), employee, fx.local.ID, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, models.LocalStatusMaintenance, l.Status)
}

func TestEmployeeCannotEditLocalStructure(t *testing.T) {
	fx := newLocalFixture(nil)
	employee := Actor{ID: uuid.New(), Role: models.RoleEmployee}

	ref := "B-202"
	_, err := fx.svc.Update(context.Background(), employee, fx.local.ID, dtos.UpdateLocalRequest{ReferenceCode: &ref})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	assert.ErrorIs(t, fx.svc.Delete(context.Background(), employee, fx.local.ID), utils.ErrForbidden)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	fx := newLocalFixture(nil)
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	_, err := fx.svc.UpdateStatus(context.Background(), admin, fx.local.ID, "flooded")
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestUpdateStatusScopesManagers(t *testing.T) {
	owner := uuid.New()
	fx := newLocalFixture(&owner)

	stranger := Actor{ID: uuid.New(), Role: models.RoleManager}
	_, err := fx.svc.UpdateStatus(context.Background(), stranger, fx.local.ID, "occupied")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	assigned := Actor{ID: owner, Role: models.RoleManager}
	l, err := fx.svc.UpdateStatus(context.Background(), assigned, fx.local.ID, "occupied")
	require.NoError(t, err)
	assert.Equal(t, models.LocalStatusOccupied, l.Status)
}

func TestMoveLocalMustStayInProperty(t *testing.T) {
	fx := newLocalFixture(nil)
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	otherProp := &models.Property{ID: uuid.New(), Name: "Annex"}
	fx.propRepo.byID[otherProp.ID] = otherProp
	foreignFloor := &models.Floor{ID: uuid.New(), PropertyID: otherProp.ID, Name: "Ground Floor"}
	fx.floorRepo.byID[foreignFloor.ID] = foreignFloor

	_, err := fx.svc.Update(context.Background(), admin, fx.local.ID, dtos.UpdateLocalRequest{FloorID: &foreignFloor.ID})
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestRestoreLocalIsAdminOnly(t *testing.T) {
	fx := newLocalFixture(nil)
	deleted := time.Now()
	fx.local.DeletedAt = &deleted

	manager := Actor{ID: uuid.New(), Role: models.RoleManager}
	_, err := fx.svc.Restore(context.Background(), manager, fx.local.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	l, err := fx.svc.Restore(context.Background(), admin, fx.local.ID)
	require.NoError(t, err)
	assert.Nil(t, l.DeletedAt)
}

func TestRestoreLocalNoOpWhenNotDeleted(t *testing.T) {
	fx := newLocalFixture(nil)
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	l, err := fx.svc.Restore(context.Background(), admin, fx.local.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.local.ID, l.ID)
}

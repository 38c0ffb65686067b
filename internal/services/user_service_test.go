package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/utils"
)

func (f *fakeUserRepo) List(_ context.Context, role *models.RoleType, _, _ int) ([]*models.User, int64, error) {
	f.lastRoleFilter = role
	var out []*models.User
	for _, u := range f.byID {
		if role != nil && u.Role != *role {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func TestListUsersPassesRoleFilterToRepo(t *testing.T) {
	userRepo := &fakeUserRepo{byID: map[uuid.UUID]*models.User{}}
	svc := NewUserService(userRepo, &fakePropRepo{})

	mgr := &models.User{ID: uuid.New(), Role: models.RoleManager, IsActive: true}
	userRepo.byID[mgr.ID] = mgr
	emp := &models.User{ID: uuid.New(), Role: models.RoleEmployee, IsActive: true}
	userRepo.byID[emp.ID] = emp

	role := "manager"
	users, total, err := svc.List(context.Background(), &role, utils.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)

	require.NotNil(t, userRepo.lastRoleFilter)
	assert.Equal(t, models.RoleManager, *userRepo.lastRoleFilter)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, mgr.ID, users[0].ID)
}

func TestListUsersUnfiltered(t *testing.T) {
	userRepo := &fakeUserRepo{byID: map[uuid.UUID]*models.User{}}
	svc := NewUserService(userRepo, &fakePropRepo{})
	userRepo.byID[uuid.New()] = &models.User{ID: uuid.New(), Role: models.RoleAdmin}

	_, _, err := svc.List(context.Background(), nil, utils.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Nil(t, userRepo.lastRoleFilter)
}

func TestListUsersRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{byID: map[uuid.UUID]*models.User{}}, &fakePropRepo{})

	role := "superuser"
	_, _, err := svc.List(context.Background(), &role, utils.PageQuery{Page: 1, Limit: 20})
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

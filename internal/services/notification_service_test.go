package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
)

type fakeNotifRepo struct {
	repositories.NotificationRepository
	unreadByLease map[uuid.UUID]bool
	created       []*models.Notification
	createErr     error
}

func (f *fakeNotifRepo) HasUnreadForLease(_ context.Context, leaseID uuid.UUID, _ models.NotificationType) (bool, error) {
	return f.unreadByLease[leaseID], nil
}

func (f *fakeNotifRepo) Create(_ context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	f.unreadByLease[*n.LeaseID] = true
	return nil
}

func (f *fakeUserRepo) ListAdmins(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.byID {
		if u.Role == models.RoleAdmin && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) Send(toEmail, _, _ string) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}

type notifyFixture struct {
	notifRepo *fakeNotifRepo
	leaseRepo *fakeLeaseRepo
	localRepo *fakeLocalRepo
	propRepo  *fakePropRepo
	userRepo  *fakeUserRepo
	mailer    *recordingMailer
	svc       NotificationService
}

func newNotifyFixture() *notifyFixture {
	fx := &notifyFixture{
		notifRepo: &fakeNotifRepo{unreadByLease: map[uuid.UUID]bool{}},
		leaseRepo: &fakeLeaseRepo{byID: map[uuid.UUID]*models.Lease{}},
		localRepo: &fakeLocalRepo{locals: map[uuid.UUID]*models.Local{}},
		propRepo:  &fakePropRepo{byID: map[uuid.UUID]*models.Property{}},
		userRepo:  &fakeUserRepo{byID: map[uuid.UUID]*models.User{}},
		mailer:    &recordingMailer{},
	}
	fx.svc = NewNotificationService(fx.notifRepo, fx.leaseRepo, fx.localRepo, fx.propRepo, fx.userRepo, fx.mailer)
	return fx
}

// addDueLease wires a lease on a property and returns it. A nil
// managerID leaves the property unassigned.
func (fx *notifyFixture) addDueLease(managerID *uuid.UUID) *models.Lease {
	p := &models.Property{ID: uuid.New(), ManagerID: managerID, Name: "Tower"}
	fx.propRepo.byID[p.ID] = p

	local := &models.Local{ID: uuid.New(), PropertyID: p.ID}
	fx.localRepo.locals[local.ID] = local

	lease := &models.Lease{
		ID:      uuid.New(),
		LocalID: local.ID,
		Status:  models.LeaseStatusActive,
	}
	fx.leaseRepo.byID[lease.ID] = lease
	fx.leaseRepo.upcoming = append(fx.leaseRepo.upcoming, repositories.UpcomingLease{
		Lease:     lease,
		PeriodEnd: time.Now().AddDate(0, 0, 20),
	})
	return lease
}

func (fx *notifyFixture) addUser(role models.RoleType, active bool) *models.User {
	u := &models.User{ID: uuid.New(), Role: role, IsActive: active, Email: uuid.NewString() + "@example.com"}
	fx.userRepo.byID[u.ID] = u
	return u
}

func TestNotifyUpcomingLooksOneMonthAhead(t *testing.T) {
	fx := newNotifyFixture()
	mgr := fx.addUser(models.RoleManager, true)
	fx.addDueLease(&mgr.ID)

	n, err := fx.svc.NotifyUpcomingPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	wantUntil := fx.leaseRepo.windowFrom.AddDate(0, 1, 0)
	assert.WithinDuration(t, wantUntil, fx.leaseRepo.windowUntil, time.Second)
}

func TestNotifyUpcomingTargetsManager(t *testing.T) {
	fx := newNotifyFixture()
	mgr := fx.addUser(models.RoleManager, true)
	fx.addUser(models.RoleAdmin, true)
	lease := fx.addDueLease(&mgr.ID)

	n, err := fx.svc.NotifyUpcomingPayments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	require.Len(t, fx.notifRepo.created, 1)
	got := fx.notifRepo.created[0]
	assert.Equal(t, mgr.ID, got.UserID)
	assert.Equal(t, models.NotificationUpcomingPayment, got.Type)
	require.NotNil(t, got.LeaseID)
	assert.Equal(t, lease.ID, *got.LeaseID)
	assert.Equal(t, []string{mgr.Email}, fx.mailer.sent)
}

func TestNotifyUpcomingFallsBackToAdmins(t *testing.T) {
	fx := newNotifyFixture()
	admin1 := fx.addUser(models.RoleAdmin, true)
	admin2 := fx.addUser(models.RoleAdmin, true)
	fx.addUser(models.RoleAdmin, false)
	fx.addDueLease(nil)

	n, err := fx.svc.NotifyUpcomingPayments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	seen := map[uuid.UUID]bool{}
	for _, c := range fx.notifRepo.created {
		seen[c.UserID] = true
	}
	assert.True(t, seen[admin1.ID])
	assert.True(t, seen[admin2.ID])
}

func TestNotifyUpcomingInactiveManagerFallsBack(t *testing.T) {
	fx := newNotifyFixture()
	mgr := fx.addUser(models.RoleManager, false)
	admin := fx.addUser(models.RoleAdmin, true)
	fx.addDueLease(&mgr.ID)

	n, err := fx.svc.NotifyUpcomingPayments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	require.Len(t, fx.notifRepo.created, 1)
	assert.Equal(t, admin.ID, fx.notifRepo.created[0].UserID)
}

func TestNotifyUpcomingSkipsLeasesWithUnreadReminder(t *testing.T) {
	fx := newNotifyFixture()
	mgr := fx.addUser(models.RoleManager, true)
	lease := fx.addDueLease(&mgr.ID)
	fx.notifRepo.unreadByLease[lease.ID] = true

	n, err := fx.svc.NotifyUpcomingPayments(context.Background())
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Empty(t, fx.notifRepo.created)
}

func TestNotifyUpcomingSecondRunIsQuiet(t *testing.T) {
	fx := newNotifyFixture()
	mgr := fx.addUser(models.RoleManager, true)
	fx.addDueLease(&mgr.ID)

	n, err := fx.svc.NotifyUpcomingPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = fx.svc.NotifyUpcomingPayments(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNotifyUpcomingReportsFirstCreateError(t *testing.T) {
	fx := newNotifyFixture()
	mgr := fx.addUser(models.RoleManager, true)
	fx.addDueLease(&mgr.ID)

	boom := errors.New("insert failed")
	fx.notifRepo.createErr = boom

	n, err := fx.svc.NotifyUpcomingPayments(context.Background())
	assert.Zero(t, n)
	assert.ErrorIs(t, err, boom)
}

func TestNotifyUpcomingMailFailureIsNonFatal(t *testing.T) {
	fx := newNotifyFixture()
	mgr := fx.addUser(models.RoleManager, true)
	fx.addDueLease(&mgr.ID)
	fx.mailer.err = errors.New("sendgrid down")

	n, err := fx.svc.NotifyUpcomingPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

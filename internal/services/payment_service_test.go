package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type fakePaymentRepo struct {
	repositories.PaymentRepository
	byID map[uuid.UUID]*models.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *models.Payment) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	return f.byID[id], nil
}

type fakeModeRepo struct {
	repositories.PaymentModeRepository
	byID map[uuid.UUID]*models.PaymentMode
}

func (f *fakeModeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.PaymentMode, error) {
	return f.byID[id], nil
}

type paymentFixture struct {
	paymentRepo *fakePaymentRepo
	modeRepo    *fakeModeRepo
	svc         PaymentService

	lease *models.Lease
	mode  *models.PaymentMode
}

func newPaymentFixture(requiresProof bool) *paymentFixture {
	fx := &paymentFixture{
		paymentRepo: &fakePaymentRepo{byID: map[uuid.UUID]*models.Payment{}},
		modeRepo:    &fakeModeRepo{byID: map[uuid.UUID]*models.PaymentMode{}},
	}

	leaseRepo := &fakeLeaseRepo{byID: map[uuid.UUID]*models.Lease{}}
	localRepo := &fakeLocalRepo{locals: map[uuid.UUID]*models.Local{}}
	propRepo := &fakePropRepo{byID: map[uuid.UUID]*models.Property{}}
	fx.svc = NewPaymentService(fx.paymentRepo, fx.modeRepo, leaseRepo, localRepo, propRepo)

	p := &models.Property{ID: uuid.New(), Name: "Tower"}
	propRepo.byID[p.ID] = p
	local := &models.Local{ID: uuid.New(), PropertyID: p.ID}
	localRepo.locals[local.ID] = local
	fx.lease = &models.Lease{ID: uuid.New(), LocalID: local.ID, Status: models.LeaseStatusActive}
	leaseRepo.byID[fx.lease.ID] = fx.lease

	fx.mode = &models.PaymentMode{
		ID:            uuid.New(),
		Code:          "bank_transfer",
		DisplayName:   "Bank Transfer",
		RequiresProof: requiresProof,
	}
	fx.modeRepo.byID[fx.mode.ID] = fx.mode
	return fx
}

func (fx *paymentFixture) createReq() dtos.CreatePaymentRequest {
	return dtos.CreatePaymentRequest{
		LeaseID:       fx.lease.ID,
		PaymentModeID: fx.mode.ID,
		Amount:        1500,
		PeriodStart:   "2026-01-01",
		PeriodEnd:     "2026-02-01",
		InvoiceNumber: "INV-001",
	}
}

func warnEntries(hook *logtest.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}

func TestCreatePaymentWarnsWhenProofMissing(t *testing.T) {
	fx := newPaymentFixture(true)
	hook := logtest.NewLocal(utils.Logger)
	t.Cleanup(hook.Reset)

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	p, err := fx.svc.Create(context.Background(), admin, fx.createReq(), false)
	require.NoError(t, err)

	assert.Nil(t, p.ProofURL)
	assert.Equal(t, 1, warnEntries(hook))
}

func TestCreatePaymentStaysQuietWhenProofAttached(t *testing.T) {
	fx := newPaymentFixture(true)
	hook := logtest.NewLocal(utils.Logger)
	t.Cleanup(hook.Reset)

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	_, err := fx.svc.Create(context.Background(), admin, fx.createReq(), true)
	require.NoError(t, err)

	assert.Zero(t, warnEntries(hook))
}

func TestCreatePaymentNoWarnWithoutProofRequirement(t *testing.T) {
	fx := newPaymentFixture(false)
	hook := logtest.NewLocal(utils.Logger)
	t.Cleanup(hook.Reset)

	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}
	_, err := fx.svc.Create(context.Background(), admin, fx.createReq(), false)
	require.NoError(t, err)

	assert.Zero(t, warnEntries(hook))
}

func TestCreatePaymentRejectsInvertedPeriod(t *testing.T) {
	fx := newPaymentFixture(false)
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	req := fx.createReq()
	req.PeriodStart, req.PeriodEnd = req.PeriodEnd, req.PeriodStart
	_, err := fx.svc.Create(context.Background(), admin, req, false)
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestCreatePaymentScopesManagers(t *testing.T) {
	fx := newPaymentFixture(false)

	stranger := Actor{ID: uuid.New(), Role: models.RoleManager}
	_, err := fx.svc.Create(context.Background(), stranger, fx.createReq(), false)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

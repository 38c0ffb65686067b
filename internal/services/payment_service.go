package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type PaymentService interface {
	// Create records a payment. hasProof says whether a proof file
	// accompanies the request; the file itself is attached afterwards
	// through SetProof once the row exists.
	Create(ctx context.Context, actor Actor, req dtos.CreatePaymentRequest, hasProof bool) (*models.Payment, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context, actor Actor, leaseID *uuid.UUID, page utils.PageQuery) ([]*models.Payment, int64, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdatePaymentRequest) (*models.Payment, error)
	SetProof(ctx context.Context, actor Actor, id uuid.UUID, proofURL string) (*models.Payment, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	modeRepo    repositories.PaymentModeRepository
	leaseRepo   repositories.LeaseRepository
	localRepo   repositories.LocalRepository
	propRepo    repositories.PropertyRepository
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	modeRepo repositories.PaymentModeRepository,
	leaseRepo repositories.LeaseRepository,
	localRepo repositories.LocalRepository,
	propRepo repositories.PropertyRepository,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		modeRepo:    modeRepo,
		leaseRepo:   leaseRepo,
		localRepo:   localRepo,
		propRepo:    propRepo,
	}
}

// leaseScopeCheck verifies the lease exists and sits inside the actor's
// scope, walking lease -> local -> property.
func (s *paymentService) leaseScopeCheck(ctx context.Context, actor Actor, leaseID uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrNotFound
	}
	local, err := s.localRepo.GetByID(ctx, lease.LocalID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, utils.ErrNotFound
	}
	p, err := s.propRepo.GetByID(ctx, local.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || !CanAccessProperty(actor, p) {
		return nil, utils.ErrNotFound
	}
	return lease, nil
}

func parsePeriodDate(field, value string) (time.Time, error) {
	t, err := time.Parse(leaseDateLayout, value)
	if err != nil {
		return time.Time{}, &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("%s must be a YYYY-MM-DD date", field),
		}
	}
	return t, nil
}

func (s *paymentService) Create(ctx context.Context, actor Actor, req dtos.CreatePaymentRequest, hasProof bool) (*models.Payment, error) {
	if _, err := s.leaseScopeCheck(ctx, actor, req.LeaseID); err != nil {
		return nil, err
	}

	mode, err := s.modeRepo.GetByID(ctx, req.PaymentModeID)
	if err != nil {
		return nil, err
	}
	if mode == nil {
		return nil, utils.ErrNotFound
	}
	// Missing proof on a proof-requiring mode is tolerated but logged;
	// the record stays auditable either way.
	if mode.RequiresProof && !hasProof {
		utils.Logger.Warnf("Payment on mode %s recorded without proof", mode.Code)
	}

	start, err := parsePeriodDate("period_start", req.PeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := parsePeriodDate("period_end", req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    "period_end must be after period_start",
		}
	}

	p := &models.Payment{
		ID:            uuid.New(),
		LeaseID:       req.LeaseID,
		PaymentModeID: req.PaymentModeID,
		Amount:        req.Amount,
		PeriodStart:   start,
		PeriodEnd:     end,
		InvoiceNumber: req.InvoiceNumber,
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *paymentService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	if _, err := s.leaseScopeCheck(ctx, actor, p.LeaseID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *paymentService) List(ctx context.Context, actor Actor, leaseID *uuid.UUID, page utils.PageQuery) ([]*models.Payment, int64, error) {
	filter := repositories.PaymentFilter{
		LeaseID:   leaseID,
		ManagerID: actor.ScopeManagerID(),
	}
	return s.paymentRepo.List(ctx, filter, page.Limit, page.Offset())
}

func (s *paymentService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdatePaymentRequest) (*models.Payment, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	start, end := p.PeriodStart, p.PeriodEnd
	if req.PeriodStart != nil {
		if start, err = parsePeriodDate("period_start", *req.PeriodStart); err != nil {
			return nil, err
		}
	}
	if req.PeriodEnd != nil {
		if end, err = parsePeriodDate("period_end", *req.PeriodEnd); err != nil {
			return nil, err
		}
	}
	if !end.After(start) {
		return nil, &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    "period_end must be after period_start",
		}
	}

	if err := s.paymentRepo.UpdateWithRetry(ctx, id, func(stored *models.Payment) error {
		stored.PeriodStart = start
		stored.PeriodEnd = end
		if req.Amount != nil {
			stored.Amount = *req.Amount
		}
		if req.InvoiceNumber != nil {
			stored.InvoiceNumber = *req.InvoiceNumber
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) SetProof(ctx context.Context, actor Actor, id uuid.UUID, proofURL string) (*models.Payment, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.SetProofURL(ctx, id, proofURL); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.paymentRepo.SoftDelete(ctx, id)
}

func (s *paymentService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Payment, error) {
	if !actor.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	p, err := s.paymentRepo.GetByIDAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	if p.DeletedAt == nil {
		return p, nil
	}
	if err := s.paymentRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByID(ctx, id)
}

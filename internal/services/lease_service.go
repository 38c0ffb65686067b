package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

const leaseDateLayout = "2006-01-02"

type LeaseFilterParams struct {
	Status   *string
	TenantID *uuid.UUID
	LocalID  *uuid.UUID
}

type LeaseService interface {
	Create(ctx context.Context, actor Actor, req dtos.CreateLeaseRequest) (*models.Lease, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Lease, error)
	List(ctx context.Context, actor Actor, params LeaseFilterParams, page utils.PageQuery) ([]*models.Lease, int64, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdateLeaseRequest) (*models.Lease, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error

	// ExpireDue marks active leases past their end date as expired and
	// returns how many changed. Running it twice changes nothing more.
	ExpireDue(ctx context.Context) (int64, error)

	// RenderPDF builds the tabular lease report for everything the
	// actor can see.
	RenderPDF(ctx context.Context, actor Actor) ([]byte, error)
}

type leaseService struct {
	leaseRepo  repositories.LeaseRepository
	tenantRepo repositories.TenantRepository
	localRepo  repositories.LocalRepository
	propRepo   repositories.PropertyRepository
}

func NewLeaseService(
	leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.TenantRepository,
	localRepo repositories.LocalRepository,
	propRepo repositories.PropertyRepository,
) LeaseService {
	return &leaseService{
		leaseRepo:  leaseRepo,
		tenantRepo: tenantRepo,
		localRepo:  localRepo,
		propRepo:   propRepo,
	}
}

func parseLeaseDate(field, value string) (time.Time, error) {
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

// leaseReference derives the immutable reference from the tenant name,
// plus a short suffix so a tenant can hold several leases.
func leaseReference(tenantName string) string {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(tenantName), " ", "-"))
	return fmt.Sprintf("LEASE-%s-%s", name, utils.RandomNumericString(4))
}

// scopeCheck verifies the lease's local sits on a property the actor
// can access. Managers outside their scope get not found.
func (s *leaseService) scopeCheck(ctx context.Context, actor Actor, localID uuid.UUID) (*models.Local, error) {
	l, err := s.localRepo.GetByID(ctx, localID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, utils.ErrNotFound
	}
	p, err := s.propRepo.GetByID(ctx, l.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || !CanAccessProperty(actor, p) {
		return nil, utils.ErrNotFound
	}
	return l, nil
}

func (s *leaseService) Create(ctx context.Context, actor Actor, req dtos.CreateLeaseRequest) (*models.Lease, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.ErrNotFound
	}
	if _, err := s.scopeCheck(ctx, actor, req.LocalID); err != nil {
		return nil, err
	}

	start, err := parseLeaseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseLeaseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    "end_date must be after start_date",
		}
	}

	lease := &models.Lease{
		ID:          uuid.New(),
		Reference:   leaseReference(tenant.FullName),
		TenantID:    req.TenantID,
		LocalID:     req.LocalID,
		StartDate:   start,
		EndDate:     end,
		LeaseAmount: req.LeaseAmount,
		Status:      models.LeaseStatusActive,
	}
	if err := s.leaseRepo.Create(ctx, lease); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Created lease %s for tenant %s", lease.Reference, tenant.ID)
	return lease, nil
}

func (s *leaseService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.ErrNotFound
	}
	if _, err := s.scopeCheck(ctx, actor, lease.LocalID); err != nil {
		return nil, err
	}
	return lease, nil
}

func (s *leaseService) List(ctx context.Context, actor Actor, params LeaseFilterParams, page utils.PageQuery) ([]*models.Lease, int64, error) {
	filter := repositories.LeaseFilter{
		TenantID:  params.TenantID,
		LocalID:   params.LocalID,
		ManagerID: actor.ScopeManagerID(),
	}
	if params.Status != nil {
		status, err := models.ParseLeaseStatus(*params.Status)
		if err != nil {
			return nil, 0, &utils.AppError{
				StatusCode: 400,
				Code:       utils.ErrCodeValidation,
				Message:    err.Error(),
			}
		}
		filter.Status = &status
	}
	return s.leaseRepo.List(ctx, filter, page.Limit, page.Offset())
}

func (s *leaseService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdateLeaseRequest) (*models.Lease, error) {
	lease, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	start, end := lease.StartDate, lease.EndDate
	if req.StartDate != nil {
		if start, err = parseLeaseDate("start_date", *req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if end, err = parseLeaseDate("end_date", *req.EndDate); err != nil {
			return nil, err
		}
	}
	if !end.After(start) {
		return nil, &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    "end_date must be after start_date",
		}
	}

	var status *models.LeaseStatusType
	if req.Status != nil {
		parsed, err := models.ParseLeaseStatus(*req.Status)
		if err != nil {
			return nil, &utils.AppError{
				StatusCode: 400,
				Code:       utils.ErrCodeValidation,
				Message:    err.Error(),
			}
		}
		status = &parsed
	}

	if err := s.leaseRepo.UpdateWithRetry(ctx, id, func(stored *models.Lease) error {
		stored.StartDate = start
		stored.EndDate = end
		if req.LeaseAmount != nil {
			stored.LeaseAmount = *req.LeaseAmount
		}
		if status != nil {
			stored.Status = *status
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.leaseRepo.GetByID(ctx, id)
}

func (s *leaseService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.leaseRepo.SoftDelete(ctx, id)
}

func (s *leaseService) ExpireDue(ctx context.Context) (int64, error) {
	n, err := s.leaseRepo.ExpireDue(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		utils.Logger.Infof("Marked %d lease(s) as expired", n)
	}
	return n, nil
}

func (s *leaseService) RenderPDF(ctx context.Context, actor Actor) ([]byte, error) {
	leases, err := s.leaseRepo.ListAll(ctx, repositories.LeaseFilter{ManagerID: actor.ScopeManagerID()})
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Lease Report")
	pdf.Ln(12)

	headers := []string{"Reference", "Status", "Start", "End", "Amount"}
	widths := []float64{110, 30, 30, 30, 40}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range leases {
		cells := []string{
			l.Reference,
			string(l.Status),
			l.StartDate.Format(leaseDateLayout),
			l.EndDate.Format(leaseDateLayout),
			fmt.Sprintf("%.2f", l.LeaseAmount),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

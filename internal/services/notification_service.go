package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)


type NotificationService interface {
	ListMine(ctx context.Context, actor Actor, unreadOnly bool, page utils.PageQuery) ([]*models.Notification, int64, error)
	ListAll(ctx context.Context, page utils.PageQuery) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, actor Actor, id uuid.UUID) error

	// NotifyUpcomingPayments creates one reminder per lease whose latest
	// paid period ends within the next month. Recipients are the
	// managing user of the property, or every active admin when
	// unassigned. A lease with an unread reminder is skipped. Best
	// effort: earlier successes survive a mid-batch failure.
	NotifyUpcomingPayments(ctx context.Context) (int, error)
}

type notificationService struct {
	notifRepo repositories.NotificationRepository
	leaseRepo repositories.LeaseRepository
	localRepo repositories.LocalRepository
	propRepo  repositories.PropertyRepository
	userRepo  repositories.UserRepository
	mailer    Mailer
}

func NewNotificationService(
	notifRepo repositories.NotificationRepository,
	leaseRepo repositories.LeaseRepository,
	localRepo repositories.LocalRepository,
	propRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	mailer Mailer,
) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		leaseRepo: leaseRepo,
		localRepo: localRepo,
		propRepo:  propRepo,
		userRepo:  userRepo,
		mailer:    mailer,
	}
}

func (s *notificationService) ListMine(ctx context.Context, actor Actor, unreadOnly bool, page utils.PageQuery) ([]*models.Notification, int64, error) {
	return s.notifRepo.ListByUser(ctx, actor.ID, unreadOnly, page.Limit, page.Offset())
}

func (s *notificationService) ListAll(ctx context.Context, page utils.PageQuery) ([]*models.Notification, int64, error) {
	return s.notifRepo.ListAll(ctx, page.Limit, page.Offset())
}

func (s *notificationService) MarkRead(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := s.notifRepo.MarkRead(ctx, id, actor.ID); err != nil {
		return utils.ErrNotFound
	}
	return nil
}

// recipients resolves who should hear about a lease: the property's
// manager, falling back to all active admins.
func (s *notificationService) recipients(ctx context.Context, lease *models.Lease) ([]*models.User, error) {
	local, err := s.localRepo.GetByID(ctx, lease.LocalID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, nil
	}
	p, err := s.propRepo.GetByID(ctx, local.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if p.ManagerID != nil {
		mgr, err := s.userRepo.GetByID(ctx, *p.ManagerID)
		if err != nil {
			return nil, err
		}
		if mgr != nil && mgr.IsActive {
			return []*models.User{mgr}, nil
		}
	}
	return s.userRepo.ListAdmins(ctx)
}

func (s *notificationService) NotifyUpcomingPayments(ctx context.Context) (int, error) {
	now := time.Now()
	due, err := s.leaseRepo.ListUpcomingDue(ctx, now, now.AddDate(0, 1, 0))
	if err != nil {
		return 0, err
	}

	created := 0
	var firstErr error
	for _, item := range due {
		exists, err := s.notifRepo.HasUnreadForLease(ctx, item.Lease.ID, models.NotificationUpcomingPayment)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if exists {
			continue
		}

		users, err := s.recipients(ctx, item.Lease)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		msg := fmt.Sprintf("Payment for lease %s is due by %s.",
			item.Lease.Reference, item.PeriodEnd.Format("2006-01-02"))
		for _, u := range users {
			leaseID := item.Lease.ID
			n := &models.Notification{
				ID:      uuid.New(),
				UserID:  u.ID,
				LeaseID: &leaseID,
				Message: msg,
				Type:    models.NotificationUpcomingPayment,
			}
			if err := s.notifRepo.Create(ctx, n); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			created++

			if s.mailer != nil {
				if err := s.mailer.Send(u.Email, "Upcoming lease payment", msg); err != nil {
					utils.Logger.Warnf("Failed to email %s: %v", u.Email, err)
				}
			}
		}
	}

	if created > 0 {
		utils.Logger.Infof("Created %d upcoming-payment notification(s)", created)
	}
	return created, firstErr
}

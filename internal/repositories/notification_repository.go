package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/landlordpro/backend/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Notification, int64, error)
	// MarkRead flips is_read for a notification owned by userID.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	// HasUnreadForLease reports whether an unread notification of the
	// given type already exists for the lease, used to suppress
	// duplicate reminders.
	HasUnreadForLease(ctx context.Context, leaseID uuid.UUID, nType models.NotificationType) (bool, error)
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (
			id, user_id, lease_id, message, type, is_read, created_at
		) VALUES ($1,$2,$3,$4,$5,false, NOW())
	`, n.ID, n.UserID, n.LeaseID, n.Message, n.Type)
	return err
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error) {
	where := " WHERE user_id=$1"
	if unreadOnly {
		where += " AND NOT is_read"
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications"+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		baseSelectNotification()+where+" ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectNotifications(rows)
	return out, total, err
}

func (r *notificationRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.Notification, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		baseSelectNotification()+" ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectNotifications(rows)
	return out, total, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read=true WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepo) HasUnreadForLease(ctx context.Context, leaseID uuid.UUID, nType models.NotificationType) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE lease_id=$1 AND type=$2 AND NOT is_read
		)
	`, leaseID, nType).Scan(&exists)
	return exists, err
}

func baseSelectNotification() string {
	return `
		SELECT id, user_id, lease_id, message, type, is_read, created_at
		FROM notifications`
}

func collectNotifications(rows pgx.Rows) ([]*models.Notification, error) {
	var out []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	var leaseID pgtype.UUID
	if err := row.Scan(
		&n.ID, &n.UserID, &leaseID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if leaseID.Status == pgtype.Present {
		id := uuid.UUID(leaseID.Bytes)
		n.LeaseID = &id
	}
	return &n, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationUpcomingPayment NotificationType = "upcoming_payment"
	NotificationLeaseExpired    NotificationType = "lease_expired"
	NotificationSystem          NotificationType = "system"
)

// Notification is created by system events and marked read by its
// recipient. Rows are never deleted.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	LeaseID   *uuid.UUID       `json:"lease_id,omitempty"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

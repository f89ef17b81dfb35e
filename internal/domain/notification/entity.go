package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeCheckIn       NotificationType = "check_in"
	TypeCheckOut      NotificationType = "check_out"
	TypeLocationDrift NotificationType = "location_drift"
	TypeSystem        NotificationType = "system"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

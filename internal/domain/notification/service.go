package notification

import (
	"context"
)

// Dispatcher is the fire-and-forget notification surface used by the
// attendance core. Failures are logged by the implementation and never
// propagate into the calling transaction.
type Dispatcher interface {
	// NotifyEmployeeAndHR delivers an event to the employee and broadcasts a
	// separate wording to all HR-role employees.
	NotifyEmployeeAndHR(ctx context.Context, req EmployeeAndHRRequest)
}

// Service defines notification business logic.
type Service interface {
	Dispatcher

	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Shutdown()
}

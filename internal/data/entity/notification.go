package entity

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationTypeOrder  NotificationType = "pedido"
	NotificationTypeSale   NotificationType = "venta"
	NotificationTypeSystem NotificationType = "sistema"
)

// Notification is a simple inbox record. Insertion order is the only
// ordering guarantee.
type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Type    NotificationType `db:"type"`
	Message string           `db:"message"`
	IsRead  bool             `db:"is_read"`
}

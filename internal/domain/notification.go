package domain

import "time"

type NotificationType string

const (
	NotificationMatch    NotificationType = "match"
	NotificationMessage  NotificationType = "message"
	NotificationAlert    NotificationType = "alert"
	NotificationReminder NotificationType = "reminder"
)

// ValidNotificationType reports whether t is one of the defined types.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationMatch, NotificationMessage, NotificationAlert, NotificationReminder:
		return true
	}
	return false
}

type NotificationStatus string

const (
	NotificationSeen    NotificationStatus = "seen"
	NotificationNotSeen NotificationStatus = "not_seen"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// ValidNotificationPriority reports whether p is one of the defined priorities.
func ValidNotificationPriority(p NotificationPriority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

const (
	MinNotificationMessage = 1
	MaxNotificationMessage = 500
)

// Notification is a per-user alert. Medium and high priority notifications are
// mirrored to email on a best-effort basis after the row is written.
type Notification struct {
	ID        int64                `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64                `gorm:"column:user_id;index:idx_notifications_user" json:"userID"`
	Type      NotificationType     `gorm:"column:type" json:"type"`
	Message   string               `gorm:"column:message" json:"message"`
	Status    NotificationStatus   `gorm:"column:status" json:"status"`
	Priority  NotificationPriority `gorm:"column:priority" json:"priority"`
	Link      string               `gorm:"column:link" json:"link,omitempty"`
	CreatedAt time.Time            `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time            `gorm:"column:updated_at" json:"updatedAt"`
}

func (Notification) TableName() string { return "notifications" }

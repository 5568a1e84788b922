package notification

import "unidomus/internal/domain"

type CreateRequest struct {
	UserID   int64                       `json:"userID" binding:"required"`
	Type     domain.NotificationType     `json:"type" binding:"required"`
	Message  string                      `json:"message" binding:"required"`
	Link     string                      `json:"link"`
	Priority domain.NotificationPriority `json:"priority" binding:"required"`
}

type DeleteFilterRequest struct {
	Type     domain.NotificationType     `json:"type"`
	Status   domain.NotificationStatus   `json:"status"`
	Priority domain.NotificationPriority `json:"priority"`
}

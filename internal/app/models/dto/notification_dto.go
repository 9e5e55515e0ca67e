package dto

import "internhub/internal/app/models"

// NotificationListResponse is the recipient's notification feed with the
// unread counter.
type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

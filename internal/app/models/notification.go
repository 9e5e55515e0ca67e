package models

import "time"

// Notification is an in-app message for one recipient, unread by default.
// Rows are inserted in the same transaction as the workflow transition that
// produced them.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

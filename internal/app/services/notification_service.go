package services

import (
	"context"

	"github.com/rs/zerolog"
	"internhub/internal/app/models/dto"
	"internhub/internal/app/repositories"
)

// DefaultNotificationLimit caps the notification feed
const DefaultNotificationLimit = 50

// NotificationService reads and marks the per-user notification feed.
// Creation happens inside the workflow transactions, not here.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo *repositories.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// List returns the recipient's most recent notifications with the unread
// counter attached.
func (s *NotificationService) List(ctx context.Context, userID int64) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, DefaultNotificationLimit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead marks one notification as read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

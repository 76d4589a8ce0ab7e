package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// NotificationService handles a user's notification inbox
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotificationPage is one page of a user's inbox.
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
	Pagination    types.Pagination      `json:"pagination"`
}

// ListNotifications returns the recipient's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, recipientID uuid.UUID, page, limit int) (*NotificationPage, error) {
	page, limit = normalizePage(page, limit)
	db := s.db.WithContext(ctx)

	var total, unread int64
	if err := db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}
	if err := db.Model(&models.Notification{}).Where("recipient_id = ? AND read = ?", recipientID, false).Count(&unread).Error; err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	notifications := []models.Notification{}
	err := db.Preload("Actor", selectPublicUser).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return &NotificationPage{
		Notifications: notifications,
		UnreadCount:   unread,
		Pagination:    types.NewPagination(page, limit, total),
	}, nil
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (*models.Notification, error) {
	n, err := s.owned(ctx, id, recipientID)
	if err != nil {
		return nil, err
	}
	if !n.Read {
		if err := s.db.WithContext(ctx).Model(n).Update("read", true).Error; err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
		n.Read = true
	}
	return n, nil
}

// MarkAllRead flags every unread notification of the recipient and returns
// how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteNotification removes one notification.
func (s *NotificationService) DeleteNotification(ctx context.Context, id, recipientID uuid.UUID) error {
	n, err := s.owned(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(n).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (s *NotificationService) owned(ctx context.Context, id, recipientID uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "Notification", "failed to load notification")
	}
	if n.RecipientID != recipientID {
		return nil, types.ErrForbidden
	}
	return &n, nil
}

// notify stores a notification for recipient unless the actor is the
// recipient. It runs on the caller's transaction.
func notify(tx *gorm.DB, recipientID, actorID uuid.UUID, kind string, recipeID *uuid.UUID, message string) error {
	if recipientID == actorID {
		return nil
	}
	actor := actorID
	n := &models.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		ActorID:     &actor,
		Type:        kind,
		RecipeID:    recipeID,
		Message:     message,
	}
	if err := tx.Omit("Actor").Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	Notify(ctx context.Context, notifType string, userID, actorID uuid.UUID, postID *uuid.UUID) error
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// Notify persists the notification and, when Redis is available, publishes it
// on the recipient's channel for the websocket stream. Actors are never
// notified about their own actions; callers enforce that rule.
func (s *notificationService) Notify(ctx context.Context, notifType string, userID, actorID uuid.UUID, postID *uuid.UUID) error {
	notification := &model.Notification{
		Type:    notifType,
		UserID:  userID,
		ActorID: actorID,
		PostID:  postID,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if s.redisClient != nil {
		channel := fmt.Sprintf("user_notifications:%s", userID.String())
		if payload, err := json.Marshal(notification); err == nil {
			s.redisClient.Publish(ctx, channel, payload)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.FindByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

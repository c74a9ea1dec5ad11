package repository

import (
	"context"

	"alumnihub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	History(ctx context.Context, userA, userB uuid.UUID) ([]model.Message, error)
	// MarkRead flips the read flag on messages sent by `from` to `to`.
	MarkRead(ctx context.Context, from, to uuid.UUID) error
	PartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) History(ctx context.Context, userA, userB uuid.UUID) ([]model.Message, error) {
	messages := []model.Message{}
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) MarkRead(ctx context.Context, from, to uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", from, to, false).
		Update("read", true).Error
}

func (r *messageRepository) PartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var sentTo []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_id = ?", userID).
		Distinct("receiver_id").
		Pluck("receiver_id", &sentTo).Error; err != nil {
		return nil, err
	}

	var receivedFrom []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("receiver_id = ?", userID).
		Distinct("sender_id").
		Pluck("sender_id", &receivedFrom).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(sentTo)+len(receivedFrom))
	ids := make([]uuid.UUID, 0, len(sentTo)+len(receivedFrom))
	for _, id := range append(sentTo, receivedFrom...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageService interface {
	Conversations(ctx context.Context, userID uuid.UUID) ([]dto.AuthorResponse, error)
	History(ctx context.Context, userID, otherUserID uuid.UUID) ([]model.Message, error)
	Send(ctx context.Context, senderID, receiverID uuid.UUID, input dto.SendMessageInput) (*model.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Conversations lists every user the caller has exchanged messages with.
func (s *messageService) Conversations(ctx context.Context, userID uuid.UUID) ([]dto.AuthorResponse, error) {
	partnerIDs, err := s.messageRepo.PartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, err
	}

	partners := make([]dto.AuthorResponse, 0, len(users))
	for i := range users {
		partners = append(partners, toAuthorResponse(&users[i]))
	}

	return partners, nil
}

// History returns the full conversation and marks the messages the other user
// sent as read.
func (s *messageService) History(ctx context.Context, userID, otherUserID uuid.UUID) ([]model.Message, error) {
	messages, err := s.messageRepo.History(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkRead(ctx, otherUserID, userID); err != nil {
		return nil, err
	}

	return messages, nil
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, input dto.SendMessageInput) (*model.Message, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: empty message", apperror.ErrInvalidInput)
	}

	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot message yourself", apperror.ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    input.Content,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConnectionService interface {
	SendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID) (*model.Connection, error)
	AcceptRequest(ctx context.Context, connectionID, actingUserID uuid.UUID) error
	RemoveConnection(ctx context.Context, connectionID, actingUserID uuid.UUID) error
	StatusBetween(ctx context.Context, userID, otherUserID uuid.UUID) (*model.Connection, error)
}

type connectionService struct {
	connectionRepo  repository.ConnectionRepository
	userRepo        repository.UserRepository
	notificationSvc NotificationService
}

func NewConnectionService(connectionRepo repository.ConnectionRepository, userRepo repository.UserRepository, notificationSvc NotificationService) ConnectionService {
	return &connectionService{
		connectionRepo:  connectionRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

// SendRequest creates a PENDING connection toward the addressee. A row in
// either direction, whatever its status, blocks a new request. The unique
// index on the pair catches the remaining same-direction race; the create
// failure is then reported as a conflict as well.
func (s *connectionService) SendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID) (*model.Connection, error) {
	if requesterID == addresseeID {
		return nil, fmt.Errorf("%w: cannot send a connection request to yourself", apperror.ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByID(ctx, addresseeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	existing, err := s.connectionRepo.FindBetween(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: request already sent or connected", apperror.ErrConflict)
	}

	connection := &model.Connection{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      model.ConnectionPending,
	}

	if err := s.connectionRepo.Create(ctx, connection); err != nil {
		if existing, findErr := s.connectionRepo.FindBetween(ctx, requesterID, addresseeID); findErr == nil && existing != nil {
			return nil, fmt.Errorf("%w: request already sent or connected", apperror.ErrConflict)
		}
		return nil, err
	}

	if err := s.notificationSvc.Notify(ctx, model.NotificationConnectionRequest, addresseeID, requesterID, nil); err != nil {
		log.Printf("failed to create connection request notification: %v", err)
	}

	return connection, nil
}

// AcceptRequest transitions PENDING to ACCEPTED. Only the addressee may
// accept; the requester cannot self-accept.
func (s *connectionService) AcceptRequest(ctx context.Context, connectionID, actingUserID uuid.UUID) error {
	connection, err := s.connectionRepo.FindByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: connection not found", apperror.ErrNotFound)
		}
		return err
	}

	if connection.AddresseeID != actingUserID {
		return fmt.Errorf("%w: only the addressee can accept a connection request", apperror.ErrForbidden)
	}

	if err := s.connectionRepo.UpdateStatus(ctx, connectionID, model.ConnectionAccepted); err != nil {
		return err
	}

	if err := s.notificationSvc.Notify(ctx, model.NotificationConnectionAccepted, connection.RequesterID, actingUserID, nil); err != nil {
		log.Printf("failed to create connection accepted notification: %v", err)
	}

	return nil
}

// RemoveConnection deletes the row at any status: the requester cancelling,
// the addressee rejecting, or either side unfriending.
func (s *connectionService) RemoveConnection(ctx context.Context, connectionID, actingUserID uuid.UUID) error {
	connection, err := s.connectionRepo.FindByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: connection not found", apperror.ErrNotFound)
		}
		return err
	}

	if !connection.Involves(actingUserID) {
		return fmt.Errorf("%w: you are not part of this connection", apperror.ErrForbidden)
	}

	return s.connectionRepo.Delete(ctx, connectionID)
}

// StatusBetween returns the row for the pair, if any, in either direction.
// Callers read RequesterID off the row to tell "I sent this" from "I
// received this".
func (s *connectionService) StatusBetween(ctx context.Context, userID, otherUserID uuid.UUID) (*model.Connection, error) {
	return s.connectionRepo.FindBetween(ctx, userID, otherUserID)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminService interface {
	SetUserStatus(ctx context.Context, userID uuid.UUID, input dto.SetUserStatusInput) (*model.User, error)
	ListUsers(ctx context.Context, status string) ([]model.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	Stats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

type adminService struct {
	userRepo  repository.UserRepository
	batchRepo repository.BatchGroupRepository
	postRepo  repository.PostRepository
	searchSvc MemberSearchService
}

func NewAdminService(userRepo repository.UserRepository, batchRepo repository.BatchGroupRepository, postRepo repository.PostRepository, searchSvc MemberSearchService) AdminService {
	return &adminService{
		userRepo:  userRepo,
		batchRepo: batchRepo,
		postRepo:  postRepo,
		searchSvc: searchSvc,
	}
}

// SetUserStatus applies a status (and optional role) change. A transition into
// approved resolves the batch group for the user's passing year, creating it
// if needed, and links the user to it. Status and batch land in a single user
// update, so a failure leaves no half-approved state. Downgrading away from
// approved never touches batch membership.
func (s *adminService) SetUserStatus(ctx context.Context, userID uuid.UUID, input dto.SetUserStatusInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	wasApproved := user.Status == model.StatusApproved

	user.Status = input.Status
	if input.Role != nil {
		user.Role = *input.Role
	}

	newlyApproved := input.Status == model.StatusApproved && !wasApproved
	if newlyApproved && user.PassingYear != 0 {
		batch, err := s.batchRepo.FindOrCreateByYear(ctx, user.PassingYear)
		if err != nil {
			return nil, err
		}

		if user.BatchGroupID == nil || *user.BatchGroupID != batch.ID {
			user.BatchGroupID = &batch.ID
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if newlyApproved {
		if err := s.searchSvc.IndexMember(user); err != nil {
			log.Printf("failed to index member %s: %v", user.ID, err)
		}
	}

	return user, nil
}

func (s *adminService) ListUsers(ctx context.Context, status string) ([]model.User, error) {
	return s.userRepo.FindAll(ctx, status)
}

func (s *adminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := s.searchSvc.RemoveMember(userID.String()); err != nil {
		log.Printf("failed to remove member %s from index: %v", userID, err)
	}

	return nil
}

func (s *adminService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	users, err := s.userRepo.CountByRole(ctx, model.RoleUser)
	if err != nil {
		return nil, err
	}

	pending, err := s.userRepo.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{
		Users:   users,
		Pending: pending,
		Posts:   posts,
	}, nil
}

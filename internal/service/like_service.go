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

type LikeService interface {
	Toggle(ctx context.Context, userID, postID uuid.UUID) (*dto.LikeResult, error)
}

type likeService struct {
	likeRepo        repository.LikeRepository
	postRepo        repository.PostRepository
	notificationSvc NotificationService
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository, notificationSvc NotificationService) LikeService {
	return &likeService{
		likeRepo:        likeRepo,
		postRepo:        postRepo,
		notificationSvc: notificationSvc,
	}
}

// Toggle likes the post if the user has not liked it, and unlikes it
// otherwise. The insert uses the unique (user, post) index with a do-nothing
// conflict clause, so two concurrent toggles cannot double-count: the loser
// of the insert race falls through to the unlike path.
func (s *likeService) Toggle(ctx context.Context, userID, postID uuid.UUID) (*dto.LikeResult, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	inserted, err := s.likeRepo.Insert(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	isLiked := inserted
	if !inserted {
		if _, err := s.likeRepo.Remove(ctx, userID, postID); err != nil {
			return nil, err
		}
		isLiked = false
	}

	// Only a fresh like notifies, and never for the author's own post.
	if inserted && post.UserID != userID {
		if err := s.notificationSvc.Notify(ctx, model.NotificationLike, post.UserID, userID, &postID); err != nil {
			log.Printf("failed to create like notification: %v", err)
		}
	}

	count, err := s.likeRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeResult{
		Likes:   count,
		IsLiked: isLiked,
	}, nil
}

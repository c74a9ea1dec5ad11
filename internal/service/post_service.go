package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, input dto.CreatePostInput) (*dto.PostResponse, error)
	VisiblePosts(ctx context.Context, viewerID uuid.UUID, filter string) ([]dto.PostResponse, error)
	AddComment(ctx context.Context, userID, postID uuid.UUID, input dto.AddCommentInput) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, actingUserID, postID uuid.UUID) error
}

type postService struct {
	postRepo        repository.PostRepository
	commentRepo     repository.CommentRepository
	userRepo        repository.UserRepository
	notificationSvc NotificationService
	redisClient     *redis.Client
	postRateLimit   time.Duration
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository, notificationSvc NotificationService, redisClient *redis.Client, postRateLimit time.Duration) PostService {
	return &postService{
		postRepo:        postRepo,
		commentRepo:     commentRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		postRateLimit:   postRateLimit,
	}
}

// CreatePost stores a new feed post. A batch-visibility post requires the
// author to be in a batch; the post is pinned to that batch at creation time
// and never follows the author to a different one.
func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, input dto.CreatePostInput) (*dto.PostResponse, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "create_post", s.postRateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: you are posting too fast", apperror.ErrRateLimitExceeded)
	}

	// A rejected or failed post must not burn the claimed window.
	creationFailed := true
	defer func() {
		if creationFailed {
			if clearErr := ClearRateLimit(ctx, s.redisClient, userID, "create_post"); clearErr != nil {
				log.Printf("failed to clear rate limit after failed post creation: %v", clearErr)
			}
		}
	}()

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}

	post := &model.Post{
		UserID:     userID,
		Content:    input.Content,
		Visibility: visibility,
	}

	if visibility == model.VisibilityBatch {
		if author.BatchGroupID == nil {
			return nil, fmt.Errorf("%w: you are not assigned to a batch yet", apperror.ErrBadRequest)
		}
		post.BatchGroupID = author.BatchGroupID
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	creationFailed = false

	created, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	resp := toPostResponse(created)
	return &resp, nil
}

// VisiblePosts returns the feed a viewer is entitled to, newest first.
func (s *postService) VisiblePosts(ctx context.Context, viewerID uuid.UUID, filter string) ([]dto.PostResponse, error) {
	viewer, err := s.userRepo.FindByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	posts, err := s.postRepo.FindVisible(ctx, viewer.BatchGroupID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, toPostResponse(&posts[i]))
	}

	return responses, nil
}

func (s *postService) AddComment(ctx context.Context, userID, postID uuid.UUID, input dto.AddCommentInput) (*dto.PostResponse, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", apperror.ErrInvalidInput)
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	comment := &model.Comment{
		UserID: userID,
		PostID: postID,
		Text:   text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Self-comments never notify.
	if post.UserID != userID {
		if err := s.notificationSvc.Notify(ctx, model.NotificationComment, post.UserID, userID, &postID); err != nil {
			log.Printf("failed to create comment notification: %v", err)
		}
	}

	updated, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := toPostResponse(updated)
	return &resp, nil
}

func (s *postService) DeletePost(ctx context.Context, actingUserID, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post not found", apperror.ErrNotFound)
		}
		return err
	}

	if post.UserID != actingUserID {
		actor, err := s.userRepo.FindByID(ctx, actingUserID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			return fmt.Errorf("%w: only the author or an admin can delete a post", apperror.ErrForbidden)
		}
	}

	return s.postRepo.Delete(ctx, postID)
}

func toPostResponse(post *model.Post) dto.PostResponse {
	likes := make([]string, 0, len(post.Likes))
	for _, like := range post.Likes {
		likes = append(likes, like.UserID.String())
	}

	comments := make([]dto.CommentResponse, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, dto.CommentResponse{
			ID:        comment.ID,
			Text:      comment.Text,
			User:      toAuthorResponse(&comment.User),
			CreatedAt: comment.CreatedAt,
		})
	}

	return dto.PostResponse{
		ID:           post.ID,
		User:         toAuthorResponse(&post.User),
		Content:      post.Content,
		Visibility:   post.Visibility,
		BatchGroupID: post.BatchGroupID,
		Likes:        likes,
		Comments:     comments,
		CreatedAt:    post.CreatedAt,
	}
}

func toAuthorResponse(user *model.User) dto.AuthorResponse {
	return dto.AuthorResponse{
		ID:          user.ID,
		Name:        user.Name,
		PhotoURL:    user.PhotoURL,
		PassingYear: user.PassingYear,
	}
}

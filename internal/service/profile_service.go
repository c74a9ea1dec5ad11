package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/apperror"
	"alumnihub/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhotoFile represents an uploaded profile photo.
type PhotoFile struct {
	Reader   io.Reader
	FileName string
}

type ProfileService interface {
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Update(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*model.User, error)
	UploadPhoto(ctx context.Context, userID uuid.UUID, photo *PhotoFile) (*model.User, error)
	PublicProfile(ctx context.Context, userID uuid.UUID) (*dto.PublicProfileResponse, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	imageStorage storage.ImageStorage
	searchSvc    MemberSearchService
}

func NewProfileService(userRepo repository.UserRepository, imageStorage storage.ImageStorage, searchSvc MemberSearchService) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		imageStorage: imageStorage,
		searchSvc:    searchSvc,
	}
}

func (s *profileService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.Occupation != nil {
		user.Occupation = input.Occupation
	}
	if input.Location != nil {
		user.Location = input.Location
	}
	if input.SocialLinks != nil {
		user.SocialLinks = input.SocialLinks
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if user.IsApproved() {
		if err := s.searchSvc.IndexMember(user); err != nil {
			log.Printf("failed to reindex member %s: %v", user.ID, err)
		}
	}

	user.PasswordHash = ""
	return user, nil
}

// UploadPhoto replaces the profile photo, deleting the previous one from
// storage best-effort.
func (s *profileService) UploadPhoto(ctx context.Context, userID uuid.UUID, photo *PhotoFile) (*model.User, error) {
	if photo == nil || photo.Reader == nil {
		return nil, fmt.Errorf("%w: photo file is required", apperror.ErrInvalidInput)
	}
	if s.imageStorage == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", apperror.ErrInternal)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, photo.Reader, "photos", photo.FileName)
	if err != nil {
		return nil, err
	}

	oldURL := user.PhotoURL
	user.PhotoURL = &url

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if oldURL != nil {
		if err := s.imageStorage.DeleteImage(ctx, *oldURL); err != nil {
			log.Printf("failed to delete old profile photo: %v", err)
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) PublicProfile(ctx context.Context, userID uuid.UUID) (*dto.PublicProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return &dto.PublicProfileResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhotoURL:    user.PhotoURL,
		Bio:         user.Bio,
		Occupation:  user.Occupation,
		Location:    user.Location,
		PassingYear: user.PassingYear,
		CreatedAt:   user.CreatedAt,
	}, nil
}

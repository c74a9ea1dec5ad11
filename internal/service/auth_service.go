package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alumnihub/internal/dto"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (*model.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	batchRepo repository.BatchGroupRepository
	secret    string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, batchRepo repository.BatchGroupRepository, secret string, ttlMinutes int) AuthService {
	return &authService{
		userRepo:  userRepo,
		batchRepo: batchRepo,
		secret:    secret,
		tokenTTL:  time.Duration(ttlMinutes) * time.Minute,
	}
}

// Signup creates a pending user. The batch group for the passing year is
// resolved up front so approval usually only has to re-link it.
func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: user already exists with this email", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	batch, err := s.batchRepo.FindOrCreateByYear(ctx, input.PassingYear)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleUser,
		Status:       model.StatusPending,
		PassingYear:  input.PassingYear,
		BatchGroupID: &batch.ID,
		StudentID:    input.StudentID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
	}

	switch user.Status {
	case model.StatusPending:
		return nil, fmt.Errorf("%w: your account is pending admin approval", apperror.ErrUnauthorized)
	case model.StatusRejected:
		return nil, fmt.Errorf("%w: your account has been rejected", apperror.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        user,
	}, nil
}

package repository

import (
	"context"
	"errors"

	"alumnihub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConnectionRepository interface {
	Create(ctx context.Context, connection *model.Connection) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Connection, error)
	// FindBetween matches either direction; it returns (nil, nil) when no row
	// exists for the pair.
	FindBetween(ctx context.Context, userA, userB uuid.UUID) (*model.Connection, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, connection *model.Connection) error {
	return r.db.WithContext(ctx).Create(connection).Error
}

func (r *connectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Connection, error) {
	var connection model.Connection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&connection).Error; err != nil {
		return nil, err
	}

	return &connection, nil
}

func (r *connectionRepository) FindBetween(ctx context.Context, userA, userB uuid.UUID) (*model.Connection, error) {
	lo, hi := model.NormalizePair(userA, userB)

	var connection model.Connection
	err := r.db.WithContext(ctx).
		Where("pair_min_id = ? AND pair_max_id = ?", lo, hi).
		First(&connection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &connection, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Connection{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *connectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Connection{}).Error
}

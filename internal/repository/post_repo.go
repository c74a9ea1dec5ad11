package repository

import (
	"context"

	"alumnihub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindVisible(ctx context.Context, viewerBatchID *uuid.UUID, filter string) ([]model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at asc")
		}).
		Preload("Comments.User")
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.withRelations(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// FindVisible applies the visibility rule at the query level: public posts for
// everyone, batch posts only for viewers in that batch. A nil viewerBatchID
// with the "batch" filter yields an empty result, not an error.
func (r *postRepository) FindVisible(ctx context.Context, viewerBatchID *uuid.UUID, filter string) ([]model.Post, error) {
	posts := []model.Post{}
	query := r.withRelations(r.db.WithContext(ctx)).Order("created_at desc")

	switch filter {
	case model.VisibilityPublic:
		query = query.Where("visibility = ?", model.VisibilityPublic)
	case model.VisibilityBatch:
		if viewerBatchID == nil {
			return posts, nil
		}
		query = query.Where("visibility = ? AND batch_group_id = ?", model.VisibilityBatch, *viewerBatchID)
	default:
		if viewerBatchID == nil {
			query = query.Where("visibility = ?", model.VisibilityPublic)
		} else {
			query = query.Where(
				"visibility = ? OR (visibility = ? AND batch_group_id = ?)",
				model.VisibilityPublic, model.VisibilityBatch, *viewerBatchID,
			)
		}
	}

	err := query.Find(&posts).Error
	return posts, err
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error
	return count, err
}

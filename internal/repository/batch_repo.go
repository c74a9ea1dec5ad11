package repository

import (
	"context"

	"alumnihub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BatchGroupRepository interface {
	FindByYear(ctx context.Context, year int) (*model.BatchGroup, error)
	FindOrCreateByYear(ctx context.Context, year int) (*model.BatchGroup, error)
}

type batchGroupRepository struct {
	db *gorm.DB
}

func NewBatchGroupRepository(db *gorm.DB) BatchGroupRepository {
	return &batchGroupRepository{db: db}
}

func (r *batchGroupRepository) FindByYear(ctx context.Context, year int) (*model.BatchGroup, error) {
	var group model.BatchGroup
	if err := r.db.WithContext(ctx).Where("year = ?", year).First(&group).Error; err != nil {
		return nil, err
	}

	return &group, nil
}

// FindOrCreateByYear resolves the single group for a graduation year. The
// insert carries a do-nothing conflict clause on the year unique index, so a
// create that loses the race to a concurrent insert is a no-op; the follow-up
// fetch returns the canonical row either way.
func (r *batchGroupRepository) FindOrCreateByYear(ctx context.Context, year int) (*model.BatchGroup, error) {
	group := model.BatchGroup{Year: year}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&group).Error; err != nil {
		return nil, err
	}

	return r.FindByYear(ctx, year)
}

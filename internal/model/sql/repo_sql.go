package sql

import (
	"context"
	"cookbook/internal/entity"
	"cookbook/internal/model"
	"errors"

	"gorm.io/gorm"
)

var errRepoNotInitialised = errors.New("repository not initialised")

// GormRepository implements model.Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Transaction runs fn inside a single database transaction. The callback
// receives a Repository bound to that transaction; returning an error rolls
// everything back.
func (r *GormRepository) Transaction(ctx context.Context, fn func(tx model.Repository) error) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int64) *entity.Meta {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	return &entity.Meta{
		Total:    totalCount,
		Page:     page,
		PageSize: pageSize,
	}
}

var _ model.Repository = (*GormRepository)(nil)

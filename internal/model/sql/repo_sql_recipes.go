package sql

import (
	"context"
	"cookbook/internal/entity"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateRecipe persists a new recipe record.
func (r *GormRepository) CreateRecipe(ctx context.Context, recipe *entity.DbRecipe) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if recipe == nil {
		return fmt.Errorf("recipe is nil")
	}
	return r.db.WithContext(ctx).Omit("Items", "Tags").Create(recipe).Error
}

// UpdateRecipe updates scalar recipe fields. Only fields carried by updates
// are touched.
func (r *GormRepository) UpdateRecipe(ctx context.Context, id uint, updates entity.RecipeUpdates) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid recipe id")
	}
	if updates.IsEmpty() {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&entity.DbRecipe{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetRecipe loads a recipe with its resolved ingredient and tag associations.
func (r *GormRepository) GetRecipe(ctx context.Context, id uint) (*entity.DbRecipe, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid recipe id")
	}

	var recipe entity.DbRecipe
	err := r.db.WithContext(ctx).
		Preload("Items.Item").
		Preload("Tags.Tag").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns recipes ordered by name, paginated, with associations.
func (r *GormRepository) ListRecipes(ctx context.Context, params *entity.RecipeQuery) ([]entity.DbRecipe, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, errRepoNotInitialised
	}

	var page, pageSize int64 = 1, 20
	if params != nil {
		if params.Page > 0 {
			page = params.Page
		}
		if params.PageSize > 0 {
			pageSize = params.PageSize
		}
	}

	query := r.db.WithContext(ctx).Model(&entity.DbRecipe{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var recipes []entity.DbRecipe
	err := query.
		Preload("Items.Item").
		Preload("Tags.Tag").
		Order("recipes.name ASC").
		Offset(int((page - 1) * pageSize)).
		Limit(int(pageSize)).
		Find(&recipes).Error
	if err != nil {
		return nil, nil, err
	}

	return recipes, r.calculatePagination(total, page, pageSize), nil
}

// SearchRecipes returns recipes whose name contains the keyword.
func (r *GormRepository) SearchRecipes(ctx context.Context, keyword string) ([]entity.DbRecipe, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return []entity.DbRecipe{}, nil
	}

	var recipes []entity.DbRecipe
	kw := "%" + strings.ToLower(trimmed) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", kw).
		Order("name ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// FilterRecipesByTags returns recipes carrying at least one of the given tags.
func (r *GormRepository) FilterRecipesByTags(ctx context.Context, tagNames []string) ([]entity.DbRecipe, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}
	if len(tagNames) == 0 {
		return []entity.DbRecipe{}, nil
	}

	var recipes []entity.DbRecipe
	err := r.db.WithContext(ctx).
		Distinct("recipes.*").
		Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("tags.name IN ?", tagNames).
		Preload("Items.Item").
		Preload("Tags.Tag").
		Order("recipes.name ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// DeleteRecipe removes a recipe together with its associations. Items and
// tags themselves stay in the catalogue.
func (r *GormRepository) DeleteRecipe(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid recipe id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entity.DbRecipeItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entity.DbRecipeTag{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.DbRecipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

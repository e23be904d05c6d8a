package sql

import (
	"context"
	"cookbook/internal/entity"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateTag inserts a new tag. A uniqueness violation on the name surfaces as
// gorm.ErrDuplicatedKey.
func (r *GormRepository) CreateTag(ctx context.Context, tag *entity.DbTag) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetTagByName loads a tag by exact name match.
func (r *GormRepository) GetTagByName(ctx context.Context, name string) (*entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("tag name is empty")
	}

	var tag entity.DbTag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags returns all tags with their recipe usage counts.
func (r *GormRepository) ListTags(ctx context.Context) ([]entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}

	var tags []entity.DbTag
	err := r.db.WithContext(ctx).
		Model(&entity.DbTag{}).
		Select("tags.*, COUNT(recipe_tags.recipe_id) as usage_count").
		Joins("LEFT JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// UpdateTag updates tag fields.
func (r *GormRepository) UpdateTag(ctx context.Context, id uint, updates entity.TagUpdates) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid tag id")
	}
	if updates.IsEmpty() {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&entity.DbTag{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTag removes a tag and its recipe associations.
func (r *GormRepository) DeleteTag(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid tag id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&entity.DbRecipeTag{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.DbTag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListRecipeTags returns the tag associations of a recipe, each with its tag
// resolved.
func (r *GormRepository) ListRecipeTags(ctx context.Context, recipeID uint) ([]entity.DbRecipeTag, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}
	if recipeID == 0 {
		return nil, fmt.Errorf("invalid recipe id")
	}

	var cons []entity.DbRecipeTag
	err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Preload("Tag").
		Find(&cons).Error
	if err != nil {
		return nil, err
	}
	return cons, nil
}

// CreateRecipeTag inserts a new tag association.
func (r *GormRepository) CreateRecipeTag(ctx context.Context, con *entity.DbRecipeTag) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if con == nil {
		return fmt.Errorf("association is nil")
	}
	if con.RecipeID == 0 || con.TagID == 0 {
		return fmt.Errorf("invalid association key")
	}
	return r.db.WithContext(ctx).Omit("Tag").Create(con).Error
}

// DeleteRecipeTag removes one tag association.
func (r *GormRepository) DeleteRecipeTag(ctx context.Context, recipeID, tagID uint) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if recipeID == 0 || tagID == 0 {
		return fmt.Errorf("invalid association key")
	}

	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND tag_id = ?", recipeID, tagID).
		Delete(&entity.DbRecipeTag{}).Error
}

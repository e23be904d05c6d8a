package sql

import (
	"context"
	"cookbook/internal/entity"
	"fmt"
	"strings"
)

// CreateItem inserts a new catalogue item. A uniqueness violation on the name
// surfaces as gorm.ErrDuplicatedKey.
func (r *GormRepository) CreateItem(ctx context.Context, item *entity.DbItem) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if item == nil {
		return fmt.Errorf("item is nil")
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// GetItemByName loads an item by exact name match.
func (r *GormRepository) GetItemByName(ctx context.Context, name string) (*entity.DbItem, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("item name is empty")
	}

	var item entity.DbItem
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns all catalogue items with their recipe usage counts.
func (r *GormRepository) ListItems(ctx context.Context) ([]entity.DbItem, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}

	var items []entity.DbItem
	err := r.db.WithContext(ctx).
		Model(&entity.DbItem{}).
		Select("items.*, COUNT(recipe_items.recipe_id) as usage_count").
		Joins("LEFT JOIN recipe_items ON recipe_items.item_id = items.id").
		Group("items.id").
		Order("items.name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListRecipeItems returns the ingredient associations of a recipe, each with
// its item resolved.
func (r *GormRepository) ListRecipeItems(ctx context.Context, recipeID uint) ([]entity.DbRecipeItem, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}
	if recipeID == 0 {
		return nil, fmt.Errorf("invalid recipe id")
	}

	var cons []entity.DbRecipeItem
	err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Preload("Item").
		Find(&cons).Error
	if err != nil {
		return nil, err
	}
	return cons, nil
}

// GetRecipeItem loads the association for one (recipe, item) pair.
func (r *GormRepository) GetRecipeItem(ctx context.Context, recipeID, itemID uint) (*entity.DbRecipeItem, error) {
	if r == nil || r.db == nil {
		return nil, errRepoNotInitialised
	}
	if recipeID == 0 || itemID == 0 {
		return nil, fmt.Errorf("invalid association key")
	}

	var con entity.DbRecipeItem
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND item_id = ?", recipeID, itemID).
		First(&con).Error
	if err != nil {
		return nil, err
	}
	return &con, nil
}

// CreateRecipeItem inserts a new ingredient association.
func (r *GormRepository) CreateRecipeItem(ctx context.Context, con *entity.DbRecipeItem) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if con == nil {
		return fmt.Errorf("association is nil")
	}
	if con.RecipeID == 0 || con.ItemID == 0 {
		return fmt.Errorf("invalid association key")
	}
	return r.db.WithContext(ctx).Omit("Item").Create(con).Error
}

// UpdateRecipeItem overwrites only the association attributes carried by
// updates.
func (r *GormRepository) UpdateRecipeItem(ctx context.Context, recipeID, itemID uint, updates entity.RecipeItemUpdates) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if recipeID == 0 || itemID == 0 {
		return fmt.Errorf("invalid association key")
	}
	if updates.IsEmpty() {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&entity.DbRecipeItem{}).
		Where("recipe_id = ? AND item_id = ?", recipeID, itemID).
		Updates(updates.ToMap()).Error
}

// DeleteRecipeItem removes one ingredient association.
func (r *GormRepository) DeleteRecipeItem(ctx context.Context, recipeID, itemID uint) error {
	if r == nil || r.db == nil {
		return errRepoNotInitialised
	}
	if recipeID == 0 || itemID == 0 {
		return fmt.Errorf("invalid association key")
	}

	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND item_id = ?", recipeID, itemID).
		Delete(&entity.DbRecipeItem{}).Error
}

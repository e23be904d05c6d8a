package model

import (
	"context"
	"cookbook/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// Transaction 在单个事务作用域内执行 fn，fn 收到绑定该事务的 Repository。
	// fn 返回错误时整个事务回滚。
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// 菜谱
	CreateRecipe(ctx context.Context, recipe *entity.DbRecipe) error
	UpdateRecipe(ctx context.Context, id uint, updates entity.RecipeUpdates) error
	GetRecipe(ctx context.Context, id uint) (*entity.DbRecipe, error)
	ListRecipes(ctx context.Context, params *entity.RecipeQuery) ([]entity.DbRecipe, *entity.Meta, error)
	SearchRecipes(ctx context.Context, keyword string) ([]entity.DbRecipe, error)
	FilterRecipesByTags(ctx context.Context, tagNames []string) ([]entity.DbRecipe, error)
	DeleteRecipe(ctx context.Context, id uint) error

	// 食材目录
	CreateItem(ctx context.Context, item *entity.DbItem) error
	GetItemByName(ctx context.Context, name string) (*entity.DbItem, error)
	ListItems(ctx context.Context) ([]entity.DbItem, error)

	// 标签
	CreateTag(ctx context.Context, tag *entity.DbTag) error
	GetTagByName(ctx context.Context, name string) (*entity.DbTag, error)
	ListTags(ctx context.Context) ([]entity.DbTag, error)
	UpdateTag(ctx context.Context, id uint, updates entity.TagUpdates) error
	DeleteTag(ctx context.Context, id uint) error

	// 菜谱-食材关联
	ListRecipeItems(ctx context.Context, recipeID uint) ([]entity.DbRecipeItem, error)
	GetRecipeItem(ctx context.Context, recipeID, itemID uint) (*entity.DbRecipeItem, error)
	CreateRecipeItem(ctx context.Context, con *entity.DbRecipeItem) error
	UpdateRecipeItem(ctx context.Context, recipeID, itemID uint, updates entity.RecipeItemUpdates) error
	DeleteRecipeItem(ctx context.Context, recipeID, itemID uint) error

	// 菜谱-标签关联
	ListRecipeTags(ctx context.Context, recipeID uint) ([]entity.DbRecipeTag, error)
	CreateRecipeTag(ctx context.Context, con *entity.DbRecipeTag) error
	DeleteRecipeTag(ctx context.Context, recipeID, tagID uint) error
}

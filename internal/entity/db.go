package entity

// Re-export persisted model types so repository and service code can keep the
// short entity.Db* names.

import (
	"cookbook/internal/entity/db"
)

// Type aliases for persisted models
type DbRecipe = db.Recipe
type DbItem = db.Item
type DbTag = db.Tag
type DbRecipeItem = db.RecipeItem
type DbRecipeTag = db.RecipeTag

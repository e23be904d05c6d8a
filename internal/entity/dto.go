package entity

// Re-export DTO types used across package boundaries.

import (
	"cookbook/internal/entity/dto"
)

// Type aliases for request/response DTOs
type Meta = dto.Meta
type BaseParams = dto.BaseParams
type RecipeQuery = dto.RecipeQuery
type RecipeItemInput = dto.RecipeItemInput
type RecipeDraft = dto.RecipeDraft

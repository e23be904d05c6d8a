package dto

import "time"

// RecipeItemInput describes one desired ingredient association. Description and
// Optional are pointers so an update payload can leave either untouched.
type RecipeItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Optional    *bool   `json:"optional"`
}

// RecipeCreateRequest is the payload for creating a recipe.
type RecipeCreateRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description *string           `json:"description"`
	Time        *int              `json:"time"`
	CookTime    *int              `json:"cook_time"`
	PrepTime    *int              `json:"prep_time"`
	Yields      *int              `json:"yields"`
	Source      *string           `json:"source"`
	Photo       *string           `json:"photo"`
	Items       []RecipeItemInput `json:"items"`
	Tags        []string          `json:"tags"`
}

// RecipeUpdateRequest is the partial-update payload. A nil field is left
// unchanged; a nil Items/Tags slice skips reconciliation for that relation,
// while an empty non-nil slice removes every association of that kind.
type RecipeUpdateRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Time        *int              `json:"time"`
	CookTime    *int              `json:"cook_time"`
	PrepTime    *int              `json:"prep_time"`
	Yields      *int              `json:"yields"`
	Source      *string           `json:"source"`
	Photo       *string           `json:"photo"`
	Items       []RecipeItemInput `json:"items"`
	Tags        []string          `json:"tags"`
}

// RecipeItem is the resolved ingredient association in the full view.
type RecipeItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
}

// Recipe is the DTO representation of a recipe.
type Recipe struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Time        *int      `json:"time,omitempty"`
	CookTime    *int      `json:"cook_time,omitempty"`
	PrepTime    *int      `json:"prep_time,omitempty"`
	Yields      *int      `json:"yields,omitempty"`
	Source      string    `json:"source,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`

	Items []RecipeItem `json:"items,omitempty"`
	Tags  []Tag        `json:"tags,omitempty"`
}

// RecipeQuery supports listing recipes with pagination.
type RecipeQuery struct {
	BaseParams
}

// RecipeListResponse is the response for listing recipes.
type RecipeListResponse struct {
	Recipes []Recipe `json:"recipes"`
	Meta    *Meta    `json:"meta,omitempty"`
}

// RecipeDetailResponse is the response for a single recipe.
type RecipeDetailResponse struct {
	Recipe Recipe `json:"recipe"`
}

// RecipeSearchRequest carries the name search keyword.
type RecipeSearchRequest struct {
	Query   string `form:"query" binding:"required"`
	OnlyIDs bool   `form:"only_ids"`
}

// RecipeFilterRequest selects recipes carrying any of the given tags.
type RecipeFilterRequest struct {
	Filter []string `json:"filter" binding:"required"`
}

// ScrapeRecipeRequest carries the URL to import a recipe draft from.
type ScrapeRecipeRequest struct {
	URL string `json:"url" form:"url" binding:"required"`
}

// RecipeDraft is the unpersisted recipe produced by import. Unextractable
// optional fields stay nil/empty rather than failing the import.
type RecipeDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Time        *int   `json:"time,omitempty"`
	CookTime    *int   `json:"cook_time,omitempty"`
	PrepTime    *int   `json:"prep_time,omitempty"`
	Yields      *int   `json:"yields,omitempty"`
	Source      string `json:"source,omitempty"`
	Photo       string `json:"photo,omitempty"`
}

// ScrapeRecipeResponse returns the draft plus the raw, unresolved ingredient
// names for the caller to review before anything is persisted.
type ScrapeRecipeResponse struct {
	Recipe RecipeDraft `json:"recipe"`
	Items  []string    `json:"items"`
}

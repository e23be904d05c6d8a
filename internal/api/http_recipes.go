package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cookbook/internal/entity"
	"cookbook/internal/entity/converter"
	"cookbook/internal/entity/dto"
)

func (h *HTTPHandler) ListRecipes(c *gin.Context) {
	if h.recipeService == nil {
		ServiceUnavailable(c, "recipe service not available")
		return
	}

	var params entity.RecipeQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, meta, err := h.recipeService.List(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("failed to list recipes")
		InternalError(c, "failed to load recipes")
		return
	}

	c.JSON(http.StatusOK, dto.RecipeListResponse{
		Recipes: converter.RecipesToFullDTOs(recipes, h.publicURL),
		Meta:    meta,
	})
}

func (h *HTTPHandler) GetRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.recipeService.Get(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecipeNotFound, "recipe not found")
			return
		}
		logrus.WithError(err).WithField("id", recipeID).Error("failed to load recipe")
		InternalError(c, "failed to load recipe")
		return
	}

	c.JSON(http.StatusOK, dto.RecipeDetailResponse{Recipe: converter.RecipeToFullDTO(recipe, h.publicURL)})
}

func (h *HTTPHandler) CreateRecipe(c *gin.Context) {
	var req dto.RecipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		MissingField(c, "name")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	recipe, err := h.recipeService.Create(ctx, &req)
	if err != nil {
		logrus.WithError(err).Error("failed to create recipe")
		BadRequest(c, ErrCodeInvalidRequest, "failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, dto.RecipeDetailResponse{Recipe: converter.RecipeToFullDTO(recipe, h.publicURL)})
}

func (h *HTTPHandler) UpdateRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		MissingField(c, "name")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	recipe, err := h.recipeService.Update(ctx, recipeID, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecipeNotFound, "recipe not found")
			return
		}
		logrus.WithError(err).WithField("id", recipeID).Error("failed to update recipe")
		BadRequest(c, ErrCodeInvalidRequest, "failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, dto.RecipeDetailResponse{Recipe: converter.RecipeToFullDTO(recipe, h.publicURL)})
}

func (h *HTTPHandler) DeleteRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.recipeService.Delete(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeRecipeNotFound, "recipe not found")
			return
		}
		logrus.WithError(err).WithField("id", recipeID).Error("failed to delete recipe")
		InternalError(c, "failed to delete recipe")
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchRecipes 按名称关键字搜索，only_ids=true 时仅返回命中的主键。
func (h *HTTPHandler) SearchRecipes(c *gin.Context) {
	var req dto.RecipeSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		MissingField(c, "query")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.recipeService.Search(ctx, req.Query)
	if err != nil {
		logrus.WithError(err).WithField("query", req.Query).Error("failed to search recipes")
		InternalError(c, "failed to search recipes")
		return
	}

	if req.OnlyIDs {
		ids := make([]uint, 0, len(recipes))
		for _, r := range recipes {
			ids = append(ids, r.ID)
		}
		c.JSON(http.StatusOK, gin.H{"recipe_ids": ids})
		return
	}

	c.JSON(http.StatusOK, dto.RecipeListResponse{Recipes: converter.RecipesToFullDTOs(recipes, h.publicURL)})
}

func (h *HTTPHandler) FilterRecipes(c *gin.Context) {
	var req dto.RecipeFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		MissingField(c, "filter")
		return
	}

	names := make([]string, 0, len(req.Filter))
	for _, name := range req.Filter {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		MissingField(c, "filter")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.recipeService.Filter(ctx, names)
	if err != nil {
		logrus.WithError(err).Error("failed to filter recipes")
		InternalError(c, "failed to filter recipes")
		return
	}

	c.JSON(http.StatusOK, dto.RecipeListResponse{Recipes: converter.RecipesToFullDTOs(recipes, h.publicURL)})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	rawID := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid recipe id")
		return 0, false
	}
	return uint(id), true
}

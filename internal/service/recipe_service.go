package service

import (
	"context"
	"cookbook/internal/entity"
	"cookbook/internal/entity/dto"
	"cookbook/internal/model"
	"cookbook/internal/storage"
	"cookbook/internal/utils"
	"strings"

	"github.com/sirupsen/logrus"
)

// RecipeService orchestrates recipe persistence: scalar field assignment plus
// association reconciliation, both inside one transaction per request.
type RecipeService struct {
	repo  model.Repository
	store storage.Store
}

// NewRecipeService creates a recipe service. store may be nil, in which case
// photo values are kept verbatim instead of being downloaded.
func NewRecipeService(repo model.Repository, store storage.Store) *RecipeService {
	return &RecipeService{repo: repo, store: store}
}

// Create persists a new recipe and, when the request carries item or tag
// lists, reconciles the associations in the same transaction.
func (s *RecipeService) Create(ctx context.Context, req *dto.RecipeCreateRequest) (*entity.DbRecipe, error) {
	recipe := &entity.DbRecipe{
		Name: strings.TrimSpace(req.Name),
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Time != nil {
		recipe.Time = req.Time
	}
	if req.CookTime != nil {
		recipe.CookTime = req.CookTime
	}
	if req.PrepTime != nil {
		recipe.PrepTime = req.PrepTime
	}
	if req.Yields != nil {
		recipe.Yields = req.Yields
	}
	if req.Source != nil {
		recipe.Source = *req.Source
	}
	if req.Photo != nil {
		stored, err := s.storePhoto(ctx, *req.Photo)
		if err != nil {
			return nil, err
		}
		recipe.Photo = stored
	}

	err := s.repo.Transaction(ctx, func(tx model.Repository) error {
		if err := tx.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		rec := NewReconciler(tx)
		if req.Items != nil {
			if err := rec.ReconcileIngredients(ctx, recipe, req.Items); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := rec.ReconcileTags(ctx, recipe, req.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetRecipe(ctx, recipe.ID)
}

// Update applies a partial update: only request fields that are present are
// assigned, and association reconciliation runs only for the lists the
// request carries. A nil list leaves that relation untouched; an empty list
// removes every association of that kind.
func (s *RecipeService) Update(ctx context.Context, id uint, req *dto.RecipeUpdateRequest) (*entity.DbRecipe, error) {
	recipe, err := s.repo.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := entity.RecipeUpdates{
		Name:        req.Name,
		Description: req.Description,
		Time:        req.Time,
		CookTime:    req.CookTime,
		PrepTime:    req.PrepTime,
		Yields:      req.Yields,
		Source:      req.Source,
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		updates.Name = &trimmed
	}
	if req.Photo != nil {
		stored, err := s.storePhoto(ctx, *req.Photo)
		if err != nil {
			return nil, err
		}
		updates.Photo = &stored
	}

	err = s.repo.Transaction(ctx, func(tx model.Repository) error {
		if !updates.IsEmpty() {
			if err := tx.UpdateRecipe(ctx, recipe.ID, updates); err != nil {
				return err
			}
		}
		rec := NewReconciler(tx)
		if req.Items != nil {
			if err := rec.ReconcileIngredients(ctx, recipe, req.Items); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := rec.ReconcileTags(ctx, recipe, req.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetRecipe(ctx, recipe.ID)
}

// Get loads one recipe with resolved associations.
func (s *RecipeService) Get(ctx context.Context, id uint) (*entity.DbRecipe, error) {
	return s.repo.GetRecipe(ctx, id)
}

// List returns recipes ordered by name, paginated.
func (s *RecipeService) List(ctx context.Context, params *entity.RecipeQuery) ([]entity.DbRecipe, *entity.Meta, error) {
	return s.repo.ListRecipes(ctx, params)
}

// Search returns recipes whose name contains the keyword.
func (s *RecipeService) Search(ctx context.Context, keyword string) ([]entity.DbRecipe, error) {
	return s.repo.SearchRecipes(ctx, keyword)
}

// Filter returns recipes carrying at least one of the given tags.
func (s *RecipeService) Filter(ctx context.Context, tagNames []string) ([]entity.DbRecipe, error) {
	return s.repo.FilterRecipesByTags(ctx, tagNames)
}

// Delete removes a recipe and its associations; shared items and tags stay.
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteRecipe(ctx, id)
}

// storePhoto resolves a photo request value to a stored key. A remote URL is
// downloaded into the storage backend, an inline data URL is decoded and
// stored, and anything else (an already-stored key) passes through verbatim.
func (s *RecipeService) storePhoto(ctx context.Context, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || s.store == nil {
		return trimmed, nil
	}

	switch {
	case strings.HasPrefix(trimmed, "data:"):
		data, ext, err := utils.DecodePhotoPayload(trimmed)
		if err != nil {
			return "", err
		}
		return utils.StorePhoto(ctx, s.store, data, ext)
	case strings.Contains(trimmed, "/"):
		key, err := utils.FetchAndStorePhoto(ctx, s.store, trimmed)
		if err != nil {
			logrus.WithError(err).WithField("photo_url", trimmed).Warn("store photo failed")
			return "", err
		}
		return key, nil
	default:
		return trimmed, nil
	}
}

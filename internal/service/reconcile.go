package service

import (
	"context"
	"cookbook/internal/entity"
	"cookbook/internal/entity/dto"
	"cookbook/internal/model"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Reconciler synchronizes a recipe's ingredient and tag associations with a
// desired set. Callers always pass the full target set; there is no separate
// add mode. Run it on a transaction-scoped repository so a mid-sequence
// failure rolls the whole reconciliation back.
type Reconciler struct {
	repo     model.Repository
	resolver *EntityResolver
}

// NewReconciler creates a reconciler bound to the given repository.
func NewReconciler(repo model.Repository) *Reconciler {
	return &Reconciler{repo: repo, resolver: NewEntityResolver(repo)}
}

// ingredientPlan 由纯函数计算出的食材关联差异。
type ingredientPlan struct {
	stale   []entity.DbRecipeItem
	upserts []dto.RecipeItemInput
}

// planIngredients diffs the current associations against the desired set.
// Associations whose item name is absent from the desired set are stale; every
// desired descriptor becomes an upsert, in order. Duplicate names stay in the
// upsert list so the later descriptor overwrites the earlier one. Names are
// trimmed here with the same rule the resolver applies, so a padded name
// matches its stored item instead of being treated as a removal plus re-add.
func planIngredients(current []entity.DbRecipeItem, desired []dto.RecipeItemInput) ingredientPlan {
	wanted := make(map[string]struct{}, len(desired))
	for _, d := range desired {
		wanted[strings.TrimSpace(d.Name)] = struct{}{}
	}

	plan := ingredientPlan{upserts: desired}
	for _, con := range current {
		if con.Item == nil {
			continue
		}
		if _, ok := wanted[con.Item.Name]; !ok {
			plan.stale = append(plan.stale, con)
		}
	}
	return plan
}

// tagPlan 由纯函数计算出的标签关联差异。
type tagPlan struct {
	stale  []entity.DbRecipeTag
	ensure []string
}

// planTags is the tag counterpart of planIngredients. Tags carry no mutable
// association attributes, so the apply step only creates missing links.
func planTags(current []entity.DbRecipeTag, desired []string) tagPlan {
	wanted := make(map[string]struct{}, len(desired))
	for _, name := range desired {
		wanted[strings.TrimSpace(name)] = struct{}{}
	}

	plan := tagPlan{ensure: desired}
	for _, con := range current {
		if con.Tag == nil {
			continue
		}
		if _, ok := wanted[con.Tag.Name]; !ok {
			plan.stale = append(plan.stale, con)
		}
	}
	return plan
}

// ReconcileIngredients makes the recipe's ingredient associations exactly
// match the desired descriptors: stale associations are deleted, the rest are
// upserted keyed by item identity. Repeated calls with the same desired set
// converge to the same association set.
func (r *Reconciler) ReconcileIngredients(ctx context.Context, recipe *entity.DbRecipe, desired []dto.RecipeItemInput) error {
	current, err := r.repo.ListRecipeItems(ctx, recipe.ID)
	if err != nil {
		return err
	}

	plan := planIngredients(current, desired)

	for _, con := range plan.stale {
		if err := r.repo.DeleteRecipeItem(ctx, con.RecipeID, con.ItemID); err != nil {
			return err
		}
	}

	for _, d := range plan.upserts {
		item, err := r.resolver.ResolveItem(ctx, d.Name)
		if err != nil {
			return err
		}

		existing, err := r.repo.GetRecipeItem(ctx, recipe.ID, item.ID)
		switch {
		case err == nil:
			// 已存在：只覆盖描述符中出现的属性
			updates := entity.RecipeItemUpdates{Description: d.Description, Optional: d.Optional}
			if err := r.repo.UpdateRecipeItem(ctx, existing.RecipeID, existing.ItemID, updates); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			con := &entity.DbRecipeItem{
				RecipeID: recipe.ID,
				ItemID:   item.ID,
			}
			if d.Description != nil {
				con.Description = *d.Description
			}
			if d.Optional != nil {
				con.Optional = *d.Optional
			}
			if err := r.repo.CreateRecipeItem(ctx, con); err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}

// ReconcileTags makes the recipe's tag associations exactly match the desired
// names. Existing associations matching a desired tag are left untouched.
func (r *Reconciler) ReconcileTags(ctx context.Context, recipe *entity.DbRecipe, desired []string) error {
	current, err := r.repo.ListRecipeTags(ctx, recipe.ID)
	if err != nil {
		return err
	}

	plan := planTags(current, desired)

	for _, con := range plan.stale {
		if err := r.repo.DeleteRecipeTag(ctx, con.RecipeID, con.TagID); err != nil {
			return err
		}
	}

	removed := make(map[uint]struct{}, len(plan.stale))
	for _, con := range plan.stale {
		removed[con.TagID] = struct{}{}
	}
	linked := make(map[uint]struct{}, len(current))
	for _, con := range current {
		if _, gone := removed[con.TagID]; gone {
			continue
		}
		linked[con.TagID] = struct{}{}
	}

	for _, name := range plan.ensure {
		tag, err := r.resolver.ResolveTag(ctx, name)
		if err != nil {
			return err
		}
		if _, ok := linked[tag.ID]; ok {
			continue
		}
		con := &entity.DbRecipeTag{RecipeID: recipe.ID, TagID: tag.ID}
		if err := r.repo.CreateRecipeTag(ctx, con); err != nil {
			return err
		}
		linked[tag.ID] = struct{}{}
	}
	return nil
}

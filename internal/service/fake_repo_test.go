package service

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"cookbook/internal/entity"
	"cookbook/internal/model"
)

// fakeRepo 是测试用的内存 Repository 实现，
// 名称唯一性与复合主键行为和 SQL 层保持一致。
type fakeRepo struct {
	nextRecipeID uint
	nextItemID   uint
	nextTagID    uint

	recipes     map[uint]*entity.DbRecipe
	items       map[uint]*entity.DbItem
	tags        map[uint]*entity.DbTag
	recipeItems map[[2]uint]*entity.DbRecipeItem
	recipeTags  map[[2]uint]*entity.DbRecipeTag

	// beforeCreateItem 在 CreateItem 执行前调用，用于模拟并发创建者
	beforeCreateItem func(name string)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		recipes:     make(map[uint]*entity.DbRecipe),
		items:       make(map[uint]*entity.DbItem),
		tags:        make(map[uint]*entity.DbTag),
		recipeItems: make(map[[2]uint]*entity.DbRecipeItem),
		recipeTags:  make(map[[2]uint]*entity.DbRecipeTag),
	}
}

func (f *fakeRepo) Transaction(ctx context.Context, fn func(tx model.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) CreateRecipe(ctx context.Context, recipe *entity.DbRecipe) error {
	f.nextRecipeID++
	recipe.ID = f.nextRecipeID
	clone := *recipe
	f.recipes[recipe.ID] = &clone
	return nil
}

func (f *fakeRepo) UpdateRecipe(ctx context.Context, id uint, updates entity.RecipeUpdates) error {
	recipe, ok := f.recipes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.Name != nil {
		recipe.Name = *updates.Name
	}
	if updates.Description != nil {
		recipe.Description = *updates.Description
	}
	if updates.Time != nil {
		recipe.Time = updates.Time
	}
	if updates.CookTime != nil {
		recipe.CookTime = updates.CookTime
	}
	if updates.PrepTime != nil {
		recipe.PrepTime = updates.PrepTime
	}
	if updates.Yields != nil {
		recipe.Yields = updates.Yields
	}
	if updates.Source != nil {
		recipe.Source = *updates.Source
	}
	if updates.Photo != nil {
		recipe.Photo = *updates.Photo
	}
	return nil
}

func (f *fakeRepo) GetRecipe(ctx context.Context, id uint) (*entity.DbRecipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *recipe
	items, _ := f.ListRecipeItems(ctx, id)
	tags, _ := f.ListRecipeTags(ctx, id)
	clone.Items = items
	clone.Tags = tags
	return &clone, nil
}

func (f *fakeRepo) ListRecipes(ctx context.Context, params *entity.RecipeQuery) ([]entity.DbRecipe, *entity.Meta, error) {
	out := make([]entity.DbRecipe, 0, len(f.recipes))
	for id := range f.recipes {
		r, _ := f.GetRecipe(ctx, id)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, &entity.Meta{Page: 1, PageSize: int64(len(out)), Total: int64(len(out))}, nil
}

func (f *fakeRepo) SearchRecipes(ctx context.Context, keyword string) ([]entity.DbRecipe, error) {
	var out []entity.DbRecipe
	needle := strings.ToLower(keyword)
	for id, r := range f.recipes {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			full, _ := f.GetRecipe(ctx, id)
			out = append(out, *full)
		}
	}
	return out, nil
}

func (f *fakeRepo) FilterRecipesByTags(ctx context.Context, tagNames []string) ([]entity.DbRecipe, error) {
	wanted := make(map[string]struct{}, len(tagNames))
	for _, name := range tagNames {
		wanted[name] = struct{}{}
	}
	var out []entity.DbRecipe
	for id := range f.recipes {
		full, _ := f.GetRecipe(ctx, id)
		for _, con := range full.Tags {
			if con.Tag == nil {
				continue
			}
			if _, ok := wanted[con.Tag.Name]; ok {
				out = append(out, *full)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteRecipe(ctx context.Context, id uint) error {
	if _, ok := f.recipes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.recipes, id)
	for key := range f.recipeItems {
		if key[0] == id {
			delete(f.recipeItems, key)
		}
	}
	for key := range f.recipeTags {
		if key[0] == id {
			delete(f.recipeTags, key)
		}
	}
	return nil
}

func (f *fakeRepo) CreateItem(ctx context.Context, item *entity.DbItem) error {
	if f.beforeCreateItem != nil {
		hook := f.beforeCreateItem
		f.beforeCreateItem = nil
		hook(item.Name)
	}
	for _, existing := range f.items {
		if existing.Name == item.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextItemID++
	item.ID = f.nextItemID
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeRepo) GetItemByName(ctx context.Context, name string) (*entity.DbItem, error) {
	for _, item := range f.items {
		if item.Name == name {
			clone := *item
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListItems(ctx context.Context) ([]entity.DbItem, error) {
	out := make([]entity.DbItem, 0, len(f.items))
	for _, item := range f.items {
		clone := *item
		for key := range f.recipeItems {
			if key[1] == item.ID {
				clone.UsageCount++
			}
		}
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) CreateTag(ctx context.Context, tag *entity.DbTag) error {
	for _, existing := range f.tags {
		if existing.Name == tag.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextTagID++
	tag.ID = f.nextTagID
	clone := *tag
	f.tags[tag.ID] = &clone
	return nil
}

func (f *fakeRepo) GetTagByName(ctx context.Context, name string) (*entity.DbTag, error) {
	for _, tag := range f.tags {
		if tag.Name == name {
			clone := *tag
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListTags(ctx context.Context) ([]entity.DbTag, error) {
	out := make([]entity.DbTag, 0, len(f.tags))
	for _, tag := range f.tags {
		clone := *tag
		for key := range f.recipeTags {
			if key[1] == tag.ID {
				clone.UsageCount++
			}
		}
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) UpdateTag(ctx context.Context, id uint, updates entity.TagUpdates) error {
	tag, ok := f.tags[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.Name != nil {
		tag.Name = *updates.Name
	}
	return nil
}

func (f *fakeRepo) DeleteTag(ctx context.Context, id uint) error {
	if _, ok := f.tags[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.tags, id)
	for key := range f.recipeTags {
		if key[1] == id {
			delete(f.recipeTags, key)
		}
	}
	return nil
}

func (f *fakeRepo) ListRecipeItems(ctx context.Context, recipeID uint) ([]entity.DbRecipeItem, error) {
	var out []entity.DbRecipeItem
	for key, con := range f.recipeItems {
		if key[0] != recipeID {
			continue
		}
		clone := *con
		if item, ok := f.items[con.ItemID]; ok {
			itemClone := *item
			clone.Item = &itemClone
		}
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (f *fakeRepo) GetRecipeItem(ctx context.Context, recipeID, itemID uint) (*entity.DbRecipeItem, error) {
	con, ok := f.recipeItems[[2]uint{recipeID, itemID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *con
	return &clone, nil
}

func (f *fakeRepo) CreateRecipeItem(ctx context.Context, con *entity.DbRecipeItem) error {
	key := [2]uint{con.RecipeID, con.ItemID}
	if _, ok := f.recipeItems[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	clone := *con
	clone.Item = nil
	f.recipeItems[key] = &clone
	return nil
}

func (f *fakeRepo) UpdateRecipeItem(ctx context.Context, recipeID, itemID uint, updates entity.RecipeItemUpdates) error {
	con, ok := f.recipeItems[[2]uint{recipeID, itemID}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.Description != nil {
		con.Description = *updates.Description
	}
	if updates.Optional != nil {
		con.Optional = *updates.Optional
	}
	return nil
}

func (f *fakeRepo) DeleteRecipeItem(ctx context.Context, recipeID, itemID uint) error {
	key := [2]uint{recipeID, itemID}
	if _, ok := f.recipeItems[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.recipeItems, key)
	return nil
}

func (f *fakeRepo) ListRecipeTags(ctx context.Context, recipeID uint) ([]entity.DbRecipeTag, error) {
	var out []entity.DbRecipeTag
	for key, con := range f.recipeTags {
		if key[0] != recipeID {
			continue
		}
		clone := *con
		if tag, ok := f.tags[con.TagID]; ok {
			tagClone := *tag
			clone.Tag = &tagClone
		}
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TagID < out[j].TagID })
	return out, nil
}

func (f *fakeRepo) CreateRecipeTag(ctx context.Context, con *entity.DbRecipeTag) error {
	key := [2]uint{con.RecipeID, con.TagID}
	if _, ok := f.recipeTags[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	clone := *con
	clone.Tag = nil
	f.recipeTags[key] = &clone
	return nil
}

func (f *fakeRepo) DeleteRecipeTag(ctx context.Context, recipeID, tagID uint) error {
	key := [2]uint{recipeID, tagID}
	if _, ok := f.recipeTags[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.recipeTags, key)
	return nil
}

var _ model.Repository = (*fakeRepo)(nil)

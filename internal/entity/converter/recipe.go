package converter

import (
	"cookbook/internal/entity/db"
	"cookbook/internal/entity/dto"
)

// TagToDTO converts db.Tag to dto.Tag.
func TagToDTO(t *db.Tag) dto.Tag {
	if t == nil {
		return dto.Tag{}
	}
	return dto.Tag{
		ID:         t.ID,
		Name:       t.Name,
		UsageCount: t.UsageCount,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// TagsToDTOs converts a slice of db.Tag to dto.Tag.
func TagsToDTOs(tags []db.Tag) []dto.Tag {
	dtos := make([]dto.Tag, len(tags))
	for i, t := range tags {
		dtos[i] = TagToDTO(&t)
	}
	return dtos
}

// ItemToDTO converts db.Item to dto.Item.
func ItemToDTO(it *db.Item) dto.Item {
	if it == nil {
		return dto.Item{}
	}
	return dto.Item{
		ID:         it.ID,
		Name:       it.Name,
		UsageCount: it.UsageCount,
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
}

// ItemsToDTOs converts a slice of db.Item to dto.Item.
func ItemsToDTOs(items []db.Item) []dto.Item {
	dtos := make([]dto.Item, len(items))
	for i, it := range items {
		dtos[i] = ItemToDTO(&it)
	}
	return dtos
}

// RecipeToDTO 将 db.Recipe 转换为仅含标量字段的 dto.Recipe。
// photoURLBuilder 用于将存储路径转换为公开 URL。
func RecipeToDTO(r *db.Recipe, photoURLBuilder func(path string) string) dto.Recipe {
	if r == nil {
		return dto.Recipe{}
	}

	out := dto.Recipe{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Time:        r.Time,
		CookTime:    r.CookTime,
		PrepTime:    r.PrepTime,
		Yields:      r.Yields,
		Source:      r.Source,
		Photo:       r.Photo,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if photoURLBuilder != nil && r.Photo != "" {
		out.PhotoURL = photoURLBuilder(r.Photo)
	}
	return out
}

// RecipeToFullDTO 在标量字段之外附带已解析的食材与标签关联。
func RecipeToFullDTO(r *db.Recipe, photoURLBuilder func(path string) string) dto.Recipe {
	out := RecipeToDTO(r, photoURLBuilder)
	if r == nil {
		return out
	}

	out.Items = make([]dto.RecipeItem, 0, len(r.Items))
	for _, con := range r.Items {
		item := dto.RecipeItem{
			Description: con.Description,
			Optional:    con.Optional,
		}
		if con.Item != nil {
			item.ID = con.Item.ID
			item.Name = con.Item.Name
		} else {
			item.ID = con.ItemID
		}
		out.Items = append(out.Items, item)
	}

	out.Tags = make([]dto.Tag, 0, len(r.Tags))
	for _, con := range r.Tags {
		if con.Tag != nil {
			out.Tags = append(out.Tags, TagToDTO(con.Tag))
		}
	}
	return out
}

// RecipesToFullDTOs converts a slice of db.Recipe to full dto.Recipe views.
func RecipesToFullDTOs(recipes []db.Recipe, photoURLBuilder func(path string) string) []dto.Recipe {
	dtos := make([]dto.Recipe, len(recipes))
	for i := range recipes {
		dtos[i] = RecipeToFullDTO(&recipes[i], photoURLBuilder)
	}
	return dtos
}

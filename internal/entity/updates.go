package entity

// RecipeUpdates 菜谱更新字段。nil 表示请求中未携带该字段。
type RecipeUpdates struct {
	Name        *string
	Description *string
	Time        *int
	CookTime    *int
	PrepTime    *int
	Yields      *int
	Source      *string
	Photo       *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u RecipeUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Time != nil {
		updates["time"] = *u.Time
	}
	if u.CookTime != nil {
		updates["cook_time"] = *u.CookTime
	}
	if u.PrepTime != nil {
		updates["prep_time"] = *u.PrepTime
	}
	if u.Yields != nil {
		updates["yields"] = *u.Yields
	}
	if u.Source != nil {
		updates["source"] = *u.Source
	}
	if u.Photo != nil {
		updates["photo"] = *u.Photo
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u RecipeUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// RecipeItemUpdates 食材关联更新字段。只覆盖请求中出现的属性。
type RecipeItemUpdates struct {
	Description *string
	Optional    *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u RecipeItemUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Optional != nil {
		updates["optional"] = *u.Optional
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u RecipeItemUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// TagUpdates 标签更新字段
type TagUpdates struct {
	Name *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u TagUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u TagUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

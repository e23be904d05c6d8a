package db

import "time"

// Recipe 表示一道菜谱及其标量字段。
// 可选的时长与份量字段用指针区分 "未设置" 与零值。
type Recipe struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Time        *int   `gorm:"column:time" json:"time,omitempty"`
	CookTime    *int   `gorm:"column:cook_time" json:"cook_time,omitempty"`
	PrepTime    *int   `gorm:"column:prep_time" json:"prep_time,omitempty"`
	Yields      *int   `gorm:"column:yields" json:"yields,omitempty"`
	Source      string `gorm:"type:text" json:"source,omitempty"`
	Photo       string `gorm:"type:text" json:"photo,omitempty"`

	Items []RecipeItem `gorm:"foreignKey:RecipeID" json:"items,omitempty"`
	Tags  []RecipeTag  `gorm:"foreignKey:RecipeID" json:"tags,omitempty"`
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeItem 菜谱与食材的关联表，携带用量描述与是否可选。
// (recipe_id, item_id) 为复合主键，同一菜谱同一食材至多一条。
type RecipeItem struct {
	RecipeID  uint      `gorm:"primaryKey" json:"recipe_id"`
	ItemID    uint      `gorm:"primaryKey" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Description string `gorm:"type:varchar(255)" json:"description"`
	Optional    bool   `gorm:"not null;default:false" json:"optional"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName 指定表名
func (RecipeItem) TableName() string {
	return "recipe_items"
}

// RecipeTag 菜谱与标签的关联表。
type RecipeTag struct {
	RecipeID  uint      `gorm:"primaryKey" json:"recipe_id"`
	TagID     uint      `gorm:"primaryKey" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

// TableName 指定表名
func (RecipeTag) TableName() string {
	return "recipe_tags"
}

package db

import "time"

// Item 表示可在多道菜谱间共享的食材条目。
// 名称全局唯一，按名称精确匹配解析。
type Item struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	// 由列表查询的 COUNT 聚合填充，不落表
	UsageCount int64 `gorm:"->;-:migration" json:"usage_count,omitempty"`
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}

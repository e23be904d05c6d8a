package db

import "time"

// Tag 表示用户定义的菜谱标签。
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	// 由列表查询的 COUNT 聚合填充，不落表
	UsageCount int64 `gorm:"->;-:migration" json:"usage_count,omitempty"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

package models

import (
	"database/sql/driver"
	"encoding/json"
)

// StringArray 字符串数组类型，用于存储标签、图片等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return nil
}

// 分类作用域
const (
	CategoryScopeProduct = "product"
	CategoryScopeArticle = "article"
	CategoryScopeExpert  = "expert"
)

// Category 分类表（商品、文章、专家专长共用）
type Category struct {
	ID        string `gorm:"primarykey;type:varchar(64)" json:"id" yaml:"id"`
	Scope     string `gorm:"type:varchar(20);not null;index" json:"scope" yaml:"scope"`
	Name      string `gorm:"type:varchar(120);not null" json:"name" yaml:"name"`
	Icon      string `gorm:"type:varchar(120)" json:"icon" yaml:"icon"`
	Color     string `gorm:"type:varchar(60)" json:"color" yaml:"color"`
	SortOrder int    `gorm:"default:0;index" json:"sort_order" yaml:"sort_order"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

package repository

import (
	"github.com/halotrubus/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	ListByScope(scope string) ([]models.Category, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// ListByScope 按作用域列出分类
func (r *GormCategoryRepository) ListByScope(scope string) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("scope = ?", scope).Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

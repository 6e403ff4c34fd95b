package repository

import (
	"errors"
	"strings"

	"github.com/halotrubus/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	ListFeatured(limit int) ([]models.Product, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if !isFilterAll(filter.Category) {
		query = query.Where("category = ?", strings.TrimSpace(filter.Category))
	}
	if filter.OnlyDiscounted {
		query = query.Where("original_price IS NOT NULL AND original_price > 0")
	}
	query = applySearch(query, filter.Search, "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("sort_order ASC, id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListFeatured 带划线价的精选商品
func (r *GormProductRepository) ListFeatured(limit int) ([]models.Product, error) {
	products, _, err := r.List(ProductListFilter{OnlyDiscounted: true, Page: 1, PageSize: limit})
	return products, err
}

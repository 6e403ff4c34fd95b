package repository

import (
	"errors"
	"strings"

	"github.com/halotrubus/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository 文章数据访问接口
type ArticleRepository interface {
	List(filter ArticleListFilter) ([]models.Article, int64, error)
	GetByID(id string) (*models.Article, error)
	ListTrending(limit int) ([]models.Article, error)
	GetFeatured() (*models.Article, error)
}

// GormArticleRepository GORM 实现
type GormArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository 创建文章仓库
func NewArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// List 文章列表，搜索覆盖标题、摘要与作者
func (r *GormArticleRepository) List(filter ArticleListFilter) ([]models.Article, int64, error) {
	var articles []models.Article
	query := r.db.Model(&models.Article{})
	if !isFilterAll(filter.Category) {
		query = query.Where("category = ?", strings.TrimSpace(filter.Category))
	}
	query = applySearch(query, filter.Search, "title", "excerpt", "author_name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	orderBy := "sort_order ASC, id ASC"
	if strings.EqualFold(strings.TrimSpace(filter.OrderBy), "likes") {
		orderBy = "likes DESC, sort_order ASC, id ASC"
	}
	if err := query.Order(orderBy).Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// GetByID 根据 ID 获取文章
func (r *GormArticleRepository) GetByID(id string) (*models.Article, error) {
	var article models.Article
	if err := r.db.Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// ListTrending 点赞最多的文章
func (r *GormArticleRepository) ListTrending(limit int) ([]models.Article, error) {
	articles, _, err := r.List(ArticleListFilter{OrderBy: "likes", Page: 1, PageSize: limit})
	return articles, err
}

// GetFeatured 目录中的第一篇文章
func (r *GormArticleRepository) GetFeatured() (*models.Article, error) {
	articles, _, err := r.List(ArticleListFilter{Page: 1, PageSize: 1})
	if err != nil || len(articles) == 0 {
		return nil, err
	}
	return &articles[0], nil
}

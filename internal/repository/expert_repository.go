package repository

import (
	"errors"
	"strings"

	"github.com/halotrubus/internal/models"

	"gorm.io/gorm"
)

// ExpertRepository 专家数据访问接口
type ExpertRepository interface {
	List(filter ExpertListFilter) ([]models.Expert, error)
	GetByID(id string) (*models.Expert, error)
}

// GormExpertRepository GORM 实现
type GormExpertRepository struct {
	db *gorm.DB
}

// NewExpertRepository 创建专家仓库
func NewExpertRepository(db *gorm.DB) *GormExpertRepository {
	return &GormExpertRepository{db: db}
}

// List 专家列表，在线专家优先，其余保持目录顺序
func (r *GormExpertRepository) List(filter ExpertListFilter) ([]models.Expert, error) {
	var experts []models.Expert
	query := r.db.Model(&models.Expert{})
	if !isFilterAll(filter.Specialization) {
		query = query.Where("specialization = ?", strings.TrimSpace(filter.Specialization))
	}
	if filter.OnlyOnline {
		query = query.Where("is_online = ?", true)
	}
	query = applySearch(query, filter.Search, "name")
	query = applyLimit(query, filter.Limit)
	if err := query.Order("is_online DESC, sort_order ASC, id ASC").Find(&experts).Error; err != nil {
		return nil, err
	}
	return experts, nil
}

// GetByID 根据 ID 获取专家
func (r *GormExpertRepository) GetByID(id string) (*models.Expert, error) {
	var expert models.Expert
	if err := r.db.Where("id = ?", id).First(&expert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expert, nil
}

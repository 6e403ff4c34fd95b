package repository

import (
	"github.com/halotrubus/internal/models"

	"gorm.io/gorm"
)

// GateAuditLogRepository 门禁审计日志数据访问接口
type GateAuditLogRepository interface {
	Create(log *models.GateAuditLog) error
	List(filter GateAuditLogListFilter) ([]models.GateAuditLog, int64, error)
}

// GormGateAuditLogRepository GORM 实现
type GormGateAuditLogRepository struct {
	db *gorm.DB
}

// NewGateAuditLogRepository 创建门禁审计日志仓库
func NewGateAuditLogRepository(db *gorm.DB) *GormGateAuditLogRepository {
	return &GormGateAuditLogRepository{db: db}
}

// Create 创建审计日志
func (r *GormGateAuditLogRepository) Create(log *models.GateAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// List 查询审计日志，最新的在前
func (r *GormGateAuditLogRepository) List(filter GateAuditLogListFilter) ([]models.GateAuditLog, int64, error) {
	query := r.db.Model(&models.GateAuditLog{})
	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if filter.Intent != "" {
		query = query.Where("intent = ?", filter.Intent)
	}
	if filter.OnlyDenied {
		query = query.Where("allowed = ?", false)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	logs := make([]models.GateAuditLog, 0)
	if err := query.Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

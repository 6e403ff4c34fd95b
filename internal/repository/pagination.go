package repository

import (
	"strings"

	"github.com/halotrubus/internal/constants"

	"gorm.io/gorm"
)

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// applyLimit 限制返回条数，非正数表示不限制
func applyLimit(query *gorm.DB, limit int) *gorm.DB {
	if query == nil || limit <= 0 {
		return query
	}
	return query.Limit(limit)
}

// isFilterAll 空值或"Semua"视为不过滤
func isFilterAll(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, constants.FilterAll)
}

package models

import "time"

// GateAuditLog 门禁决策审计日志
// 说明：记录已登录会话在结算与预约时的策略判断结果，支持按会话与操作检索。
type GateAuditLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SessionID string    `gorm:"type:varchar(64);index;not null" json:"session_id"`
	Role      string    `gorm:"type:varchar(120);index;not null;default:''" json:"role"`
	Intent    string    `gorm:"type:varchar(60);index;not null" json:"intent"`
	Allowed   bool      `gorm:"index;not null;default:false" json:"allowed"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (GateAuditLog) TableName() string {
	return "gate_audit_logs"
}

package service

import (
	"strings"
	"time"

	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/repository"
	"github.com/halotrubus/internal/session"
)

// GateAuditRecordInput 门禁审计记录输入
type GateAuditRecordInput struct {
	SessionID string
	Role      string
	Intent    string
	Allowed   bool
}

// GateAuditService 门禁审计服务
type GateAuditService struct {
	repo  repository.GateAuditLogRepository
	clock func() time.Time
}

// NewGateAuditService 创建门禁审计服务
func NewGateAuditService(repo repository.GateAuditLogRepository) *GateAuditService {
	return &GateAuditService{repo: repo, clock: time.Now}
}

// Record 记录一次门禁决策
func (s *GateAuditService) Record(input GateAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	if strings.TrimSpace(input.SessionID) == "" || strings.TrimSpace(input.Intent) == "" {
		return nil
	}
	item := &models.GateAuditLog{
		SessionID: strings.TrimSpace(input.SessionID),
		Role:      strings.ToLower(strings.TrimSpace(input.Role)),
		Intent:    strings.TrimSpace(input.Intent),
		Allowed:   input.Allowed,
		CreatedAt: s.clock(),
	}
	return s.repo.Create(item)
}

// List 查询门禁审计日志
func (s *GateAuditService) List(filter repository.GateAuditLogListFilter) ([]models.GateAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.GateAuditLog{}, 0, nil
	}
	return s.repo.List(filter)
}

// Wrap 包装门禁策略，每次判断后写入审计日志
func (s *GateAuditService) Wrap(sessionID string, gate session.Gate) session.Gate {
	if s == nil {
		return gate
	}
	return &auditedGate{sessionID: sessionID, gate: gate, audit: s}
}

type auditedGate struct {
	sessionID string
	gate      session.Gate
	audit     *GateAuditService
}

func (g *auditedGate) Allow(role, intent string) bool {
	allowed := true
	if g.gate != nil {
		allowed = g.gate.Allow(role, intent)
	}
	if err := g.audit.Record(GateAuditRecordInput{
		SessionID: g.sessionID,
		Role:      role,
		Intent:    intent,
		Allowed:   allowed,
	}); err != nil {
		logger.Warnw("gate_audit_record_failed", "session_id", g.sessionID, "intent", intent, "error", err)
	}
	return allowed
}

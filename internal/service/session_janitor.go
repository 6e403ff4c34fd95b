package service

import (
	"context"
	"time"
)

const defaultSessionSweepInterval = time.Minute

// SessionJanitor 定期回收空闲会话的后台服务
type SessionJanitor struct {
	sessions *SessionService
	interval time.Duration
}

// NewSessionJanitor 创建会话回收服务
func NewSessionJanitor(sessions *SessionService, interval time.Duration) *SessionJanitor {
	if interval <= 0 {
		interval = defaultSessionSweepInterval
	}
	return &SessionJanitor{sessions: sessions, interval: interval}
}

// Name 服务名称
func (j *SessionJanitor) Name() string {
	return "session_janitor"
}

// Start 按间隔清理，直到 ctx 结束
func (j *SessionJanitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			j.sessions.Sweep()
		}
	}
}

// Stop 停止服务
func (j *SessionJanitor) Stop(ctx context.Context) error {
	return nil
}

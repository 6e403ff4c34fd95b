package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/halotrubus/internal/i18n"
	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/provider"
	"github.com/halotrubus/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationSuccess, c.handleNotification)
	mux.HandleFunc(queue.TaskBookingConfirmed, c.handleBookingConfirmed)
	mux.HandleFunc(queue.TaskPasswordResetRequested, c.handlePasswordReset)
}

func (c *Consumer) handleNotification(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.SessionID) == "" || strings.TrimSpace(payload.Message) == "" {
		logger.Debugw("worker_notification_skip_invalid_payload", "session_id", payload.SessionID)
		return nil
	}
	logger.Infow("worker_notification_delivered",
		"session_id", payload.SessionID,
		"kind", payload.Kind,
		"message", payload.Message,
		"at", payload.At,
	)
	return nil
}

func (c *Consumer) handleBookingConfirmed(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_booking_confirmed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BookingConfirmedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_booking_confirmed_unmarshal_failed", "error", err)
		return err
	}
	if payload.Reference == "" || payload.ExpertID == "" {
		logger.Debugw("worker_booking_confirmed_skip_invalid_payload", "reference", payload.Reference)
		return nil
	}
	if c.Container == nil || c.ExpertRepo == nil {
		logger.Warnw("worker_booking_confirmed_skip_repo_nil", "reference", payload.Reference)
		return nil
	}
	expert, err := c.ExpertRepo.GetByID(payload.ExpertID)
	if err != nil {
		logger.Warnw("worker_booking_confirmed_fetch_expert_failed", "reference", payload.Reference, "expert_id", payload.ExpertID, "error", err)
		return err
	}
	if expert == nil {
		logger.Debugw("worker_booking_confirmed_skip_expert_not_found", "reference", payload.Reference, "expert_id", payload.ExpertID)
		return nil
	}
	logger.Infow("worker_booking_confirmed",
		"session_id", payload.SessionID,
		"reference", payload.Reference,
		"expert_id", expert.ID,
		"kind", payload.Kind,
		"price", payload.Price,
		"status", payload.Status,
		"message", buildBookingConfirmation(payload, expert),
	)
	return nil
}

func (c *Consumer) handlePasswordReset(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_password_reset_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PasswordResetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Email) == "" {
		logger.Debugw("worker_password_reset_skip_empty_email", "session_id", payload.SessionID)
		return nil
	}
	logger.Infow("worker_password_reset_requested",
		"session_id", payload.SessionID,
		"email", maskEmail(payload.Email),
		"at", payload.At,
	)
	return nil
}

// 预约确认文案，专家名以目录为准
func buildBookingConfirmation(payload queue.BookingConfirmedPayload, expert *models.Expert) string {
	name := strings.TrimSpace(payload.ExpertName)
	if expert != nil && strings.TrimSpace(expert.Name) != "" {
		name = strings.TrimSpace(expert.Name)
	}
	return i18n.Sprintf(i18n.DefaultLocale, "notify.consultation_booked", name, payload.Date, payload.Time)
}

func maskEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(normalized, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := normalized[:at], normalized[at:]
	if len(local) <= 2 {
		return local[:1] + "***" + domain
	}
	return local[:2] + "***" + domain
}

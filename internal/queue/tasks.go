package queue

import (
	"encoding/json"
	"time"

	"github.com/halotrubus/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationSuccess 成功提示广播任务
	TaskNotificationSuccess = constants.TaskNotificationSuccess
	// TaskBookingConfirmed 咨询预约确认任务
	TaskBookingConfirmed = constants.TaskBookingConfirmed
	// TaskPasswordResetRequested 找回密码请求任务
	TaskPasswordResetRequested = constants.TaskPasswordResetRequested
)

// NotificationPayload 成功提示任务载荷
type NotificationPayload struct {
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// BookingConfirmedPayload 预约确认任务载荷
type BookingConfirmedPayload struct {
	SessionID  string    `json:"session_id"`
	Reference  string    `json:"reference"`
	ExpertID   string    `json:"expert_id"`
	ExpertName string    `json:"expert_name"`
	Kind       string    `json:"type"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Price      string    `json:"price"`
	Status     string    `json:"status"`
	At         time.Time `json:"at"`
}

// PasswordResetPayload 找回密码任务载荷
type PasswordResetPayload struct {
	SessionID string    `json:"session_id"`
	Email     string    `json:"email"`
	At        time.Time `json:"at"`
}

// NewNotificationTask 创建成功提示任务
func NewNotificationTask(payload NotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationSuccess, body), nil
}

// NewBookingConfirmedTask 创建预约确认任务
func NewBookingConfirmedTask(payload BookingConfirmedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingConfirmed, body), nil
}

// NewPasswordResetTask 创建找回密码任务
func NewPasswordResetTask(payload PasswordResetPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPasswordResetRequested, body), nil
}

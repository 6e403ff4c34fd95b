package queue

import (
	"fmt"
	"strings"

	"github.com/halotrubus/internal/config"
	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/session"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
)

// Client 队列客户端封装
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueNotification 推送成功提示任务
func (c *Client) EnqueueNotification(payload NotificationPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewNotificationTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, opts...)
}

// EnqueueBookingConfirmed 推送预约确认任务
func (c *Client) EnqueueBookingConfirmed(payload BookingConfirmedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewBookingConfirmedTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, opts...)
}

// EnqueuePasswordReset 推送找回密码任务
func (c *Client) EnqueuePasswordReset(payload PasswordResetPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewPasswordResetTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, append([]asynq.Option{asynq.MaxRetry(3)}, opts...)...)
}

func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	options := append([]asynq.Option{asynq.Queue(c.defaultQueue)}, opts...)
	_, err := c.client.Enqueue(task, options...)
	return err
}

// Publish 将会话事件转成队列任务；队列未启用时直接忽略
func (c *Client) Publish(event session.Event) error {
	if !c.Enabled() {
		return nil
	}
	switch event.Type {
	case session.EventNotification:
		return c.EnqueueNotification(NotificationPayloadFromEvent(event))
	case session.EventBookingConfirmed:
		payload, ok := BookingPayloadFromEvent(event)
		if !ok {
			return fmt.Errorf("booking event without booking")
		}
		return c.EnqueueBookingConfirmed(payload)
	case session.EventPasswordResetRequested:
		return c.EnqueuePasswordReset(PasswordResetPayloadFromEvent(event))
	default:
		return fmt.Errorf("unknown session event: %s", event.Type)
	}
}

// NotificationPayloadFromEvent 事件转成功提示载荷
func NotificationPayloadFromEvent(event session.Event) NotificationPayload {
	return NotificationPayload{
		SessionID: event.SessionID,
		Kind:      event.Kind,
		Message:   event.Message,
		At:        event.At,
	}
}

// BookingPayloadFromEvent 事件转预约载荷
func BookingPayloadFromEvent(event session.Event) (BookingConfirmedPayload, bool) {
	if event.Booking == nil {
		return BookingConfirmedPayload{}, false
	}
	b := event.Booking
	return BookingConfirmedPayload{
		SessionID:  event.SessionID,
		Reference:  b.Reference,
		ExpertID:   b.ExpertID,
		ExpertName: b.ExpertName,
		Kind:       b.Kind,
		Date:       b.Date,
		Time:       b.Time,
		Price:      b.Price.String(),
		Status:     b.Status,
		At:         event.At,
	}, true
}

// PasswordResetPayloadFromEvent 事件转找回密码载荷
func PasswordResetPayloadFromEvent(event session.Event) PasswordResetPayload {
	return PasswordResetPayload{
		SessionID: event.SessionID,
		Email:     strings.TrimSpace(event.Email),
		At:        event.At,
	}
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}

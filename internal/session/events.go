package session

import "time"

// 事件类型
const (
	EventNotification           = "notification"
	EventBookingConfirmed       = "booking_confirmed"
	EventPasswordResetRequested = "password_reset_requested"
)

// Event 会话对外发布的事件
type Event struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Kind      string          `json:"kind,omitempty"`
	Message   string          `json:"message,omitempty"`
	Email     string          `json:"email,omitempty"`
	Booking   *BookingRequest `json:"booking,omitempty"`
	At        time.Time       `json:"at"`
}

// EventSink 事件出口，例如异步队列
type EventSink interface {
	Publish(event Event) error
}

// EventSinkFunc 函数适配器
type EventSinkFunc func(event Event) error

// Publish 实现 EventSink
func (f EventSinkFunc) Publish(event Event) error {
	return f(event)
}

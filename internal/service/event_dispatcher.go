package service

import (
	"errors"

	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/session"
)

// EventDispatcher 会话事件分发：记录日志并转发到各出口（例如异步队列）
type EventDispatcher struct {
	sinks []session.EventSink
}

// NewEventDispatcher 创建事件分发器，nil 出口会被忽略
func NewEventDispatcher(sinks ...session.EventSink) *EventDispatcher {
	kept := make([]session.EventSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			kept = append(kept, sink)
		}
	}
	return &EventDispatcher{sinks: kept}
}

// Publish 实现 session.EventSink
func (d *EventDispatcher) Publish(event session.Event) error {
	logger.Debugw("session_event_dispatched",
		"session_id", event.SessionID,
		"type", event.Type,
		"kind", event.Kind,
	)
	if d == nil {
		return nil
	}
	var errs []error
	for _, sink := range d.sinks {
		if err := sink.Publish(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

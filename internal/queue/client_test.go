package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/halotrubus/internal/config"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/session"
)

func TestDisabledClientIgnoresEvents(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.Publish(session.Event{Type: "unknown"}); err != nil {
		t.Fatalf("disabled client should ignore events, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestBookingPayloadFromEvent(t *testing.T) {
	at := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	event := session.Event{
		Type:      session.EventBookingConfirmed,
		SessionID: "s-1",
		At:        at,
		Booking: &session.BookingRequest{
			Reference:  "BK-1",
			ExpertID:   "e-001",
			ExpertName: "Dr. Sri Wahyuni",
			Kind:       "call",
			Date:       "17 Oktober 2026",
			Time:       "10:00",
			Price:      models.NewMoney(75000),
			Status:     "paid",
		},
	}
	payload, ok := BookingPayloadFromEvent(event)
	if !ok {
		t.Fatalf("payload should be built")
	}
	if payload.Price != "75000" || payload.SessionID != "s-1" || payload.Reference != "BK-1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	task, err := NewBookingConfirmedTask(payload)
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskBookingConfirmed {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	var decoded BookingConfirmedPayload
	if err := json.Unmarshal(task.Payload(), &decoded); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if decoded.Kind != "call" || !decoded.At.Equal(at) {
		t.Fatalf("unexpected decoded payload: %+v", decoded)
	}

	if _, ok := BookingPayloadFromEvent(session.Event{Type: session.EventBookingConfirmed}); ok {
		t.Fatalf("event without booking should be rejected")
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, DB: 2, Concurrency: 3})
	if opt.Addr != "redis:6380" || opt.DB != 2 || cfg.Concurrency != 3 {
		t.Fatalf("unexpected custom config: %+v %+v", opt, cfg)
	}
}

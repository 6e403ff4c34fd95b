package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Booking.PricingTier != "two_tier" {
		t.Fatalf("unexpected pricing tier: %s", cfg.Booking.PricingTier)
	}
	if cfg.Booking.ScheduleDays != 7 {
		t.Fatalf("schedule days want 7 got %d", cfg.Booking.ScheduleDays)
	}
	if len(cfg.Booking.TimeSlots) != 9 || cfg.Booking.TimeSlots[0] != "09:00" {
		t.Fatalf("unexpected time slots: %v", cfg.Booking.TimeSlots)
	}
	if cfg.Redis.Enabled || cfg.Queue.Enabled {
		t.Fatalf("redis and queue should be disabled by default")
	}
	if cfg.Security.SessionRateLimit.WindowSeconds != 60 || cfg.Security.SessionRateLimit.MaxRequests != 30 {
		t.Fatalf("unexpected session rate limit: %+v", cfg.Security.SessionRateLimit)
	}
	if !cfg.Catalog.SeedOnStart {
		t.Fatalf("catalog should be seeded on start by default")
	}
}

func TestDecodeYAMLOverride(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	raw := `
booking:
  pricing_tier: " THREE_TIER "
  time_slots: ["08:00", "08:30"]
session:
  idle_ttl_minutes: 5
`
	if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
		t.Fatalf("read yaml failed: %v", err)
	}
	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Booking.PricingTier != "three_tier" {
		t.Fatalf("pricing tier should be normalized, got %q", cfg.Booking.PricingTier)
	}
	if len(cfg.Booking.TimeSlots) != 2 {
		t.Fatalf("time slots should be overridden, got %v", cfg.Booking.TimeSlots)
	}
	if cfg.Session.IdleTTLMinutes != 5 {
		t.Fatalf("idle ttl want 5 got %d", cfg.Session.IdleTTLMinutes)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("defaults should survive override, got port %s", cfg.Server.Port)
	}
}

package session

import (
	"testing"
	"time"
)

var wib = time.FixedZone("WIB", 7*60*60)

func TestBuildSchedule(t *testing.T) {
	now := time.Date(2026, time.October, 16, 22, 30, 0, 0, wib)
	s := BuildSchedule(now, 0, nil)

	if len(s.Dates) != DefaultScheduleDays {
		t.Fatalf("want %d dates got %d", DefaultScheduleDays, len(s.Dates))
	}
	first := s.Dates[0]
	if first.Value != "16 Oktober 2026" || first.Day != 16 || first.Weekday != "Jum" {
		t.Fatalf("unexpected first date: %+v", first)
	}
	last := s.Dates[len(s.Dates)-1]
	if last.Value != "22 Oktober 2026" || last.Weekday != "Kam" {
		t.Fatalf("unexpected last date: %+v", last)
	}
	if len(s.TimeSlots) != 9 || s.TimeSlots[0] != "09:00" || s.TimeSlots[8] != "20:00" {
		t.Fatalf("unexpected slots: %v", s.TimeSlots)
	}
}

func TestBuildScheduleCrossesMonthAndYear(t *testing.T) {
	now := time.Date(2026, time.December, 29, 8, 0, 0, 0, wib)
	s := BuildSchedule(now, 5, []string{"08:00"})
	if s.Dates[3].Value != "1 Januari 2027" {
		t.Fatalf("unexpected rollover date: %+v", s.Dates[3])
	}
	if !s.HasDate("2 Januari 2027") || s.HasDate("3 Januari 2027") {
		t.Fatalf("HasDate mismatch: %+v", s.Dates)
	}
	if !s.HasTime("08:00") || s.HasTime("09:00") {
		t.Fatalf("HasTime mismatch: %v", s.TimeSlots)
	}
}

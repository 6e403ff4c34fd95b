package session

import (
	"fmt"
	"time"
)

var (
	weekdayShortID = [...]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}
	monthNameID    = [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
)

// DefaultTimeSlots 默认可预约时段
var DefaultTimeSlots = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "19:00", "20:00"}

// DefaultScheduleDays 从今天起可预约的天数
const DefaultScheduleDays = 7

// DateOption 可选日期
type DateOption struct {
	Weekday string `json:"weekday"` // 星期缩写，例如 Sen
	Day     int    `json:"day"`
	Value   string `json:"value"` // 完整日期，例如 16 Oktober 2026
}

// ScheduleOptions 日期与时段
type ScheduleOptions struct {
	Dates     []DateOption `json:"dates"`
	TimeSlots []string     `json:"time_slots"`
}

// BuildSchedule 生成从 now 所在日期开始的连续日期
func BuildSchedule(now time.Time, days int, slots []string) ScheduleOptions {
	if days <= 0 {
		days = DefaultScheduleDays
	}
	if len(slots) == 0 {
		slots = DefaultTimeSlots
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	dates := make([]DateOption, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		dates = append(dates, DateOption{
			Weekday: weekdayShortID[d.Weekday()],
			Day:     d.Day(),
			Value:   FormatDateID(d),
		})
	}
	timeSlots := make([]string, len(slots))
	copy(timeSlots, slots)
	return ScheduleOptions{Dates: dates, TimeSlots: timeSlots}
}

// FormatDateID 印尼语长日期
func FormatDateID(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNameID[t.Month()-1], t.Year())
}

// HasDate 日期是否可选
func (s ScheduleOptions) HasDate(value string) bool {
	for _, d := range s.Dates {
		if d.Value == value {
			return true
		}
	}
	return false
}

// HasTime 时段是否可选
func (s ScheduleOptions) HasTime(value string) bool {
	for _, slot := range s.TimeSlots {
		if slot == value {
			return true
		}
	}
	return false
}

package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/models"
)

// WizardState 预约向导状态
type WizardState int

const (
	StateProfileSelect WizardState = iota + 1
	StateSchedule
	StateConfirm
)

// String 状态名称
func (s WizardState) String() string {
	switch s {
	case StateProfileSelect:
		return "profile_select"
	case StateSchedule:
		return "schedule"
	case StateConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Step 页面序号 1-3
func (s WizardState) Step() int {
	return int(s)
}

type wizardEvent string

const (
	eventAdvanceInstant   wizardEvent = "advance_instant"
	eventAdvanceScheduled wizardEvent = "advance_scheduled"
	eventConfirmSchedule  wizardEvent = "confirm_schedule"
	eventBack             wizardEvent = "back"
	eventBackInstant      wizardEvent = "back_instant"
	eventBackScheduled    wizardEvent = "back_scheduled"
)

var wizardTransitions = map[WizardState]map[wizardEvent]WizardState{
	StateProfileSelect: {
		eventAdvanceInstant:   StateConfirm,
		eventAdvanceScheduled: StateSchedule,
	},
	StateSchedule: {
		eventConfirmSchedule: StateConfirm,
		eventBack:            StateProfileSelect,
	},
	StateConfirm: {
		eventBackInstant:   StateProfileSelect,
		eventBackScheduled: StateSchedule,
	},
}

// entryPath 记录进入确认页的路径，用于返回
type entryPath int

const (
	entryNone entryPath = iota
	entryInstant
	entryScheduled
)

// BookingDraft 预约草稿
type BookingDraft struct {
	Expert models.Expert `json:"expert"`
	Kind   string        `json:"kind"`
	Date   string        `json:"date,omitempty"`
	Time   string        `json:"time,omitempty"`
	Step   int           `json:"step"`
}

// BookingRequest 提交后的预约
type BookingRequest struct {
	Reference      string       `json:"reference"`
	ExpertID       string       `json:"expert_id"`
	ExpertName     string       `json:"expert_name"`
	ExpertImage    string       `json:"expert_image,omitempty"`
	Kind           string       `json:"type"`
	Date           string       `json:"date"`
	Time           string       `json:"time"`
	Price          models.Money `json:"price"`
	PriceFormatted string       `json:"price_formatted"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Wizard 单个专家的三步预约状态机
type Wizard struct {
	expert   models.Expert
	pricing  PricingPolicy
	schedule ScheduleOptions
	state    WizardState
	entry    entryPath
	kind     string
	date     string
	time     string
}

// NewWizard 创建向导，默认选中即时聊天
func NewWizard(expert models.Expert, pricing PricingPolicy, schedule ScheduleOptions) *Wizard {
	w := &Wizard{expert: expert, pricing: pricing, schedule: schedule}
	w.Reset()
	return w
}

// Reset 回到第一步并清空草稿
func (w *Wizard) Reset() {
	w.state = StateProfileSelect
	w.entry = entryNone
	w.kind = constants.ConsultationKindChat
	w.date = ""
	w.time = ""
}

// State 当前状态
func (w *Wizard) State() WizardState {
	return w.state
}

// Expert 当前专家
func (w *Wizard) Expert() models.Expert {
	return w.expert
}

// Schedule 可选日期与时段
func (w *Wizard) Schedule() ScheduleOptions {
	return w.schedule
}

// Draft 当前草稿
func (w *Wizard) Draft() BookingDraft {
	return BookingDraft{
		Expert: w.expert,
		Kind:   w.kind,
		Date:   w.date,
		Time:   w.time,
		Step:   w.state.Step(),
	}
}

// CanAdvance 第一步是否允许继续
func (w *Wizard) CanAdvance() bool {
	switch w.state {
	case StateProfileSelect:
		return !(isInstantKind(w.kind) && !w.expert.IsOnline)
	case StateSchedule:
		return w.date != "" && w.time != ""
	default:
		return false
	}
}

// SelectKind 选择咨询方式，仅在第一步有效
func (w *Wizard) SelectKind(kind string) error {
	if w.state != StateProfileSelect {
		return fmt.Errorf("%w: select kind at %s", ErrInvalidTransition, w.state)
	}
	if !w.pricing.Supports(kind) {
		return fmt.Errorf("%w: %s", ErrConsultationKindUnsupported, kind)
	}
	if kind != w.kind {
		w.date = ""
		w.time = ""
	}
	w.kind = kind
	return nil
}

// Advance 前进一步；即时聊天跳过排期
func (w *Wizard) Advance() error {
	switch w.state {
	case StateProfileSelect:
		if isInstantKind(w.kind) {
			date, tm, err := resolveSchedule(w.expert, w.kind, "", "")
			if err != nil {
				return err
			}
			if err := w.fire(eventAdvanceInstant); err != nil {
				return err
			}
			w.entry = entryInstant
			w.date = date
			w.time = tm
			return nil
		}
		if err := w.fire(eventAdvanceScheduled); err != nil {
			return err
		}
		w.entry = entryScheduled
		return nil
	case StateSchedule:
		if _, _, err := resolveSchedule(w.expert, w.kind, w.date, w.time); err != nil {
			return err
		}
		return w.fire(eventConfirmSchedule)
	default:
		return fmt.Errorf("%w: advance at %s", ErrInvalidTransition, w.state)
	}
}

// Back 后退一步；从即时路径进入的确认页直接回到第一步
func (w *Wizard) Back() error {
	switch w.state {
	case StateSchedule:
		return w.fire(eventBack)
	case StateConfirm:
		if w.entry == entryInstant {
			if err := w.fire(eventBackInstant); err != nil {
				return err
			}
			w.entry = entryNone
			w.date = ""
			w.time = ""
			return nil
		}
		return w.fire(eventBackScheduled)
	default:
		return fmt.Errorf("%w: back at %s", ErrInvalidTransition, w.state)
	}
}

// SelectDate 选择日期，仅在排期页有效
func (w *Wizard) SelectDate(value string) error {
	if w.state != StateSchedule {
		return fmt.Errorf("%w: select date at %s", ErrInvalidTransition, w.state)
	}
	if !w.schedule.HasDate(value) {
		return fmt.Errorf("%w: date %q", ErrSlotUnavailable, value)
	}
	w.date = value
	return nil
}

// SelectTime 选择时段，仅在排期页有效
func (w *Wizard) SelectTime(value string) error {
	if w.state != StateSchedule {
		return fmt.Errorf("%w: select time at %s", ErrInvalidTransition, w.state)
	}
	if !w.schedule.HasTime(value) {
		return fmt.Errorf("%w: time %q", ErrSlotUnavailable, value)
	}
	w.time = value
	return nil
}

// Price 当前咨询方式的价格
func (w *Wizard) Price() models.Money {
	price, err := w.pricing.Price(w.expert.Price, w.kind)
	if err != nil {
		return w.expert.Price
	}
	return price
}

// Quotes 各咨询方式报价
func (w *Wizard) Quotes() []Quote {
	return w.pricing.Quotes(w.expert.Price)
}

// Resolve 确认页上的最终日期与时段
func (w *Wizard) Resolve() (kind, date, tm string, err error) {
	if w.state != StateConfirm {
		return "", "", "", fmt.Errorf("%w: submit at %s", ErrInvalidTransition, w.state)
	}
	return w.kind, w.date, w.time, nil
}

// resolveSchedule 即时聊天要求专家在线并使用占位时间，其余方式必须选定日期和时间
func resolveSchedule(expert models.Expert, kind, date, tm string) (string, string, error) {
	if isInstantKind(kind) {
		if !expert.IsOnline {
			return "", "", ErrExpertOffline
		}
		return constants.InstantDateLabel, constants.InstantTimeLabel, nil
	}
	date = strings.TrimSpace(date)
	tm = strings.TrimSpace(tm)
	if date == "" || tm == "" {
		return "", "", ErrScheduleIncomplete
	}
	return date, tm, nil
}

func (w *Wizard) fire(event wizardEvent) error {
	next, ok := wizardTransitions[w.state][event]
	if !ok {
		return fmt.Errorf("%w: %s at %s", ErrInvalidTransition, event, w.state)
	}
	w.state = next
	return nil
}

// WizardView 向导只读视图
type WizardView struct {
	State      string          `json:"state"`
	Step       int             `json:"step"`
	Draft      BookingDraft    `json:"draft"`
	Price      models.Money    `json:"price"`
	PriceLabel string          `json:"price_formatted"`
	CanAdvance bool            `json:"can_advance"`
	Quotes     []Quote         `json:"quotes"`
	Schedule   ScheduleOptions `json:"schedule"`
}

// View 生成只读视图
func (w *Wizard) View() *WizardView {
	price := w.Price()
	return &WizardView{
		State:      w.state.String(),
		Step:       w.state.Step(),
		Draft:      w.Draft(),
		Price:      price,
		PriceLabel: models.FormatPrice(price),
		CanAdvance: w.CanAdvance(),
		Quotes:     w.Quotes(),
		Schedule:   w.schedule,
	}
}

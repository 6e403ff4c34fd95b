package session

import (
	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/models"
)

// SuccessNotice 成功提示
type SuccessNotice struct {
	Kind    string           `json:"kind"`
	Message string           `json:"message,omitempty"`
	Booking *BookingRequest  `json:"booking,omitempty"`
	Receipt *CheckoutReceipt `json:"receipt,omitempty"`
}

// Overlay 当前唯一的浮层及其载荷；Kind 为空表示没有浮层
type Overlay struct {
	Kind    string
	Product *models.Product
	Expert  *models.Expert
	Article *models.Article
	Wizard  *Wizard
	Success *SuccessNotice

	// 成功提示关闭后恢复的浮层
	restore *Overlay
}

func noOverlay() Overlay {
	return Overlay{Kind: constants.OverlayNone}
}

// IsOpen 是否有浮层
func (o Overlay) IsOpen() bool {
	return o.Kind != constants.OverlayNone
}

// OverlayView 浮层只读视图
type OverlayView struct {
	Kind     string          `json:"kind"`
	Product  *models.Product `json:"product,omitempty"`
	Expert   *models.Expert  `json:"expert,omitempty"`
	Article  *models.Article `json:"article,omitempty"`
	Booking  *WizardView     `json:"booking,omitempty"`
	Success  *SuccessNotice  `json:"success,omitempty"`
	Restores string          `json:"restores,omitempty"`
}

func (o Overlay) view() OverlayView {
	v := OverlayView{
		Kind:    o.Kind,
		Product: o.Product,
		Expert:  o.Expert,
		Article: o.Article,
		Success: o.Success,
	}
	if o.Wizard != nil {
		v.Booking = o.Wizard.View()
	}
	if o.restore != nil {
		v.Restores = o.restore.Kind
	}
	return v
}

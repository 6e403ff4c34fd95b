package constants

// 主导航标签
const (
	TabHome     = "home"
	TabShop     = "shop"
	TabConsult  = "consult"
	TabArticles = "articles"
	TabProfile  = "profile"
)

// 浮层类型
const (
	OverlayNone          = ""
	OverlayCart          = "cart"
	OverlayProductDetail = "product_detail"
	OverlayBooking       = "booking"
	OverlayArticleDetail = "article_detail"
	OverlayAuth          = "auth"
	OverlaySuccess       = "success"
)

// 成功提示类型
const (
	SuccessKindCart         = "cart"
	SuccessKindConsultation = "consultation"
	SuccessKindCheckout     = "checkout"
)

// 咨询方式
const (
	ConsultationKindChat  = "chat"
	ConsultationKindCall  = "call"
	ConsultationKindVoice = "voice"
	ConsultationKindVideo = "video"
)

// 咨询定价档位
const (
	PricingTierTwo   = "two_tier"
	PricingTierThree = "three_tier"
)

// 咨询记录状态
const (
	ConsultationStatusPending   = "pending"
	ConsultationStatusPaid      = "paid"
	ConsultationStatusActive    = "active"
	ConsultationStatusCompleted = "completed"
)

// 用户角色
const (
	RoleGuest    = "guest"
	RoleConsumer = "consumer"
	RoleExpert   = "expert"
)

// 受门禁保护的操作
const (
	IntentCheckout = "checkout"
	IntentBooking  = "booking"
	ActionSubmit   = "submit"
)

// 即时聊天的日期/时间占位值
const (
	InstantDateLabel = "Hari ini (Instan)"
	InstantTimeLabel = "Sekarang"
)

// 分类筛选中表示"全部"的值
const FilterAll = "Semua"

// 会话上下文键
const (
	ContextKeySessionID = "session_id"
	ContextKeyRequestID = "request_id"
)

// 队列与任务类型
const (
	QueueDefault               = "default"
	TaskNotificationSuccess    = "notification:success"
	TaskBookingConfirmed       = "booking:confirmed"
	TaskPasswordResetRequested = "auth:password_reset_requested"
)

package public

import (
	"errors"

	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/service"
	"github.com/halotrubus/internal/session"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrExpertNotFound, code: response.CodeNotFound, key: "error.expert_not_found"},
	{target: service.ErrArticleNotFound, code: response.CodeNotFound, key: "error.article_not_found"},
}

var sessionCommonErrorRules = []mappedHandlerError{
	{target: service.ErrSessionNotFound, code: response.CodeUnauthorized, key: "error.session_not_found"},
	{target: service.ErrSessionTokenInvalid, code: response.CodeUnauthorized, key: "error.session_token_invalid"},
}

var sessionNavigationErrorRules = []mappedHandlerError{
	{target: session.ErrInvalidTab, code: response.CodeBadRequest, key: "error.tab_invalid"},
	{target: service.ErrInvalidOverlay, code: response.CodeBadRequest, key: "error.overlay_invalid"},
}

var sessionBookingErrorRules = []mappedHandlerError{
	{target: session.ErrBookingNotOpen, code: response.CodeBadRequest, key: "error.booking_not_open"},
	{target: session.ErrInvalidTransition, code: response.CodeBadRequest, key: "error.booking_invalid_transition"},
	{target: session.ErrConsultationKindUnsupported, code: response.CodeBadRequest, key: "error.consultation_kind_invalid"},
	{target: session.ErrExpertOffline, code: response.CodeBadRequest, key: "error.expert_offline"},
	{target: session.ErrScheduleIncomplete, code: response.CodeBadRequest, key: "error.schedule_incomplete"},
	{target: session.ErrSlotUnavailable, code: response.CodeBadRequest, key: "error.slot_unavailable"},
}

var sessionProfileErrorRules = []mappedHandlerError{
	{target: session.ErrInvalidRole, code: response.CodeBadRequest, key: "error.role_invalid"},
}

// 会话接口统一使用全部规则
var sessionErrorRules = concatMappedHandlerErrors(
	sessionCommonErrorRules,
	catalogErrorRules,
	sessionNavigationErrorRules,
	sessionBookingErrorRules,
	sessionProfileErrorRules,
)

package shared

import (
	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/i18n"
	"github.com/halotrubus/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 与 session_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	fields := make([]interface{}, 0, 4)
	for _, key := range []string{constants.ContextKeyRequestID, constants.ContextKeySessionID} {
		if value, ok := c.Get(key); ok {
			if id, ok := value.(string); ok && id != "" {
				fields = append(fields, key, id)
			}
		}
	}
	return logger.SW(fields...)
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	appErr := response.NewAppError(code, key, i18n.T(i18n.ResolveLocale(c), key), err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"key", appErr.Key,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

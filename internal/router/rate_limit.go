package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/i18n"
	"github.com/halotrubus/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流主体（IP、邮箱等）
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则，窗口或次数不大于 0 时不生效
type RateLimitRule struct {
	Name          string
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(subject string) string {
	if r.Prefix == "" {
		return subject
	}
	return fmt.Sprintf("%s:%s", r.Prefix, subject)
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.rate_limited"
}

// 固定窗口计数：首次计数时设置过期，返回 {count, ttl}
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 固定窗口限流，client 为空时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		subject := ""
		if keyFunc != nil {
			subject = strings.TrimSpace(keyFunc(c))
		}
		if subject == "" {
			subject = c.ClientIP()
		}
		locale := i18n.ResolveLocale(c)

		values, err := rateLimitScript.Run(c.Request.Context(), client, []string{rule.key(subject)}, rule.WindowSeconds).Int64Slice()
		if err == nil && len(values) < 2 {
			err = fmt.Errorf("unexpected rate limit reply: %v", values)
		}
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "rule", rule.Name, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(locale, "error.rate_limit_unavailable"))
			c.Abort()
			return
		}

		if values[0] > int64(rule.MaxRequests) {
			wait := retryAfterSeconds(time.Duration(values[1])*time.Second, rule.WindowSeconds)
			logger.Infow("rate_limited", "rule", rule.Name, "count", values[0], "retry_after", wait)
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(locale, rule.messageKey(), wait))
			c.Abort()
			return
		}
		c.Next()
	}
}

// retryAfterSeconds 剩余等待秒数，key 无过期时退回整个窗口
func retryAfterSeconds(ttl time.Duration, windowSeconds int) int {
	seconds := int(math.Ceil(ttl.Seconds()))
	if seconds < 1 {
		seconds = windowSeconds
	}
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 字段（小写）+ IP 限流，字段缺失时只用 IP
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONField 读取请求体中的字符串字段，并把请求体还原给后续处理器
func peekJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

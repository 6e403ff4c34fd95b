package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleID      = "id-ID"
	LocaleEN      = "en-US"
	DefaultLocale = LocaleID
)

var supportedTags = []language.Tag{
	language.MustParse(LocaleID),
	language.MustParse(LocaleEN),
}

var matcher = language.NewMatcher(supportedTags)

// ResolveLocale 依次读取 ?lang 参数、X-Locale 与 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if v := strings.TrimSpace(c.Query("lang")); v != "" {
		return Match(v)
	}
	if v := strings.TrimSpace(c.GetHeader("X-Locale")); v != "" {
		return Match(v)
	}
	return Match(c.GetHeader("Accept-Language"))
}

// Match 将任意语言描述匹配到支持的语言
func Match(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedTags[index].String()
}

// T 翻译消息 key，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译后按参数格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}

package public

import "github.com/halotrubus/internal/provider"

// Handler 前台接口处理器入口
// 说明：公开目录查询与应用会话操作都由该处理器提供。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

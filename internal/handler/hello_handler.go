// Package handler 提供 HTTP 请求处理器
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"member-chat-server/pkg/response"
)

// HelloHandler 问候接口处理器
// 无副作用，不需要认证，可兼作连通性检查
type HelloHandler struct{}

// NewHelloHandler 创建 HelloHandler 实例
func NewHelloHandler() *HelloHandler {
	return &HelloHandler{}
}

// HelloResponse 问候响应
type HelloResponse struct {
	Message   string    `json:"message"`   // 固定问候语
	Timestamp time.Time `json:"timestamp"` // 服务器当前时间
}

// Hello 返回问候语和服务器时间
// GET /hello/
func (h *HelloHandler) Hello(c *gin.Context) {
	response.OK(c, HelloResponse{
		Message:   "Hello!",
		Timestamp: time.Now(),
	})
}

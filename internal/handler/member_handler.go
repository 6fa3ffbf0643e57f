// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"member-chat-server/internal/middleware"
	"member-chat-server/pkg/response"
)

// MemberHandler 成员请求处理器
type MemberHandler struct{}

// NewMemberHandler 创建 MemberHandler 实例
func NewMemberHandler() *MemberHandler {
	return &MemberHandler{}
}

// Me 返回当前认证成员的公开信息
// GET /members/me/
// 成员由认证中间件写入上下文，令牌解析到谁就返回谁
func (h *MemberHandler) Me(c *gin.Context) {
	member := middleware.GetMember(c)
	if member == nil {
		// 路由配置错误才会走到这里（未挂认证中间件）
		response.Unauthorized(c, "Учетные данные не были предоставлены.")
		return
	}
	response.OK(c, member.View())
}

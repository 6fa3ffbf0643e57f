// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"member-chat-server/internal/middleware"
	"member-chat-server/internal/service"
	"member-chat-server/pkg/response"
	"member-chat-server/pkg/validate"
)

// 用户可见的错误信息
const (
	msgListFailed = "Не удалось загрузить сообщения."
	msgPostFailed = "Не удалось отправить сообщение."
)

// ChatHandler 聊天请求处理器
// 两个操作都要求认证：读全部消息、发一条消息
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// PostMessageRequest 发消息请求体
type PostMessageRequest struct {
	Text string `json:"text"`
}

// List 返回全部消息
// GET /chat/messages/
// 按创建时间正序，每条消息带作者用户名；任何已认证成员看到同样的列表
func (h *ChatHandler) List(c *gin.Context) {
	views, err := h.chatService.ListMessages(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.InternalError(c, msgListFailed)
		return
	}
	response.OK(c, views)
}

// Post 发布一条消息
// POST /chat/messages/
// 作者取自认证上下文，客户端不能替别人发言
func (h *ChatHandler) Post(c *gin.Context) {
	member := middleware.GetMember(c)
	if member == nil {
		response.Unauthorized(c, "Учетные данные не были предоставлены.")
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgBadRequestBody)
		return
	}

	// 输入校验：非空且不超过配置的长度上限
	fields := validate.Fields{}
	if validate.Required(fields, "text", req.Text) {
		validate.MaxLen(fields, "text", req.Text, h.chatService.MaxLen())
	}
	if !fields.Empty() {
		response.FieldErrors(c, fields)
		return
	}

	view, err := h.chatService.PostMessage(c.Request.Context(), member, req.Text)
	if err != nil {
		// 服务层的不变式兜底与上面的校验同构
		if errors.Is(err, service.ErrMessageEmpty) {
			response.FieldErrors(c, validate.Fields{"text": {validate.MsgRequired}})
			return
		}
		if errors.Is(err, service.ErrMessageTooLong) {
			response.FieldErrors(c, validate.Fields{"text": {validate.MsgTooLong}})
			return
		}
		c.Error(err)
		response.InternalError(c, msgPostFailed)
		return
	}

	response.Created(c, view)
}

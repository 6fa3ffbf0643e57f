// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"member-chat-server/internal/model"
	"member-chat-server/internal/repository"
)

// 定义业务错误
var (
	ErrMessageEmpty   = errors.New("消息内容为空")
	ErrMessageTooLong = errors.New("消息内容超长")
)

// ChatService 聊天服务
// 处理消息的发布和读取
type ChatService struct {
	messageRepo *repository.MessageRepository // 消息数据访问层
	maxLen      int                           // 单条消息长度上限
}

// NewChatService 创建 ChatService 实例
// 参数:
//   - messageRepo: 消息仓库
//   - maxLen: 单条消息长度上限（来自配置）
func NewChatService(messageRepo *repository.MessageRepository, maxLen int) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		maxLen:      maxLen,
	}
}

// MaxLen 返回单条消息长度上限
// Handler 层的输入校验使用同一个值
func (s *ChatService) MaxLen() int {
	return s.maxLen
}

// PostMessage 发布一条消息
// 长度校验在 Handler 层完成，这里作为不变式再次兜底：
// 空消息和超长消息不允许落库
// 参数:
//   - ctx: 上下文
//   - author: 消息作者（已认证的成员）
//   - text: 消息内容
//
// 返回:
//   - model.ChatMessageView: 已存储消息的对外视图
//   - error: 校验或数据库错误
func (s *ChatService) PostMessage(ctx context.Context, author *model.Member, text string) (model.ChatMessageView, error) {
	if text == "" {
		return model.ChatMessageView{}, ErrMessageEmpty
	}
	if utf8.RuneCountInString(text) > s.maxLen {
		return model.ChatMessageView{}, ErrMessageTooLong
	}

	message := &model.ChatMessage{
		AuthorID: author.ID,
		Text:     text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return model.ChatMessageView{}, err
	}

	// 作者就是当前请求的成员，直接挂上关联用于序列化
	message.Author = author
	return message.View(), nil
}

// ListMessages 获取全部消息
// 按创建时间正序排列，每条消息带作者用户名
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - []model.ChatMessageView: 消息视图列表
//   - error: 数据库错误
func (s *ChatService) ListMessages(ctx context.Context) ([]model.ChatMessageView, error) {
	messages, err := s.messageRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.ChatMessageView, 0, len(messages))
	for i := range messages {
		views = append(views, messages[i].View())
	}
	return views, nil
}

// Package repository 提供数据访问层的实现
package repository

import (
	"context"

	"gorm.io/gorm"

	"member-chat-server/internal/model"
)

// MessageRepository 消息数据访问层
// 负责聊天消息的所有数据库操作
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 创建新消息
// 参数:
//   - ctx: 上下文
//   - message: 消息对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *MessageRepository) Create(ctx context.Context, message *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListAll 获取全部消息
// 按创建时间正序排列（最早的在前），并预加载作者信息
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - []model.ChatMessage: 消息列表
//   - error: 数据库错误
func (r *MessageRepository) ListAll(ctx context.Context) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at ASC, id ASC"). // 同一时刻的消息按插入顺序稳定排序
		Find(&messages).Error
	return messages, err
}

// CountByAuthorID 统计某个成员发送的消息数量
// 参数:
//   - ctx: 上下文
//   - authorID: 作者成员ID
//
// 返回:
//   - int64: 消息数量
//   - error: 数据库错误
func (r *MessageRepository) CountByAuthorID(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

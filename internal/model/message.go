// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// ChatMessage 聊天消息模型
// 对应数据库表 chat_messages
// 消息创建后不可修改、不可删除
type ChatMessage struct {
	// ID 消息唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// AuthorID 作者成员ID，外键关联 members.id
	AuthorID int64 `gorm:"index;not null" json:"author_id"`

	// Text 消息内容
	// 长度上限在输入校验层控制，存储层使用 TEXT 类型
	Text string `gorm:"type:text;not null" json:"text"`

	// CreatedAt 消息创建时间
	// 消息的规范排序就是按此字段升序
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Author 消息作者（多对一关系）
	// 成员删除时消息级联删除
	Author *Member `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// TableName 指定表名
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// ChatMessageView 消息的对外序列化结构
// 对外暴露作者用户名而不是作者ID
type ChatMessageView struct {
	ID             int64     `json:"id"`
	AuthorUsername string    `json:"author_username"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// View 返回消息的对外视图
// 要求 Author 关联已加载；未加载时用户名为空字符串
func (m *ChatMessage) View() ChatMessageView {
	v := ChatMessageView{
		ID:        m.ID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
	if m.Author != nil {
		v.AuthorUsername = m.Author.Username
	}
	return v
}

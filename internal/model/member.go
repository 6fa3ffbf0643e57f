// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// Member 成员模型
// 对应数据库表 members
// 存储成员的基本信息，包括认证凭据
type Member struct {
	// ID 成员唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// Username 用户名，用于登录，全局唯一（区分大小写）
	// 长度限制 150 字符，建立唯一索引
	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`

	// PasswordHash 密码的 bcrypt 哈希值
	// 永远不要存储明文密码！
	PasswordHash string `gorm:"size:128;not null" json:"-"` // json:"-" 表示序列化时忽略此字段

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName 指定表名
// GORM 会使用这个方法返回的表名，而不是默认的复数形式
func (Member) TableName() string {
	return "members"
}

// MemberView 成员的对外序列化结构
// API 响应只暴露这三个字段
type MemberView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// View 返回成员的对外视图
func (m *Member) View() MemberView {
	return MemberView{
		ID:        m.ID,
		Username:  m.Username,
		CreatedAt: m.CreatedAt,
	}
}

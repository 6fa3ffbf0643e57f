// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// TokenKeyLen 令牌字符串长度
// 20 个随机字节的十六进制表示
const TokenKeyLen = 40

// MemberToken 认证令牌模型
// 对应数据库表 member_tokens
// 每个成员至多持有一枚令牌，首次注册或登录时懒创建，
// 之后一直复用，不轮换也不过期
type MemberToken struct {
	// ID 令牌唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// Key 不透明令牌字符串，全局唯一
	// 40 个十六进制字符
	Key string `gorm:"size:40;uniqueIndex;not null" json:"key"`

	// MemberID 所属成员ID，外键关联 members.id
	// 唯一索引保证一人一牌，并发下的重复创建由约束兜底
	MemberID int64 `gorm:"uniqueIndex;not null" json:"member_id"`

	// CreatedAt 令牌创建时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Member 所属成员（多对一关系）
	// 成员删除时令牌级联删除
	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
}

// TableName 指定表名
func (MemberToken) TableName() string {
	return "member_tokens"
}

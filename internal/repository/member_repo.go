// Package repository 提供数据访问层的实现
// 封装所有与数据库的交互操作
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"member-chat-server/internal/model"
)

// ErrDuplicateKey 唯一约束冲突
// 用户名唯一性由数据库唯一索引保证，而不是先查后写，
// 仓库层把 GORM 的重复键错误翻译成这个哨兵错误
var ErrDuplicateKey = errors.New("duplicate key")

// MemberRepository 成员数据访问层
// 负责成员相关的所有数据库操作
type MemberRepository struct {
	db *gorm.DB // GORM 数据库连接实例
}

// NewMemberRepository 创建 MemberRepository 实例
// 参数:
//   - db: GORM 数据库连接
//
// 返回:
//   - *MemberRepository: 成员仓库实例
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create 创建新成员
// 参数:
//   - ctx: 上下文，用于控制请求生命周期
//   - member: 成员对象，ID 和时间戳字段会被自动填充
//
// 返回:
//   - error: 用户名重复返回 ErrDuplicateKey，其余为数据库错误
func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	// 使用 WithContext 确保数据库操作可以被取消
	err := r.db.WithContext(ctx).Create(member).Error
	if err != nil {
		// 需要 gorm.Config{TranslateError: true}，由 cmd/server 初始化时开启
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// GetByID 根据 ID 获取成员
// 参数:
//   - ctx: 上下文
//   - id: 成员ID
//
// 返回:
//   - *model.Member: 成员对象，如果未找到返回 nil
//   - error: 数据库错误（不包括记录未找到）
func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	var member model.Member
	// First 方法会按主键查询第一条记录
	err := r.db.WithContext(ctx).First(&member, id).Error
	if err != nil {
		// "记录未找到"不当作错误，返回 nil
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetByUsername 根据用户名获取成员
// 用于登录验证，精确匹配（区分大小写）
// 参数:
//   - ctx: 上下文
//   - username: 用户名
//
// 返回:
//   - *model.Member: 成员对象，如果未找到返回 nil
//   - error: 数据库错误
func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (*model.Member, error) {
	var member model.Member
	// Where 方法添加查询条件
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

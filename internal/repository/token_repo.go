// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"member-chat-server/internal/model"
	"member-chat-server/pkg/util"
)

// TokenRepository 令牌数据访问层
// 负责认证令牌的所有数据库操作
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository 创建 TokenRepository 实例
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetOrCreate 获取成员的令牌，不存在则创建
// 一人一牌：member_id 上的唯一索引保证并发调用下至多创建一枚，
// 插入采用 ON CONFLICT DO NOTHING，冲突后回读已存在的行，
// 避免先查后写的竞态窗口
// 参数:
//   - ctx: 上下文
//   - memberID: 成员ID
//
// 返回:
//   - *model.MemberToken: 成员的令牌（已存在的或新建的）
//   - error: 数据库错误
func (r *TokenRepository) GetOrCreate(ctx context.Context, memberID int64) (*model.MemberToken, error) {
	key, err := util.GenerateTokenKey()
	if err != nil {
		return nil, err
	}

	token := &model.MemberToken{
		Key:      key,
		MemberID: memberID,
	}

	// member_id 冲突时放弃插入，既有行保持不变
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_id"}},
			DoNothing: true,
		}).
		Create(token).Error
	if err != nil {
		return nil, err
	}

	// 回读：无论刚才是插入成功还是冲突放弃，
	// 此刻 member_id 对应的行就是该成员的唯一令牌
	var existing model.MemberToken
	err = r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// GetByKey 根据令牌字符串获取令牌
// 精确匹配，用于请求认证
// 参数:
//   - ctx: 上下文
//   - key: 令牌字符串
//
// 返回:
//   - *model.MemberToken: 令牌对象（含 Member 关联），未找到返回 nil
//   - error: 数据库错误
func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*model.MemberToken, error) {
	var token model.MemberToken
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("`key` = ?", key).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

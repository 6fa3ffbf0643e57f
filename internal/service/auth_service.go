// Package service 提供业务逻辑层的实现
// 服务层封装具体的业务逻辑，协调 Repository 和 Cache
package service

import (
	"context"
	"errors"

	"member-chat-server/internal/model"
	"member-chat-server/internal/repository"
	"member-chat-server/pkg/util"
)

// 定义业务错误
var (
	ErrUsernameTaken      = errors.New("用户名已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

// dummyHash 用于未知用户名的登录请求
// 无论用户是否存在都执行一次 bcrypt 比较，
// 使两种失败路径的耗时一致，不暴露用户名是否被注册
// 对应明文 "e5d1a7a2f6d3"，仅用于消耗时间，永远比较失败
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService 认证服务
// 处理成员注册、登录以及令牌签发
type AuthService struct {
	memberRepo *repository.MemberRepository // 成员数据访问层
	tokenRepo  *repository.TokenRepository  // 令牌数据访问层
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	memberRepo *repository.MemberRepository,
	tokenRepo *repository.TokenRepository,
) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		tokenRepo:  tokenRepo,
	}
}

// AuthResult 注册/登录的结果
// 包含成员信息和该成员的令牌
type AuthResult struct {
	Member *model.Member      // 成员
	Token  *model.MemberToken // 成员的令牌
}

// Register 成员注册
// 用户名唯一性由数据库唯一索引保证：直接尝试插入，
// 冲突时翻译为 ErrUsernameTaken，没有先查后写的竞态窗口
// 注册成功后签发（或复用）令牌
// 参数:
//   - ctx: 上下文
//   - username: 用户名
//   - password: 明文密码（只在内存中出现，落库前哈希）
//
// 返回:
//   - *AuthResult: 成员和令牌
//   - error: 用户名已存在返回 ErrUsernameTaken
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	// 1. 对密码进行哈希
	// 使用 bcrypt 算法，自动添加盐值
	passwordHash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 2. 创建成员，唯一索引兜底
	member := &model.Member{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	// 3. 签发令牌（get-or-create，幂等）
	token, err := s.tokenRepo.GetOrCreate(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Member: member, Token: token}, nil
}

// Login 成员登录
// 用户不存在和密码错误返回同一个错误，
// 防止通过登录接口枚举用户名
// 参数:
//   - ctx: 上下文
//   - username: 用户名
//   - password: 明文密码
//
// 返回:
//   - *AuthResult: 成员和令牌（复用已有令牌）
//   - error: 凭据无效统一返回 ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	// 1. 根据用户名查找成员
	member, err := s.memberRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if member == nil {
		// 用户不存在也执行一次哈希比较，平衡两条失败路径的耗时
		util.CheckPassword(password, dummyHash)
		return nil, ErrInvalidCredentials
	}

	// 2. 验证密码
	if !util.CheckPassword(password, member.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// 3. 复用或签发令牌
	token, err := s.tokenRepo.GetOrCreate(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Member: member, Token: token}, nil
}

// Package middleware 提供 HTTP 请求的中间件
// 包括令牌认证、CORS 跨域、日志记录等
package middleware

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"member-chat-server/internal/cache"
	"member-chat-server/internal/model"
	"member-chat-server/internal/repository"
	"member-chat-server/pkg/response"
	"member-chat-server/pkg/util"
)

// 认证失败的分类
// 缺失凭据与格式错误、令牌无效是不同的失败路径，
// 但对外的提示信息都不包含令牌本身
var (
	ErrNoCredentials  = errors.New("no credentials")       // 没有 Authorization 头，或使用了其他认证方案
	ErrTokenMissing   = errors.New("token value missing")  // 有 Token 关键字但没有令牌值
	ErrTokenMultiWord = errors.New("token has spaces")     // 令牌值被空白分成了多段
	ErrTokenEncoding  = errors.New("token encoding")       // 令牌值不是合法的文本
	ErrInvalidToken   = errors.New("invalid token")        // 令牌无法解析到成员
)

// 用户可见的认证错误信息
const (
	msgNoCredentials  = "Учетные данные не были предоставлены."
	msgTokenMissing   = "Недействительный заголовок авторизации. Токен не найден."
	msgTokenMultiWord = "Недействительный заголовок авторизации. Токен должен состоять из одного слова."
	msgTokenEncoding  = "Недействительный токен."
	msgInvalidToken   = "Недействительный или просроченный токен."
)

// memberKey gin 上下文中存放已认证成员的键
const memberKey = "auth_member"

// ParseAuthorizationHeader 解析 "Token <值>" 形式的认证头
// 认证头缺失或使用其他方案时返回 ErrNoCredentials，
// 由调用方决定是放行为匿名还是拒绝
// 参数:
//   - value: Authorization 头的原始值
//
// 返回:
//   - string: 令牌值
//   - error: 解析失败的分类错误
func ParseAuthorizationHeader(value string) (string, error) {
	if value == "" {
		return "", ErrNoCredentials
	}

	parts := strings.Fields(value)
	// 关键字匹配不区分大小写
	if len(parts) == 0 || !strings.EqualFold(parts[0], "Token") {
		return "", ErrNoCredentials
	}
	if len(parts) == 1 {
		return "", ErrTokenMissing
	}
	if len(parts) > 2 {
		return "", ErrTokenMultiWord
	}

	key := parts[1]
	if !utf8.ValidString(key) {
		return "", ErrTokenEncoding
	}
	return key, nil
}

// Authenticator 令牌认证器
// 把令牌字符串解析为成员，先查 Redis 缓存，未命中回源数据库
type Authenticator struct {
	tokenRepo  *repository.TokenRepository
	memberRepo *repository.MemberRepository
	cache      *cache.RedisCache
}

// NewAuthenticator 创建 Authenticator 实例
func NewAuthenticator(
	tokenRepo *repository.TokenRepository,
	memberRepo *repository.MemberRepository,
	redisCache *cache.RedisCache,
) *Authenticator {
	return &Authenticator{
		tokenRepo:  tokenRepo,
		memberRepo: memberRepo,
		cache:      redisCache,
	}
}

// Resolve 把令牌值解析为成员
// 缓存只存令牌哈希到成员ID的映射；缓存故障降级为直查数据库
// 参数:
//   - ctx: 上下文
//   - key: 令牌值
//
// 返回:
//   - *model.Member: 令牌绑定的成员
//   - error: 令牌不存在返回 ErrInvalidToken
func (a *Authenticator) Resolve(ctx context.Context, key string) (*model.Member, error) {
	keyHash := util.HashTokenKey(key)

	// 1. 查缓存
	if a.cache != nil {
		memberID, err := a.cache.GetTokenMember(ctx, keyHash)
		if err != nil {
			// 缓存故障不影响认证，降级回源
			log.Warn().Err(err).Msg("token cache lookup failed")
		} else if memberID != 0 {
			member, err := a.memberRepo.GetByID(ctx, memberID)
			if err != nil {
				return nil, err
			}
			if member != nil {
				return member, nil
			}
			// 成员已不存在，当作无效令牌处理
			return nil, ErrInvalidToken
		}
	}

	// 2. 回源数据库
	token, err := a.tokenRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Member == nil {
		return nil, ErrInvalidToken
	}

	// 3. 写缓存（失败只记日志）
	if a.cache != nil {
		if err := a.cache.SetTokenMember(ctx, keyHash, token.MemberID); err != nil {
			log.Warn().Err(err).Msg("token cache store failed")
		}
	}

	return token.Member, nil
}

// TokenAuth 创建令牌认证中间件
// 验证请求头中的 "Token <值>"，并将成员信息存入上下文
// 任何失败路径都不会把令牌值写进响应或日志
// 参数:
//   - auth: 认证器实例
//
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func TokenAuth(auth *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 解析认证头
		key, err := ParseAuthorizationHeader(c.GetHeader("Authorization"))
		if err != nil {
			response.Unauthorized(c, authErrorMessage(err))
			c.Abort() // 终止请求处理
			return
		}

		// 2. 解析令牌到成员
		member, err := auth.Resolve(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				response.Unauthorized(c, msgInvalidToken)
			} else {
				response.InternalError(c, "Внутренняя ошибка сервера.")
			}
			c.Abort()
			return
		}

		// 3. 将成员存入上下文，后续 Handler 通过 GetMember 读取
		c.Set(memberKey, member)
		c.Next()
	}
}

// authErrorMessage 把解析错误映射为用户可见信息
func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrTokenMissing):
		return msgTokenMissing
	case errors.Is(err, ErrTokenMultiWord):
		return msgTokenMultiWord
	case errors.Is(err, ErrTokenEncoding):
		return msgTokenEncoding
	default:
		return msgNoCredentials
	}
}

// GetMember 从上下文获取已认证成员的辅助函数
// 参数:
//   - c: Gin 上下文
//
// 返回:
//   - *model.Member: 成员对象，未认证返回 nil
func GetMember(c *gin.Context) *model.Member {
	value, exists := c.Get(memberKey)
	if !exists {
		return nil
	}
	member, ok := value.(*model.Member)
	if !ok {
		return nil
	}
	return member
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"member-chat-server/internal/model"
	"member-chat-server/internal/repository"
)

// newTestDB 打开一个进程内 SQLite 数据库用于测试
// 单连接模式保证 :memory: 数据库在整个测试期间存活
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Member{}, &model.MemberToken{}, &model.ChatMessage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type AuthServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
	ctx     context.Context
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	memberRepo := repository.NewMemberRepository(s.db)
	tokenRepo := repository.NewTokenRepository(s.db)
	s.service = NewAuthService(memberRepo, tokenRepo)
	s.ctx = context.Background()
}

func (s *AuthServiceSuite) TestRegisterSucceeds() {
	result, err := s.service.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	s.Equal("alice", result.Member.Username)
	s.NotZero(result.Member.ID)
	s.Len(result.Token.Key, model.TokenKeyLen)
}

func (s *AuthServiceSuite) TestRegisterStoresHashedPassword() {
	_, err := s.service.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	var member model.Member
	s.Require().NoError(s.db.Where("username = ?", "alice").First(&member).Error)
	s.NotEmpty(member.PasswordHash)
	s.NotEqual("secret1", member.PasswordHash)
}

func (s *AuthServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "another")
	s.ErrorIs(err, ErrUsernameTaken)

	// 冲突之后只有一行 alice
	var count int64
	s.Require().NoError(s.db.Model(&model.Member{}).Where("username = ?", "alice").Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *AuthServiceSuite) TestUsernameIsCaseSensitive() {
	_, err := s.service.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	// 大小写不同视为不同用户名
	_, err = s.service.Register(s.ctx, "Alice", "secret1")
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLoginReturnsSameToken() {
	registered, err := s.service.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	loggedIn, err := s.service.Login(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	// 令牌签发是幂等的：注册和登录拿到同一枚令牌
	s.Equal(registered.Token.Key, loggedIn.Token.Key)

	again, err := s.service.Login(s.ctx, "alice", "secret1")
	s.Require().NoError(err)
	s.Equal(registered.Token.Key, again.Token.Key)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestLoginUnknownUser() {
	// 用户不存在和密码错误必须是同一个错误，防止用户名枚举
	_, err := s.service.Login(s.ctx, "nobody", "secret1")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestTokenBelongsToItsOwner() {
	alice, err := s.service.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)
	bob, err := s.service.Register(s.ctx, "bob", "secret2")
	s.Require().NoError(err)

	s.NotEqual(alice.Token.Key, bob.Token.Key)

	tokenRepo := repository.NewTokenRepository(s.db)
	resolved, err := tokenRepo.GetByKey(s.ctx, alice.Token.Key)
	s.Require().NoError(err)
	s.Require().NotNil(resolved)
	s.Equal(alice.Member.ID, resolved.MemberID)
	s.Equal("alice", resolved.Member.Username)
}

func (s *AuthServiceSuite) TestTokenGetOrCreateIdempotent() {
	result, err := s.service.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	tokenRepo := repository.NewTokenRepository(s.db)
	for i := 0; i < 5; i++ {
		token, err := tokenRepo.GetOrCreate(s.ctx, result.Member.ID)
		s.Require().NoError(err)
		s.Equal(result.Token.Key, token.Key)
	}

	// 始终只有一行令牌
	var count int64
	s.Require().NoError(s.db.Model(&model.MemberToken{}).Where("member_id = ?", result.Member.ID).Count(&count).Error)
	s.Equal(int64(1), count)
}

// Package main 是服务端的入口点
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"member-chat-server/internal/cache"
	"member-chat-server/internal/config"
	"member-chat-server/internal/handler"
	"member-chat-server/internal/logger"
	"member-chat-server/internal/middleware"
	"member-chat-server/internal/model"
	"member-chat-server/internal/repository"
	"member-chat-server/internal/service"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 加载配置
	cfg, err := config.Load("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(cfg.Log)

	// 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init database")
	}

	// 自动迁移数据库表
	if err := autoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// 初始化 Redis
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init redis")
	}

	// 初始化 Repository 层
	memberRepo := repository.NewMemberRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// 初始化 Service 层
	authService := service.NewAuthService(memberRepo, tokenRepo)
	chatService := service.NewChatService(messageRepo, cfg.Limits.MessageMaxLen)

	// 初始化认证器
	authenticator := middleware.NewAuthenticator(tokenRepo, memberRepo, redisCache)

	// 初始化 Handler 层
	helloHandler := handler.NewHelloHandler()
	authHandler := handler.NewAuthHandler(authService, cfg.Limits)
	memberHandler := handler.NewMemberHandler()
	chatHandler := handler.NewChatHandler(chatService)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())                                          // 恢复 panic
	router.Use(middleware.RequestLogger())                              // 请求日志
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.CORS))) // CORS

	// 注册路由
	registerRoutes(router, authenticator, helloHandler, authHandler, memberHandler, chatHandler)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// 创建关闭上下文，设置超时
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	// 关闭 Redis 连接
	if err := redisCache.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close redis")
	}

	log.Info().Msg("server exited")
}

// initDatabase 初始化数据库连接
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	// 构建 DSN (Data Source Name)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.MySQL.Username,
		cfg.MySQL.Password,
		cfg.MySQL.Host,
		cfg.MySQL.Port,
		cfg.MySQL.Database,
		cfg.MySQL.Charset,
	)

	// 配置 GORM logger
	gormLogger := gormlogger.Default.LogMode(gormlogger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	// 连接数据库
	// TranslateError 开启方言错误翻译，唯一键冲突会变成 gorm.ErrDuplicatedKey，
	// 仓库层依赖这一点把冲突映射为业务错误
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 获取底层 sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 配置连接池
	sqlDB.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MySQL.MaxLifetime) * time.Second)

	log.Info().Msg("database connected")
	return db, nil
}

// autoMigrate 自动迁移数据库表
func autoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	if err := db.AutoMigrate(
		&model.Member{},
		&model.MemberToken{},
		&model.ChatMessage{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// registerRoutes 注册所有路由
// 路径带结尾斜杠，沿用既有客户端的 URL 约定
func registerRoutes(
	router *gin.Engine,
	authenticator *middleware.Authenticator,
	helloHandler *handler.HelloHandler,
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	chatHandler *handler.ChatHandler,
) {
	// 健康检查
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 问候接口（无需认证）
	router.GET("/hello/", helloHandler.Hello)

	// 成员相关
	members := router.Group("/members")
	{
		members.POST("/register/", authHandler.Register)
		members.POST("/login/", authHandler.Login)

		// 需要认证
		me := members.Group("")
		me.Use(middleware.TokenAuth(authenticator))
		me.GET("/me/", memberHandler.Me)
	}

	// 聊天相关（需要认证）
	chat := router.Group("/chat")
	chat.Use(middleware.TokenAuth(authenticator))
	{
		chat.GET("/messages/", chatHandler.List)
		chat.POST("/messages/", chatHandler.Post)
	}
}

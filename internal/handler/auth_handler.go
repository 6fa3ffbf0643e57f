// Package handler 提供 HTTP 请求处理器
// 负责解析请求、做输入校验、调用服务层并序列化结果，
// 所有错误都在这一层转换为结构化 JSON，不再向上传播
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"member-chat-server/internal/config"
	"member-chat-server/internal/model"
	"member-chat-server/internal/service"
	"member-chat-server/pkg/response"
	"member-chat-server/pkg/validate"
)

// 用户可见的错误信息
const (
	msgUsernameTaken      = "Пользователь с таким логином уже существует."
	msgInvalidCredentials = "Неверный логин или пароль."
	msgBadRequestBody     = "Некорректное тело запроса."
	msgRegisterFailed     = "Не удалось завершить регистрацию."
	msgLoginFailed        = "Не удалось выполнить вход."
)

// AuthHandler 认证请求处理器
// 处理成员注册和登录
type AuthHandler struct {
	authService *service.AuthService
	limits      config.LimitsConfig
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService, limits config.LimitsConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limits:      limits,
	}
}

// CredentialsRequest 注册/登录请求体
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse 注册/登录成功响应
type AuthResponse struct {
	Token  string           `json:"token"`  // 不透明认证令牌
	Member model.MemberView `json:"member"` // 成员公开信息
}

// validateRegister 校验注册请求
// 纯函数式校验：返回字段错误映射，为空表示通过
func (h *AuthHandler) validateRegister(req *CredentialsRequest) validate.Fields {
	fields := validate.Fields{}
	if validate.Required(fields, "username", req.Username) {
		validate.MaxLen(fields, "username", req.Username, h.limits.UsernameMaxLen)
	}
	if validate.Required(fields, "password", req.Password) {
		validate.MinLen(fields, "password", req.Password, h.limits.PasswordMinLen)
	}
	return fields
}

// Register 成员注册
// POST /members/register/
// 成功返回 201 和 {token, member}；
// 校验失败返回 400 字段错误；用户名已被占用按字段错误返回
func (h *AuthHandler) Register(c *gin.Context) {
	// 1. 解析请求参数
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgBadRequestBody)
		return
	}

	// 2. 输入校验
	if fields := h.validateRegister(&req); !fields.Empty() {
		response.FieldErrors(c, fields)
		return
	}

	// 3. 调用服务层处理注册
	result, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			// 唯一性冲突呈现为 username 字段错误，与其他校验错误同构
			response.FieldErrors(c, validate.Fields{
				"username": {msgUsernameTaken},
			})
			return
		}
		c.Error(err) // 留给请求日志
		response.InternalError(c, msgRegisterFailed)
		return
	}

	// 4. 返回成功响应
	response.Created(c, AuthResponse{
		Token:  result.Token.Key,
		Member: result.Member.View(),
	})
}

// Login 成员登录
// POST /members/login/
// 凭据无效统一返回 400 和一条通用提示，不区分用户不存在和密码错误
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgBadRequestBody)
		return
	}

	// 登录只要求两个字段都有值
	fields := validate.Fields{}
	validate.Required(fields, "username", req.Username)
	validate.Required(fields, "password", req.Password)
	if !fields.Empty() {
		response.FieldErrors(c, fields)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, msgInvalidCredentials)
			return
		}
		c.Error(err)
		response.InternalError(c, msgLoginFailed)
		return
	}

	response.OK(c, AuthResponse{
		Token:  result.Token.Key,
		Member: result.Member.View(),
	})
}

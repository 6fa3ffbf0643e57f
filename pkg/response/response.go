// Package response 提供统一的 HTTP 响应格式
// 错误响应沿用既有客户端约定：
// 通用错误为 {"detail": "..."}，表单校验错误为 {"字段名": ["...", ...]}
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DetailResponse 通用错误响应结构
type DetailResponse struct {
	Detail string `json:"detail"` // 提示信息
}

// Detail 返回带 detail 字段的错误响应
// 参数:
//   - c: Gin 上下文
//   - httpCode: HTTP 状态码
//   - message: 错误信息
func Detail(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, DetailResponse{Detail: message})
}

// FieldErrors 返回 400 表单校验错误响应
// 响应体是字段名到错误信息数组的映射
// 参数:
//   - c: Gin 上下文
//   - fields: 字段错误映射
func FieldErrors(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, fields)
}

// BadRequest 返回 400 错误（请求参数错误）
func BadRequest(c *gin.Context, message string) {
	Detail(c, http.StatusBadRequest, message)
}

// Unauthorized 返回 401 错误（未授权）
func Unauthorized(c *gin.Context, message string) {
	Detail(c, http.StatusUnauthorized, message)
}

// InternalError 返回 500 错误（服务器内部错误）
func InternalError(c *gin.Context, message string) {
	Detail(c, http.StatusInternalServerError, message)
}

// OK 返回 200 成功响应
// 参数:
//   - c: Gin 上下文
//   - data: 响应数据，可以是任意类型
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 返回 201 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

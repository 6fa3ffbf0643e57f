// Package validate 提供请求体的显式校验
// 校验函数是纯函数，返回字段错误映射而不是抛出异常
package validate

import (
	"unicode/utf8"
)

// 用户可见的校验错误信息
const (
	MsgRequired = "Обязательное поле."
	MsgTooLong  = "Значение слишком длинное."
	MsgTooShort = "Значение слишком короткое."
)

// Fields 字段错误映射
// 键是字段名，值是该字段的错误信息列表
type Fields map[string][]string

// Add 给指定字段追加一条错误信息
func (f Fields) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Empty 是否没有任何错误
func (f Fields) Empty() bool {
	return len(f) == 0
}

// Required 校验字段非空
// 为空时记录错误并返回 false
func Required(f Fields, field, value string) bool {
	if value == "" {
		f.Add(field, MsgRequired)
		return false
	}
	return true
}

// MaxLen 校验字段长度不超过上限
// 长度按 Unicode 字符数计算，而不是字节数
func MaxLen(f Fields, field, value string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		f.Add(field, MsgTooLong)
		return false
	}
	return true
}

// MinLen 校验字段长度不低于下限
func MinLen(f Fields, field, value string, min int) bool {
	if utf8.RuneCountInString(value) < min {
		f.Add(field, MsgTooShort)
		return false
	}
	return true
}

package utils

import (
	"fmt"
	"sort"
	"strings"
)

// AppError 应用错误类型
type AppError struct {
	Message string
	Code    string
	Err     error
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError 创建新的应用错误
func NewAppError(message string, code string, err error) *AppError {
	return &AppError{
		Message: message,
		Code:    code,
		Err:     err,
	}
}

// CreateNotFoundError 创建资源不存在错误
func CreateNotFoundError(resource string) *AppError {
	return NewAppError(resource+"不存在", "RESOURCE_NOT_FOUND", nil)
}

// CreateForbiddenError 创建权限不足错误
func CreateForbiddenError() *AppError {
	return NewAppError("权限不足", "FORBIDDEN", nil)
}

// ValidationError 字段级校验错误，数据未入库
type ValidationError struct {
	Fields map[string]string
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "输入校验失败 [" + strings.Join(parts, "; ") + "]"
}

// NewValidationError 创建校验错误
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidationError 判断是否为校验错误
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

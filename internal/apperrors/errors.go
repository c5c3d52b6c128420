package apperrors

import (
	"fmt"
	"strings"
)

// ValidationError 输入验证错误
// 请求格式错误或缺少必填字段,整个操作被拒绝,不会部分生效
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError 创建验证错误
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError 资源不存在错误
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// NewNotFoundError 创建资源不存在错误
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError 唯一性冲突错误
// 模板名、客户端名或模板内变量 key 重复
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError 创建冲突错误
func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// MissingRequiredVariablesError 必填变量缺失错误
// 严格模式生成 .env 文件时,存在未配置的必填变量
type MissingRequiredVariablesError struct {
	Keys []string
}

func (e *MissingRequiredVariablesError) Error() string {
	return "missing required variables: " + strings.Join(e.Keys, ", ")
}

// NoClientsError 模板没有客户端错误
// ZIP 导出要求模板至少有一个客户端
type NoClientsError struct {
	TemplateID uint
}

func (e *NoClientsError) Error() string {
	return fmt.Sprintf("no clients found for template %d", e.TemplateID)
}

package utils

import (
	"html"
	"strings"
	"unicode"
)

// SanitizeString 清理字符串,移除或转义危险字符
func SanitizeString(input string) string {
	// 1. HTML 转义,防止 XSS
	sanitized := html.EscapeString(input)

	// 2. 移除控制字符（除了换行符和制表符）
	var result strings.Builder
	for _, r := range sanitized {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// ValidateName 验证模板/客户端名称
func ValidateName(name string) error {
	// 1. 检查是否为空或仅包含空白字符
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}

	// 2. 检查长度（最大 255 字符）
	if len(trimmed) > 255 {
		return ErrNameTooLong
	}

	return nil
}

// ValidateVariableKey 验证变量 key
// key 非空,且不能包含 =、空白或换行（否则无法作为 .env 的一行输出）
func ValidateVariableKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if len(key) > 255 {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "= \t\n\r#") {
		return ErrInvalidKeyFormat
	}
	return nil
}

// TrimAndValidate 清理并验证字符串
func TrimAndValidate(s string, maxLen int) (string, error) {
	// 1. 去除首尾空白字符
	trimmed := strings.TrimSpace(s)

	// 2. 检查是否为空
	if trimmed == "" {
		return "", ErrEmptyString
	}

	// 3. 检查长度
	if maxLen > 0 && len(trimmed) > maxLen {
		return "", ErrStringTooLong
	}

	return trimmed, nil
}

// 错误定义
var (
	ErrEmptyName        = &ValidationError{Code: "EMPTY_NAME", Message: "name cannot be empty"}
	ErrNameTooLong      = &ValidationError{Code: "NAME_TOO_LONG", Message: "name exceeds maximum length"}
	ErrEmptyKey         = &ValidationError{Code: "EMPTY_KEY", Message: "variable key cannot be empty"}
	ErrKeyTooLong       = &ValidationError{Code: "KEY_TOO_LONG", Message: "variable key exceeds maximum length"}
	ErrInvalidKeyFormat = &ValidationError{Code: "INVALID_KEY_FORMAT", Message: "variable key contains invalid characters"}
	ErrEmptyString      = &ValidationError{Code: "EMPTY_STRING", Message: "string cannot be empty"}
	ErrStringTooLong    = &ValidationError{Code: "STRING_TOO_LONG", Message: "string exceeds maximum length"}
)

// ValidationError 验证错误
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

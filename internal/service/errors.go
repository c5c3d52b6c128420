package service

import "strings"

// isUniqueViolation 判断错误是否为唯一约束冲突
// 同时覆盖 postgres（duplicate key）和 sqlite（UNIQUE constraint failed）的报错格式
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

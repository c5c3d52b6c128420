package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/envgen-gin/internal/apperrors"
)

// APIError API 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error", err.Error())
			}
		}
	}
}

// RespondError 把业务错误映射为 HTTP 响应
// 验证错误 400,资源不存在 404,唯一性冲突 409,其余一律 500
func RespondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	var conflictErr *apperrors.ConflictError
	var missingErr *apperrors.MissingRequiredVariablesError
	var noClientsErr *apperrors.NoClientsError

	switch {
	case errors.As(err, &validationErr):
		Error(c, http.StatusBadRequest, "validation failed", validationErr.Message)
	case errors.As(err, &notFoundErr):
		Error(c, http.StatusNotFound, notFoundErr.Error(), "")
	case errors.As(err, &conflictErr):
		Error(c, http.StatusConflict, "conflict", conflictErr.Message)
	case errors.As(err, &missingErr):
		Error(c, http.StatusBadRequest, "missing required variables", missingErr.Error())
	case errors.As(err, &noClientsErr):
		Error(c, http.StatusBadRequest, "no clients to export", noClientsErr.Error())
	default:
		Error(c, http.StatusInternalServerError, "internal server error", err.Error())
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cfl/internal/identity"
	"github.com/blues/cfl/internal/logic"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailWith 按错误类型映射HTTP状态码
func FailWith(c *gin.Context, err error) {
	ErrorResponse(c, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, logic.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, identity.ErrMissingIdentity):
		return http.StatusUnauthorized
	case errors.Is(err, logic.ErrArithmeticOverflow),
		errors.Is(err, logic.ErrArithmeticUnderflow),
		errors.Is(err, logic.ErrCounterUnderflow):
		// 算术越界说明账本状态异常，按服务端错误上报
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

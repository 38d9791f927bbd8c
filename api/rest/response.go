package rest

import (
	"github.com/gofiber/fiber/v2"
)

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// 响应码定义
const (
	CodeSuccess     = 0
	CodeBadRequest  = 400
	CodeServerError = 500
)

// 响应消息定义
const (
	MsgSuccess     = "success"
	MsgServerError = "server error"
)

// success 成功响应
func success(c *fiber.Ctx, data any) error {
	return c.JSON(Response{
		Code:    CodeSuccess,
		Message: MsgSuccess,
		Data:    data,
	})
}

// badRequest 参数错误响应
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Code:    CodeBadRequest,
		Message: message,
	})
}

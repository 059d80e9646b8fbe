package util

import (
	"edunity_backend/pkg/i18n"
	"edunity_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Locale 当前请求的语言，由 LocaleMiddleware 写入
func Locale(c *gin.Context) string {
	if v, ok := c.Get(ContextLocaleKey); ok {
		if locale, ok := v.(string); ok {
			return locale
		}
	}
	return i18n.Default.DefaultLocale()
}

// Message 按当前请求语言翻译
func Message(c *gin.Context, key string, params ...string) string {
	return i18n.T(Locale(c), key, params...)
}

func Success(c *gin.Context, data interface{}) {
	SuccessWithMessage(c, "success", data)
}

func SuccessWithMessage(c *gin.Context, key string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: Message(c, key),
		Data:    data,
	})
}

func Created(c *gin.Context, key string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: Message(c, key),
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// Fail 业务失败，message 为多语言 key
func Fail(c *gin.Context, code int, key string) {
	Error(c, code, Message(c, key))
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "unauthorized")
}

func Forbidden(c *gin.Context) {
	Fail(c, http.StatusForbidden, "forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// ValidationError 参数绑定/校验失败
func ValidationError(c *gin.Context, err error) {
	BadRequest(c, i18n.Default.TranslateValidation(Locale(c), err))
}

func NotFound(c *gin.Context, key string) {
	Fail(c, http.StatusNotFound, key)
}

func InternalServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "internal_error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(ContextRequestIDKey)),
	)
	InternalServerError(c)
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/card-gen-system/api/model"
	"github.com/fyerfyer/card-gen-system/internal/anki"
	"github.com/fyerfyer/card-gen-system/internal/extract"
	"github.com/fyerfyer/card-gen-system/internal/gemini"
	"github.com/fyerfyer/card-gen-system/internal/session"
)

// 定义应用中的错误类型常量
const (
	ErrorTypeValidation = "VALIDATION_ERROR" // 输入验证错误
	ErrorTypeNotFound   = "NOT_FOUND_ERROR"  // 资源不存在错误
	ErrorTypeUpstream   = "UPSTREAM_ERROR"   // 上游AI服务错误
	ErrorTypeExtraction = "EXTRACTION_ERROR" // 文本提取错误
	ErrorTypeInternal   = "INTERNAL_ERROR"   // 内部服务器错误
	ErrorTypeBusiness   = "BUSINESS_ERROR"   // 业务逻辑错误
)

// AppError 应用错误结构体
type AppError struct {
	Type    string // 错误类型
	Message string // 错误消息
	Details string // 详细错误信息
	Code    int    // HTTP状态码
}

// Error 实现error接口的方法
func (e AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewValidationError 创建输入验证错误
func NewValidationError(message string, details ...string) AppError {
	return AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Details: strings.Join(details, "; "),
		Code:    http.StatusBadRequest,
	}
}

// NewNotFoundError 创建资源不存在错误
func NewNotFoundError(message string) AppError {
	return AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

// NewInternalError 创建内部服务器错误
func NewInternalError(message string, details ...string) AppError {
	return AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Details: strings.Join(details, "; "),
		Code:    http.StatusInternalServerError,
	}
}

// NewBusinessError 创建业务逻辑错误
func NewBusinessError(message string, details ...string) AppError {
	return AppError{
		Type:    ErrorTypeBusiness,
		Message: message,
		Details: strings.Join(details, "; "),
		Code:    http.StatusBadRequest,
	}
}

// FromDomainError 把内部各层的错误转换为带HTTP状态码的应用错误
// 未识别的错误一律按内部错误处理
func FromDomainError(err error) AppError {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, session.ErrSessionNotFound) {
		return NewNotFoundError("会话不存在或已过期")
	}

	if errors.Is(err, anki.ErrEmptyDeck) {
		return NewBusinessError("没有可导出的卡片")
	}
	if errors.Is(err, anki.ErrMalformedArchive) {
		return NewBusinessError("无效的卡组文件")
	}

	var extractErr extract.Error
	if errors.As(err, &extractErr) {
		switch extractErr.Code {
		case extract.ErrCodeUnsupportedType, extract.ErrCodeInvalidPDF, extract.ErrCodeFileAccess:
			return AppError{
				Type:    ErrorTypeValidation,
				Message: extractErr.Message,
				Code:    http.StatusBadRequest,
			}
		case extract.ErrCodeEmptyResult:
			return AppError{
				Type:    ErrorTypeExtraction,
				Message: extractErr.Message,
				Code:    http.StatusUnprocessableEntity,
			}
		default:
			return AppError{
				Type:    ErrorTypeExtraction,
				Message: extractErr.Message,
				Code:    http.StatusBadGateway,
			}
		}
	}

	var geminiErr gemini.Error
	if errors.As(err, &geminiErr) {
		return AppError{
			Type:    ErrorTypeUpstream,
			Message: geminiErr.Message,
			Code:    http.StatusBadGateway,
		}
	}

	return NewInternalError("内部服务器错误", err.Error())
}

// ErrorMiddleware 统一错误处理中间件
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 捕获 panic
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				log.WithFields(logrus.Fields{
					FieldError: err,
					"stack":    stack,
					FieldPath:  c.Request.URL.Path,
				}).Error("Panic recovered in API request")

				errorResponse := model.NewErrorResponse(
					http.StatusInternalServerError,
					"An unexpected error occurred",
				)

				// 在开发环境中可以返回详细错误
				if gin.Mode() == gin.DebugMode {
					errorResponse.Message = fmt.Sprintf("Panic: %v", err)
				}

				if traceID, exists := c.Get("TraceID"); exists {
					errorResponse.TraceID = traceID.(string)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse)
			}
		}()

		c.Next()

		// 检查是否已经有错误被处理
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			traceID := ""
			if traceIDValue, exists := c.Get("TraceID"); exists {
				traceID = traceIDValue.(string)
			}

			appErr := FromDomainError(err)

			log.WithFields(logrus.Fields{
				"error_type": appErr.Type,
				FieldTraceID: traceID,
				FieldPath:    c.Request.URL.Path,
				FieldError:   err.Error(),
			}).Error(appErr.Message)

			errResp := model.NewErrorResponse(appErr.Code, appErr.Message)
			errResp.TraceID = traceID

			c.JSON(appErr.Code, errResp)
			c.Abort()
		}
	}
}

// HandleError 在处理器中使用的错误处理辅助函数
func HandleError(c *gin.Context, err error) {
	// 添加错误到上下文中
	_ = c.Error(err)
}

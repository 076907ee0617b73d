package gemini

import "fmt"

// Error 生成模型调用错误类型
type Error struct {
	Code    int    // 错误码
	Message string // 错误消息
}

// Error 实现error接口
func (e Error) Error() string {
	return fmt.Sprintf("gemini error (code=%d): %s", e.Code, e.Message)
}

// 错误码常量
const (
	ErrCodeInvalidAPIKey   = 2001 // 无效的API密钥
	ErrCodeInvalidRequest  = 2002 // 无效的请求
	ErrCodeNetworkError    = 2003 // 网络连接错误
	ErrCodeServerError     = 2004 // 服务端错误
	ErrCodeTimeout         = 2005 // 请求超时
	ErrCodeEmptyPrompt     = 2006 // 提示词为空
	ErrCodeEmptyCompletion = 2007 // 模型返回了空内容
	ErrCodeFileUpload      = 2008 // 附件上传失败
	ErrCodeUnsupportedFile = 2009 // 不支持的文件类型
)

// 错误消息常量
const (
	ErrMsgInvalidAPIKey   = "invalid API key"
	ErrMsgEmptyPrompt     = "prompt cannot be empty"
	ErrMsgEmptyCompletion = "model returned an empty completion"
	ErrMsgUnsupportedFile = "unsupported attachment file type"
)

// NewError 创建新的生成模型错误
func NewError(code int, message string) Error {
	return Error{
		Code:    code,
		Message: message,
	}
}

// WrapError 包装普通错误为生成模型错误
func WrapError(err error, code int) Error {
	if err == nil {
		return Error{Code: code, Message: "unknown error"}
	}

	// 已经是Error类型时直接返回
	if gerr, ok := err.(Error); ok {
		return gerr
	}

	return Error{
		Code:    code,
		Message: err.Error(),
	}
}

// IsCode 判断错误是否为指定错误码的生成模型错误
func IsCode(err error, code int) bool {
	gerr, ok := err.(Error)
	return ok && gerr.Code == code
}

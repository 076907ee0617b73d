package extract

import "fmt"

// Error 文本提取错误类型
type Error struct {
	Code    int    // 错误码
	Message string // 错误消息
}

// Error 实现error接口
func (e Error) Error() string {
	return fmt.Sprintf("extract error (code=%d): %s", e.Code, e.Message)
}

// 错误码常量
const (
	ErrCodeUnsupportedType = 3001 // 不支持的文件类型
	ErrCodeFileAccess      = 3002 // 文件读取失败
	ErrCodeInvalidPDF      = 3003 // PDF预检失败
	ErrCodeExtraction      = 3004 // 模型提取失败
	ErrCodeEmptyResult     = 3005 // 提取结果为空
)

// NewError 创建新的提取错误
func NewError(code int, message string) Error {
	return Error{Code: code, Message: message}
}

// WrapError 包装普通错误为提取错误
func WrapError(err error, code int) Error {
	if err == nil {
		return Error{Code: code, Message: "unknown error"}
	}
	if eerr, ok := err.(Error); ok {
		return eerr
	}
	return Error{Code: code, Message: err.Error()}
}

// IsCode 判断错误是否为指定错误码的提取错误
func IsCode(err error, code int) bool {
	eerr, ok := err.(Error)
	return ok && eerr.Code == code
}

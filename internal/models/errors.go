package models

import "errors"

var (
	// ErrSourceFileNotFound 源文件记录不存在错误
	ErrSourceFileNotFound = errors.New("source file not found")

	// ErrDeckExportNotFound 导出记录不存在错误
	ErrDeckExportNotFound = errors.New("deck export not found")
)

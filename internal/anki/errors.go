package anki

import "errors"

var (
	// ErrEmptyDeck 没有可打包的卡片
	ErrEmptyDeck = errors.New("no cards provided to create deck")

	// ErrMalformedArchive 归档文件损坏或缺少嵌入数据库
	ErrMalformedArchive = errors.New("malformed deck archive: missing embedded database")
)

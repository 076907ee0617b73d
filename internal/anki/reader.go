package anki

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fyerfyer/card-gen-system/internal/cards"
)

// Deck 从归档中读出的牌组
type Deck struct {
	Name  string       // 牌组名称
	Cards []cards.Card // 卡片列表
}

// ReadDeck 读取.apkg牌组文件并提取卡片
// 归档损坏或缺少嵌入数据库时返回ErrMalformedArchive
func ReadDeck(filePath string) (*Deck, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("deck file not found: %s", filePath)
	}

	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, ErrMalformedArchive
	}
	defer reader.Close()

	entry := findDatabaseEntry(&reader.Reader)
	if entry == nil {
		return nil, ErrMalformedArchive
	}

	workDir, err := os.MkdirTemp("", "apkg_read_")
	if err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	dbPath := filepath.Join(workDir, "collection.anki2")
	if err := extractEntry(entry, dbPath); err != nil {
		return nil, err
	}

	deckCards, err := readNotes(dbPath)
	if err != nil {
		return nil, err
	}

	return &Deck{
		Name:  deckNameFromPath(filePath),
		Cards: deckCards,
	}, nil
}

// findDatabaseEntry 在归档中查找嵌入的SQLite数据库
func findDatabaseEntry(reader *zip.Reader) *zip.File {
	for _, file := range reader.File {
		name := file.Name
		if name == "collection.anki2" || strings.HasSuffix(name, ".anki2") || strings.HasSuffix(name, ".db") {
			return file
		}
	}
	return nil
}

// extractEntry 将归档条目解压到指定路径
func extractEntry(entry *zip.File, destPath string) error {
	src, err := entry.Open()
	if err != nil {
		return ErrMalformedArchive
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create extraction target: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return ErrMalformedArchive
	}
	return nil
}

// readNotes 从数据库读取笔记并取每条的前两个字段
func readNotes(dbPath string) ([]cards.Card, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, ErrMalformedArchive
	}
	defer closeDB(db)

	rows, err := db.Raw("SELECT flds FROM notes ORDER BY id").Rows()
	if err != nil {
		return nil, ErrMalformedArchive
	}
	defer rows.Close()

	var result []cards.Card
	for rows.Next() {
		var flds string
		if err := rows.Scan(&flds); err != nil {
			return nil, ErrMalformedArchive
		}

		fields := strings.Split(flds, fieldSeparator)
		if len(fields) < 2 {
			continue
		}

		result = append(result, cards.Card{
			Front: cards.UnescapeEntities(fields[0]),
			Back:  cards.UnescapeEntities(fields[1]),
		})
	}

	return result, rows.Err()
}

// deckNameFromPath 从文件名推导牌组名（第一个点之前的部分）
func deckNameFromPath(filePath string) string {
	base := filepath.Base(filePath)
	if idx := strings.Index(base, "."); idx >= 0 {
		return base[:idx]
	}
	return base
}

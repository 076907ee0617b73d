package anki

import (
	"archive/zip"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fyerfyer/card-gen-system/internal/cards"
)

// collection.anki2 数据库结构（Anki schema 11）
var schemaStatements = []string{
	`CREATE TABLE col (
		id integer primary key,
		crt integer not null,
		mod integer not null,
		scm integer not null,
		ver integer not null,
		dty integer not null,
		usn integer not null,
		ls integer not null,
		conf text not null,
		models text not null,
		decks text not null,
		dconf text not null,
		tags text not null
	)`,
	`CREATE TABLE notes (
		id integer primary key,
		guid text not null,
		mid integer not null,
		mod integer not null,
		usn integer not null,
		tags text not null,
		flds text not null,
		sfld integer not null,
		csum integer not null,
		flags integer not null,
		data text not null
	)`,
	`CREATE TABLE cards (
		id integer primary key,
		nid integer not null,
		did integer not null,
		ord integer not null,
		mod integer not null,
		usn integer not null,
		type integer not null,
		queue integer not null,
		due integer not null,
		ivl integer not null,
		factor integer not null,
		reps integer not null,
		lapses integer not null,
		left integer not null,
		odue integer not null,
		odid integer not null,
		flags integer not null,
		data text not null
	)`,
	`CREATE TABLE revlog (
		id integer primary key,
		cid integer not null,
		usn integer not null,
		ease integer not null,
		ivl integer not null,
		lastIvl integer not null,
		factor integer not null,
		time integer not null,
		type integer not null
	)`,
	`CREATE TABLE graves (
		usn integer not null,
		oid integer not null,
		type integer not null
	)`,
	`CREATE INDEX ix_notes_usn on notes (usn)`,
	`CREATE INDEX ix_cards_usn on cards (usn)`,
	`CREATE INDEX ix_cards_nid on cards (nid)`,
	`CREATE INDEX ix_cards_sched on cards (did, queue, due)`,
	`CREATE INDEX ix_notes_csum on notes (csum)`,
}

// fieldSeparator Anki笔记字段分隔符 (ASCII 31)
const fieldSeparator = "\x1f"

// Packager 将卡片打包为.apkg牌组文件
type Packager struct {
	// OutputDir 输出目录，为空时使用系统临时目录
	OutputDir string
}

// NewPackager 创建新的牌组打包器
func NewPackager(outputDir string) *Packager {
	return &Packager{OutputDir: outputDir}
}

// CreateDeck 从卡片列表创建.apkg文件，返回文件路径
// 空卡片列表返回ErrEmptyDeck；deckName为空时使用默认名称
func (p *Packager) CreateDeck(drafts []cards.Card, deckName string, sourceInfo string) (string, error) {
	if len(drafts) == 0 {
		return "", ErrEmptyDeck
	}

	if strings.TrimSpace(deckName) == "" {
		deckName = DefaultDeckName
	}
	if sourceInfo == "" {
		sourceInfo = DefaultSourceInfo
	}

	workDir, err := os.MkdirTemp("", "apkg_build_")
	if err != nil {
		return "", fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	dbPath := filepath.Join(workDir, "collection.anki2")
	if err := p.writeCollection(dbPath, drafts, deckName, sourceInfo); err != nil {
		return "", err
	}

	outDir := p.OutputDir
	if outDir == "" {
		outDir = os.TempDir()
	}

	now := time.Now()
	filename := fmt.Sprintf("%s_%s.apkg",
		strings.ReplaceAll(deckName, " ", "_"),
		now.Format("20060102_150405"))
	outPath := filepath.Join(outDir, filename)

	if err := writeArchive(outPath, dbPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// writeCollection 生成collection.anki2数据库
func (p *Packager) writeCollection(dbPath string, drafts []cards.Card, deckName string, sourceInfo string) error {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection database: %w", err)
	}
	defer closeDB(db)

	for _, stmt := range schemaStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create collection schema: %w", err)
		}
	}

	now := time.Now().Unix()
	nowMillis := now * 1000
	modelID := randomID()
	deckID := randomID()

	confJSON, err := buildConfJSON(modelID)
	if err != nil {
		return err
	}
	modelsJSON, err := buildModelJSON(modelID, deckID, now)
	if err != nil {
		return err
	}
	decksJSON, err := buildDecksJSON(deckID, now, deckName)
	if err != nil {
		return err
	}
	dconfJSON, err := buildDconfJSON(now)
	if err != nil {
		return err
	}

	err = db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now, nowMillis, nowMillis, confJSON, modelsJSON, decksJSON, dconfJSON,
	).Error
	if err != nil {
		return fmt.Errorf("failed to write collection metadata: %w", err)
	}

	// 同一次导出的所有卡片共享创建时间戳
	createdTime := time.Now().Format("2006-01-02 15:04")

	for i, draft := range drafts {
		front := draft.Front
		back := draft.Back
		if front == "" {
			front = fmt.Sprintf("Question %d", i+1)
		}
		if back == "" {
			back = fmt.Sprintf("Answer %d", i+1)
		}

		noteID := nowMillis + int64(i)
		cardID := nowMillis + int64(len(drafts)) + int64(i)
		flds := strings.Join([]string{front, back, sourceInfo, createdTime}, fieldSeparator)

		err = db.Exec(
			`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			 VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`,
			noteID, uuid.New().String(), modelID, now, flds, front, fieldChecksum(front),
		).Error
		if err != nil {
			return fmt.Errorf("failed to write note %d: %w", i+1, err)
		}

		err = db.Exec(
			`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl,
			 factor, reps, lapses, left, odue, odid, flags, data)
			 VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			cardID, noteID, deckID, now, i+1,
		).Error
		if err != nil {
			return fmt.Errorf("failed to write card %d: %w", i+1, err)
		}
	}

	return nil
}

// writeArchive 将数据库与媒体清单打包为zip归档
func writeArchive(outPath string, dbPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create deck file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	dbEntry, err := zw.Create("collection.anki2")
	if err != nil {
		return fmt.Errorf("failed to add collection to archive: %w", err)
	}

	dbFile, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open collection database: %w", err)
	}
	if _, err := io.Copy(dbEntry, dbFile); err != nil {
		dbFile.Close()
		return fmt.Errorf("failed to copy collection into archive: %w", err)
	}
	dbFile.Close()

	// 媒体清单，无媒体文件时为空对象
	mediaEntry, err := zw.Create("media")
	if err != nil {
		return fmt.Errorf("failed to add media manifest: %w", err)
	}
	if _, err := mediaEntry.Write([]byte("{}")); err != nil {
		return fmt.Errorf("failed to write media manifest: %w", err)
	}

	return zw.Close()
}

// ExtendDeck 合并已有卡片与新卡片后打包，已有卡片排在前面
func (p *Packager) ExtendDeck(existing []cards.Card, fresh []cards.Card, deckName string, sourceInfo string) (string, error) {
	if len(existing) == 0 && len(fresh) == 0 {
		return "", ErrEmptyDeck
	}

	combined := make([]cards.Card, 0, len(existing)+len(fresh))
	combined = append(combined, existing...)
	combined = append(combined, fresh...)

	return p.CreateDeck(combined, deckName, sourceInfo)
}

// fieldChecksum 计算笔记首字段的校验和
// 取字段SHA-1摘要的前8个十六进制字符解析为整数
func fieldChecksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	prefix := hex.EncodeToString(sum[:])[:8]
	value, err := strconv.ParseInt(prefix, 16, 64)
	if err != nil {
		return 0
	}
	return value
}

// randomID 生成模型与牌组使用的随机标识
func randomID() int64 {
	return int64(rand.Intn(1<<30)) + 1<<30
}

// closeDB 释放gorm持有的底层连接
func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

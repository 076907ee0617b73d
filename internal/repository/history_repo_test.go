package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fyerfyer/card-gen-system/internal/database"
	"github.com/fyerfyer/card-gen-system/internal/models"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	// 使用唯一的内存数据库标识符
	dbName := fmt.Sprintf("file:memdb_%d?mode=memory", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	require.NoError(t, err, "Failed to open in-memory database")

	// 运行迁移以创建所需的表
	err = db.AutoMigrate(&models.SourceFile{}, &models.DeckExport{})
	require.NoError(t, err, "Failed to run migrations")

	// 保存原始全局DB引用
	originalDB := database.DB
	database.DB = db

	cleanup := func() {
		database.DB = originalDB
	}

	return db, cleanup
}

func TestHistoryRepository_SourceFiles(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewHistoryRepository()

	file := &models.SourceFile{
		SessionID:   "session-1",
		Filename:    "notes.png",
		Kind:        "image",
		StoragePath: "/data/uploads/notes.png",
		Digest:      "abc123",
		Chars:       250,
	}
	require.NoError(t, repo.SaveSourceFile(file))
	assert.NotZero(t, file.ID)
	assert.False(t, file.CreatedAt.IsZero())

	// 空会话ID被拒绝
	err := repo.SaveSourceFile(&models.SourceFile{Filename: "x.png"})
	assert.Error(t, err)

	// 列出会话的记录
	files, err := repo.ListSourceFiles("session-1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "notes.png", files[0].Filename)

	// 其他会话为空
	files, err = repo.ListSourceFiles("other-session")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestHistoryRepository_FindSourceByDigest(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewHistoryRepository()

	require.NoError(t, repo.SaveSourceFile(&models.SourceFile{
		SessionID: "session-1",
		Filename:  "a.pdf",
		Kind:      "pdf",
		Digest:    "digest-1",
	}))

	found, err := repo.FindSourceByDigest("digest-1")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", found.Filename)

	_, err = repo.FindSourceByDigest("missing-digest")
	assert.ErrorIs(t, err, models.ErrSourceFileNotFound)
}

func TestHistoryRepository_DeckExports(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewHistoryRepository()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.SaveDeckExport(&models.DeckExport{
			SessionID: "session-1",
			DeckName:  fmt.Sprintf("Deck %d", i+1),
			FilePath:  fmt.Sprintf("/tmp/deck_%d.apkg", i+1),
			CardCount: 10,
		}))
	}

	exports, total, err := repo.ListDeckExports("session-1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, exports, 2)

	// 分页第二页
	exports, total, err = repo.ListDeckExports("session-1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, exports, 1)

	// 空会话ID被拒绝
	err = repo.SaveDeckExport(&models.DeckExport{DeckName: "x"})
	assert.Error(t, err)
}

func TestHistoryRepository_DeleteSessionHistory(t *testing.T) {
	_, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewHistoryRepository()

	require.NoError(t, repo.SaveSourceFile(&models.SourceFile{
		SessionID: "session-1", Filename: "a.png", Kind: "image",
	}))
	require.NoError(t, repo.SaveDeckExport(&models.DeckExport{
		SessionID: "session-1", DeckName: "Deck", FilePath: "/tmp/d.apkg",
	}))

	require.NoError(t, repo.DeleteSessionHistory("session-1"))

	files, err := repo.ListSourceFiles("session-1")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, total, err := repo.ListDeckExports("session-1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/card-gen-system/internal/anki"
	"github.com/fyerfyer/card-gen-system/internal/cards"
	"github.com/fyerfyer/card-gen-system/internal/session"
)

func newSessionWithCards(t *testing.T, sessions *session.Store, drafts []cards.Card) *session.Session {
	t.Helper()
	sess, err := sessions.Create()
	require.NoError(t, err)

	sess, err = sessions.Update(sess.ID, func(s *session.Session) error {
		s.ReplaceCards(drafts)
		return nil
	})
	require.NoError(t, err)
	return sess
}

func deckDrafts() []cards.Card {
	return []cards.Card{
		{Front: "Q1", Back: "A1"},
		{Front: "Q2", Back: "A2"},
		{Front: "Q3", Back: "A3"},
	}
}

func TestDeckServiceExport(t *testing.T) {
	sessions := newTestSessionStore(t)
	history := &fakeHistory{}
	service := NewDeckService(anki.NewPackager(t.TempDir()), sessions, WithDeckHistory(history))

	sess := newSessionWithCards(t, sessions, deckDrafts())

	result, err := service.Export(sess.ID, "My Deck")
	require.NoError(t, err)
	assert.Equal(t, "My Deck", result.DeckName)
	assert.Equal(t, 3, result.CardCount)

	_, err = os.Stat(result.FilePath)
	assert.NoError(t, err)

	// 导出历史写入
	exports, total, err := history.ListDeckExports(sess.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 3, exports[0].CardCount)
	assert.False(t, exports[0].Extended)
}

func TestDeckServiceExportSelectedOnly(t *testing.T) {
	sessions := newTestSessionStore(t)
	service := NewDeckService(anki.NewPackager(t.TempDir()), sessions)

	sess := newSessionWithCards(t, sessions, deckDrafts())
	_, err := sessions.Update(sess.ID, func(s *session.Session) error {
		s.SetSelection([]int{0, 2})
		return nil
	})
	require.NoError(t, err)

	result, err := service.Export(sess.ID, "Partial Deck")
	require.NoError(t, err)
	assert.Equal(t, 2, result.CardCount)

	deck, err := anki.ReadDeck(result.FilePath)
	require.NoError(t, err)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "Q1", deck.Cards[0].Front)
	assert.Equal(t, "Q3", deck.Cards[1].Front)
}

func TestDeckServiceExportDefaults(t *testing.T) {
	sessions := newTestSessionStore(t)
	service := NewDeckService(anki.NewPackager(t.TempDir()), sessions)

	sess := newSessionWithCards(t, sessions, deckDrafts())

	// 空名称使用默认牌组名
	result, err := service.Export(sess.ID, "  ")
	require.NoError(t, err)
	assert.Equal(t, anki.DefaultDeckName, result.DeckName)
}

func TestDeckServiceExportEmpty(t *testing.T) {
	sessions := newTestSessionStore(t)
	service := NewDeckService(anki.NewPackager(t.TempDir()), sessions)

	sess, err := sessions.Create()
	require.NoError(t, err)

	_, err = service.Export(sess.ID, "Empty")
	assert.ErrorIs(t, err, anki.ErrEmptyDeck)
}

func TestDeckServiceExtend(t *testing.T) {
	sessions := newTestSessionStore(t)
	packager := anki.NewPackager(t.TempDir())
	service := NewDeckService(packager, sessions)

	// 先造一个已有牌组
	existingPath, err := packager.CreateDeck([]cards.Card{
		{Front: "old Q", Back: "old A"},
	}, "Existing Deck", "")
	require.NoError(t, err)

	sess := newSessionWithCards(t, sessions, deckDrafts())

	result, err := service.Extend(sess.ID, existingPath, "Extended Deck")
	require.NoError(t, err)
	assert.Equal(t, 4, result.CardCount)

	deck, err := anki.ReadDeck(result.FilePath)
	require.NoError(t, err)
	require.Len(t, deck.Cards, 4)
	// 已有卡片排在前面
	assert.Equal(t, "old Q", deck.Cards[0].Front)
	assert.Equal(t, "Q1", deck.Cards[1].Front)
}

func TestDeckServiceExtendMalformed(t *testing.T) {
	sessions := newTestSessionStore(t)
	service := NewDeckService(anki.NewPackager(t.TempDir()), sessions)

	sess := newSessionWithCards(t, sessions, deckDrafts())

	broken := t.TempDir() + "/broken.apkg"
	require.NoError(t, os.WriteFile(broken, []byte("garbage"), 0644))

	_, err := service.Extend(sess.ID, broken, "X")
	assert.ErrorIs(t, err, anki.ErrMalformedArchive)
}

func TestDeckServiceImportJSON(t *testing.T) {
	sessions := newTestSessionStore(t)
	service := NewDeckService(anki.NewPackager(t.TempDir()), sessions)

	sess, err := sessions.Create()
	require.NoError(t, err)

	payload := []byte(`{"deck_name": "Imported", "cards": [{"front": "Q", "back": "A"}]}`)
	updated, deck, err := service.ImportJSON(sess.ID, payload)
	require.NoError(t, err)
	assert.Equal(t, "Imported", deck.Name)
	require.Len(t, updated.Cards, 1)
	assert.Equal(t, []int{0}, updated.Selected)

	// 非法JSON
	_, _, err = service.ImportJSON(sess.ID, []byte("nope"))
	assert.Error(t, err)
}

func TestDeckServiceExportJSON(t *testing.T) {
	sessions := newTestSessionStore(t)
	packager := anki.NewPackager(t.TempDir())
	service := NewDeckService(packager, sessions)

	deckPath, err := packager.CreateDeck(deckDrafts(), "JSON Deck", "")
	require.NoError(t, err)

	jsonPath, err := service.ExportJSON(deckPath)
	require.NoError(t, err)

	imported, err := anki.ImportJSON(jsonPath)
	require.NoError(t, err)
	assert.Len(t, imported.Cards, 3)
}

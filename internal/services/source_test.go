package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/card-gen-system/internal/extract"
)

func TestSourceServiceUpload(t *testing.T) {
	client := &fakeGemini{response: "extracted vocabulary list"}
	sessions := newTestSessionStore(t)
	history := &fakeHistory{}

	service := NewSourceService(
		newTestStorage(t),
		newTestExtractor(client),
		sessions,
		WithSourceHistory(history),
	)

	sess, err := sessions.Create()
	require.NoError(t, err)

	updated, err := service.Upload(context.Background(), sess.ID,
		bytes.NewBufferString("fake image content"), "notes.png")
	require.NoError(t, err)

	require.Len(t, updated.Sources, 1)
	assert.Equal(t, "notes.png", updated.Sources[0].Filename)
	assert.Equal(t, extract.KindImage, updated.Sources[0].Kind)
	assert.Equal(t, "extracted vocabulary list", updated.Sources[0].Text)

	// 会话被持久化
	reloaded, err := sessions.Get(sess.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Sources, 1)

	// 历史记录写入
	records, err := history.ListSourceFiles(sess.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "image", records[0].Kind)
	assert.NotEmpty(t, records[0].Digest)
}

func TestSourceServiceUploadUnsupported(t *testing.T) {
	client := &fakeGemini{response: "text"}
	sessions := newTestSessionStore(t)

	service := NewSourceService(newTestStorage(t), newTestExtractor(client), sessions)

	sess, err := sessions.Create()
	require.NoError(t, err)

	_, err = service.Upload(context.Background(), sess.ID,
		bytes.NewBufferString("content"), "notes.docx")
	require.Error(t, err)
	assert.True(t, extract.IsCode(err, extract.ErrCodeUnsupportedType))

	// 会话不受影响
	reloaded, err := sessions.Get(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Sources)
}

func TestSourceServiceUploadEmptyFilename(t *testing.T) {
	client := &fakeGemini{response: "text"}
	sessions := newTestSessionStore(t)
	service := NewSourceService(newTestStorage(t), newTestExtractor(client), sessions)

	_, err := service.Upload(context.Background(), "any", bytes.NewBufferString("x"), "")
	assert.ErrorIs(t, err, ErrNoFilename)
}

func TestSourceServiceUploadUnknownSession(t *testing.T) {
	client := &fakeGemini{response: "text"}
	sessions := newTestSessionStore(t)
	service := NewSourceService(newTestStorage(t), newTestExtractor(client), sessions)

	_, err := service.Upload(context.Background(), "missing-session",
		bytes.NewBufferString("content"), "notes.png")
	assert.Error(t, err)
}

func TestSourceServiceClearSources(t *testing.T) {
	client := &fakeGemini{response: "some text"}
	sessions := newTestSessionStore(t)
	service := NewSourceService(newTestStorage(t), newTestExtractor(client), sessions)

	sess, err := sessions.Create()
	require.NoError(t, err)

	_, err = service.Upload(context.Background(), sess.ID,
		bytes.NewBufferString("fake image"), "a.png")
	require.NoError(t, err)

	cleared, err := service.ClearSources(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Sources)
	assert.Empty(t, cleared.Cards)

	reloaded, err := sessions.Get(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Sources)
}

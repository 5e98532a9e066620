package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	written, err := store.Save(ctx, "videos/a.mp4", strings.NewReader("frames"), "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, int64(6), written)

	exists, err := store.Exists(ctx, "videos/a.mp4")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := store.Size(ctx, "videos/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)

	rc, err := store.Open(ctx, "videos/a.mp4")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "frames", string(data))

	require.NoError(t, store.Delete(ctx, "videos/a.mp4"))
	exists, err = store.Exists(ctx, "videos/a.mp4")
	require.NoError(t, err)
	assert.False(t, exists)

	// повторное удаление не ошибка
	assert.NoError(t, store.Delete(ctx, "videos/a.mp4"))

	_, err = store.Open(ctx, "videos/a.mp4")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../escape.txt", strings.NewReader("x"), "text/plain")
	assert.Error(t, err)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}

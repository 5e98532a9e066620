package staging

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin_console/internal/storage"
	"admin_console/pkg/apperrors"
)

// минимальный заголовок mp4 (ftyp box)
var mp4Header = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")

func mp4Body(payload string) io.Reader {
	return bytes.NewReader(append(append([]byte{}, mp4Header...), payload...))
}

func newRegistry(t *testing.T, maxSize int64) (*Registry, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return NewRegistry(store, maxSize), store
}

func TestStage_StoresVideo(t *testing.T) {
	ctx := context.Background()
	reg, store := newRegistry(t, 1<<20)

	entry, err := reg.Stage(ctx, "s1", Upload{
		FileName:    "intro.mp4",
		ContentType: "video/mp4",
		Size:        100,
		Title:       "Intro",
		Body:        mp4Body("frames"),
	})

	require.NoError(t, err)
	assert.Equal(t, "intro.mp4", entry.Video.FileName)
	assert.Equal(t, "Intro", entry.Title)
	assert.Equal(t, int64(len(mp4Header)+6), entry.Video.Size)

	exists, err := store.Exists(ctx, entry.Video.Key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStage_RejectsNonVideoKeepsPreviousSelection(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t, 1<<20)

	first, err := reg.Stage(ctx, "s1", Upload{FileName: "a.mp4", ContentType: "video/mp4", Body: mp4Body("a")})
	require.NoError(t, err)

	_, err = reg.Stage(ctx, "s1", Upload{FileName: "notes.txt", ContentType: "text/plain", Body: strings.NewReader("hello")})
	assert.ErrorIs(t, err, apperrors.ErrNotAVideo)

	// заявлен video/*, но внутри текст
	_, err = reg.Stage(ctx, "s1", Upload{FileName: "fake.mp4", ContentType: "video/mp4", Body: strings.NewReader("just some text, not frames")})
	assert.ErrorIs(t, err, apperrors.ErrNotAVideo)

	current, ok := reg.Get("s1")
	require.True(t, ok)
	assert.Equal(t, first.Video.Key, current.Video.Key)
}

func TestStage_RejectsTooLarge(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t, 64)

	// заявленный размер больше лимита
	_, err := reg.Stage(ctx, "s1", Upload{FileName: "big.mp4", ContentType: "video/mp4", Size: 65, Body: mp4Body("x")})
	assert.ErrorIs(t, err, apperrors.ErrVideoTooLarge)

	// размер не заявлен, но поток длиннее лимита
	_, err = reg.Stage(ctx, "s1", Upload{FileName: "big.mp4", ContentType: "video/mp4", Body: mp4Body(strings.Repeat("x", 100))})
	assert.ErrorIs(t, err, apperrors.ErrVideoTooLarge)

	_, ok := reg.Get("s1")
	assert.False(t, ok)
}

func TestStage_ReplacesPreviousFile(t *testing.T) {
	ctx := context.Background()
	reg, store := newRegistry(t, 1<<20)

	first, err := reg.Stage(ctx, "s1", Upload{FileName: "a.mp4", ContentType: "video/mp4", Body: mp4Body("a")})
	require.NoError(t, err)
	_, err = reg.Stage(ctx, "s1", Upload{FileName: "b.mp4", ContentType: "video/mp4", Body: mp4Body("b")})
	require.NoError(t, err)

	exists, err := store.Exists(ctx, first.Video.Key)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 1, reg.Len())
}

func TestDiscard_DeletesObject(t *testing.T) {
	ctx := context.Background()
	reg, store := newRegistry(t, 1<<20)

	entry, err := reg.Stage(ctx, "s1", Upload{FileName: "a.mp4", ContentType: "video/mp4", Body: mp4Body("a")})
	require.NoError(t, err)

	reg.Discard(ctx, "s1")

	exists, err := store.Exists(ctx, entry.Video.Key)
	require.NoError(t, err)
	assert.False(t, exists)
	_, ok := reg.Get("s1")
	assert.False(t, ok)

	_, _, err = reg.Open(ctx, "s1")
	assert.ErrorIs(t, err, apperrors.ErrVideoRequired)
}

func TestSweep_RemovesExpired(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t, 1<<20)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	_, err := reg.Stage(ctx, "old", Upload{FileName: "a.mp4", ContentType: "video/mp4", Body: mp4Body("a")})
	require.NoError(t, err)

	now = now.Add(3 * time.Hour)
	_, err = reg.Stage(ctx, "fresh", Upload{FileName: "b.mp4", ContentType: "video/mp4", Body: mp4Body("b")})
	require.NoError(t, err)

	removed := reg.Sweep(ctx, 2*time.Hour)

	assert.Equal(t, 1, removed)
	_, ok := reg.Get("old")
	assert.False(t, ok)
	_, ok = reg.Get("fresh")
	assert.True(t, ok)
}

func TestClear_MarksOwnerUntilNextRead(t *testing.T) {
	ctx := context.Background()
	reg, store := newRegistry(t, 1<<20)

	entry, err := reg.Stage(ctx, "s1", Upload{FileName: "a.mp4", ContentType: "video/mp4", Title: "Intro", Body: mp4Body("a")})
	require.NoError(t, err)

	reg.Clear(ctx, "s1")

	exists, err := store.Exists(ctx, entry.Video.Key)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, reg.TakeCleared("s1"))
	assert.False(t, reg.TakeCleared("s1"))
	assert.False(t, reg.TakeCleared("s2"))
}

func TestStage_ResetsClearedMark(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(t, 1<<20)

	reg.Clear(ctx, "s1")
	_, err := reg.Stage(ctx, "s1", Upload{FileName: "b.mp4", ContentType: "video/mp4", Body: mp4Body("b")})
	require.NoError(t, err)

	assert.False(t, reg.TakeCleared("s1"))
}

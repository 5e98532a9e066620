package staging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"admin_console/internal/logger"
	"admin_console/internal/metrics"
	"admin_console/internal/models"
	"admin_console/internal/storage"
	"admin_console/pkg/apperrors"
)

// сколько байт читаем для определения типа содержимого
const sniffLen = 3072

// Entry - выбранное видео одного администратора
type Entry struct {
	Owner string
	Title string
	Video models.StagedVideo
}

// Upload - файл из формы выбора видео
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Title       string
	Body        io.Reader
}

// Registry хранит выбранные, но еще не загруженные в API видео.
// На одного владельца (сессию) приходится не больше одного файла.
type Registry struct {
	store   storage.Storage
	maxSize int64
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*Entry
	cleared map[string]time.Time
}

// NewRegistry создает реестр поверх хранилища
func NewRegistry(store storage.Storage, maxSize int64) *Registry {
	return &Registry{
		store:   store,
		maxSize: maxSize,
		now:     time.Now,
		entries: make(map[string]*Entry),
		cleared: make(map[string]time.Time),
	}
}

// MaxSize - лимит размера файла в байтах
func (r *Registry) MaxSize() int64 {
	return r.maxSize
}

// Stage проверяет файл и сохраняет его. При ошибке проверки
// ранее выбранное видео остается как было.
func (r *Registry) Stage(ctx context.Context, owner string, up Upload) (*Entry, error) {
	if !strings.HasPrefix(up.ContentType, "video/") {
		return nil, apperrors.ErrNotAVideo
	}
	if up.Size > r.maxSize {
		return nil, apperrors.ErrVideoTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	if !looksLikeVideo(head) {
		return nil, apperrors.ErrNotAVideo
	}

	key := "videos/" + uuid.NewString() + strings.ToLower(filepath.Ext(up.FileName))
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), up.Body), r.maxSize+1)

	written, err := r.store.Save(ctx, key, body, up.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to stage video: %w", err)
	}
	if written > r.maxSize {
		r.deleteObject(ctx, key)
		return nil, apperrors.ErrVideoTooLarge
	}

	entry := &Entry{
		Owner: owner,
		Title: up.Title,
		Video: models.StagedVideo{
			Key:         key,
			FileName:    filepath.Base(up.FileName),
			ContentType: up.ContentType,
			Size:        written,
			StagedAt:    r.now(),
		},
	}

	r.mu.Lock()
	previous := r.entries[owner]
	r.entries[owner] = entry
	delete(r.cleared, owner)
	count := len(r.entries)
	r.mu.Unlock()
	metrics.StagedVideos.Set(float64(count))

	// старый файл больше не нужен
	if previous != nil {
		r.deleteObject(ctx, previous.Video.Key)
	}

	logger.CtxInfo(ctx, "video staged", "key", key, "size", written)
	return entry, nil
}

// Get возвращает копию записи владельца
func (r *Registry) Get(owner string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[owner]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// SetTitle запоминает введенный заголовок, пока файл ждет загрузки
func (r *Registry) SetTitle(owner, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[owner]; ok {
		entry.Title = title
	}
}

// Open открывает файл владельца для превью или загрузки
func (r *Registry) Open(ctx context.Context, owner string) (io.ReadCloser, Entry, error) {
	entry, ok := r.Get(owner)
	if !ok {
		return nil, Entry{}, apperrors.ErrVideoRequired
	}
	rc, err := r.store.Open(ctx, entry.Video.Key)
	if err != nil {
		return nil, Entry{}, fmt.Errorf("failed to open staged video: %w", err)
	}
	return rc, entry, nil
}

// Discard удаляет запись и файл владельца. Отсутствие записи не ошибка.
func (r *Registry) Discard(ctx context.Context, owner string) {
	r.mu.Lock()
	entry, ok := r.entries[owner]
	delete(r.entries, owner)
	count := len(r.entries)
	r.mu.Unlock()
	metrics.StagedVideos.Set(float64(count))

	if ok {
		r.deleteObject(ctx, entry.Video.Key)
	}
}

// Clear - администратор нажал "очистить": файл удаляется, а следующий показ
// формы идет с пустым заголовком и без превью, даже если на сервере есть видео.
func (r *Registry) Clear(ctx context.Context, owner string) {
	r.Discard(ctx, owner)
	r.mu.Lock()
	r.cleared[owner] = r.now()
	r.mu.Unlock()
}

// TakeCleared сообщает, была ли форма очищена, и сбрасывает отметку
func (r *Registry) TakeCleared(owner string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.cleared[owner]
	delete(r.cleared, owner)
	return ok
}

// Sweep удаляет записи старше ttl и возвращает их количество
func (r *Registry) Sweep(ctx context.Context, ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	for owner, at := range r.cleared {
		if at.Before(cutoff) {
			delete(r.cleared, owner)
		}
	}
	var expired []*Entry
	for owner, entry := range r.entries {
		if entry.Video.StagedAt.Before(cutoff) {
			expired = append(expired, entry)
			delete(r.entries, owner)
		}
	}
	count := len(r.entries)
	r.mu.Unlock()
	metrics.StagedVideos.Set(float64(count))

	for _, entry := range expired {
		r.deleteObject(ctx, entry.Video.Key)
	}
	return len(expired)
}

// Len - количество выбранных видео
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) deleteObject(ctx context.Context, key string) {
	if err := r.store.Delete(ctx, key); err != nil {
		logger.CtxWarn(ctx, "failed to delete staged video", "key", key, "error", err)
	}
}

// looksLikeVideo - содержимое не противоречит заявленному video/*.
// Неизвестный формат (octet-stream) пропускаем, текст и картинки нет.
func looksLikeVideo(head []byte) bool {
	if len(head) == 0 {
		return false
	}
	detected := mimetype.Detect(head)
	for m := detected; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "video/") {
			return true
		}
	}
	return detected.Is("application/octet-stream")
}

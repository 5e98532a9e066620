package pagestate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"admin_console/internal/metrics"
)

// Mutations - защита от двойной отправки.
// Одинаковые мутации (тот же ключ, включая отпечаток содержимого), пришедшие
// одновременно, выполняются одним вызовом API.
type Mutations struct {
	group    singleflight.Group
	mu       sync.Mutex
	inFlight map[string]int
}

// NewMutations создает пустую группу
func NewMutations() *Mutations {
	return &Mutations{inFlight: make(map[string]int)}
}

// Key собирает ключ мутации: действие + сессия + объект
func Key(action string, parts ...string) string {
	return action + ":" + strings.Join(parts, ":")
}

// Fingerprint - короткий отпечаток содержимого мутации для ключа.
// Разные данные дают разные ключи и не склеиваются в один вызов.
func Fingerprint(payload any) string {
	if payload == nil {
		return ""
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(fmt.Sprintf("%#v", payload))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

// Do выполняет fn под ключом key.
// shared = true, если результат получен от уже идущего вызова.
func (m *Mutations) Do(ctx context.Context, key string, fn func(context.Context) (string, error)) (message string, shared bool, err error) {
	return Run(ctx, m, key, fn)
}

// Run - то же, что Do, но для мутаций, которые возвращают данные (например, ставки,
// подтвержденные сервером). Все участники общего вызова получают один результат.
func Run[T any](ctx context.Context, m *Mutations, key string, fn func(context.Context) (T, error)) (result T, shared bool, err error) {
	action := key
	if idx := strings.Index(key, ":"); idx > 0 {
		action = key[:idx]
	}

	// общий вызов не зависит от отмены запроса, который его начал:
	// остальные участники ждут результат, даже если первый клиент ушел
	shareCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (interface{}, error) {
		m.enter(key)
		defer m.leave(key)
		out, err := fn(shareCtx)
		return out, err
	})

	var v interface{}
	select {
	case res := <-ch:
		v, err, shared = res.Val, res.Err, res.Shared
	case <-ctx.Done():
		return result, false, ctx.Err()
	}

	switch {
	case shared:
		metrics.MutationsTotal.WithLabelValues(action, "shared").Inc()
	case err != nil:
		metrics.MutationsTotal.WithLabelValues(action, "failed").Inc()
	default:
		metrics.MutationsTotal.WithLabelValues(action, "saved").Inc()
	}

	if err != nil {
		return result, shared, err
	}
	result, _ = v.(T)
	return result, shared, nil
}

// InFlight - есть ли сейчас мутация с таким ключом
func (m *Mutations) InFlight(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight[key] > 0
}

func (m *Mutations) enter(key string) {
	m.mu.Lock()
	m.inFlight[key]++
	m.mu.Unlock()
}

func (m *Mutations) leave(key string) {
	m.mu.Lock()
	if m.inFlight[key] <= 1 {
		delete(m.inFlight, key)
	} else {
		m.inFlight[key]--
	}
	m.mu.Unlock()
}

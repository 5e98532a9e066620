package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"admin_console/internal/apiclient"
)

// Call - запрос, который получил поддельный API
type Call struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

// Upstream - поддельный удаленный API на httptest.Server
type Upstream struct {
	Server *httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []Call
}

// NewUpstream запускает сервер и закрывает его по окончании теста
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	u := &Upstream{routes: make(map[string]http.HandlerFunc)}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()

	u.mu.Lock()
	u.calls = append(u.calls, Call{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: body})
	handler, ok := u.routes[r.Method+" "+r.URL.Path]
	u.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"route not found"}`)
		return
	}
	r.Body = io.NopCloser(bytesReader(body))
	handler(w, r)
}

// Handle регистрирует обработчик для METHOD /path
func (u *Upstream) Handle(method, path string, h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[method+" "+path] = h
}

// JSON регистрирует фиксированный JSON ответ
func (u *Upstream) JSON(method, path string, status int, body interface{}) {
	u.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

// Client - настоящий apiclient, направленный на поддельный API
func (u *Upstream) Client(t *testing.T) *apiclient.Client {
	t.Helper()
	client, err := apiclient.New(apiclient.Config{BaseURL: u.Server.URL})
	require.NoError(t, err)
	return client
}

// Calls - копия всех полученных запросов
func (u *Upstream) Calls() []Call {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]Call, len(u.calls))
	copy(out, u.calls)
	return out
}

// CallCount - сколько раз вызывали METHOD /path
func (u *Upstream) CallCount(method, path string) int {
	n := 0
	for _, c := range u.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// LastCall - последний вызов METHOD /path
func (u *Upstream) LastCall(method, path string) (Call, bool) {
	calls := u.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method && calls[i].Path == path {
			return calls[i], true
		}
	}
	return Call{}, false
}

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"admin_console/internal/logger"
	"admin_console/internal/metrics"
	"admin_console/pkg/contextkeys"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "admin-console/1.0"
	// ответы с JSON больше этого размера не читаются целиком
	maxJSONBody = 10 << 20
)

// Config - параметры клиента
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Transport подменяется в тестах, по умолчанию http.DefaultTransport
	Transport http.RoundTripper
}

// Client - единственный HTTP клиент удаленного API.
// Bearer токен добавляется перехватчиком из context запроса.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// New создает клиент
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	next := cfg.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &bearerTransport{next: next},
		},
		userAgent: cfg.UserAgent,
	}, nil
}

// WithToken кладет bearer токен в context
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextkeys.TokenContextKey, token)
}

// TokenFromContext достает bearer токен из context
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(contextkeys.TokenContextKey).(string); ok {
		return token
	}
	return ""
}

// bearerTransport - перехватчик: Authorization ставится здесь и только здесь
type bearerTransport struct {
	next http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := TokenFromContext(req.Context()); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.next.RoundTrip(req)
}

// ResolveURL превращает относительный путь API (например streamUrl) в абсолютный URL
func (c *Client) ResolveURL(path string) string {
	if path == "" {
		return ""
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return c.baseURL.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")}).String()
}

// GetJSON - GET с разбором JSON ответа в out
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON - POST с JSON телом
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

// PutJSON - PUT с JSON телом
func (c *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, in, out)
}

// FilePart - файл для multipart запроса
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// PostMultipart отправляет поля и файл как multipart/form-data.
// Тело пишется потоком, файл не загружается в память целиком.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file FilePart, out interface{}) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, fields, file))
	}()

	req, err := c.newRequest(ctx, http.MethodPost, path, pr)
	if err != nil {
		_ = pr.Close()
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.send(req, path, out)
}

func writeMultipart(mw *multipart.Writer, fields map[string]string, file FilePart) error {
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return err
		}
	}
	if file.Reader != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(file.Field), escapeQuotes(file.FileName)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return err
		}
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// Blob - бинарный ответ API
type Blob struct {
	ContentType string
	Data        []byte
}

// GetBlob скачивает бинарный ответ (например PDF отчет)
func (c *Client) GetBlob(ctx context.Context, path string) (*Blob, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(req.Method, path, 0, started, &Error{Method: req.Method, Path: path, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
		return nil, c.fail(req.Method, path, resp.StatusCode, started, &Error{
			Method:  req.Method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: serverMessage(body),
		})
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(req.Method, path, resp.StatusCode, started, &Error{Method: req.Method, Path: path, Status: resp.StatusCode, Err: err})
	}
	c.observe(req.Method, path, resp.StatusCode, started, nil)

	return &Blob{ContentType: resp.Header.Get("Content-Type"), Data: data}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, path, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	target := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimLeft(path, "/")})
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// send выполняет запрос и применяет единое правило успеха:
// статус 2xx и, если в JSON объекте есть поле success, оно равно true.
func (c *Client) send(req *http.Request, path string, out interface{}) error {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(req.Method, path, 0, started, &Error{Method: req.Method, Path: path, Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return c.fail(req.Method, path, resp.StatusCode, started, &Error{Method: req.Method, Path: path, Status: resp.StatusCode, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(req.Method, path, resp.StatusCode, started, &Error{
			Method:  req.Method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: serverMessage(raw),
		})
	}

	if ok, message := envelopeSuccess(raw); !ok {
		return c.fail(req.Method, path, resp.StatusCode, started, &Error{
			Method:  req.Method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: message,
		})
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return c.fail(req.Method, path, resp.StatusCode, started, &Error{
				Method: req.Method,
				Path:   path,
				Status: resp.StatusCode,
				Err:    fmt.Errorf("failed to decode response: %w", err),
			})
		}
	}

	c.observe(req.Method, path, resp.StatusCode, started, nil)
	return nil
}

type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// envelopeSuccess проверяет поле success. Массивы и не-JSON тела считаются успехом.
func envelopeSuccess(raw []byte) (bool, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return true, ""
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return true, ""
	}
	if env.Success != nil && !*env.Success {
		return false, firstNonEmpty(env.Message, env.Error)
	}
	return true, ""
}

func serverMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ""
	}
	return firstNonEmpty(env.Message, env.Error)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c *Client) fail(method, path string, status int, started time.Time, err *Error) error {
	c.observe(method, path, status, started, err)
	return err
}

func (c *Client) observe(method, path string, status int, started time.Time, err error) {
	elapsed := time.Since(started)
	metrics.ObserveUpstream(method, path, status, elapsed)
	logger.UpstreamLog(method, path, status, elapsed, err)
}

package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoSession      = errors.New("session cookie missing")
	ErrInvalidSession = errors.New("session cookie invalid")
)

// Session - вошедший администратор и bearer токен API
type Session struct {
	ID        string
	Admin     string
	Token     string
	ExpiresAt time.Time
}

// Claims - содержимое подписанной cookie сессии
type Claims struct {
	SessionID string `json:"sid"`
	Admin     string `json:"adm"`
	Token     string `json:"tok"`
	jwt.RegisteredClaims
}

// Config - параметры cookie
type Config struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// Manager выпускает и проверяет cookie сессии
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewManager(cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "admin_session"
	}
	return &Manager{
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

// Issue создает сессию и ставит cookie
func (m *Manager) Issue(c *gin.Context, admin, token string) (*Session, error) {
	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Admin:     admin,
		Token:     token,
		ExpiresAt: now.Add(m.ttl),
	}

	signed, err := m.Sign(sess)
	if err != nil {
		return nil, err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, signed, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return sess, nil
}

// Sign подписывает сессию (HS256)
func (m *Manager) Sign(sess *Session) (string, error) {
	claims := &Claims{
		SessionID: sess.ID,
		Admin:     sess.Admin,
		Token:     sess.Token,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(m.now()),
			Issuer:    "admin-console",
			Subject:   sess.Admin,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Read достает сессию из cookie запроса
func (m *Manager) Read(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(m.cookieName)
	if err != nil || raw == "" {
		return nil, ErrNoSession
	}
	return m.Parse(raw)
}

// Parse проверяет подпись и срок действия
func (m *Manager) Parse(raw string) (*Session, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Token == "" {
		return nil, ErrInvalidSession
	}

	sess := &Session{
		ID:    claims.SessionID,
		Admin: claims.Admin,
		Token: claims.Token,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// Clear удаляет cookie сессии
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

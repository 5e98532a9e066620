package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestManager_SignAndParse(t *testing.T) {
	m := NewManager(Config{Secret: "test-secret", TTL: time.Hour})

	signed, err := m.Sign(&Session{ID: "s1", Admin: "admin@example.com", Token: "api-token", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	sess, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, "admin@example.com", sess.Admin)
	assert.Equal(t, "api-token", sess.Token)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	issuer := NewManager(Config{Secret: "one"})
	reader := NewManager(Config{Secret: "two"})

	signed, err := issuer.Sign(&Session{ID: "s1", Token: "t", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	_, err = reader.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager(Config{Secret: "s"})
	signed, err := m.Sign(&Session{ID: "s1", Token: "t", ExpiresAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestManager_IssueSetsCookieAndReadsBack(t *testing.T) {
	m := NewManager(Config{Secret: "s", CookieName: "sess"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	issued, err := m.Issue(c, "admin@example.com", "tok")
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sess", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = req

	sess, err := m.Read(c2)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, sess.ID)
	assert.Equal(t, "tok", sess.Token)
}

func TestFlash_RoundTripThroughCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	SetFlash(c, FlashSuccess, "Tax configuration updated")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = req

	flash, ok := PopFlash(c2)
	require.True(t, ok)
	assert.Equal(t, FlashSuccess, flash.Kind)
	assert.Equal(t, "Tax configuration updated", flash.Message)
}

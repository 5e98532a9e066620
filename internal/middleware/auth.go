package middleware

import (
	"net/http"

	"admin_console/internal/apiclient"
	"admin_console/internal/logger"
	"admin_console/internal/session"
	"admin_console/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// LoginPath - куда отправляем без сессии
const LoginPath = "/login"

// HomePath - первая страница после входа
const HomePath = "/user/customers"

// SessionMiddleware читает cookie сессии. Токен API кладется в context запроса,
// откуда его берет перехватчик apiclient.
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := manager.Read(c)
		if err == nil {
			ctx := apiclient.WithToken(c.Request.Context(), sess.Token)
			ctx = logger.WithAdmin(ctx, sess.Admin)
			c.Request = c.Request.WithContext(ctx)
			c.Set(contextkeys.SessionKey, sess)
		} else if err != session.ErrNoSession {
			// подпись не сошлась или cookie просрочена
			manager.Clear(c)
		}
		c.Next()
	}
}

// CurrentSession - сессия текущего запроса или nil
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(contextkeys.SessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// RequireSession - middleware для страниц консоли: без сессии редирект на вход
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GuestOnly - страница входа не нужна тому, кто уже вошел
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) != nil && c.Request.Method == http.MethodGet {
			c.Redirect(http.StatusSeeOther, HomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

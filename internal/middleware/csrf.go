package middleware

import (
	"net/http"

	"admin_console/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFFieldName - имя скрытого поля формы с токеном
const CSRFFieldName = "csrf_token"

// CSRFMiddleware адаптирует gorilla/csrf к gin.
// Для http (без TLS) запрос помечается как plaintext, иначе проверка Referer не пройдет.
func CSRFMiddleware(key []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.CtxWarn(r.Context(), "csrf check failed", "reason", csrf.FailureReason(r))
			http.Error(w, "Forbidden - invalid or missing CSRF token", http.StatusForbidden)
		})),
	)

	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})

		req := c.Request
		if !secure {
			req = csrf.PlaintextHTTPRequest(req)
		}
		protect(next).ServeHTTP(c.Writer, req)

		if !passed {
			c.Abort()
		}
	}
}

// CSRFToken - токен для шаблона (пустая строка, если защита выключена)
func CSRFToken(c *gin.Context) string {
	return csrf.Token(c.Request)
}


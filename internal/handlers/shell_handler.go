package handlers

import (
	"net/http"

	"admin_console/internal/middleware"
	"admin_console/internal/session"

	"github.com/gin-gonic/gin"
)

// ShellHandler - то, что не относится к конкретной странице: боковая панель, health check
type ShellHandler struct {
	*BaseHandler
	version string
}

func NewShellHandler(base *BaseHandler, version string) *ShellHandler {
	return &ShellHandler{
		BaseHandler: base,
		version:     version,
	}
}

func (h *ShellHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Home)
	r.GET("/healthz", h.Health)
	r.POST("/ui/sidebar", h.ToggleSidebar)
}

func (h *ShellHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, middleware.HomePath)
}

func (h *ShellHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// ToggleSidebar сворачивает/разворачивает панель и возвращает на ту же страницу
func (h *ShellHandler) ToggleSidebar(c *gin.Context) {
	session.SetSidebarCollapsed(c, !session.SidebarCollapsed(c))
	c.Redirect(http.StatusSeeOther, SafeRedirect(c.PostForm("redirect"), middleware.HomePath))
}

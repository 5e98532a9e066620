package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie   = "admin_flash"
	sidebarCookie = "admin_sidebar"
)

// Виды сообщений
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash - одноразовое сообщение о результате действия (живет до следующего GET)
type Flash struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

// SetFlash запоминает сообщение для следующей страницы
func SetFlash(c *gin.Context, kind, message string) {
	raw, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", false, true)
}

// PopFlash читает и удаляет сообщение
func PopFlash(c *gin.Context) (Flash, bool) {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return Flash{}, false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Flash{}, false
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil || f.Message == "" {
		return Flash{}, false
	}
	return f, true
}

// SidebarCollapsed - свернута ли боковая панель
func SidebarCollapsed(c *gin.Context) bool {
	value, err := c.Cookie(sidebarCookie)
	return err == nil && value == "collapsed"
}

// SetSidebarCollapsed запоминает состояние панели на год
func SetSidebarCollapsed(c *gin.Context, collapsed bool) {
	value := "expanded"
	if collapsed {
		value = "collapsed"
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sidebarCookie, value, 365*24*3600, "/", "", false, false)
}

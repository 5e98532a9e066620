package handlers

import (
	"context"
	"net/http"

	"admin_console/internal/models"
	"admin_console/internal/services"
	"admin_console/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	settingHeading = "Paramètre"
	settingPath    = "/user/setting"
)

type SettingHandler struct {
	*BaseHandler
	settingsService services.SettingsService
}

func NewSettingHandler(base *BaseHandler, settingsService services.SettingsService) *SettingHandler {
	return &SettingHandler{
		BaseHandler:     base,
		settingsService: settingsService,
	}
}

func (h *SettingHandler) RegisterRoutes(r *gin.RouterGroup) {
	setting := r.Group("/setting")
	{
		setting.GET("", h.GetSettings)
		setting.POST("/check", h.CheckConnection)
	}
}

type settingView struct {
	Payment        models.PaymentSettings
	PublishableKey string
	Revealed       bool
}

// GetSettings - ключи показываются замаскированными, публичный можно раскрыть (?reveal=1)
func (h *SettingHandler) GetSettings(c *gin.Context) {
	page := h.NewPage(c, settingHeading, "setting")

	settings := h.settingsService.PaymentSettings()
	view := settingView{Payment: settings, PublishableKey: settings.PublishableKey}
	if c.Query("reveal") == "1" {
		view.PublishableKey = h.settingsService.PublishableKey()
		view.Revealed = true
	}

	page.Data = view
	h.Render(c, http.StatusOK, "setting", page)
}

// CheckConnection проверяет секретный ключ пробным запросом к Stripe
func (h *SettingHandler) CheckConnection(c *gin.Context) {
	message, err := h.Mutate(c, "stripe_check", "", nil, func(ctx context.Context) (string, error) {
		return h.settingsService.CheckConnection(ctx)
	})
	if err != nil {
		h.HandleActionError(c, settingPath, err)
		return
	}
	h.RedirectWithFlash(c, settingPath, session.FlashSuccess, message)
}

package handlers

import (
	"net/http"

	"admin_console/internal/logger"
	"admin_console/internal/middleware"
	"admin_console/internal/models"
	"admin_console/internal/services"
	"admin_console/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes - вход доступен только гостям, выход только с сессией
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	guest := r.Group("/login")
	guest.Use(middleware.GuestOnly())
	{
		guest.GET("", h.LoginPage)
		guest.POST("", h.Login)
	}

	r.POST("/logout", middleware.RequireSession(), h.Logout)
}

type loginView struct {
	Email string
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	page := h.NewPage(c, "Connexion", "")
	page.Data = loginView{}
	h.Render(c, http.StatusOK, "login", page)
}

func (h *AuthHandler) Login(c *gin.Context) {
	page := h.NewPage(c, "Connexion", "")

	var form models.LoginForm
	if err := h.BindAndValidate_Form(c, &form); err != nil {
		page.Data = loginView{Email: form.Email}
		page.Fail(apperrors.UserMessage(err))
		h.Render(c, http.StatusUnprocessableEntity, "login", page)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), form)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "Admin sign-in failed", "email", form.Email, "error", err)
		page.Data = loginView{Email: form.Email}
		page.Fail(apperrors.UserMessage(err))
		h.Render(c, apperrors.HTTPStatus(err), "login", page)
		return
	}

	if _, err := h.sessions.Issue(c, form.Email, token); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to issue session", err)
		page.Data = loginView{Email: form.Email}
		page.Fail(apperrors.UserMessage(apperrors.InternalError(err)))
		h.Render(c, http.StatusInternalServerError, "login", page)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Admin signed in", "email", form.Email)
	c.Redirect(http.StatusSeeOther, middleware.HomePath)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

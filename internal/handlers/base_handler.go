package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"admin_console/internal/logger"
	"admin_console/internal/middleware"
	"admin_console/internal/pagestate"
	"admin_console/internal/session"
	"admin_console/internal/validator"
	"admin_console/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	sessions  *session.Manager
	mutations *pagestate.Mutations
}

func NewBaseHandler(v *validator.Validator, sessions *session.Manager, mutations *pagestate.Mutations) *BaseHandler {
	return &BaseHandler{
		validator: v,
		sessions:  sessions,
		mutations: mutations,
	}
}

// ============================================================================
// 2. Данные страницы (layout + содержимое)
// ============================================================================

// Page - все, что нужно layout и шаблону страницы
type Page struct {
	Heading          string
	Active           string
	Path             string
	Admin            string
	SidebarCollapsed bool
	Flash            *session.Flash
	CSRFField        string
	CSRFToken        string
	// Error - страница не загрузилась, вместо формы показывается сообщение
	Error string
	Data  any
}

// NewPage собирает общие данные и забирает flash сообщение
func (h *BaseHandler) NewPage(c *gin.Context, heading, active string) *Page {
	page := &Page{
		Heading:          heading,
		Active:           active,
		Path:             c.Request.URL.Path,
		SidebarCollapsed: session.SidebarCollapsed(c),
		CSRFField:        middleware.CSRFFieldName,
		CSRFToken:        middleware.CSRFToken(c),
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		page.Admin = sess.Admin
	}
	if flash, ok := session.PopFlash(c); ok {
		page.Flash = &flash
	}
	return page
}

// Success - сообщение об успехе на этой же странице
func (p *Page) Success(message string) {
	p.Flash = &session.Flash{Kind: session.FlashSuccess, Message: message}
}

// Fail - сообщение об ошибке на этой же странице
func (p *Page) Fail(message string) {
	p.Flash = &session.Flash{Kind: session.FlashError, Message: message}
}

// Render рендерит страницу. Если клиент уже ушел, ничего не делает.
func (h *BaseHandler) Render(c *gin.Context, status int, name string, page *Page) {
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}
	c.HTML(status, name, page)
}

// RedirectWithFlash - Post/Redirect/Get с сообщением
func (h *BaseHandler) RedirectWithFlash(c *gin.Context, location, kind, message string) {
	if message != "" {
		session.SetFlash(c, kind, message)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// ============================================================================
// 3. Методы привязки и валидации (с контекстным логгированием)
// ============================================================================

// BindAndValidate_Form привязывает поля формы и проверяет их.
// Ошибка пригодна для показа администратору.
func (h *BaseHandler) BindAndValidate_Form(c *gin.Context, obj interface{}) error {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind form", err, "path", c.Request.URL.Path)
		return apperrors.NewBadRequestError("Invalid form submission")
	}

	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			return apperrors.New(apperrors.CodeValidationFailed, "validation", validationMessage(vErr), http.StatusUnprocessableEntity).
				WithDetails(vErr.Errors)
		}
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		return apperrors.InternalError(err)
	}
	return nil
}

func validationMessage(vErr *validator.ValidationError) string {
	fields := make([]string, 0, len(vErr.Errors))
	for field := range vErr.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+vErr.Errors[field])
	}
	return strings.Join(parts, "; ")
}

// ============================================================================
// 4. Мутации
// ============================================================================

// Mutate выполняет действие под защитой от двойной отправки.
// Один вызов API делят только отправки одной сессии с одинаковым содержимым (payload).
func (h *BaseHandler) Mutate(c *gin.Context, action, object string, payload any, fn func(ctx context.Context) (string, error)) (string, error) {
	return mutateValue(h, c, action, object, payload, fn)
}

// mutateValue - Mutate для действий, результат которых нужен странице
func mutateValue[T any](h *BaseHandler, c *gin.Context, action, object string, payload any, fn func(ctx context.Context) (T, error)) (T, error) {
	key := pagestate.Key(action, h.SessionOwner(c), object, pagestate.Fingerprint(payload))

	result, shared, err := pagestate.Run(c.Request.Context(), h.mutations, key, fn)
	if shared {
		logger.CtxInfo(c.Request.Context(), "Mutation joined an in-flight call", "action", action, "object", object)
	}
	return result, err
}

// SessionOwner - ключ владельца для реестров, привязанных к сессии
func (h *BaseHandler) SessionOwner(c *gin.Context) string {
	if sess := middleware.CurrentSession(c); sess != nil {
		return sess.ID
	}
	return ""
}

// ============================================================================
// 5. Обработчики ошибок (с контекстным логгированием)
// ============================================================================

// HandleLoadError показывает страницу в состоянии ошибки.
// Отмененный запрос ничего не рендерит, просроченный токен ведет на вход.
func (h *BaseHandler) HandleLoadError(c *gin.Context, name string, page *Page, err error) {
	ctx := c.Request.Context()

	if errors.Is(err, pagestate.ErrStale) {
		logger.CtxDebug(ctx, "Page request went away before data arrived", "path", c.Request.URL.Path)
		c.Abort()
		return
	}
	if apperrors.IsUnauthorized(err) {
		h.ExpireSession(c)
		return
	}

	logger.CtxWarn(ctx, "Page failed to load", "error", err, "path", c.Request.URL.Path)
	if page.Error == "" {
		page.Error = apperrors.UserMessage(err)
	}
	h.Render(c, apperrors.HTTPStatus(err), name, page)
}

// HandleActionError - мутация не удалась: сообщение и возврат на страницу
func (h *BaseHandler) HandleActionError(c *gin.Context, location string, err error) {
	if apperrors.IsUnauthorized(err) {
		h.ExpireSession(c)
		return
	}
	logger.CtxWarn(c.Request.Context(), "Action failed", "error", err, "path", c.Request.URL.Path)
	h.RedirectWithFlash(c, location, session.FlashError, apperrors.UserMessage(err))
}

// HandleServiceError - для ответов, которые не являются страницей (файлы)
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if apperrors.IsUnauthorized(err) {
		h.ExpireSession(c)
		return
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ExpireSession - API отверг токен: выходим и отправляем на страницу входа
func (h *BaseHandler) ExpireSession(c *gin.Context) {
	logger.CtxWarn(c.Request.Context(), "Upstream rejected the session token", "path", c.Request.URL.Path)
	h.sessions.Clear(c)
	h.RedirectWithFlash(c, middleware.LoginPath, session.FlashError, apperrors.ErrSessionExpired.Message)
	c.Abort()
}

// ============================================================================
// 6. Функции парсинга
// ============================================================================

func ParseFormInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.PostForm(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// SafeRedirect принимает только локальные пути, иначе fallback
func SafeRedirect(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.Contains(target, "\\") {
		return target
	}
	return fallback
}

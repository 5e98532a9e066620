package handlers

import (
	"context"
	"net/http"
	"strings"

	"admin_console/internal/logger"
	"admin_console/internal/models"
	"admin_console/internal/pagestate"
	"admin_console/internal/richtext"
	"admin_console/internal/services"
	"admin_console/internal/session"
	"admin_console/internal/staging"
	"admin_console/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	cmsHeading     = "Système de gestion de contenu"
	cmsPath        = "/user/cms"
	cmsPreviewPath = "/user/cms/video/preview"
)

// Вкладки страницы CMS
const (
	tabTerms   = "terms"
	tabPrivacy = "privacy"
	tabVideo   = "video"
)

type CMSHandler struct {
	*BaseHandler
	contentService services.ContentService
	registry       *staging.Registry
}

func NewCMSHandler(base *BaseHandler, contentService services.ContentService, registry *staging.Registry) *CMSHandler {
	return &CMSHandler{
		BaseHandler:    base,
		contentService: contentService,
		registry:       registry,
	}
}

func (h *CMSHandler) RegisterRoutes(r *gin.RouterGroup) {
	cms := r.Group("/cms")
	{
		cms.GET("", h.GetContent)
		cms.POST("/terms", h.SaveTerms)
		cms.POST("/privacy", h.SavePrivacy)
		cms.POST("/video/select", h.SelectVideo)
		cms.POST("/video/clear", h.ClearVideo)
		cms.POST("/video", h.UploadVideo)
		cms.GET("/video/preview", h.PreviewVideo)
	}
}

type cmsView struct {
	Tab        string
	Terms      richtext.Field
	Privacy    richtext.Field
	Video      models.TutorialVideo
	PreviewURL string
	MaxSizeMB  int64
}

// videoSubmission - то, что отличает одну отправку видео от другой
type videoSubmission struct {
	Title     string
	Published bool
	Key       string
}

func cmsTab(tab string) string {
	switch tab {
	case tabPrivacy, tabVideo:
		return tab
	default:
		return tabTerms
	}
}

func cmsLocation(tab string) string {
	return cmsPath + "?tab=" + tab
}

func (h *CMSHandler) GetContent(c *gin.Context) {
	page := h.NewPage(c, cmsHeading, "cms")

	view, err := pagestate.Load(c.Request.Context(), h.contentService.LoadContent)
	if err != nil {
		h.HandleLoadError(c, "cms", page, err)
		return
	}

	content := view.Data
	owner := h.SessionOwner(c)
	if h.registry.TakeCleared(owner) {
		// после "очистить" форма пустая, пока администратор не выберет новый файл
		content.Video.Title = ""
		content.Video.StreamURL = ""
	}
	if entry, ok := h.registry.Get(owner); ok {
		staged := entry.Video
		content.Video.Staged = &staged
		if entry.Title != "" {
			content.Video.Title = entry.Title
		}
	}

	previewURL := content.Video.StreamURL
	if content.Video.Staged != nil {
		previewURL = cmsPreviewPath
	}

	page.Data = cmsView{
		Tab:        cmsTab(c.Query("tab")),
		Terms:      richtext.NewField("terms", "Conditions générales", content.Terms),
		Privacy:    richtext.NewField("privacy", "Politique de confidentialité", content.Privacy),
		Video:      content.Video,
		PreviewURL: previewURL,
		MaxSizeMB:  h.registry.MaxSize() / (1024 * 1024),
	}
	h.Render(c, http.StatusOK, "cms", page)
}

func (h *CMSHandler) SaveTerms(c *gin.Context) {
	html := c.PostForm("terms")

	message, err := h.Mutate(c, "cms_terms", "", html, func(ctx context.Context) (string, error) {
		if err := h.contentService.SaveTerms(ctx, html); err != nil {
			return "", err
		}
		return "Terms & Conditions saved successfully.", nil
	})
	if err != nil {
		h.HandleActionError(c, cmsLocation(tabTerms), err)
		return
	}
	h.RedirectWithFlash(c, cmsLocation(tabTerms), session.FlashSuccess, message)
}

func (h *CMSHandler) SavePrivacy(c *gin.Context) {
	html := c.PostForm("privacy")

	message, err := h.Mutate(c, "cms_privacy", "", html, func(ctx context.Context) (string, error) {
		if err := h.contentService.SavePrivacy(ctx, html); err != nil {
			return "", err
		}
		return "Privacy Policy saved successfully.", nil
	})
	if err != nil {
		h.HandleActionError(c, cmsLocation(tabPrivacy), err)
		return
	}
	h.RedirectWithFlash(c, cmsLocation(tabPrivacy), session.FlashSuccess, message)
}

// SelectVideo кладет выбранный файл в staging. При отказе прежний выбор не меняется.
func (h *CMSHandler) SelectVideo(c *gin.Context) {
	ctx := c.Request.Context()
	back := cmsLocation(tabVideo)
	owner := h.SessionOwner(c)

	header, err := c.FormFile("video")
	if err != nil {
		h.RedirectWithFlash(c, back, session.FlashError, apperrors.ErrVideoRequired.Message)
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.CtxWithError(ctx, "Failed to open uploaded video", err)
		h.RedirectWithFlash(c, back, session.FlashError, apperrors.UserMessage(err))
		return
	}
	defer file.Close()

	_, err = h.registry.Stage(ctx, owner, staging.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Title:       strings.TrimSpace(c.PostForm("title")),
		Body:        file,
	})
	if err != nil {
		logger.CtxWarn(ctx, "Video rejected", "file", header.Filename, "size", header.Size, "error", err)
		h.RedirectWithFlash(c, back, session.FlashError, apperrors.UserMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, back)
}

// ClearVideo удаляет выбранный файл, сбрасывает заголовок и превью
func (h *CMSHandler) ClearVideo(c *gin.Context) {
	h.registry.Clear(c.Request.Context(), h.SessionOwner(c))
	c.Redirect(http.StatusSeeOther, cmsLocation(tabVideo))
}

// UploadVideo отправляет выбранный файл в API и после успеха удаляет его из staging
func (h *CMSHandler) UploadVideo(c *gin.Context) {
	back := cmsLocation(tabVideo)
	owner := h.SessionOwner(c)
	title := strings.TrimSpace(c.PostForm("title"))
	published := c.PostForm("published") == "true"

	h.registry.SetTitle(owner, title)
	staged, _ := h.registry.Get(owner)
	submitted := videoSubmission{Title: title, Published: published, Key: staged.Video.Key}

	message, err := h.Mutate(c, "cms_video", "", submitted, func(ctx context.Context) (string, error) {
		body, entry, err := h.registry.Open(ctx, owner)
		if err != nil {
			return "", err
		}
		defer body.Close()

		err = h.contentService.UploadVideo(ctx, services.VideoUpload{
			Title:       title,
			Published:   published,
			FileName:    entry.Video.FileName,
			ContentType: entry.Video.ContentType,
			Body:        body,
		})
		if err != nil {
			return "", err
		}

		h.registry.Discard(ctx, owner)
		return "Tutorial video uploaded successfully.", nil
	})
	if err != nil {
		h.HandleActionError(c, back, err)
		return
	}
	h.RedirectWithFlash(c, back, session.FlashSuccess, message)
}

// PreviewVideo отдает выбранный файл плееру на странице
func (h *CMSHandler) PreviewVideo(c *gin.Context) {
	body, entry, err := h.registry.Open(c.Request.Context(), h.SessionOwner(c))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrVideoRequired) {
			c.Status(http.StatusNotFound)
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	defer body.Close()

	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, entry.Video.Size, entry.Video.ContentType, body, nil)
}

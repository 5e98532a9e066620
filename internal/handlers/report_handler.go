package handlers

import (
	"context"
	"net/http"

	"admin_console/internal/models"
	"admin_console/internal/pagestate"
	"admin_console/internal/services"
	"admin_console/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	reportsHeading    = "Gestion des rapports"
	reportsPath       = "/user/report"
	reportDeleteText  = "Are you sure you want to delete this report? This action cannot be undone."
	reportDeletedText = "Report deleted successfully"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
	}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/report")
	{
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReport)
		reports.GET("/:id/download", h.DownloadReport)
		reports.GET("/:id/delete", h.ConfirmDelete)
		reports.POST("/:id/delete", h.DeleteReport)
	}
}

type reportDetailView struct {
	Report *models.ReportDetail
	UI     models.ReportTypeUI
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	page := h.NewPage(c, reportsHeading, "reports")

	view, err := pagestate.Load(c.Request.Context(), h.reportService.ListReports)
	if err != nil {
		h.HandleLoadError(c, "reports", page, err)
		return
	}

	page.Data = view.Data
	h.Render(c, http.StatusOK, "reports", page)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	page := h.NewPage(c, reportsHeading, "reports")
	id := c.Param("id")

	view, err := pagestate.Load(c.Request.Context(), func(ctx context.Context) (*models.ReportDetail, error) {
		return h.reportService.GetReport(ctx, id)
	})
	if err != nil {
		h.HandleLoadError(c, "report_detail", page, err)
		return
	}

	page.Data = reportDetailView{Report: view.Data, UI: view.Data.UI()}
	h.Render(c, http.StatusOK, "report_detail", page)
}

// DownloadReport отдает PDF как вложение
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	id := c.Param("id")

	file, err := h.reportService.DownloadReport(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *ReportHandler) ConfirmDelete(c *gin.Context) {
	page := h.NewPage(c, reportsHeading, "reports")
	page.Data = deleteConfirmation(c.Param("id"))
	h.Render(c, http.StatusOK, "confirm", page)
}

// DeleteReport - мягкое удаление после подтверждения
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")

	if c.PostForm("confirm") != "yes" {
		page := h.NewPage(c, reportsHeading, "reports")
		page.Data = deleteConfirmation(id)
		h.Render(c, http.StatusOK, "confirm", page)
		return
	}

	message, err := h.Mutate(c, "report_delete", id, nil, func(ctx context.Context) (string, error) {
		if err := h.reportService.DeleteReport(ctx, id); err != nil {
			return "", err
		}
		return reportDeletedText, nil
	})
	if err != nil {
		h.HandleActionError(c, reportsPath+"/"+id, err)
		return
	}

	h.RedirectWithFlash(c, reportsPath, session.FlashSuccess, message)
}

func deleteConfirmation(id string) confirmView {
	return confirmView{
		Title:        "Delete report",
		Message:      reportDeleteText,
		Action:       reportsPath + "/" + id + "/delete",
		ConfirmLabel: "Delete",
		CancelURL:    reportsPath + "/" + id,
		Danger:       true,
	}
}

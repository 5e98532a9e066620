package handlers

import (
	"context"
	"net/http"

	"admin_console/internal/models"
	"admin_console/internal/pagestate"
	"admin_console/internal/services"
	"admin_console/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const taxHeading = "Gestion des taxes"

type TaxHandler struct {
	*BaseHandler
	taxService services.TaxService
}

func NewTaxHandler(base *BaseHandler, taxService services.TaxService) *TaxHandler {
	return &TaxHandler{
		BaseHandler: base,
		taxService:  taxService,
	}
}

func (h *TaxHandler) RegisterRoutes(r *gin.RouterGroup) {
	tax := r.Group("/tax")
	{
		tax.GET("", h.GetRates)
		tax.POST("", h.SaveRates)
	}
}

type taxView struct {
	Rows []models.TaxRow
}

type taxSaveResult struct {
	Rates   models.TaxRateSet
	Message string
}

func (h *TaxHandler) GetRates(c *gin.Context) {
	page := h.NewPage(c, taxHeading, "tax")

	view, err := pagestate.Load(c.Request.Context(), h.taxService.LoadRates)
	if err != nil {
		h.HandleLoadError(c, "tax", page, err)
		return
	}

	page.Data = taxView{Rows: view.Data.Rows()}
	h.Render(c, http.StatusOK, "tax", page)
}

// SaveRates сохраняет ставки и сразу показывает значения, которые вернул сервер
func (h *TaxHandler) SaveRates(c *gin.Context) {
	page := h.NewPage(c, taxHeading, "tax")

	var form models.TaxForm
	if err := h.BindAndValidate_Form(c, &form); err != nil {
		page.Data = taxView{Rows: form.Rows()}
		page.Fail(apperrors.UserMessage(err))
		h.Render(c, http.StatusUnprocessableEntity, "tax", page)
		return
	}

	result, err := mutateValue(h.BaseHandler, c, "tax", "", form, func(ctx context.Context) (taxSaveResult, error) {
		rates, message, err := h.taxService.SaveRates(ctx, form)
		if err != nil {
			return taxSaveResult{}, err
		}
		return taxSaveResult{Rates: rates, Message: message}, nil
	})
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.ExpireSession(c)
			return
		}
		page.Data = taxView{Rows: form.Rows()}
		page.Fail(apperrors.UserMessage(err))
		h.Render(c, apperrors.HTTPStatus(err), "tax", page)
		return
	}

	page.Data = taxView{Rows: result.Rates.Rows()}
	page.Success(result.Message)
	h.Render(c, http.StatusOK, "tax", page)
}

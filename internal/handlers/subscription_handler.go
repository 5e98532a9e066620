package handlers

import (
	"context"
	"net/http"

	"admin_console/internal/models"
	"admin_console/internal/pagestate"
	"admin_console/internal/services"
	"admin_console/internal/session"
	"admin_console/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	subscriptionHeading = "Gestion des abonnements"
	subscriptionPath    = "/user/subscription"
)

// Вкладки страницы абонементов
const (
	tabPlus = "plus"
	tabFree = "free"
)

// Кнопки редактора фич, которые перерисовывают форму без сохранения
const (
	actionAddFeature   = "add_feature"
	fieldRemoveFeature = "remove_feature"
	fieldFormAction    = "action"
)

type SubscriptionHandler struct {
	*BaseHandler
	planService services.PlanService
}

func NewSubscriptionHandler(base *BaseHandler, planService services.PlanService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler: base,
		planService: planService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	subscription := r.Group("/subscription")
	{
		subscription.GET("", h.GetPlans)
		subscription.POST("/plus", h.SavePlus)
		subscription.POST("/free", h.SaveFree)
	}
}

type subscriptionView struct {
	Tab  string
	Plus models.PlusPlanForm
	Free models.FreePlanForm
}

func subscriptionTab(tab string) string {
	if tab == tabFree {
		return tabFree
	}
	return tabPlus
}

func (h *SubscriptionHandler) loadForms(c *gin.Context, page *Page) (*subscriptionView, bool) {
	view, err := pagestate.Load(c.Request.Context(), h.planService.LoadPlans)
	if err != nil {
		h.HandleLoadError(c, "subscription", page, err)
		return nil, false
	}
	return &subscriptionView{
		Tab:  subscriptionTab(c.Query("tab")),
		Plus: models.NewPlusPlanForm(view.Data.Plus),
		Free: models.NewFreePlanForm(view.Data.Free),
	}, true
}

func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	page := h.NewPage(c, subscriptionHeading, "subscription")

	data, ok := h.loadForms(c, page)
	if !ok {
		return
	}

	page.Data = data
	h.Render(c, http.StatusOK, "subscription", page)
}

// editFeatures - нажата кнопка добавления/удаления строки фичи.
// Возвращает новые строки и true, если это не сохранение.
func editFeatures(c *gin.Context, features []string) ([]string, bool) {
	if c.PostForm(fieldFormAction) == actionAddFeature {
		return models.AddFeatureRow(features), true
	}
	if _, ok := c.GetPostForm(fieldRemoveFeature); ok {
		return models.RemoveFeatureRow(features, ParseFormInt(c, fieldRemoveFeature, -1)), true
	}
	return features, false
}

func (h *SubscriptionHandler) SavePlus(c *gin.Context) {
	var form models.PlusPlanForm
	bindErr := h.BindAndValidate_Form(c, &form)

	if features, editing := editFeatures(c, form.Features); editing {
		form.Features = features
		h.rerender(c, tabPlus, func(v *subscriptionView) { v.Plus = form }, "")
		return
	}
	if bindErr != nil {
		h.rerender(c, tabPlus, func(v *subscriptionView) { v.Plus = form }, apperrors.UserMessage(bindErr))
		return
	}

	message, err := h.Mutate(c, "plan_plus", "", form, func(ctx context.Context) (string, error) {
		if err := h.planService.SavePlus(ctx, form); err != nil {
			return "", err
		}
		return "Plus plan saved successfully", nil
	})
	if err != nil {
		h.HandleActionError(c, subscriptionPath+"?tab="+tabPlus, err)
		return
	}
	h.RedirectWithFlash(c, subscriptionPath+"?tab="+tabPlus, session.FlashSuccess, message)
}

func (h *SubscriptionHandler) SaveFree(c *gin.Context) {
	var form models.FreePlanForm
	bindErr := h.BindAndValidate_Form(c, &form)

	if features, editing := editFeatures(c, form.Features); editing {
		form.Features = features
		h.rerender(c, tabFree, func(v *subscriptionView) { v.Free = form }, "")
		return
	}
	if bindErr != nil {
		h.rerender(c, tabFree, func(v *subscriptionView) { v.Free = form }, apperrors.UserMessage(bindErr))
		return
	}

	message, err := h.Mutate(c, "plan_free", "", form, func(ctx context.Context) (string, error) {
		if err := h.planService.SaveFree(ctx, form); err != nil {
			return "", err
		}
		return "Free plan saved successfully", nil
	})
	if err != nil {
		h.HandleActionError(c, subscriptionPath+"?tab="+tabFree, err)
		return
	}
	h.RedirectWithFlash(c, subscriptionPath+"?tab="+tabFree, session.FlashSuccess, message)
}

// rerender показывает форму с введенными значениями; вторая форма берется с сервера
func (h *SubscriptionHandler) rerender(c *gin.Context, tab string, apply func(*subscriptionView), failure string) {
	page := h.NewPage(c, subscriptionHeading, "subscription")

	data, ok := h.loadForms(c, page)
	if !ok {
		return
	}
	data.Tab = tab
	apply(data)
	if data.Plus.Features == nil {
		data.Plus.Features = models.FeatureRows(nil)
	}
	if data.Free.Features == nil {
		data.Free.Features = models.FeatureRows(nil)
	}
	page.Data = data

	status := http.StatusOK
	if failure != "" {
		page.Fail(failure)
		status = http.StatusUnprocessableEntity
	}
	h.Render(c, status, "subscription", page)
}

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"admin_console/internal/logger"
	"admin_console/internal/models"
	"admin_console/internal/pagestate"
	"admin_console/internal/services"
	"admin_console/internal/session"
	"admin_console/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const customersHeading = "Gestion de la clientèle"

type CustomerHandler struct {
	*BaseHandler
	customerService services.CustomerService
}

func NewCustomerHandler(base *BaseHandler, customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler:     base,
		customerService: customerService,
	}
}

func (h *CustomerHandler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.GET("/:id/block", h.ConfirmBlock)
		customers.POST("/:id/block", h.ToggleBlock)
	}
}

type customerDetailView struct {
	Detail      *models.CustomerDetail
	Status      models.StatusUI
	Blocked     bool
	ActionLabel string
}

func newCustomerDetailView(detail *models.CustomerDetail) customerDetailView {
	status := detail.Customer.Status
	label := "Block user"
	if status.Blocked() {
		label = "Unblock user"
	}
	return customerDetailView{
		Detail:      detail,
		Status:      status.UI(),
		Blocked:     status.Blocked(),
		ActionLabel: label,
	}
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page := h.NewPage(c, customersHeading, "customers")

	view, err := pagestate.Load(c.Request.Context(), h.customerService.ListCustomers)
	if err != nil {
		h.HandleLoadError(c, "customers", page, err)
		return
	}

	page.Data = view.Data
	h.Render(c, http.StatusOK, "customers", page)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	page := h.NewPage(c, customersHeading, "customers")
	id := c.Param("id")

	view, err := pagestate.Load(c.Request.Context(), func(ctx context.Context) (*models.CustomerDetail, error) {
		return h.customerService.GetCustomer(ctx, id)
	})
	if err != nil {
		h.HandleLoadError(c, "customer_detail", page, err)
		return
	}

	page.Data = newCustomerDetailView(view.Data)
	h.Render(c, http.StatusOK, "customer_detail", page)
}

// ConfirmBlock - страница подтверждения блокировки/разблокировки
func (h *CustomerHandler) ConfirmBlock(c *gin.Context) {
	page := h.NewPage(c, customersHeading, "customers")
	id := c.Param("id")

	view, err := pagestate.Load(c.Request.Context(), func(ctx context.Context) (*models.CustomerDetail, error) {
		return h.customerService.GetCustomer(ctx, id)
	})
	if err != nil {
		h.HandleLoadError(c, "confirm", page, err)
		return
	}

	page.Data = blockConfirmation(id, view.Data.Customer.Status)
	h.Render(c, http.StatusOK, "confirm", page)
}

// ToggleBlock переключает статус. Без confirm=yes запрос в API не уходит.
func (h *CustomerHandler) ToggleBlock(c *gin.Context) {
	id := c.Param("id")
	back := "/user/customers/" + id

	var form models.BlockForm
	if err := h.BindAndValidate_Form(c, &form); err != nil {
		h.RedirectWithFlash(c, back, session.FlashError, apperrors.UserMessage(err))
		return
	}
	current := models.UserStatus(form.Status)

	if !form.Confirmed() {
		page := h.NewPage(c, customersHeading, "customers")
		page.Data = blockConfirmation(id, current)
		h.Render(c, http.StatusOK, "confirm", page)
		return
	}

	// направление берем из свежих данных сервера: страница могла устареть
	message, err := h.Mutate(c, "block", id, form, func(ctx context.Context) (string, error) {
		detail, err := h.customerService.GetCustomer(ctx, id)
		if err != nil {
			return "", err
		}
		status := detail.Customer.Status
		if status != current {
			logger.CtxInfo(ctx, "Customer status changed since the page was rendered", "customer_id", id, "posted", current, "actual", status)
		}

		next, err := h.customerService.ToggleBlock(ctx, id, status)
		if err != nil {
			return "", err
		}
		logger.CtxInfo(ctx, "Customer status changed", "customer_id", id, "status", next)
		return fmt.Sprintf("User has been %sed successfully", models.BlockAction(status)), nil
	})
	if err != nil {
		h.HandleActionError(c, back, err)
		return
	}

	h.RedirectWithFlash(c, back, session.FlashSuccess, message)
}

func blockConfirmation(id string, current models.UserStatus) confirmView {
	action := models.BlockAction(current)
	return confirmView{
		Title:        fmt.Sprintf("Are you sure you want to %s this user?", action),
		Message:      blockWarning(current),
		Action:       "/user/customers/" + id + "/block",
		Fields:       map[string]string{"status": string(current)},
		ConfirmLabel: "Yes, " + action,
		CancelURL:    "/user/customers/" + id,
		Danger:       !current.Blocked(),
	}
}

func blockWarning(current models.UserStatus) string {
	if current.Blocked() {
		return "The user will be able to sign in and use the platform again."
	}
	return "The user will not be able to sign in until they are unblocked."
}

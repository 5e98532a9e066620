package services

import (
	"context"
	"fmt"
	"time"

	"admin_console/internal/apiclient"
	"admin_console/internal/dto"
	"admin_console/internal/models"
	"admin_console/pkg/apperrors"
)

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]models.CustomerRow, error)
	GetCustomer(ctx context.Context, id string) (*models.CustomerDetail, error)
	// ToggleBlock переключает блокировку и возвращает новый статус
	ToggleBlock(ctx context.Context, id string, current models.UserStatus) (models.UserStatus, error)
}

type customerService struct {
	api API
	now func() time.Time
}

func NewCustomerService(api API) CustomerService {
	return &customerService{api: api, now: time.Now}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]models.CustomerRow, error) {
	var resp dto.UserListResponse
	if err := s.api.GetJSON(ctx, apiclient.PathUsers, &resp); err != nil {
		return nil, apperrors.LoadFailure(err, "customer", "Failed to load customers")
	}

	rows := make([]models.CustomerRow, 0, len(resp.Users))
	for _, u := range resp.Users {
		rows = append(rows, models.CustomerRow{
			ID:        u.ID,
			Name:      models.OrPlaceholder(models.FullName(u.FirstName, u.LastName), models.Placeholder),
			Email:     models.OrPlaceholder(u.Email, models.Placeholder),
			PlanName:  models.OrPlaceholder(u.PlanName, "-"),
			LastLogin: formatOptional(dto.ParseTime(u.UpdatedAt), models.FormatDateTime),
			Status:    models.UserStatusFromFlag(string(u.IsActive)),
		})
	}
	return rows, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*models.CustomerDetail, error) {
	var resp dto.UserDetailResponse
	if err := s.api.GetJSON(ctx, apiclient.UserPath(id), &resp); err != nil {
		return nil, apperrors.LoadFailure(err, "customer", "Customer not found")
	}
	return mapCustomerDetail(id, resp, s.now()), nil
}

func mapCustomerDetail(id string, resp dto.UserDetailResponse, now time.Time) *models.CustomerDetail {
	u := resp.User
	if u.ID != "" {
		id = u.ID
	}

	detail := &models.CustomerDetail{
		Customer: models.Customer{
			ID:        id,
			Name:      models.FullName(u.FirstName, u.LastName),
			Email:     models.OrPlaceholder(u.Email, models.Placeholder),
			Phone:     models.OrPlaceholder(u.PhoneNumber, models.Placeholder),
			PlanName:  models.OrPlaceholder(u.PlanName, "-"),
			LastLogin: formatOptional(dto.ParseTime(u.UpdatedAt), models.FormatDateTime),
			Status:    models.UserStatusFromFlag(string(u.IsActive)),
		},
		Subscription: models.NewSubscription(dto.ParseTime(u.StartDate), dto.ParseTime(u.EndDate), now),
		Reports:      make([]models.ReportRow, 0, len(resp.ProjectReports)),
	}

	for _, r := range resp.ProjectReports {
		detail.Reports = append(detail.Reports, models.ReportRow{
			ID:   r.ID,
			Date: formatOptional(dto.ParseTime(r.CreatedAt), models.FormatDate),
			Type: models.ReportType(r.Type),
		})
	}
	return detail
}

func (s *customerService) ToggleBlock(ctx context.Context, id string, current models.UserStatus) (models.UserStatus, error) {
	action := models.BlockAction(current)
	if err := s.api.PutJSON(ctx, apiclient.BlockUserPath(id), struct{}{}, nil); err != nil {
		return current, apperrors.ActionFailure(err, "customer", fmt.Sprintf("Unable to %s user. Please try again.", action))
	}
	return current.Toggled(), nil
}

func formatOptional(t *time.Time, format func(time.Time) string) string {
	if t == nil {
		return models.Placeholder
	}
	return format(*t)
}

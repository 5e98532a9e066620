package services

import (
	"context"
	"net/http"
	"strings"

	"admin_console/internal/apiclient"
	"admin_console/internal/dto"
	"admin_console/internal/models"
	"admin_console/pkg/apperrors"
)

type AuthService interface {
	// Login обменивает логин и пароль администратора на bearer токен API
	Login(ctx context.Context, form models.LoginForm) (string, error)
}

type authService struct {
	api API
}

func NewAuthService(api API) AuthService {
	return &authService{api: api}
}

func (s *authService) Login(ctx context.Context, form models.LoginForm) (string, error) {
	req := dto.LoginRequest{
		Email:    strings.TrimSpace(strings.ToLower(form.Email)),
		Password: form.Password,
	}

	var resp dto.LoginResponse
	if err := s.api.PostJSON(ctx, apiclient.PathLogin, req, &resp); err != nil {
		var up apperrors.UpstreamFailure
		if apperrors.As(err, &up) {
			switch up.StatusCode() {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
				return "", apperrors.ErrInvalidCredentials
			}
			// success=false при 2xx
			if up.StatusCode() >= 200 && up.StatusCode() < 300 {
				return "", apperrors.ErrInvalidCredentials
			}
		}
		return "", apperrors.ActionFailure(err, "auth", "Unable to sign in. Please try again.")
	}

	if resp.Token == "" {
		return "", apperrors.ErrInvalidCredentials
	}
	return resp.Token, nil
}

package services

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/balance"

	"admin_console/internal/models"
	"admin_console/pkg/apperrors"
)

// PaymentConfig - ключи платежного шлюза из конфигурации
type PaymentConfig struct {
	PublishableKey string
	SecretKey      string
	WebhookURL     string
}

type SettingsService interface {
	PaymentSettings() models.PaymentSettings
	// PublishableKey - публичный ключ целиком (для кнопки "показать")
	PublishableKey() string
	// CheckConnection делает пробный запрос к Stripe с секретным ключом
	CheckConnection(ctx context.Context) (string, error)
}

type settingsService struct {
	cfg     PaymentConfig
	backend stripe.Backend
}

// NewSettingsService; backend = nil означает стандартный API Stripe
func NewSettingsService(cfg PaymentConfig, backend stripe.Backend) SettingsService {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &settingsService{cfg: cfg, backend: backend}
}

func (s *settingsService) PaymentSettings() models.PaymentSettings {
	key := s.cfg.SecretKey
	if key == "" {
		key = s.cfg.PublishableKey
	}
	return models.PaymentSettings{
		Mode:           models.ModeFromKey(key),
		PublishableKey: models.MaskKey(s.cfg.PublishableKey),
		SecretKey:      models.MaskKey(s.cfg.SecretKey),
		WebhookURL:     s.cfg.WebhookURL,
		Configured:     s.cfg.SecretKey != "" && s.cfg.PublishableKey != "",
	}
}

func (s *settingsService) PublishableKey() string {
	return s.cfg.PublishableKey
}

func (s *settingsService) CheckConnection(ctx context.Context) (string, error) {
	if s.cfg.SecretKey == "" {
		return "", apperrors.ErrGatewayNotConfigured
	}

	client := balance.Client{B: s.backend, Key: s.cfg.SecretKey}
	params := &stripe.BalanceParams{}
	params.Context = ctx

	bal, err := client.Get(params)
	if err != nil {
		message := "Unable to reach Stripe with the configured secret key"
		var stripeErr *stripe.Error
		if apperrors.As(err, &stripeErr) && stripeErr.Msg != "" {
			message = stripeErr.Msg
		}
		return "", apperrors.ActionFailure(err, "settings", message)
	}

	mode := models.PaymentModeSandbox
	if bal.Livemode {
		mode = models.PaymentModeLive
	}
	return fmt.Sprintf("Stripe connection OK (%s mode)", mode), nil
}

package services

import (
	"context"

	"admin_console/internal/apiclient"
	"admin_console/internal/dto"
	"admin_console/internal/models"
	"admin_console/pkg/apperrors"
)

const taxSavedMessage = "Tax configuration updated successfully"

type TaxService interface {
	LoadRates(ctx context.Context) (models.TaxRateSet, error)
	// SaveRates возвращает ставки в том виде, как их подтвердил сервер, и его сообщение
	SaveRates(ctx context.Context, form models.TaxForm) (models.TaxRateSet, string, error)
}

type taxService struct {
	api API
}

func NewTaxService(api API) TaxService {
	return &taxService{api: api}
}

func (s *taxService) LoadRates(ctx context.Context) (models.TaxRateSet, error) {
	var resp dto.TaxConfigResponse
	if err := s.api.GetJSON(ctx, apiclient.PathTaxConfig, &resp); err != nil {
		return models.TaxRateSet{}, apperrors.LoadFailure(err, "tax", "Failed to load tax configuration")
	}

	return models.TaxRateSet{
		TvaIntegrale:       resp.Config.VatRates.TvaIntegrale,
		TvaSurMarge:        resp.Config.VatRates.TvaSurMarge,
		ExonereDeTva:       resp.Config.VatRates.ExonereDeTva,
		StandardMarginRate: resp.Config.StandardMarginRate,
	}, nil
}

func (s *taxService) SaveRates(ctx context.Context, form models.TaxForm) (models.TaxRateSet, string, error) {
	rates := form.RateSet()
	payload := dto.TaxRates{
		TvaIntegrale:       rates.TvaIntegrale,
		TvaSurMarge:        rates.TvaSurMarge,
		ExonereDeTva:       rates.ExonereDeTva,
		StandardMarginRate: rates.StandardMarginRate,
	}

	var resp dto.TaxUpdateResponse
	if err := s.api.PutJSON(ctx, apiclient.PathTaxConfig, payload, &resp); err != nil {
		return models.TaxRateSet{}, "", apperrors.ActionFailure(err, "tax", "Failed to update tax configuration")
	}

	message := resp.Message
	if message == "" {
		message = taxSavedMessage
	}
	return models.TaxRateSet{
		TvaIntegrale:       resp.Config.TvaIntegrale,
		TvaSurMarge:        resp.Config.TvaSurMarge,
		ExonereDeTva:       resp.Config.ExonereDeTva,
		StandardMarginRate: resp.Config.StandardMarginRate,
	}, message, nil
}

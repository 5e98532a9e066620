package services

import (
	"context"
	"strings"

	"admin_console/internal/apiclient"
	"admin_console/internal/dto"
	"admin_console/internal/models"
	"admin_console/pkg/apperrors"
)

// PlanIDs - идентификаторы записей планов на сервере
type PlanIDs struct {
	Plus string
	Free string
}

// PlanPage - оба плана; nil, если сервер такой план не вернул
type PlanPage struct {
	Plus *models.Plan
	Free *models.Plan
}

type PlanService interface {
	LoadPlans(ctx context.Context) (*PlanPage, error)
	SavePlus(ctx context.Context, form models.PlusPlanForm) error
	SaveFree(ctx context.Context, form models.FreePlanForm) error
}

type planService struct {
	api API
	ids PlanIDs
}

func NewPlanService(api API, ids PlanIDs) PlanService {
	return &planService{api: api, ids: ids}
}

func (s *planService) LoadPlans(ctx context.Context) (*PlanPage, error) {
	var records []dto.PlanRecord
	if err := s.api.GetJSON(ctx, apiclient.PathPlans, &records); err != nil {
		return nil, apperrors.LoadFailure(err, "plan", "Failed to fetch plans")
	}

	page := &PlanPage{}
	for i := range records {
		plan := mapPlan(records[i])
		switch plan.Type {
		case models.PlanTypeBasic:
			if page.Free == nil {
				page.Free = plan
			}
		case models.PlanTypePremium:
			if page.Plus == nil {
				page.Plus = plan
			}
		}
	}
	return page, nil
}

func mapPlan(r dto.PlanRecord) *models.Plan {
	plan := &models.Plan{
		ID:          r.ID,
		Name:        r.Name,
		Type:        models.PlanType(r.Type),
		Currency:    r.Currency,
		Description: r.Description,
		IsActive:    r.IsActive == nil || *r.IsActive,
		Features:    r.Features,
	}

	tiers := make([]models.PriceTier, 0, len(r.Prices))
	for _, p := range r.Prices {
		tiers = append(tiers, models.PriceTier{
			DurationMonths: p.DurationMonths,
			Price:          p.Price,
			ActualPrice:    p.ActualPrice,
			Label:          p.Label,
		})
	}
	plan.Prices = models.NormalizeTiers(tiers)
	return plan
}

func (s *planService) SavePlus(ctx context.Context, form models.PlusPlanForm) error {
	if err := s.api.PutJSON(ctx, apiclient.EditPlanPath(s.ids.Plus), BuildPlusPayload(form), nil); err != nil {
		return apperrors.ActionFailure(err, "plan", "Failed to save Plus plan")
	}
	return nil
}

func (s *planService) SaveFree(ctx context.Context, form models.FreePlanForm) error {
	if err := s.api.PutJSON(ctx, apiclient.EditPlanPath(s.ids.Free), BuildFreePayload(form), nil); err != nil {
		return apperrors.ActionFailure(err, "plan", "Failed to save Free plan")
	}
	return nil
}

// BuildPlusPayload - премиум план: тип всегда premium, два тарифа (месяц и год)
func BuildPlusPayload(form models.PlusPlanForm) dto.PlanPayload {
	actual := models.ParseNumber(form.ActualPrice)
	return dto.PlanPayload{
		Name:        form.Name,
		Type:        string(models.PlanTypePremium),
		Currency:    strings.ToLower(strings.TrimSpace(form.Currency)),
		Description: form.Description,
		IsActive:    form.IsActive,
		Features:    models.CompactFeatures(form.Features),
		Prices: []dto.PlanPrice{
			{
				DurationMonths: models.DurationMonthly,
				Price:          models.ParseNumber(form.MonthlyPrice),
				Label:          "Monthly",
			},
			{
				DurationMonths: models.DurationYearly,
				Price:          models.ParseNumber(form.AnnualPrice),
				ActualPrice:    &actual,
				Label:          "Yearly",
			},
		},
	}
}

// BuildFreePayload - бесплатный план: тип basic, валюта eur, один бессрочный тариф за 0
func BuildFreePayload(form models.FreePlanForm) dto.PlanPayload {
	return dto.PlanPayload{
		Name:        form.Name,
		Type:        string(models.PlanTypeBasic),
		Currency:    "eur",
		Description: form.Description,
		IsActive:    form.IsActive,
		Features:    models.CompactFeatures(form.Features),
		Prices: []dto.PlanPrice{
			{
				DurationMonths: models.DurationLifetime,
				Price:          0,
				Label:          "Free",
			},
		},
	}
}

package models

import (
	"strconv"
	"strings"
)

// Длительности тарифов в месяцах
const (
	DurationLifetime = 0
	DurationMonthly  = 1
	DurationYearly   = 12
)

// PriceTier - цена плана для конкретной длительности
type PriceTier struct {
	DurationMonths int
	Price          float64
	ActualPrice    *float64 // цена до скидки, если есть
	Label          string
}

// Plan - план подписки (Free или Plus)
type Plan struct {
	ID          string
	Name        string
	Type        PlanType
	Currency    string
	Description string
	IsActive    bool
	Features    []string
	Prices      []PriceTier
}

// Tier ищет тариф по длительности
func (p *Plan) Tier(months int) (PriceTier, bool) {
	for _, t := range p.Prices {
		if t.DurationMonths == months {
			return t, true
		}
	}
	return PriceTier{}, false
}

// NormalizeTiers оставляет ровно один тариф на длительность (первый встреченный)
func NormalizeTiers(tiers []PriceTier) []PriceTier {
	seen := make(map[int]bool, len(tiers))
	out := make([]PriceTier, 0, len(tiers))
	for _, t := range tiers {
		if seen[t.DurationMonths] {
			continue
		}
		seen[t.DurationMonths] = true
		out = append(out, t)
	}
	return out
}

// PlusPlanForm - поля формы премиум плана
type PlusPlanForm struct {
	Name         string   `form:"name" json:"name" validate:"max=120"`
	Type         string   `form:"type" json:"type" validate:"omitempty,is-plan-type"`
	Currency     string   `form:"currency" json:"currency" validate:"omitempty,is-currency"`
	MonthlyPrice string   `form:"monthly_price" json:"monthlyPrice" validate:"numeric-rate"`
	AnnualPrice  string   `form:"annual_price" json:"annualPrice" validate:"numeric-rate"`
	ActualPrice  string   `form:"actual_price" json:"actualPrice" validate:"numeric-rate"`
	Description  string   `form:"description" json:"description" validate:"max=2000"`
	IsActive     bool     `form:"is_active" json:"isActive"`
	Features     []string `form:"features" json:"features"`
}

// FreePlanForm - поля формы бесплатного плана
type FreePlanForm struct {
	Name        string   `form:"name" json:"name" validate:"max=120"`
	Description string   `form:"description" json:"description" validate:"max=2000"`
	IsActive    bool     `form:"is_active" json:"isActive"`
	Features    []string `form:"features" json:"features"`
}

// DefaultFreePlanName - имя бесплатного плана, пока сервер не вернул свое
const DefaultFreePlanName = "Free Plan"

// NewPlusPlanForm заполняет форму из плана, nil дает пустую форму
func NewPlusPlanForm(p *Plan) PlusPlanForm {
	form := PlusPlanForm{IsActive: true, Features: []string{""}}
	if p == nil {
		return form
	}
	form.Name = p.Name
	form.Type = string(p.Type)
	form.Currency = p.Currency
	form.Description = p.Description
	form.IsActive = p.IsActive
	form.Features = FeatureRows(p.Features)
	if monthly, ok := p.Tier(DurationMonthly); ok {
		form.MonthlyPrice = FormatNumber(monthly.Price)
	}
	if yearly, ok := p.Tier(DurationYearly); ok {
		form.AnnualPrice = FormatNumber(yearly.Price)
		if yearly.ActualPrice != nil {
			form.ActualPrice = FormatNumber(*yearly.ActualPrice)
		}
	}
	return form
}

// NewFreePlanForm заполняет форму бесплатного плана
func NewFreePlanForm(p *Plan) FreePlanForm {
	form := FreePlanForm{Name: DefaultFreePlanName, IsActive: true, Features: []string{""}}
	if p == nil {
		return form
	}
	if p.Name != "" {
		form.Name = p.Name
	}
	form.Description = p.Description
	form.IsActive = p.IsActive
	form.Features = FeatureRows(p.Features)
	return form
}

// FeatureRows - строки редактора фич: всегда хотя бы одна (пустая) строка
func FeatureRows(features []string) []string {
	if len(features) == 0 {
		return []string{""}
	}
	rows := make([]string, len(features))
	copy(rows, features)
	return rows
}

// CompactFeatures убирает пустые строки перед отправкой
func CompactFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// AddFeatureRow добавляет пустую строку в конец
func AddFeatureRow(features []string) []string {
	return append(FeatureRows(features), "")
}

// RemoveFeatureRow удаляет строку index; последняя строка не удаляется
func RemoveFeatureRow(features []string, index int) []string {
	rows := FeatureRows(features)
	if len(rows) <= 1 || index < 0 || index >= len(rows) {
		return rows
	}
	return append(rows[:index], rows[index+1:]...)
}

// FormatNumber печатает число без лишних нулей: 15, 120, 19.99
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber - как Number() в форме: пустое или мусор дает 0
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
	if err != nil {
		return 0
	}
	return v
}

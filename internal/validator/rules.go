package validator

import (
	"log"
	"math"
	"strconv"
	"strings"
	"unicode"

	"admin_console/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// без правил приложение запускать нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-plan-type': тип плана (basic | premium)
	mustRegister("is-plan-type", validatePlanType)

	// 'is-user-status': статус блокировки
	mustRegister("is-user-status", validateUserStatus)

	// 'is-currency': "eur", "EUR", "Euro"
	mustRegister("is-currency", validateCurrency)

	// 'numeric-rate': число >= 0 в строке формы, пустая строка = 0
	mustRegister("numeric-rate", validateNumericRate)
}

// --- Функции валидации ---

func validatePlanType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}
	return models.PlanType(value).Valid()
}

func validateUserStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserStatus(value) {
	case models.UserStatusActive, models.UserStatusBlocked:
		return true
	default:
		return false
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	if len(value) > 16 {
		return false
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func validateNumericRate(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f >= 0
}

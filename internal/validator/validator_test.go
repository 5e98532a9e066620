package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin_console/internal/models"
)

func TestValidate_TaxForm(t *testing.T) {
	v := New()

	err := v.Validate(models.TaxForm{TvaIntegrale: "20", TvaSurMarge: "5,5", ExonereDeTva: "", StandardMarginRate: "10"})
	assert.NoError(t, err)

	err = v.Validate(models.TaxForm{TvaIntegrale: "abc", StandardMarginRate: "-1"})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "tvaIntegrale")
	assert.Contains(t, verr.Errors, "standardMarginRate")
	assert.Equal(t, "Must be a non-negative number", verr.Errors["tvaIntegrale"])
}

func TestValidate_PlusPlanForm(t *testing.T) {
	v := New()

	ok := models.PlusPlanForm{Name: "Plus", Type: "premium", Currency: "Euro", MonthlyPrice: "15", AnnualPrice: "120", ActualPrice: "180"}
	assert.NoError(t, v.Validate(ok))

	bad := models.PlusPlanForm{Type: "gold", Currency: "€"}
	err := v.Validate(bad)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "type")
	assert.Contains(t, verr.Errors, "currency")
}

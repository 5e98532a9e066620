package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin_console/internal/apiclient"
	"admin_console/internal/dto"
	"admin_console/internal/models"
	"admin_console/internal/testutil"
	"admin_console/pkg/apperrors"
)

func authed() context.Context {
	return apiclient.WithToken(context.Background(), "tok")
}

func TestCustomerService_GetCustomer(t *testing.T) {
	up := testutil.NewUpstream(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	up.JSON(http.MethodGet, "/admin/users/u1", 200, map[string]interface{}{
		"user": map[string]interface{}{
			"FirstName": "Jane ",
			"LastName":  "",
			"Email":     "",
			"plan_name": "",
			"startDate": testutil.ISO(now.AddDate(0, -1, 0)),
			"endDate":   testutil.ISO(now.Add(36 * time.Hour)),
			"isActive":  "blocked",
		},
		"projectReports": []map[string]interface{}{
			{"_id": "r1", "createdAt": testutil.ISO(now), "type": "purchase"},
			{"_id": "r2", "createdAt": "", "type": "mystery"},
		},
	})

	svc := &customerService{api: up.Client(t), now: func() time.Time { return now }}
	detail, err := svc.GetCustomer(authed(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "Jane", detail.Customer.Name)
	assert.Equal(t, models.Placeholder, detail.Customer.Email)
	assert.Equal(t, models.Placeholder, detail.Customer.Phone)
	assert.Equal(t, "-", detail.Customer.PlanName)
	assert.Equal(t, models.Placeholder, detail.Customer.LastLogin)
	assert.Equal(t, models.UserStatusBlocked, detail.Customer.Status)
	assert.Equal(t, 2, detail.Subscription.DaysRemaining)
	require.Equal(t, 2, detail.ReportsCount())
	assert.Equal(t, "New", detail.Reports[0].Label())
	assert.Equal(t, "Edited", detail.Reports[1].Label())
	assert.Equal(t, models.Placeholder, detail.Reports[1].Date)

	call, ok := up.LastCall(http.MethodGet, "/admin/users/u1")
	require.True(t, ok)
	assert.Equal(t, "Bearer tok", call.Auth)
}

func TestCustomerService_GetCustomer_Failure(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodGet, "/admin/users/u1", 500, map[string]string{"message": "db down"})

	svc := NewCustomerService(up.Client(t))
	_, err := svc.GetCustomer(authed(), "u1")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeLoadFailed, appErr.Code)
	assert.Equal(t, "Customer not found", appErr.Message)
}

func TestCustomerService_ToggleBlockTwiceRestoresStatus(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodPut, "/admin/users/block/u1", 200, map[string]bool{"success": true})

	svc := NewCustomerService(up.Client(t))

	status, err := svc.ToggleBlock(authed(), "u1", models.UserStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBlocked, status)

	status, err = svc.ToggleBlock(authed(), "u1", status)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, status)

	assert.Equal(t, 2, up.CallCount(http.MethodPut, "/admin/users/block/u1"))
}

func TestCustomerService_ToggleBlock_ServerRefuses(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodPut, "/admin/users/block/u1", 200, map[string]interface{}{"success": false})

	svc := NewCustomerService(up.Client(t))
	status, err := svc.ToggleBlock(authed(), "u1", models.UserStatusActive)

	require.Error(t, err)
	assert.Equal(t, models.UserStatusActive, status)
	assert.Equal(t, "Unable to block user. Please try again.", apperrors.UserMessage(err))
}

func TestReportService_DownloadRefusedForDraft(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodGet, "/admin/projects/p1", 200, map[string]interface{}{
		"project": map[string]interface{}{"_id": "p1", "type": "draft"},
	})

	svc := NewReportService(up.Client(t))
	_, err := svc.DownloadReport(authed(), "p1")

	assert.ErrorIs(t, err, apperrors.ErrReportNotDownloadable)
	assert.Equal(t, 0, up.CallCount(http.MethodGet, "/admin/projects/generate-report/p1"))
}

func TestReportService_Download(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodGet, "/admin/projects/p1", 200, map[string]interface{}{
		"project": map[string]interface{}{"_id": "p1", "type": "purchase", "userId": map[string]string{"FirstName": "Ana", "LastName": "Lopez"}},
	})
	up.Handle(http.MethodGet, "/admin/projects/generate-report/p1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.7"))
	})

	svc := NewReportService(up.Client(t))
	file, err := svc.DownloadReport(authed(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "report-p1.pdf", file.Filename)
	assert.Equal(t, "%PDF-1.7", string(file.Data))
	assert.NotEmpty(t, file.ContentType)
}

func TestReportService_GetReport_UnknownTypeFallsBackToDraft(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodGet, "/admin/projects/p9", 200, map[string]interface{}{
		"project": map[string]interface{}{"_id": "p9", "type": "archived", "createdAt": "2026-01-05T09:30:00.000Z"},
	})

	svc := NewReportService(up.Client(t))
	report, err := svc.GetReport(authed(), "p9")

	require.NoError(t, err)
	assert.Equal(t, "N/A", report.CustomerName)
	assert.Equal(t, "Edited", report.UI().DetailLabel)
	assert.False(t, report.UI().CanDownload)
	assert.Equal(t, "January 5, 2026 at 09:30 AM", report.CreatedAt)
}

func TestReportService_Delete(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodPost, "/api/project/soft-delete/p1", 200, map[string]bool{"success": true})

	svc := NewReportService(up.Client(t))
	require.NoError(t, svc.DeleteReport(authed(), "p1"))
	assert.Equal(t, 1, up.CallCount(http.MethodPost, "/api/project/soft-delete/p1"))
}

func TestPlanService_LoadPlans_PremiumTiers(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodGet, "/api/admin/get-all", 200, []map[string]interface{}{
		{"_id": "free", "name": "Free", "type": "basic", "prices": []map[string]interface{}{{"durationMonths": 0, "price": 0}}},
		{"_id": "plus", "name": "Plus", "type": "premium", "currency": "eur", "features": []string{"A", "B"},
			"prices": []map[string]interface{}{
				{"durationMonths": 1, "price": 15},
				{"durationMonths": 12, "price": 120, "actualPrice": 180},
				{"durationMonths": 12, "price": 999},
			}},
	})

	svc := NewPlanService(up.Client(t), PlanIDs{Plus: "plus", Free: "free"})
	page, err := svc.LoadPlans(authed())

	require.NoError(t, err)
	require.NotNil(t, page.Plus)
	require.NotNil(t, page.Free)
	assert.Len(t, page.Plus.Prices, 2)

	form := models.NewPlusPlanForm(page.Plus)
	assert.Equal(t, "15", form.MonthlyPrice)
	assert.Equal(t, "120", form.AnnualPrice)
	assert.Equal(t, "180", form.ActualPrice)
	assert.Equal(t, []string{"A", "B"}, form.Features)
}

func TestPlanService_SavePlus_Payload(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodPut, "/api/admin/edit/plus-id", 200, map[string]bool{"success": true})

	svc := NewPlanService(up.Client(t), PlanIDs{Plus: "plus-id", Free: "free-id"})
	err := svc.SavePlus(authed(), models.PlusPlanForm{
		Name:         "Plus",
		Type:         "basic",
		Currency:     "EUR",
		MonthlyPrice: "15",
		AnnualPrice:  "120",
		ActualPrice:  "180",
		IsActive:     true,
		Features:     []string{"Unlimited reports", "", "  "},
	})
	require.NoError(t, err)

	call, ok := up.LastCall(http.MethodPut, "/api/admin/edit/plus-id")
	require.True(t, ok)

	var payload dto.PlanPayload
	require.NoError(t, json.Unmarshal(call.Body, &payload))
	assert.Equal(t, "premium", payload.Type)
	assert.Equal(t, "eur", payload.Currency)
	assert.Equal(t, []string{"Unlimited reports"}, payload.Features)
	require.Len(t, payload.Prices, 2)
	assert.Equal(t, 1, payload.Prices[0].DurationMonths)
	assert.Equal(t, 15.0, payload.Prices[0].Price)
	assert.Equal(t, 12, payload.Prices[1].DurationMonths)
	assert.Equal(t, 120.0, payload.Prices[1].Price)
	require.NotNil(t, payload.Prices[1].ActualPrice)
	assert.Equal(t, 180.0, *payload.Prices[1].ActualPrice)
}

func TestBuildFreePayload(t *testing.T) {
	payload := BuildFreePayload(models.FreePlanForm{Name: "Free Plan", IsActive: true, Features: []string{"", "Basic"}})

	assert.Equal(t, "basic", payload.Type)
	assert.Equal(t, "eur", payload.Currency)
	assert.Equal(t, []string{"Basic"}, payload.Features)
	require.Len(t, payload.Prices, 1)
	assert.Equal(t, 0, payload.Prices[0].DurationMonths)
	assert.Equal(t, 0.0, payload.Prices[0].Price)
	assert.Equal(t, "Free", payload.Prices[0].Label)
}

func TestTaxService_SaveReturnsServerEcho(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodPut, "/admin/tax/config", 200, map[string]interface{}{
		"config": map[string]float64{
			"tvaIntegrale":       20,
			"tvaSurMarge":        5.5,
			"exonereDeTva":       0,
			"standardMarginRate": 10,
		},
		"message": "Tax configuration saved",
	})

	svc := NewTaxService(up.Client(t))
	rates, message, err := svc.SaveRates(authed(), models.TaxForm{
		TvaIntegrale:       "20",
		TvaSurMarge:        "5",
		ExonereDeTva:       "",
		StandardMarginRate: "10",
	})

	require.NoError(t, err)
	assert.Equal(t, "Tax configuration saved", message)
	assert.Equal(t, models.TaxRateSet{TvaIntegrale: 20, TvaSurMarge: 5.5, ExonereDeTva: 0, StandardMarginRate: 10}, rates)

	call, _ := up.LastCall(http.MethodPut, "/admin/tax/config")
	var sent dto.TaxRates
	require.NoError(t, json.Unmarshal(call.Body, &sent))
	assert.Equal(t, dto.TaxRates{TvaIntegrale: 20, TvaSurMarge: 5, ExonereDeTva: 0, StandardMarginRate: 10}, sent)
}

func TestTaxService_LoadRates(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodGet, "/admin/tax/config", 200, map[string]interface{}{
		"config": map[string]interface{}{
			"vatRates":           map[string]float64{"tvaIntegrale": 20, "tvaSurMarge": 10, "exonereDeTva": 0},
			"standardMarginRate": 25,
		},
	})

	rates, err := NewTaxService(up.Client(t)).LoadRates(authed())

	require.NoError(t, err)
	assert.Equal(t, 20.0, rates.TvaIntegrale)
	assert.Equal(t, 25.0, rates.StandardMarginRate)
}

func TestContentService_LoadContent(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodGet, "/api/content/get", 200, map[string]interface{}{
		"success": true,
		"content": map[string]interface{}{
			"TermsAndConditions": "<p>Terms</p><script>x()</script>",
			"PrivacyPolicy":      "<p><br></p>",
			"TutorialMangment":   map[string]string{"VideoTittle": "Getting started"},
		},
		"videoDetails": map[string]string{"streamUrl": "/api/content/stream/v1"},
	})

	content, err := NewContentService(up.Client(t)).LoadContent(authed())

	require.NoError(t, err)
	assert.Equal(t, "<p>Terms</p>", content.Terms)
	assert.Empty(t, content.Privacy)
	assert.Equal(t, "Getting started", content.Video.Title)
	assert.Equal(t, up.Server.URL+"/api/content/stream/v1", content.Video.StreamURL)
}

func TestContentService_LoadContent_SuccessFalse(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodGet, "/api/content/get", 200, map[string]interface{}{"success": false})

	_, err := NewContentService(up.Client(t)).LoadContent(authed())

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeLoadFailed, appErr.Code)
}

func TestContentService_SaveTerms_PassesServerMessage(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.JSON(http.MethodPost, "/api/content/terms-and-conditions", 422, map[string]string{"message": "Content too long"})

	err := NewContentService(up.Client(t)).SaveTerms(authed(), "<p>x</p>")

	assert.Equal(t, "Content too long", apperrors.UserMessage(err))
}

func TestContentService_UploadVideoRequiresFile(t *testing.T) {
	up := testutil.NewUpstream(t)
	err := NewContentService(up.Client(t)).UploadVideo(authed(), VideoUpload{Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrVideoRequired)
	assert.Empty(t, up.Calls())
}

func TestAuthService_Login(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.Handle(http.MethodPost, "/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email == "admin@example.com" && req.Password == "secret" {
			_, _ = w.Write([]byte(`{"success":true,"token":"api-token"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})

	svc := NewAuthService(up.Client(t))

	token, err := svc.Login(context.Background(), models.LoginForm{Email: " Admin@Example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "api-token", token)

	_, err = svc.Login(context.Background(), models.LoginForm{Email: "admin@example.com", Password: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestSettingsService_PaymentSettings(t *testing.T) {
	svc := NewSettingsService(PaymentConfig{
		PublishableKey: "pk_test_51ABCDEFGHIJKLMNOP",
		SecretKey:      "sk_test_51ABCDEFGHIJKLMNOP",
		WebhookURL:     "https://console.example.com/api/webhooks/stripe",
	}, nil)

	settings := svc.PaymentSettings()

	assert.True(t, settings.Sandbox())
	assert.True(t, settings.Configured)
	assert.NotContains(t, settings.SecretKey, "ABCDEFGH")
	assert.Equal(t, "sk_test_", settings.SecretKey[:8])
}

func TestSettingsService_CheckConnectionWithoutKey(t *testing.T) {
	svc := NewSettingsService(PaymentConfig{}, nil)
	_, err := svc.CheckConnection(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrGatewayNotConfigured)
}

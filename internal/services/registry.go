package services

import (
	stripe "github.com/stripe/stripe-go/v82"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService     AuthService
	CustomerService CustomerService
	ReportService   ReportService
	PlanService     PlanService
	TaxService      TaxService
	ContentService  ContentService
	SettingsService SettingsService
}

// Dependencies - все, что нужно для сборки сервисов
type Dependencies struct {
	API           API
	PlanIDs       PlanIDs
	Payments      PaymentConfig
	StripeBackend stripe.Backend
}

// NewServiceContainer собирает сервисы поверх одного клиента API
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	return &ServiceContainer{
		AuthService:     NewAuthService(deps.API),
		CustomerService: NewCustomerService(deps.API),
		ReportService:   NewReportService(deps.API),
		PlanService:     NewPlanService(deps.API, deps.PlanIDs),
		TaxService:      NewTaxService(deps.API),
		ContentService:  NewContentService(deps.API),
		SettingsService: NewSettingsService(deps.Payments, deps.StripeBackend),
	}
}

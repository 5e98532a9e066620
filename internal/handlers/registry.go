package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ShellHandler        *ShellHandler
	CustomerHandler     *CustomerHandler
	ReportHandler       *ReportHandler
	CMSHandler          *CMSHandler
	SubscriptionHandler *SubscriptionHandler
	TaxHandler          *TaxHandler
	SettingHandler      *SettingHandler
}

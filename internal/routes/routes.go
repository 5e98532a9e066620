package routes

import (
	"admin_console/internal/handlers"
	"admin_console/internal/logger"
	"admin_console/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options - необязательные маршруты
type Options struct {
	MetricsEnabled bool
	MetricsPath    string
}

// RegisterRoutes регистрирует все страницы консоли.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers, // <-- Принимаем ГОТОВЫЕ хэндлеры
	opts Options,
) {
	public := ginRouter.Group("")
	{
		appHandlers.AuthHandler.RegisterRoutes(public)
		appHandlers.ShellHandler.RegisterRoutes(public)
	}

	// Страницы консоли, все под сессией администратора
	console := ginRouter.Group("/user")
	console.Use(middleware.RequireSession())
	{
		appHandlers.CustomerHandler.RegisterRoutes(console)
		appHandlers.ReportHandler.RegisterRoutes(console)
		appHandlers.CMSHandler.RegisterRoutes(console)
		appHandlers.SubscriptionHandler.RegisterRoutes(console)
		appHandlers.TaxHandler.RegisterRoutes(console)
		appHandlers.SettingHandler.RegisterRoutes(console)
	}

	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		ginRouter.GET(path, gin.WrapH(promhttp.Handler()))
		logger.Info("Metrics route registered", "path", path)
	}
}

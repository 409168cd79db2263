package main

import (
	"net/http"

	httphandlers "crediario/internal/interfaces/http"
	"crediario/internal/shared/config"
	"crediario/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Owner-scoped routes
	owner := middleware.Owner

	mux.Handle("/api/clients", owner(http.HandlerFunc(deps.ClientHandler.HandleClients)))
	mux.Handle("/api/clients/", owner(http.HandlerFunc(deps.ClientHandler.HandleClientByID)))

	mux.Handle("/api/sales", owner(http.HandlerFunc(deps.SaleHandler.HandleSales)))
	mux.Handle("/api/sales/", owner(http.HandlerFunc(deps.SaleHandler.HandleSaleByID)))

	mux.Handle("/api/installments/overdue", owner(http.HandlerFunc(deps.InstallmentHandler.HandleOverdueInstallments)))
	mux.Handle("/api/installments/upcoming", owner(http.HandlerFunc(deps.InstallmentHandler.HandleUpcomingInstallments)))
	mux.Handle("/api/installments/", owner(http.HandlerFunc(deps.InstallmentHandler.HandlePayInstallment)))

	mux.Handle("/api/reports/monthly", owner(http.HandlerFunc(deps.ReportHandler.HandleMonthlySummary)))
	mux.Handle("/api/reports/period", owner(http.HandlerFunc(deps.ReportHandler.HandlePeriodSummary)))
	mux.Handle("/api/reports/month-comparison", owner(http.HandlerFunc(deps.ReportHandler.HandleMonthComparison)))
	mux.Handle("/api/reports/top-clients", owner(http.HandlerFunc(deps.ReportHandler.HandleTopClients)))
	mux.Handle("/api/reports/status-distribution", owner(http.HandlerFunc(deps.ReportHandler.HandleStatusDistribution)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	return handler
}

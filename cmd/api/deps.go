package main

import (
	"log"

	"crediario/internal/domain/installment"
	"crediario/internal/domain/report"
	"crediario/internal/domain/sale"
	"crediario/internal/infrastructure/postgres"
	httphandlers "crediario/internal/interfaces/http"
	"crediario/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	ClientHandler      *httphandlers.ClientHandler
	SaleHandler        *httphandlers.SaleHandler
	InstallmentHandler *httphandlers.InstallmentHandler
	ReportHandler      *httphandlers.ReportHandler

	// Services and repositories (for the scheduler job provider)
	InstallmentService *installment.Service
	SaleRepo           *postgres.SaleRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	clientRepo := postgres.NewClientRepository(db)
	saleRepo := postgres.NewSaleRepository(db)
	installmentRepo := postgres.NewInstallmentRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Initialize domain services
	installmentService := installment.NewService(installmentRepo)
	saleService := sale.NewService(saleRepo, installmentRepo, clientRepo)
	reportService := report.NewService(reportRepo)

	// Initialize handlers
	clientHandler := httphandlers.NewClientHandler(clientRepo)
	saleHandler := httphandlers.NewSaleHandler(saleService, installmentService)
	installmentHandler := httphandlers.NewInstallmentHandler(saleService, installmentService)
	reportHandler := httphandlers.NewReportHandler(reportService)

	return &Dependencies{
		DB:                 db,
		ClientHandler:      clientHandler,
		SaleHandler:        saleHandler,
		InstallmentHandler: installmentHandler,
		ReportHandler:      reportHandler,
		InstallmentService: installmentService,
		SaleRepo:           saleRepo,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

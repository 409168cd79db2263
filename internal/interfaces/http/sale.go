package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"crediario/internal/domain/client"
	"crediario/internal/domain/installment"
	"crediario/internal/domain/sale"
	"crediario/internal/shared/middleware"
	"crediario/internal/shared/money"
)

type SaleHandler struct {
	saleService        *sale.Service
	installmentService *installment.Service
}

func NewSaleHandler(saleService *sale.Service, installmentService *installment.Service) *SaleHandler {
	return &SaleHandler{
		saleService:        saleService,
		installmentService: installmentService,
	}
}

type CreateSaleRequest struct {
	ClientID          string      `json:"clientId"`
	ItemDescription   string      `json:"itemDescription"`
	TotalValue        money.Money `json:"totalValue"`
	TotalInstallments int         `json:"totalInstallments"`
	PaymentFrequency  string      `json:"paymentFrequency"`
	FirstDueDate      string      `json:"firstDueDate"`
	SaleDate          string      `json:"saleDate,omitempty"`
}

// CreateSaleResponse returns the recorded sale together with its generated
// schedule, so the caller does not need a second round trip.
type CreateSaleResponse struct {
	Sale         *sale.Sale                 `json:"sale"`
	Installments []*installment.Installment `json:"installments"`
}

// HandleSales dispatches the sale collection: list on GET, record on POST.
func (h *SaleHandler) HandleSales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListSales(w, r)
	case http.MethodPost:
		h.handleCreateSale(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SaleHandler) handleListSales(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sales, err := h.saleService.ListSales(r.Context(), ownerID)
	if err != nil {
		log.Printf("Error listing sales for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to list sales", http.StatusInternalServerError)
		return
	}
	if sales == nil {
		sales = []*sale.Sale{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sales)
}

func (h *SaleHandler) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create sale request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.FirstDueDate == "" {
		http.Error(w, "firstDueDate is required", http.StatusBadRequest)
		return
	}
	firstDueDate, err := time.Parse("2006-01-02", req.FirstDueDate)
	if err != nil {
		http.Error(w, "Invalid firstDueDate format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	var saleDate time.Time
	if req.SaleDate != "" {
		saleDate, err = time.Parse("2006-01-02", req.SaleDate)
		if err != nil {
			http.Error(w, "Invalid saleDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
	}

	created, schedule, err := h.saleService.CreateSale(r.Context(), sale.CreateParams{
		OwnerID:           ownerID,
		ClientID:          req.ClientID,
		ItemDescription:   req.ItemDescription,
		TotalValue:        req.TotalValue,
		TotalInstallments: req.TotalInstallments,
		PaymentFrequency:  installment.Frequency(req.PaymentFrequency),
		FirstDueDate:      firstDueDate,
		SaleDate:          saleDate,
	})
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		log.Printf("Error creating sale for owner %d: %v", ownerID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateSaleResponse{Sale: created, Installments: schedule})
}

// HandleSaleByID dispatches a single sale and its installments subresource.
func (h *SaleHandler) HandleSaleByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/sales/")
	saleID, rest, _ := strings.Cut(path, "/")
	if saleID == "" {
		http.Error(w, "Sale ID is required", http.StatusBadRequest)
		return
	}

	if rest == "installments" {
		h.handleListSaleInstallments(w, r, saleID, ownerID)
		return
	}
	if rest != "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		found, err := h.saleService.GetSale(r.Context(), saleID, ownerID)
		if err != nil {
			writeSaleError(w, saleID, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(found)
	case http.MethodDelete:
		if err := h.saleService.DeleteSale(r.Context(), saleID, ownerID); err != nil {
			writeSaleError(w, saleID, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SaleHandler) handleListSaleInstallments(w http.ResponseWriter, r *http.Request, saleID string, ownerID int64) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Ownership check before exposing the schedule.
	if _, err := h.saleService.GetSale(r.Context(), saleID, ownerID); err != nil {
		writeSaleError(w, saleID, err)
		return
	}

	installments, err := h.installmentService.ListBySale(r.Context(), saleID)
	if err != nil {
		log.Printf("Error listing installments for sale %s: %v", saleID, err)
		http.Error(w, "Failed to list installments", http.StatusInternalServerError)
		return
	}
	if installments == nil {
		installments = []*installment.Installment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(installments)
}

func writeSaleError(w http.ResponseWriter, saleID string, err error) {
	switch {
	case errors.Is(err, sale.ErrSaleNotFound):
		http.Error(w, "Sale not found", http.StatusNotFound)
	case errors.Is(err, sale.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		log.Printf("Error handling sale %s: %v", saleID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

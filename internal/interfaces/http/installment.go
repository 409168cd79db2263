package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crediario/internal/domain/installment"
	"crediario/internal/domain/sale"
	"crediario/internal/shared/middleware"
	"crediario/internal/shared/money"
)

type InstallmentHandler struct {
	saleService        *sale.Service
	installmentService *installment.Service
}

func NewInstallmentHandler(saleService *sale.Service, installmentService *installment.Service) *InstallmentHandler {
	return &InstallmentHandler{
		saleService:        saleService,
		installmentService: installmentService,
	}
}

type PayInstallmentRequest struct {
	Amount   money.Money `json:"amount"`
	PaidDate string      `json:"paidDate,omitempty"` // defaults to today
}

// HandlePayInstallment records a payment against one installment.
func (h *InstallmentHandler) HandlePayInstallment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/installments/")
	installmentID, rest, _ := strings.Cut(path, "/")
	if installmentID == "" || rest != "pay" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	var req PayInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding pay installment request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	paidDate := time.Now()
	if req.PaidDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PaidDate)
		if err != nil {
			http.Error(w, "Invalid paidDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		paidDate = parsed
	}

	if !req.Amount.IsPositive() {
		http.Error(w, "amount must be greater than zero", http.StatusBadRequest)
		return
	}

	paid, err := h.saleService.PayInstallment(r.Context(), ownerID, installmentID, req.Amount, paidDate)
	if err != nil {
		switch {
		case errors.Is(err, installment.ErrInstallmentNotFound):
			http.Error(w, "Installment not found", http.StatusNotFound)
		case errors.Is(err, installment.ErrAlreadyPaid):
			http.Error(w, "Installment is already paid", http.StatusConflict)
		case errors.Is(err, sale.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("Error paying installment %s: %v", installmentID, err)
			http.Error(w, "Failed to pay installment", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(paid)
}

// HandleOverdueInstallments sweeps the owner's book and returns every
// installment currently overdue. The sweep happens on the read path, so
// the response always reflects statuses as of now.
func (h *InstallmentHandler) HandleOverdueInstallments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	overdue, err := h.installmentService.SweepOverdue(r.Context(), ownerID)
	if err != nil {
		log.Printf("Error sweeping overdue installments for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to list overdue installments", http.StatusInternalServerError)
		return
	}
	if overdue == nil {
		overdue = []*installment.Installment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(overdue)
}

// HandleUpcomingInstallments returns unpaid installments due within the
// next N days (default 30).
func (h *InstallmentHandler) HandleUpcomingInstallments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	days := installment.DefaultUpcomingDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			http.Error(w, "days must be a positive integer", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	upcoming, err := h.installmentService.ListUpcoming(r.Context(), ownerID, days)
	if err != nil {
		log.Printf("Error listing upcoming installments for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to list upcoming installments", http.StatusInternalServerError)
		return
	}
	if upcoming == nil {
		upcoming = []*installment.Installment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(upcoming)
}

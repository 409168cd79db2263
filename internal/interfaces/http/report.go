package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crediario/internal/domain/report"
	"crediario/internal/shared/middleware"
)

type ReportHandler struct {
	reportService *report.Service
}

func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// HandleMonthlySummary returns the expected/received picture of one month.
// Defaults to the current month when year and month are omitted.
func (h *ReportHandler) HandleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}
		year = parsed
	}
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			http.Error(w, "Invalid month", http.StatusBadRequest)
			return
		}
		month = time.Month(parsed)
	}

	summary, err := h.reportService.MonthlySummary(r.Context(), ownerID, year, month)
	if err != nil {
		log.Printf("Error building monthly summary for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to build summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// HandlePeriodSummary returns the summary of an arbitrary date range.
func (h *ReportHandler) HandlePeriodSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "Invalid start date (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "Invalid end date (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	summary, err := h.reportService.PeriodSummary(r.Context(), ownerID, start, end)
	if err != nil {
		log.Printf("Error building period summary for owner %d: %v", ownerID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// HandleMonthComparison returns one summary per requested month. Months
// come as a comma-separated list of MM-YYYY values.
func (h *ReportHandler) HandleMonthComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	monthsParam := r.URL.Query().Get("months")
	if monthsParam == "" {
		http.Error(w, "months is required (comma-separated MM-YYYY)", http.StatusBadRequest)
		return
	}

	var months []report.YearMonth
	for _, token := range strings.Split(monthsParam, ",") {
		ym, err := parseYearMonth(strings.TrimSpace(token))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		months = append(months, ym)
	}

	summaries, err := h.reportService.MonthComparison(r.Context(), ownerID, months)
	if err != nil {
		log.Printf("Error building month comparison for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to build comparison", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// HandleTopClients returns clients ranked by total billed value.
func (h *ReportHandler) HandleTopClients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := report.DefaultTopClientsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	stats, err := h.reportService.TopClients(r.Context(), ownerID, limit)
	if err != nil {
		log.Printf("Error building top clients for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to build top clients", http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = []*report.ClientStat{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// HandleStatusDistribution returns installment counts and amounts per status.
func (h *ReportHandler) HandleStatusDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	buckets, err := h.reportService.PaymentStatusDistribution(r.Context(), ownerID)
	if err != nil {
		log.Printf("Error building status distribution for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to build distribution", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buckets)
}

func parseYearMonth(token string) (report.YearMonth, error) {
	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return report.YearMonth{}, fmt.Errorf("invalid month %q (use MM-YYYY)", token)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return report.YearMonth{}, fmt.Errorf("invalid month %q (use MM-YYYY)", token)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year <= 0 {
		return report.YearMonth{}, fmt.Errorf("invalid month %q (use MM-YYYY)", token)
	}
	return report.YearMonth{Year: year, Month: month}, nil
}

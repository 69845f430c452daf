// Package handler exposes the rate query HTTP surface.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/damon-houk/superrich-rate-tracker/internal/application/service"
	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// RatesHandler handles HTTP requests for rate queries
type RatesHandler struct {
	service *service.RatesService
	logger  logger.Logger
}

// NewRatesHandler creates a new rates handler
func NewRatesHandler(service *service.RatesService, log logger.Logger) *RatesHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RatesHandler{
		service: service,
		logger:  log,
	}
}

// GetLatestRates handles the latest-rates-with-trend query
func (h *RatesHandler) GetLatestRates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	currencies := entity.ParseCurrencyList(r.URL.Query().Get("currencies"))
	if len(currencies) == 0 {
		h.logger.Warn("Missing currencies parameter", map[string]interface{}{
			"request_id": requestID,
		})
		sendErrorResponse(w, h.logger, "Missing currencies parameter",
			"The 'currencies' query parameter is required, e.g. currencies=USD,EUR", http.StatusBadRequest, requestID)
		return
	}

	for _, code := range currencies {
		if len(code) != 3 {
			h.logger.Warn("Invalid currency code", map[string]interface{}{
				"request_id": requestID,
				"currency":   code,
			})
			sendErrorResponse(w, h.logger, "Invalid currency code",
				"Currency codes should be 3 characters (e.g., USD, EUR, RUB)", http.StatusBadRequest, requestID)
			return
		}
	}

	latest, err := h.service.GetLatestWithTrend(r.Context(), currencies)
	if err != nil {
		h.handleQueryError(w, r, err, requestID)
		return
	}

	resp := LatestRatesResponse{
		Date:   latest.Date,
		Quotes: make([]QuoteResponse, 0, len(latest.Quotes)),
	}
	for _, quote := range latest.Quotes {
		qr := QuoteResponse{
			Code:     quote.Code,
			BuyTrend: string(quote.BuyTrend),
		}
		if quote.Rate != nil {
			buying := quote.Rate.BuyingRate
			selling := quote.Rate.SellingRate
			qr.CountryName = quote.Rate.CountryName
			qr.BuyingRate = &buying
			qr.SellingRate = &selling
		}
		resp.Quotes = append(resp.Quotes, qr)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetHistory handles the bounded-history query for one currency
func (h *RatesHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	vars := mux.Vars(r)
	currency := strings.ToUpper(vars["currency"])

	if len(currency) != 3 {
		h.logger.Warn("Invalid currency code", map[string]interface{}{
			"request_id": requestID,
			"currency":   currency,
		})
		sendErrorResponse(w, h.logger, "Invalid currency code",
			"Currency codes should be 3 characters (e.g., USD, EUR, RUB)", http.StatusBadRequest, requestID)
		return
	}

	history, err := h.service.GetHistory(r.Context(), currency)
	if err != nil {
		h.handleQueryError(w, r, err, requestID)
		return
	}

	// Bar lengths exist only for points with a stored rate; index them by date
	bars := make(map[string]int, len(history.Bars))
	for _, bar := range history.Bars {
		bars[bar.Date] = bar.Length
	}

	resp := HistoryResponse{
		Currency: history.Currency,
		Points:   make([]HistoryPointResponse, 0, len(history.Points)),
	}
	for _, point := range history.Points {
		pr := HistoryPointResponse{
			Date:       point.Date,
			BuyingRate: point.BuyingRate,
		}
		if length, ok := bars[point.Date]; ok {
			pr.BarLength = &length
		}
		resp.Points = append(resp.Points, pr)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Health reports liveness
func (h *RatesHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleQueryError maps service errors onto HTTP responses. Core failures
// surface as generic retry-later responses, never internals.
func (h *RatesHandler) handleQueryError(w http.ResponseWriter, r *http.Request, err error, requestID string) {
	if errors.Is(err, service.ErrNoData) {
		h.logger.Warn("No rate data for query", map[string]interface{}{
			"request_id": requestID,
			"path":       r.URL.Path,
		})
		sendErrorResponse(w, h.logger, "No rate data available",
			"No rates have been captured yet. Please try again later.", http.StatusNotFound, requestID)
		return
	}

	h.logger.Error("Rate query failed", map[string]interface{}{
		"request_id": requestID,
		"path":       r.URL.Path,
		"error":      err.Error(),
	})
	sendErrorResponse(w, h.logger, "Service temporarily unavailable",
		"Unable to retrieve rate data. Please try again later.", http.StatusServiceUnavailable, requestID)
}

// RegisterRoutes registers the rate query routes
func (h *RatesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/rates", h.GetLatestRates).Methods("GET")
	router.HandleFunc("/rates/{currency}/history", h.GetHistory).Methods("GET")
	router.HandleFunc("/health", h.Health).Methods("GET")

	h.logger.Info("Rate routes registered", map[string]interface{}{
		"routes": []string{
			"GET /rates",
			"GET /rates/{currency}/history",
			"GET /health",
		},
	})
}

// sendErrorResponse writes a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}

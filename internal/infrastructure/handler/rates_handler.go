// Package handler internal/infrastructure/handler/rates_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/application/service"
	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/logger"
	"github.com/damon-houk/treasury-yield-service/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// RatesHandler handles HTTP requests for term rates and curves
type RatesHandler struct {
	rates           *service.RatesService
	ingest          *service.CurveIngestService
	defaultNearDays int
	defaultNextDays int
	logger          logger.Logger
}

// NewRatesHandler creates a new rates handler. defaultNear/defaultNext are
// used when a term rates request omits the near/next query parameters.
func NewRatesHandler(rates *service.RatesService, ingest *service.CurveIngestService, defaultNear, defaultNext int, log logger.Logger) *RatesHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RatesHandler{
		rates:           rates,
		ingest:          ingest,
		defaultNearDays: defaultNear,
		defaultNextDays: defaultNext,
		logger:          log,
	}
}

// TermRates handles GET /rates/term
func (h *RatesHandler) TermRates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	near, err := queryInt(r, "near", h.defaultNearDays)
	if err != nil || near <= 0 {
		sendErrorResponse(w, h.logger, "Invalid near parameter",
			"The 'near' query parameter must be a positive integer day count", http.StatusBadRequest, requestID)
		return
	}
	next, err := queryInt(r, "next", h.defaultNextDays)
	if err != nil || next <= 0 {
		sendErrorResponse(w, h.logger, "Invalid next parameter",
			"The 'next' query parameter must be a positive integer day count", http.StatusBadRequest, requestID)
		return
	}

	h.logger.Info("Handling term rates request", map[string]interface{}{
		"request_id": requestID,
		"near":       near,
		"next":       next,
	})

	var result *entity.TermRateResult
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		d, parseErr := time.Parse("2006-01-02", dateParam)
		if parseErr != nil {
			sendErrorResponse(w, h.logger, "Invalid date parameter",
				"The 'date' query parameter must use the YYYY-MM-DD format", http.StatusBadRequest, requestID)
			return
		}
		result, err = h.rates.TermRatesForDate(r.Context(), d, near, next)
	} else {
		result, err = h.rates.TermRates(r.Context(), near, next)
	}
	if err != nil {
		h.sendServiceError(w, err, requestID)
		return
	}

	resp := TermRatesResponse{
		NearTermRate: result.NearTermRate,
		NextTermRate: result.NextTermRate,
		NearTermDays: result.NearTermDays,
		NextTermDays: result.NextTermDays,
		AsOfDate:     result.AsOfDate.Format("2006-01-02"),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Curve handles GET /rates/curve
func (h *RatesHandler) Curve(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	h.logger.Info("Handling curve request", map[string]interface{}{
		"request_id": requestID,
	})

	var curve *service.CurveRates
	var err error
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		d, parseErr := time.Parse("2006-01-02", dateParam)
		if parseErr != nil {
			sendErrorResponse(w, h.logger, "Invalid date parameter",
				"The 'date' query parameter must use the YYYY-MM-DD format", http.StatusBadRequest, requestID)
			return
		}
		curve, err = h.rates.GridRatesForDate(r.Context(), d)
	} else {
		curve, err = h.rates.GridRates(r.Context())
	}
	if err != nil {
		h.sendServiceError(w, err, requestID)
		return
	}

	resp := CurveResponse{
		Date:   curve.Date.Format("2006-01-02"),
		Points: make([]CurvePointResponse, 0, len(curve.Points)),
	}
	for _, p := range curve.Points {
		resp.Points = append(resp.Points, CurvePointResponse{
			MaturityDays: p.MaturityDays,
			Rate:         p.Rate,
			IsObserved:   p.IsObserved,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Refresh handles POST /rates/refresh
func (h *RatesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	year, err := queryInt(r, "year", time.Now().Year())
	if err != nil || year <= 0 {
		sendErrorResponse(w, h.logger, "Invalid year parameter",
			"The 'year' query parameter must be a positive integer", http.StatusBadRequest, requestID)
		return
	}

	h.logger.Info("Handling refresh request", map[string]interface{}{
		"request_id": requestID,
		"year":       year,
	})

	loaded, skipped, err := h.ingest.LoadYear(r.Context(), year)
	if err != nil {
		h.logger.Error("Feed refresh failed", map[string]interface{}{
			"request_id": requestID,
			"year":       year,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Feed refresh failed",
			"The treasury feed could not be fetched or parsed. Please try again later.",
			http.StatusServiceUnavailable, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RefreshResponse{Year: year, Loaded: loaded, Skipped: skipped})
}

// Health handles GET /health
func (h *RatesHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// RegisterRoutes registers the rates handler routes
func (h *RatesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/rates/term", h.TermRates).Methods("GET")
	router.HandleFunc("/rates/curve", h.Curve).Methods("GET")
	router.HandleFunc("/rates/refresh", h.Refresh).Methods("POST")
	router.HandleFunc("/health", h.Health).Methods("GET")

	h.logger.Info("Rates routes registered", map[string]interface{}{
		"routes": []string{
			"GET /rates/term",
			"GET /rates/curve",
			"POST /rates/refresh",
			"GET /health",
		},
	})
}

// sendServiceError maps service failures onto HTTP statuses
func (h *RatesHandler) sendServiceError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, entity.ErrNoData):
		sendErrorResponse(w, h.logger, "No data loaded",
			"No yield curve snapshots are loaded. POST /rates/refresh to fetch the feed.",
			http.StatusNotFound, requestID)
	case errors.Is(err, entity.ErrDateNotFound):
		sendErrorResponse(w, h.logger, "Date not found",
			"No yield curve snapshot exists for the requested date", http.StatusNotFound, requestID)
	case errors.Is(err, entity.ErrInvalidRateDomain):
		sendErrorResponse(w, h.logger, "Invalid rate domain",
			"The observed yields cannot be converted to a continuous rate", http.StatusUnprocessableEntity, requestID)
	case errors.Is(err, entity.ErrInsufficientData):
		h.logger.Error("Interpolation with no observed points", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Insufficient data",
			"The stored snapshot has no observed points", http.StatusInternalServerError, requestID)
	default:
		h.logger.Error("Unexpected error in rates handler", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError, requestID)
	}
}

// sendErrorResponse writes a standardized JSON error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, errMsg, description string, status int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"request_id": requestID,
		"error":      errMsg,
		"status":     status,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:       errMsg,
		Status:      status,
		Description: description,
		RequestID:   requestID,
	})
}

// queryInt reads an integer query parameter, returning def when absent
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

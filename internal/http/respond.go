package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/carlosh1016/cloth-inc-storefront/internal/backend"
	"github.com/carlosh1016/cloth-inc-storefront/internal/checkout"
	"github.com/carlosh1016/cloth-inc-storefront/internal/stock"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

// errorStatus maps service errors to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, checkout.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	case errors.Is(err, stock.ErrInvalidSize):
		return http.StatusBadRequest, "invalid_size"
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusBadRequest, "empty_cart"
	case errors.Is(err, checkout.ErrInvalidShipping),
		errors.Is(err, checkout.ErrInvalidCard),
		errors.Is(err, checkout.ErrCardExpired),
		errors.Is(err, checkout.ErrInvalidPayMethod),
		errors.Is(err, checkout.ErrCashMultiShop),
		errors.Is(err, checkout.ErrMissingShop):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, checkout.ErrOrderSubmission):
		return http.StatusBadGateway, "order_submission_failed"
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway, "upstream_error"
	}
	return http.StatusInternalServerError, "internal_error"
}

func handleServiceError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	respondError(w, status, code, message)
}

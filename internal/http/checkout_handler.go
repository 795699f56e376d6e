package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/carlosh1016/cloth-inc-storefront/internal/checkout"
	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
)

type CheckoutHandler struct {
	aggregator *checkout.Aggregator
	timeout    time.Duration
}

func NewCheckoutHandler(aggregator *checkout.Aggregator, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		aggregator: aggregator,
		timeout:    timeout,
	}
}

type CheckoutRequestDTO struct {
	PayMethod domain.PayMethod    `json:"payMethod"`
	Shipping  domain.ShippingInfo `json:"shipping"`
	Card      *domain.CardInfo    `json:"card,omitempty"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.aggregator.PlaceOrder(ctx, checkout.Request{
		UserID:    userID,
		PayMethod: req.PayMethod,
		Shipping:  req.Shipping,
		Card:      req.Card,
	})
	if err != nil {
		// The partial outcome still matters to the caller; attach the
		// result under the error payload.
		status, code := errorStatus(err)
		respondJSON(w, status, struct {
			ErrorResponse
			Result *checkout.Result `json:"result,omitempty"`
		}{
			ErrorResponse: ErrorResponse{Error: err.Error(), Code: code},
			Result:        result,
		})
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

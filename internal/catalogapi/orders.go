package catalogapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"skincare-storefront/internal/httputil"
)

// PaymentInput optionally names the payment type of a confirmation.
type PaymentInput struct {
	PaymentType string `json:"paymentType" validate:"max=64"`
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		h.respondWithStoreError(w, "list orders", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *HTTPHandler) ListPaymentDetails(w http.ResponseWriter, r *http.Request) {
	payments, err := h.store.ListPaymentDetails(r.Context())
	if err != nil {
		h.respondWithStoreError(w, "list payments", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, payments)
}

func (h *HTTPHandler) ProcessAndConfirmPayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.IDParam(r, "orderId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input PaymentInput
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	paymentType := strings.TrimSpace(input.PaymentType)
	if paymentType == "" {
		paymentType = DefaultPaymentType
	}

	payment, err := h.store.ProcessAndConfirmPayment(r.Context(), orderID, paymentType)
	if err != nil {
		h.respondWithStoreError(w, "confirm payment", err)
		return
	}
	h.logger.Info("payment confirmed", zap.Int64("order_id", orderID), zap.Int64("payment_id", payment.PaymentID))
	httputil.RespondWithJSON(w, http.StatusCreated, payment)
}

package handlers

import (
	"log/slog"
	"net/http"

	"parcelio-api-server/internal/lib/sl"
	"parcelio-api-server/internal/metrics"
	"parcelio-api-server/internal/payment"

	"github.com/gin-gonic/gin"
)

type PaymentIntentHandler struct {
	Gateway IntentCreator
	Log     *slog.Logger
}

type CreatePaymentIntentRequest struct {
	AmountInCents int64 `json:"amountInCents" binding:"gt=0"`
}

// CreatePaymentIntent returns the gateway's client secret. Failures are reported as
// {"error": "..."} with status 200, which is what existing clients check for.
func (h *PaymentIntentHandler) CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("failed").Inc()
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	secret, err := h.Gateway.CreateIntent(c.Request.Context(), req.AmountInCents)
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("failed").Inc()
		requestLog(h.Log, c).Error("failed to create payment intent",
			sl.Err(err), slog.Int64("amount", req.AmountInCents))
		c.JSON(http.StatusOK, gin.H{"error": payment.ErrorMessage(err)})
		return
	}

	metrics.PaymentIntentsTotal.WithLabelValues("succeeded").Inc()
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

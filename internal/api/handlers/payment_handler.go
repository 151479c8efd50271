// server/internal/api/handlers/payment_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"parcelio-api-server/internal/lib/apierr"
	"parcelio-api-server/internal/lib/sl"
	"parcelio-api-server/internal/lib/validate"
	"parcelio-api-server/internal/models"
	"parcelio-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentHandler struct {
	Payments PaymentRepository
	Hub      Notifier
	Log      *slog.Logger
}

type RecordPaymentRequest struct {
	ParcelID      string      `json:"parcelId" binding:"required"`
	Email         string      `json:"email" binding:"required,email"`
	Amount        float64     `json:"amount" binding:"gt=0"`
	TransactionID string      `json:"transactionId" binding:"required"`
	PaymentMethod interface{} `json:"paymentMethod"`
	PaidDate      interface{} `json:"paid_date"`
}

// GetPayments lists payments most recent first, optionally only those paid by ?email=.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	email := c.Query("email")

	payments, err := h.Payments.List(c.Request.Context(), email)
	if err != nil {
		requestLog(h.Log, c).Error("failed to list payments", sl.Err(err), slog.String("email", email))
		apierr.Respond(c, apierr.NewDatabaseError("Failed to fetch payments"))
		return
	}

	if payments == nil {
		payments = []models.Payment{}
	}

	c.JSON(http.StatusOK, payments)
}

// RecordPayment stores the payment and marks its parcel paid.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, apierr.NewValidationError(validate.Details(err)))
		return
	}

	payment := &models.Payment{
		ParcelID:      req.ParcelID,
		Email:         req.Email,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		PaymentMethod: req.PaymentMethod,
		PaidDate:      req.PaidDate,
	}

	record, err := h.Payments.Record(c.Request.Context(), payment)
	if err != nil {
		requestLog(h.Log, c).Error("payment processing error",
			sl.Err(err),
			slog.String("parcel_id", req.ParcelID),
			slog.String("transaction_id", req.TransactionID),
		)
		apierr.Respond(c, apierr.NewDatabaseError("Failed to record payment").WithCause(err))
		return
	}

	if oid, ok := record.Payment.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	h.Hub.Publish(payment.Email, socket.EventPaymentRecorded, payment)

	c.JSON(http.StatusOK, gin.H{
		"message":       "Payment recorded and parcel marked as paid",
		"paymentResult": record.Payment,
		"updateResult":  record.Update,
		"success":       true,
		"insertedId":    record.Payment.InsertedID,
	})
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"parcelio-api-server/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent_ReturnsClientSecret(t *testing.T) {
	var gotAmount int64
	h := &PaymentIntentHandler{
		Gateway: &stubGateway{create: func(_ context.Context, amount int64) (string, error) {
			gotAmount = amount
			return "pi_1_secret_abc", nil
		}},
		Log: discardLog,
	}
	before := testutil.ToFloat64(metrics.PaymentIntentsTotal.WithLabelValues("succeeded"))

	rec := perform(t, http.MethodPost, "/create-payment-intent", h.CreatePaymentIntent, "/create-payment-intent",
		jsonBody(`{"amountInCents":2500}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret":"pi_1_secret_abc"}`, rec.Body.String())
	assert.Equal(t, int64(2500), gotAmount)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PaymentIntentsTotal.WithLabelValues("succeeded")))
}

func TestCreatePaymentIntent_ErrorsAreReportedInBody(t *testing.T) {
	h := &PaymentIntentHandler{
		Gateway: &stubGateway{create: func(context.Context, int64) (string, error) {
			return "", errors.New("Invalid API Key provided")
		}},
		Log: discardLog,
	}
	before := testutil.ToFloat64(metrics.PaymentIntentsTotal.WithLabelValues("failed"))

	rec := perform(t, http.MethodPost, "/create-payment-intent", h.CreatePaymentIntent, "/create-payment-intent",
		jsonBody(`{"amountInCents":100}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid API Key provided"}`, rec.Body.String())

	rec = perform(t, http.MethodPost, "/create-payment-intent", h.CreatePaymentIntent, "/create-payment-intent",
		jsonBody(`{"amountInCents":-5}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "error")

	assert.Equal(t, before+2, testutil.ToFloat64(metrics.PaymentIntentsTotal.WithLabelValues("failed")))
}

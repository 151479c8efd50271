package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"parcelio-api-server/internal/lib/sl"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway creates payment intents through the Stripe API.
type StripeGateway struct {
	intents  *paymentintent.Client
	currency string
	log      *slog.Logger
}

// NewStripeGateway returns a gateway using secretKey. A nil backend selects Stripe's API backend.
func NewStripeGateway(secretKey, currency string, backend stripe.Backend, log *slog.Logger) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{
		intents:  &paymentintent.Client{B: backend, Key: secretKey},
		currency: currency,
		log:      log.With(sl.Module("payment.stripe")),
	}
}

// CreateIntent creates a card payment intent for amount minor units and returns its client secret.
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	g.log.Debug("payment intent created",
		slog.String("intent_id", intent.ID),
		slog.Int64("amount", amount),
	)
	return intent.ClientSecret, nil
}

// ErrorMessage extracts the message a client should see from a gateway error.
func ErrorMessage(err error) string {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return se.Msg
	}
	return err.Error()
}

package booking

import (
	"context"
	"fmt"
	"math"
	"strings"

	"harborview/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentGateway is the two-phase intent protocol the orchestrator drives:
// create an intent from booking-shape data, then confirm it with the
// tokenized card details. The gateway owns the intent; the orchestrator
// only ever holds the opaque identifier and client secret.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req models.IntentRequest) (*models.PaymentIntent, error)
	ConfirmIntent(ctx context.Context, clientSecret string, card models.CardDetails) (*models.PaymentIntent, error)
}

// StripeGateway implements PaymentGateway on Stripe's PaymentIntents API.
// The API key is set process-wide (stripe.Key) during startup.
type StripeGateway struct {
	Logger *zap.Logger
}

func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{Logger: logger}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, req models.IntentRequest) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(req.Amount)),
		Currency: stripe.String(req.Currency),
		Metadata: map[string]string{
			"roomId":   req.RoomID,
			"checkIn":  req.CheckIn,
			"checkOut": req.CheckOut,
			"adults":   fmt.Sprintf("%d", req.Adults),
			"children": fmt.Sprintf("%d", req.Children),
		},
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe intent creation failed: %w", err)
	}

	g.Logger.Info("payment intent created",
		zap.String("intentId", pi.ID), zap.Int64("amount", pi.Amount))
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) ConfirmIntent(ctx context.Context, clientSecret string, card models.CardDetails) (*models.PaymentIntent, error) {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(card.PaymentMethodID),
	}
	params.Context = ctx

	pi, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		// Stripe errors carry the decline message meant for the guest.
		if stripeErr, ok := err.(*stripe.Error); ok {
			return nil, &GatewayError{Code: string(stripeErr.Code), Message: stripeErr.Msg}
		}
		return nil, &GatewayError{Message: err.Error()}
	}

	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// intentIDFromSecret extracts the intent identifier from a client secret
// of the form "pi_xxx_secret_yyy".
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}

// toMinorUnits converts a decimal amount to the gateway's integer minor
// units (cents).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

package models

// PaymentMethod is the guest's chosen settlement method.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// Valid reports whether the method is one of the supported variants.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCash
}

// IntentRequest carries booking-shape data only. Card data never crosses
// this boundary.
type IntentRequest struct {
	RoomID         string  `json:"roomId"`
	CheckIn        string  `json:"checkIn"`
	CheckOut       string  `json:"checkOut"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	IdempotencyKey string  `json:"-"`
}

// PaymentIntent is the orchestrator's view of the gateway-side intent:
// an opaque identifier, the client secret, and the gateway's status string.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
}

// CardDetails is the tokenized payment method collected by the gateway's
// client-side widget. It is passed through to the gateway verbatim and is
// never persisted.
type CardDetails struct {
	PaymentMethodID string `json:"paymentMethodId"`
}

const IntentStatusSucceeded = "succeeded"

package models

import "time"

// BookingRecord is a durably created booking, materialized by finalization.
type BookingRecord struct {
	ID              string        `bson:"id" json:"id"`
	Reference       string        `bson:"reference" json:"reference"` // human-facing booking number
	RoomID          string        `bson:"roomId" json:"roomId"`
	CheckIn         string        `bson:"checkIn" json:"checkIn"`
	CheckOut        string        `bson:"checkOut" json:"checkOut"`
	Adults          int           `bson:"adults" json:"adults"`
	Children        int           `bson:"children" json:"children"`
	RoomQuantity    int           `bson:"roomQuantity" json:"roomQuantity"`
	TotalAmount     float64       `bson:"totalAmount" json:"totalAmount"`
	Currency        string        `bson:"currency" json:"currency"`
	Method          PaymentMethod `bson:"method" json:"method"`
	PaymentIntentID string        `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	Guest           GuestInfo     `bson:"guest" json:"guest"`
	Status          string        `bson:"status" json:"status"` // e.g. "confirmed"
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
}

// ReconciliationRecord flags a charge that succeeded while booking creation
// failed. These are never retried automatically; the sweep worker surfaces
// them for manual follow-up.
type ReconciliationRecord struct {
	ID              string     `bson:"id" json:"id"`
	DraftID         string     `bson:"draftId" json:"draftId"`
	PaymentIntentID string     `bson:"paymentIntentId" json:"paymentIntentId"`
	Amount          float64    `bson:"amount" json:"amount"`
	Currency        string     `bson:"currency" json:"currency"`
	Guest           GuestInfo  `bson:"guest" json:"guest"`
	Reason          string     `bson:"reason" json:"reason"`
	Resolved        bool       `bson:"resolved" json:"resolved"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	ResolvedAt      *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

package models

import (
	"errors"
	"time"
)

// WizardStep enumerates the fixed, linear checkout steps.
type WizardStep string

const (
	StepRoomDetails  WizardStep = "roomDetails"
	StepGuestInfo    WizardStep = "guestInfo"
	StepPayment      WizardStep = "payment"
	StepConfirmation WizardStep = "confirmation"
)

// StepOrder is the canonical wizard progression.
var StepOrder = []WizardStep{StepRoomDetails, StepGuestInfo, StepPayment, StepConfirmation}

// Index returns the step's position in StepOrder, or -1 for an unknown step.
func (s WizardStep) Index() int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// GuestInfo holds the guest contact fields collected in step two.
// All fields except SpecialRequests are required.
type GuestInfo struct {
	FirstName       string `bson:"firstName" json:"firstName"`
	LastName        string `bson:"lastName" json:"lastName"`
	Email           string `bson:"email" json:"email"`
	Phone           string `bson:"phone" json:"phone"`
	SpecialRequests string `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
}

// BookingResult is set only after successful finalization. Its absence
// means "not yet booked".
type BookingResult struct {
	BookingID string `json:"bookingId"`
	Reference string `json:"reference"`
}

// ErrDraftCompleted is returned when mutating a draft whose booking has
// already been finalized. A completed draft is read-only.
var ErrDraftCompleted = errors.New("booking draft is already completed")

// ErrRoomLocked is returned when an update attempts to change the room
// after step one has set it.
var ErrRoomLocked = errors.New("room selection is immutable once set")

// BookingDraft is the step-scoped state accumulated across the wizard.
// It is owned exclusively by its wizard instance and mutated only through
// ApplyUpdate.
type BookingDraft struct {
	ID       string `json:"id"`
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName,omitempty"`

	CheckIn  string `json:"checkIn"`  // "2006-01-02"
	CheckOut string `json:"checkOut"` // "2006-01-02", must be after CheckIn
	Adults   int    `json:"adults"`
	Children int    `json:"children"`

	// Derived pricing fields, recomputed after every update.
	RoomCapacity      int     `json:"roomCapacity"`
	RoomQuantity      int     `json:"roomQuantity"`
	RoomPricePerNight float64 `json:"roomPricePerNight"`
	Nights            int     `json:"nights"`
	TotalPrice        float64 `json:"totalPrice"`

	Guest         GuestInfo     `json:"guest"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	// CardComplete mirrors the gateway widget's report of a complete,
	// error-free card entry.
	CardComplete bool `json:"cardComplete"`

	Step WizardStep `json:"step"`
	// Error and ErrorCode are the step-scoped submission failure surfaced
	// to the guest; ErrorCode distinguishes the failure class (a
	// post-charge failure must never look like a pre-charge one).
	Error      string `json:"error,omitempty"`
	ErrorCode  string `json:"errorCode,omitempty"`
	Processing bool   `json:"processing"`

	BookingResult *BookingResult `json:"bookingResult,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// DraftUpdate is a partial update. Nil fields leave the draft untouched,
// so a merge is always non-destructive.
type DraftUpdate struct {
	RoomID            *string        `json:"roomId,omitempty"`
	CheckIn           *string        `json:"checkIn,omitempty"`
	CheckOut          *string        `json:"checkOut,omitempty"`
	Adults            *int           `json:"adults,omitempty"`
	Children          *int           `json:"children,omitempty"`
	RoomPricePerNight *float64       `json:"roomPricePerNight,omitempty"`
	FirstName         *string        `json:"firstName,omitempty"`
	LastName          *string        `json:"lastName,omitempty"`
	Email             *string        `json:"email,omitempty"`
	Phone             *string        `json:"phone,omitempty"`
	SpecialRequests   *string        `json:"specialRequests,omitempty"`
	PaymentMethod     *PaymentMethod `json:"paymentMethod,omitempty"`
	CardComplete      *bool          `json:"cardComplete,omitempty"`
}

// Completed reports whether the booking has been finalized.
func (d *BookingDraft) Completed() bool {
	return d.BookingResult != nil
}

// ApplyUpdate shallow-merges the partial update into the draft. Fields not
// present in the update keep their current values. The draft becomes
// read-only the instant BookingResult is set, and the room identifier is
// immutable once step one has set it.
func (d *BookingDraft) ApplyUpdate(u DraftUpdate) error {
	if d.Completed() {
		return ErrDraftCompleted
	}
	if u.RoomID != nil {
		if d.RoomID != "" && *u.RoomID != d.RoomID {
			return ErrRoomLocked
		}
		d.RoomID = *u.RoomID
	}
	if u.CheckIn != nil {
		d.CheckIn = *u.CheckIn
	}
	if u.CheckOut != nil {
		d.CheckOut = *u.CheckOut
	}
	if u.Adults != nil {
		d.Adults = *u.Adults
	}
	if u.Children != nil {
		d.Children = *u.Children
	}
	if u.RoomPricePerNight != nil {
		d.RoomPricePerNight = *u.RoomPricePerNight
	}
	if u.FirstName != nil {
		d.Guest.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		d.Guest.LastName = *u.LastName
	}
	if u.Email != nil {
		d.Guest.Email = *u.Email
	}
	if u.Phone != nil {
		d.Guest.Phone = *u.Phone
	}
	if u.SpecialRequests != nil {
		d.Guest.SpecialRequests = *u.SpecialRequests
	}
	if u.PaymentMethod != nil {
		d.PaymentMethod = *u.PaymentMethod
	}
	if u.CardComplete != nil {
		d.CardComplete = *u.CardComplete
	}
	return nil
}

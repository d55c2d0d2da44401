package booking

import (
	"context"

	"harborview/models"
)

// StartWizardRequest mounts a wizard for a target room, with optional
// pre-filled search parameters. When RoomID is empty the resolver picks a
// unit for the requested category.
type StartWizardRequest struct {
	RoomID   string `json:"roomId"`
	Category string `json:"category"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

// WizardView is the read-only projection the UI layer consumes.
type WizardView struct {
	Draft        *models.BookingDraft        `json:"draft"`
	CurrentStep  models.WizardStep           `json:"currentStep"`
	CanProceed   bool                        `json:"canProceed"`
	IsProcessing bool                        `json:"isProcessing"`
	Error        string                      `json:"error,omitempty"`
	ErrorCode    string                      `json:"errorCode,omitempty"`
	Warning      *models.AvailabilityWarning `json:"warning,omitempty"`
}

// WizardService is the stateful surface for one guest's checkout: it owns
// draft persistence, step navigation, and payment submission.
type WizardService interface {
	StartWizard(ctx context.Context, req StartWizardRequest) (*WizardView, error)
	GetWizard(ctx context.Context, draftID string) (*WizardView, error)
	UpdateBookingData(ctx context.Context, draftID string, update models.DraftUpdate) (*WizardView, error)
	Next(ctx context.Context, draftID string) (*WizardView, error)
	Back(ctx context.Context, draftID string) (*WizardView, error)
	JumpTo(ctx context.Context, draftID string, step models.WizardStep) (*WizardView, error)
	Submit(ctx context.Context, draftID string, card models.CardDetails) (*WizardView, error)
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	roomRepo "harborview/database/repository/room"
	"harborview/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWizardService implements WizardService on top of the draft
// store, the state machine, the availability resolver, and the payment
// orchestrator.
type DefaultWizardService struct {
	Store        DraftStore
	Rooms        roomRepo.RoomRepository
	Resolver     *AvailabilityResolver
	Orchestrator *PaymentOrchestrator
	Logger       *zap.Logger
}

func (s *DefaultWizardService) view(draft *models.BookingDraft, warning *models.AvailabilityWarning) *WizardView {
	w := NewWizard(draft)
	return &WizardView{
		Draft:        draft,
		CurrentStep:  w.CurrentStep(),
		CanProceed:   w.CanProceed(),
		IsProcessing: draft.Processing,
		Error:        draft.Error,
		ErrorCode:    draft.ErrorCode,
		Warning:      warning,
	}
}

// StartWizard resolves the target room, creates the draft, and stores it.
// The availability warning, if any, is returned for the UI to render as a
// non-blocking banner.
func (s *DefaultWizardService) StartWizard(ctx context.Context, req StartWizardRequest) (*WizardView, error) {
	var room models.RoomRef
	var warning *models.AvailabilityWarning

	if req.RoomID != "" {
		found, err := s.Rooms.GetByID(ctx, req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("failed to load room %s: %w", req.RoomID, err)
		}
		room = *found
	} else {
		candidates, err := s.Rooms.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list rooms: %w", err)
		}
		result, err := s.Resolver.Resolve(ctx, candidates, req.Category, models.DateRange{
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
		})
		if err != nil {
			return nil, err
		}
		room = result.Room
		warning = result.Warning
	}

	draft := &models.BookingDraft{
		ID:                uuid.New().String(),
		RoomID:            room.ID,
		RoomName:          room.Name,
		RoomCapacity:      room.Capacity,
		RoomPricePerNight: room.PricePerNight,
		CheckIn:           req.CheckIn,
		CheckOut:          req.CheckOut,
		Adults:            req.Adults,
		Children:          req.Children,
		Step:              models.StepRoomDetails,
		CreatedAt:         time.Now(),
	}
	if draft.Adults == 0 {
		draft.Adults = 1
	}
	Reprice(draft)

	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.Logger.Info("wizard started",
		zap.String("draftId", draft.ID), zap.String("roomId", room.ID))
	return s.view(draft, warning), nil
}

func (s *DefaultWizardService) GetWizard(ctx context.Context, draftID string) (*WizardView, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return s.view(draft, nil), nil
}

// UpdateBookingData shallow-merges a partial update into the draft and
// recomputes derived pricing. Fields absent from the update are preserved.
func (s *DefaultWizardService) UpdateBookingData(ctx context.Context, draftID string, update models.DraftUpdate) (*WizardView, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.ApplyUpdate(update); err != nil {
		return nil, err
	}
	if err := validateDraftInvariants(draft); err != nil {
		return nil, err
	}
	Reprice(draft)
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(draft, nil), nil
}

// validateDraftInvariants rejects updates that violate the draft's basic
// shape. These are local errors; they never reach the network.
func validateDraftInvariants(d *models.BookingDraft) error {
	if d.Adults < 1 {
		return &ValidationError{Field: "adults", Message: "at least one adult is required"}
	}
	if d.Children < 0 {
		return &ValidationError{Field: "children", Message: "children must not be negative"}
	}
	if d.CheckIn != "" && d.CheckOut != "" {
		if _, err := Nights(d.CheckIn, d.CheckOut); err != nil {
			return &ValidationError{Field: "dates", Message: err.Error()}
		}
	}
	if d.PaymentMethod != "" && !d.PaymentMethod.Valid() {
		return &ValidationError{Field: "paymentMethod", Message: fmt.Sprintf("unsupported payment method %q", d.PaymentMethod)}
	}
	return nil
}

func (s *DefaultWizardService) Next(ctx context.Context, draftID string) (*WizardView, error) {
	return s.navigate(ctx, draftID, func(w *Wizard) { w.Next() })
}

func (s *DefaultWizardService) Back(ctx context.Context, draftID string) (*WizardView, error) {
	return s.navigate(ctx, draftID, func(w *Wizard) { w.Back() })
}

func (s *DefaultWizardService) JumpTo(ctx context.Context, draftID string, step models.WizardStep) (*WizardView, error) {
	return s.navigate(ctx, draftID, func(w *Wizard) { w.JumpTo(step) })
}

// navigate loads the draft, applies a state-machine move (which may be a
// no-op), and saves. A rejected move is not an error; the view simply
// shows the unchanged step.
func (s *DefaultWizardService) navigate(ctx context.Context, draftID string, move func(*Wizard)) (*WizardView, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	move(NewWizard(draft))
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(draft, nil), nil
}

// Submit runs the payment orchestration for the draft. Payment failures
// do not propagate: they are folded into the draft's step-scoped error
// fields and the wizard stays on the payment step.
func (s *DefaultWizardService) Submit(ctx context.Context, draftID string, card models.CardDetails) (*WizardView, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Completed() {
		return nil, models.ErrDraftCompleted
	}
	if draft.Processing {
		return nil, ErrSubmissionInFlight
	}
	if draft.Step != models.StepPayment {
		return nil, &ValidationError{Field: "step", Message: "submission is only allowed from the payment step"}
	}
	w := NewWizard(draft)
	if !w.IsStepValid(models.StepPayment) {
		return nil, &ValidationError{Field: "paymentMethod", Message: "payment details are incomplete"}
	}

	// Disable the action for the duration of the submission.
	draft.Processing = true
	draft.Error = ""
	draft.ErrorCode = ""
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}

	record, submitErr := s.Orchestrator.Submit(ctx, draft, card)

	// Stale-update guard: the draft may have expired or completed while
	// the submission ran; never apply a result to a view that is gone.
	stored, err := s.Store.Get(ctx, draftID)
	if err != nil {
		s.Logger.Warn("discarding submission result for missing draft",
			zap.String("draftId", draftID))
		return nil, err
	}
	if stored.Completed() {
		return s.view(stored, nil), nil
	}

	if submitErr != nil {
		if errors.Is(submitErr, ErrSubmissionInFlight) {
			return nil, ErrSubmissionInFlight
		}
		stored.Processing = false
		stored.Error = userMessage(submitErr)
		stored.ErrorCode = errorCode(submitErr)
		if err := s.Store.Save(ctx, stored); err != nil {
			return nil, err
		}
		s.Logger.Warn("submission failed",
			zap.String("draftId", draftID), zap.String("code", stored.ErrorCode), zap.Error(submitErr))
		return s.view(stored, nil), nil
	}

	NewWizard(stored).completePayment(&models.BookingResult{
		BookingID: record.ID,
		Reference: record.Reference,
	})
	// Successful completion destroys the stored draft; the caller gets
	// the final confirmation view.
	if err := s.Store.Delete(ctx, draftID); err != nil {
		s.Logger.Warn("failed to delete completed draft",
			zap.String("draftId", draftID), zap.Error(err))
	}
	return s.view(stored, nil), nil
}

// userMessage maps an orchestration failure to the single user-facing
// message rendered beside the payment step.
func userMessage(err error) string {
	var gwErr *GatewayError
	var postErr *PostChargeError
	var intentErr *IntentCreationError
	var cashErr *CashFinalizationError
	var valErr *ValidationError

	switch {
	case errors.As(err, &gwErr):
		// The gateway's decline message is meant for the guest; surface
		// it verbatim.
		return gwErr.Message
	case errors.As(err, &postErr):
		return "Your payment was processed but the booking could not be created. Our team has been notified and will contact you."
	case errors.As(err, &intentErr):
		return "We could not start your payment. Please try again."
	case errors.As(err, &cashErr):
		return "Your booking could not be created. Please try again."
	case errors.As(err, &valErr):
		return valErr.Message
	default:
		return "Something went wrong while completing your booking. Please try again."
	}
}

func errorCode(err error) string {
	var gwErr *GatewayError
	var postErr *PostChargeError
	var intentErr *IntentCreationError
	var cashErr *CashFinalizationError
	var valErr *ValidationError

	switch {
	case errors.As(err, &postErr):
		return "postChargeFinalizationFailure"
	case errors.As(err, &gwErr):
		return "gatewayError"
	case errors.As(err, &intentErr):
		return "intentCreationFailure"
	case errors.As(err, &cashErr):
		return "cashFinalizationFailure"
	case errors.As(err, &valErr):
		return "validationError"
	default:
		return "unknownError"
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	bookingRepo "harborview/database/repository/booking"
	reconRepo "harborview/database/repository/reconciliation"
	"harborview/models"

	"go.uber.org/zap"
)

// PaymentOrchestrator executes the payment-and-finalization sequence for
// one draft: either a single cash finalization call, or the two-phase
// card protocol (create intent, confirm at the gateway, finalize). The
// steps are strictly ordered; no step begins before the prior resolves.
type PaymentOrchestrator struct {
	Gateway  PaymentGateway
	Repo     bookingRepo.BookingRepository
	Recon    reconRepo.ReconciliationRepository
	Currency string
	Logger   *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewPaymentOrchestrator(gateway PaymentGateway, repo bookingRepo.BookingRepository, recon reconRepo.ReconciliationRepository, currency string, logger *zap.Logger) *PaymentOrchestrator {
	return &PaymentOrchestrator{
		Gateway:  gateway,
		Repo:     repo,
		Recon:    recon,
		Currency: currency,
		Logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// begin claims the single-flight slot for a draft. Submissions are
// single-flight per draft: a second call while one runs is rejected
// before it can touch the gateway or the repository.
func (o *PaymentOrchestrator) begin(draftID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, running := o.inFlight[draftID]; running {
		return false
	}
	o.inFlight[draftID] = struct{}{}
	return true
}

func (o *PaymentOrchestrator) end(draftID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, draftID)
}

// Submit runs the full payment sequence for the draft and returns the
// finalized booking record. Every failure mode maps to a typed error so
// the caller can distinguish pre-charge failures from the critical
// charged-but-not-booked case.
func (o *PaymentOrchestrator) Submit(ctx context.Context, draft *models.BookingDraft, card models.CardDetails) (*models.BookingRecord, error) {
	if !o.begin(draft.ID) {
		return nil, ErrSubmissionInFlight
	}
	defer o.end(draft.ID)

	if draft.Completed() {
		return nil, models.ErrDraftCompleted
	}

	switch draft.PaymentMethod {
	case models.PaymentMethodCash:
		return o.submitCash(ctx, draft)
	case models.PaymentMethodCard:
		return o.submitCard(ctx, draft, card)
	default:
		return nil, &ValidationError{Field: "paymentMethod", Message: fmt.Sprintf("unsupported payment method %q", draft.PaymentMethod)}
	}
}

// submitCash finalizes the booking in a single request; no charge is
// involved, so any failure is plainly retryable.
func (o *PaymentOrchestrator) submitCash(ctx context.Context, draft *models.BookingDraft) (*models.BookingRecord, error) {
	record, err := o.Repo.CreateCash(ctx, draft)
	if err != nil {
		o.Logger.Error("cash booking finalization failed",
			zap.String("draftId", draft.ID), zap.Error(err))
		return nil, &CashFinalizationError{Message: "booking could not be created", Err: err}
	}

	o.Logger.Info("cash booking created",
		zap.String("draftId", draft.ID), zap.String("reference", record.Reference))
	return record, nil
}

func (o *PaymentOrchestrator) submitCard(ctx context.Context, draft *models.BookingDraft, card models.CardDetails) (*models.BookingRecord, error) {
	// Phase 1: intent creation from booking-shape data only. Card data
	// never crosses this boundary.
	intent, err := o.Gateway.CreateIntent(ctx, models.IntentRequest{
		RoomID:         draft.RoomID,
		CheckIn:        draft.CheckIn,
		CheckOut:       draft.CheckOut,
		Adults:         draft.Adults,
		Children:       draft.Children,
		Amount:         draft.TotalPrice,
		Currency:       o.Currency,
		IdempotencyKey: "draft-" + draft.ID,
	})
	if err != nil {
		o.Logger.Error("payment intent creation failed",
			zap.String("draftId", draft.ID), zap.Error(err))
		return nil, &IntentCreationError{Message: "could not start the payment", Err: err}
	}

	// Phase 2: confirmation with the tokenized card details.
	confirmed, err := o.Gateway.ConfirmIntent(ctx, intent.ClientSecret, card)
	if err != nil {
		var gwErr *GatewayError
		if errors.As(err, &gwErr) {
			return nil, gwErr
		}
		return nil, &GatewayError{Message: err.Error()}
	}
	if confirmed.Status != models.IntentStatusSucceeded {
		o.Logger.Warn("payment intent did not succeed",
			zap.String("draftId", draft.ID), zap.String("status", confirmed.Status))
		return nil, &GatewayError{Message: "payment was not completed"}
	}

	// Phase 3: finalization. The server is the source of truth that the
	// charge succeeded and creates the booking atomically with it.
	record, err := o.Repo.CreateCard(ctx, confirmed.ID, draft)
	if err != nil {
		// The guest has been charged but no booking exists. Never retry
		// automatically (a retry could double-book or double-charge);
		// flag for manual reconciliation instead.
		o.flagForReconciliation(ctx, draft, confirmed.ID, err)
		return nil, &PostChargeError{
			PaymentIntentID: confirmed.ID,
			Message:         "booking creation failed after payment",
			Err:             err,
		}
	}

	o.Logger.Info("card booking created",
		zap.String("draftId", draft.ID),
		zap.String("reference", record.Reference),
		zap.String("intentId", confirmed.ID))
	return record, nil
}

func (o *PaymentOrchestrator) flagForReconciliation(ctx context.Context, draft *models.BookingDraft, intentID string, cause error) {
	o.Logger.Error("booking creation failed after successful charge",
		zap.String("draftId", draft.ID),
		zap.String("intentId", intentID),
		zap.Error(cause))

	if o.Recon == nil {
		return
	}
	_, err := o.Recon.Create(ctx, models.ReconciliationRecord{
		DraftID:         draft.ID,
		PaymentIntentID: intentID,
		Amount:          draft.TotalPrice,
		Currency:        o.Currency,
		Guest:           draft.Guest,
		Reason:          cause.Error(),
	})
	if err != nil {
		// Worst case: the sweep can't see it, but the charge is still
		// traceable through the gateway dashboard via the intent ID
		// logged above.
		o.Logger.Error("failed to write reconciliation record",
			zap.String("intentId", intentID), zap.Error(err))
	}
}

package booking

import (
	"context"
	"errors"
	"testing"

	"harborview/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service *DefaultWizardService
	store   *memoryDraftStore
	gateway *stubGateway
	repo    *stubBookingRepo
	recon   *stubReconRepo
}

func newServiceFixture() *serviceFixture {
	gateway := &stubGateway{}
	repo := newStubBookingRepo()
	recon := &stubReconRepo{}
	store := newMemoryDraftStore()
	rooms := &stubRoomRepo{rooms: []models.RoomRef{
		{ID: "R1", Name: "Sea View", Category: "standard", PricePerNight: 100, Capacity: 2},
	}}

	return &serviceFixture{
		service: &DefaultWizardService{
			Store:        store,
			Rooms:        rooms,
			Resolver:     NewAvailabilityResolver(&scriptedProber{}, testLogger()),
			Orchestrator: NewPaymentOrchestrator(gateway, repo, recon, "usd", testLogger()),
			Logger:       testLogger(),
		},
		store:   store,
		gateway: gateway,
		repo:    repo,
		recon:   recon,
	}
}

func ptr[T any](v T) *T { return &v }

// driveToPayment walks a fresh wizard to the payment step.
func driveToPayment(t *testing.T, f *serviceFixture, method models.PaymentMethod) string {
	t.Helper()
	ctx := context.Background()

	view, err := f.service.StartWizard(ctx, StartWizardRequest{
		RoomID:   "R1",
		CheckIn:  "2025-06-01",
		CheckOut: "2025-06-03",
		Adults:   2,
	})
	require.NoError(t, err)
	draftID := view.Draft.ID
	assert.Equal(t, models.StepRoomDetails, view.CurrentStep)

	view, err = f.service.UpdateBookingData(ctx, draftID, models.DraftUpdate{
		FirstName: ptr("Ada"),
		LastName:  ptr("Lovelace"),
		Email:     ptr("ada@example.com"),
		Phone:     ptr("+123456789"),
	})
	require.NoError(t, err)

	view, err = f.service.Next(ctx, draftID)
	require.NoError(t, err)
	require.Equal(t, models.StepGuestInfo, view.CurrentStep)

	view, err = f.service.Next(ctx, draftID)
	require.NoError(t, err)
	require.Equal(t, models.StepPayment, view.CurrentStep)

	update := models.DraftUpdate{PaymentMethod: &method}
	if method == models.PaymentMethodCard {
		update.CardComplete = ptr(true)
	}
	_, err = f.service.UpdateBookingData(ctx, draftID, update)
	require.NoError(t, err)

	return draftID
}

func TestEndToEndCash(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	draftID := driveToPayment(t, f, models.PaymentMethodCash)

	view, err := f.service.Submit(ctx, draftID, models.CardDetails{})
	require.NoError(t, err)

	// Finalization was called once with pricePerNight 100 * 1 room * 2 nights.
	assert.Equal(t, 1, f.repo.cashCalls)
	assert.Equal(t, 200.0, f.repo.lastAmount)

	assert.Equal(t, models.StepConfirmation, view.CurrentStep)
	require.NotNil(t, view.Draft.BookingResult)
	assert.NotEmpty(t, view.Draft.BookingResult.Reference)
	assert.False(t, view.IsProcessing)

	// Completion destroys the stored draft.
	_, err = f.service.GetWizard(ctx, draftID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestEndToEndCardHappyPath(t *testing.T) {
	f := newServiceFixture()
	f.gateway.confirmStatus = models.IntentStatusSucceeded
	f.repo.reference = "1234"
	ctx := context.Background()

	draftID := driveToPayment(t, f, models.PaymentMethodCard)

	view, err := f.service.Submit(ctx, draftID, models.CardDetails{PaymentMethodID: "pm_1"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.gateway.createCalls)
	assert.Equal(t, 1, f.gateway.confirmCalls)
	assert.Equal(t, 1, f.repo.cardCalls)

	assert.Equal(t, models.StepConfirmation, view.CurrentStep)
	require.NotNil(t, view.Draft.BookingResult)
	assert.Equal(t, "1234", view.Draft.BookingResult.Reference)
}

func TestSubmitFailureStaysOnPaymentStep(t *testing.T) {
	f := newServiceFixture()
	f.gateway.confirmErr = &GatewayError{Code: "card_declined", Message: "Your card was declined."}
	ctx := context.Background()

	draftID := driveToPayment(t, f, models.PaymentMethodCard)

	view, err := f.service.Submit(ctx, draftID, models.CardDetails{PaymentMethodID: "pm_1"})
	require.NoError(t, err, "payment failures fold into the view, they do not propagate")

	assert.Equal(t, models.StepPayment, view.CurrentStep)
	assert.Equal(t, "Your card was declined.", view.Error)
	assert.Equal(t, "gatewayError", view.ErrorCode)
	assert.False(t, view.IsProcessing)
	assert.Nil(t, view.Draft.BookingResult)

	// The error is step-scoped state: a retry is possible.
	f.gateway.confirmErr = nil
	f.gateway.confirmStatus = models.IntentStatusSucceeded
	view, err = f.service.Submit(ctx, draftID, models.CardDetails{PaymentMethodID: "pm_1"})
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmation, view.CurrentStep)
}

func TestSubmitPostChargeFailureSurfacesDistinctCode(t *testing.T) {
	f := newServiceFixture()
	f.gateway.confirmStatus = models.IntentStatusSucceeded
	f.repo.failCard = errors.New("bookings collection unavailable")
	ctx := context.Background()

	draftID := driveToPayment(t, f, models.PaymentMethodCard)

	view, err := f.service.Submit(ctx, draftID, models.CardDetails{PaymentMethodID: "pm_1"})
	require.NoError(t, err)

	assert.Equal(t, models.StepPayment, view.CurrentStep)
	assert.Equal(t, "postChargeFinalizationFailure", view.ErrorCode)
	assert.NotEqual(t, "gatewayError", view.ErrorCode)
	require.Len(t, f.recon.created, 1)
}

func TestSubmitRejectedWhileProcessing(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	draftID := driveToPayment(t, f, models.PaymentMethodCash)

	draft, err := f.store.Get(ctx, draftID)
	require.NoError(t, err)
	draft.Processing = true
	require.NoError(t, f.store.Save(ctx, draft))

	_, err = f.service.Submit(ctx, draftID, models.CardDetails{})
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Zero(t, f.repo.cashCalls)
}

func TestSubmitRequiresPaymentStep(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	view, err := f.service.StartWizard(ctx, StartWizardRequest{
		RoomID: "R1", CheckIn: "2025-06-01", CheckOut: "2025-06-03", Adults: 2,
	})
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, view.Draft.ID, models.CardDetails{})
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestStartWizardByCategoryCarriesWarning(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	// No room matches the category, so the resolver falls back to the
	// first listing and the warning reaches the view.
	view, err := f.service.StartWizard(ctx, StartWizardRequest{
		Category: "penthouse",
		CheckIn:  "2025-06-01",
		CheckOut: "2025-06-03",
		Adults:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, "R1", view.Draft.RoomID)
	require.NotNil(t, view.Warning)
	assert.Equal(t, models.WarnCategoryFallback, view.Warning.Code)
}

func TestUpdateUnknownDraft(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.UpdateBookingData(context.Background(), "missing", models.DraftUpdate{})
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestUpdateRejectsInvalidDateRange(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	view, err := f.service.StartWizard(ctx, StartWizardRequest{
		RoomID: "R1", CheckIn: "2025-06-01", CheckOut: "2025-06-03", Adults: 2,
	})
	require.NoError(t, err)

	_, err = f.service.UpdateBookingData(ctx, view.Draft.ID, models.DraftUpdate{
		CheckOut: ptr("2025-05-01"),
	})
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

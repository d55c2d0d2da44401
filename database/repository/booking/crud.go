package bookingRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"harborview/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// newReference derives a short human-facing booking number.
func newReference(id string) string {
	return "HV-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

func (r *mongoBookingRepo) recordFromDraft(draft *models.BookingDraft) models.BookingRecord {
	id := uuid.New().String()
	return models.BookingRecord{
		ID:           id,
		Reference:    newReference(id),
		RoomID:       draft.RoomID,
		CheckIn:      draft.CheckIn,
		CheckOut:     draft.CheckOut,
		Adults:       draft.Adults,
		Children:     draft.Children,
		RoomQuantity: draft.RoomQuantity,
		TotalAmount:  draft.TotalPrice,
		Currency:     r.currency,
		Guest:        draft.Guest,
		Status:       "confirmed",
		CreatedAt:    time.Now(),
	}
}

// CreateCard materializes the booking for a confirmed charge. The intent
// identifier is stored so the record can always be traced back to the
// payment.
func (r *mongoBookingRepo) CreateCard(ctx context.Context, paymentIntentID string, draft *models.BookingDraft) (*models.BookingRecord, error) {
	record := r.recordFromDraft(draft)
	record.Method = models.PaymentMethodCard
	record.PaymentIntentID = paymentIntentID

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert booking record: %w", err)
	}
	return &record, nil
}

// CreateCash materializes a pay-on-arrival booking.
func (r *mongoBookingRepo) CreateCash(ctx context.Context, draft *models.BookingDraft) (*models.BookingRecord, error) {
	record := r.recordFromDraft(draft)
	record.Method = models.PaymentMethodCash

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert booking record: %w", err)
	}
	return &record, nil
}

// GetByReference returns a booking by its human-facing number.
func (r *mongoBookingRepo) GetByReference(ctx context.Context, reference string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	if err := r.coll.FindOne(ctx, bson.M{"reference": reference}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

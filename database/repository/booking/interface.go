package bookingRepo

import (
	"context"

	"harborview/database"
	"harborview/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository materializes booking records. CreateCard is the
// finalization endpoint for charged bookings and takes the confirmed
// intent identifier; CreateCash creates the booking in one request with
// no charge involved.
type BookingRepository interface {
	CreateCard(ctx context.Context, paymentIntentID string, draft *models.BookingDraft) (*models.BookingRecord, error)
	CreateCash(ctx context.Context, draft *models.BookingDraft) (*models.BookingRecord, error)
	GetByReference(ctx context.Context, reference string) (*models.BookingRecord, error)
}

type mongoBookingRepo struct {
	coll     *mongo.Collection
	currency string
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo(currency string) BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBookingRepo{
		coll:     db.Collection("bookings"),
		currency: currency,
	}
}

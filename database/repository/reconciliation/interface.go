package reconRepo

import (
	"context"
	"errors"
	"time"

	"harborview/database"
	"harborview/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReconciliationRepository tracks charges that succeeded without a booking
// record. Entries are created by the orchestrator and worked off manually.
type ReconciliationRepository interface {
	Create(ctx context.Context, record models.ReconciliationRecord) (string, error)
	ListUnresolved(ctx context.Context) ([]models.ReconciliationRecord, error)
	MarkResolved(ctx context.Context, id string) error
}

type mongoReconRepo struct {
	coll *mongo.Collection
}

// NewMongoReconRepo returns a ReconciliationRepository backed by MongoDB.
func NewMongoReconRepo() ReconciliationRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoReconRepo{
		coll: db.Collection("reconciliations"),
	}
}

func (r *mongoReconRepo) Create(ctx context.Context, record models.ReconciliationRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

func (r *mongoReconRepo) ListUnresolved(ctx context.Context) ([]models.ReconciliationRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"resolved": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.ReconciliationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoReconRepo) MarkResolved(ctx context.Context, id string) error {
	now := time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"resolved": true, "resolvedAt": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("reconciliation record not found")
	}
	return nil
}

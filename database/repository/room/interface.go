package roomRepo

import (
	"context"
	"errors"

	"harborview/database"
	"harborview/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrRoomNotFound is returned when no room exists for the given ID.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepository exposes the room catalog the marketing site lists. The
// catalog itself is maintained by the admin back office; the pipeline only
// reads it.
type RoomRepository interface {
	List(ctx context.Context) ([]models.RoomRef, error)
	GetByID(ctx context.Context, id string) (*models.RoomRef, error)
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo returns a RoomRepository backed by MongoDB.
func NewMongoRoomRepo() RoomRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoRoomRepo{
		coll: db.Collection("rooms"),
	}
}

func (r *mongoRoomRepo) List(ctx context.Context) ([]models.RoomRef, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []models.RoomRef
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *mongoRoomRepo) GetByID(ctx context.Context, id string) (*models.RoomRef, error) {
	var room models.RoomRef
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

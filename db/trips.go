package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripmind/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a trip does not exist, is deleted or belongs
// to someone else.
var ErrNotFound = errors.New("trip not found")

// TripStore persists saved trips.
type TripStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewTripStore wraps the trips collection.
func NewTripStore(coll *mongo.Collection) *TripStore {
	return &TripStore{coll: coll, now: time.Now}
}

// EnsureIndexes creates the lookup indexes.
func (s *TripStore) EnsureIndexes(ctx context.Context) error {
	idxs := []mongo.IndexModel{
		{
			Keys:    bson.M{"trip_id": 1},
			Options: options.Index().SetUnique(true).SetName("unique_trip_id"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_recent"),
		},
	}
	_, err := s.coll.Indexes().CreateMany(ctx, idxs)
	return err
}

// Save stores a new trip for userID and returns it.
func (s *TripStore) Save(ctx context.Context, userID string, req models.SaveTripRequest) (*models.SavedTrip, error) {
	trip := &models.SavedTrip{
		TripID:          uuid.NewString(),
		UserID:          userID,
		SaveTripRequest: req,
		CreatedAt:       s.now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, trip); err != nil {
		return nil, fmt.Errorf("insert trip: %w", err)
	}
	return trip, nil
}

// Get loads one of userID's trips.
func (s *TripStore) Get(ctx context.Context, userID, tripID string) (*models.SavedTrip, error) {
	filter := bson.M{"trip_id": tripID, "user_id": userID, "deleted": bson.M{"$ne": true}}

	var trip models.SavedTrip
	err := s.coll.FindOne(ctx, filter).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return &trip, nil
}

// List returns userID's trips, newest first.
func (s *TripStore) List(ctx context.Context, userID string) ([]models.TripSummary, error) {
	filter := bson.M{"user_id": userID, "deleted": bson.M{"$ne": true}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"trip_id": 1, "trip_summary": 1, "destination": 1, "start_date": 1, "end_date": 1, "created_at": 1})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find trips: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []models.TripSummary{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}
	return trips, nil
}

// Delete soft-deletes one of userID's trips.
func (s *TripStore) Delete(ctx context.Context, userID, tripID string) error {
	filter := bson.M{"trip_id": tripID, "user_id": userID, "deleted": bson.M{"$ne": true}}
	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

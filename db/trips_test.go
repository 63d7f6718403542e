package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tripmind/models"
)

// Runs against a live server when TRIPMIND_TEST_MONGO_URI is set.
func testStore(t *testing.T) *TripStore {
	t.Helper()
	uri := os.Getenv("TRIPMIND_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TRIPMIND_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := Connect(ctx, uri, "tripmind_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.TripsCollection.Database().Drop(context.Background())
		_ = database.Close(context.Background())
	})

	store := NewTripStore(database.TripsCollection)
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestTripStoreLifecycle(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, "u1", models.SaveTripRequest{
		Destination: "도쿄",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-04",
		HeadCount:   2,
		Schedule:    []models.ScheduleDay{{Day: 1, Events: []models.ScheduleEvent{{TimeSlot: "오전", PlaceName: "a"}}}},
		RawData:     map[string]any{"mcp_fetched_data": map[string]any{"flight_quote": map[string]any{"airline": "KE"}}},
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "u1", saved.TripID)
	require.NoError(t, err)
	assert.Equal(t, "도쿄", got.Destination)
	assert.Equal(t, "2025-05-01", got.StartDate)
	mcp, ok := got.RawData["mcp_fetched_data"].(primitive.M)
	require.True(t, ok, "nested documents decode as maps")
	assert.Contains(t, mcp, "flight_quote")

	_, err = store.Get(ctx, "u2", saved.TripID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.TripID, list[0].TripID)

	require.NoError(t, store.Delete(ctx, "u1", saved.TripID))
	assert.ErrorIs(t, store.Delete(ctx, "u1", saved.TripID), ErrNotFound)

	list, err = store.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

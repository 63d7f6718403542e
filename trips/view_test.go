package trips

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripmind/models"
)

func TestDurationText(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"2025-05-01", "2025-05-04", "3박 4일"},
		{"2025-05-01", "2025-05-01", "0박 1일"},
		{"2025-05-01T10:00:00", "2025-05-03T09:00:00", "2박 3일"},
		{"", "2025-05-04", "기간 미정"},
		{"2025-05-04", "2025-05-01", "기간 미정"},
		{"someday", "2025-05-01", "기간 미정"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DurationText(tc.start, tc.end), "%s..%s", tc.start, tc.end)
	}
}

func TestBuildViewDefaults(t *testing.T) {
	view := BuildView(&models.SavedTrip{
		TripID:          "t1",
		SaveTripRequest: models.SaveTripRequest{Destination: "부산", TotalCost: 300000},
	})

	assert.Equal(t, "부산 여행", view.TripSummary)
	assert.Equal(t, 1, view.HeadCount)
	assert.Equal(t, 300000.0, view.PerPersonBudget)
	assert.Equal(t, "기간 미정", view.DurationText)
	assert.NotNil(t, view.Flights)
	assert.NotNil(t, view.Hotels)
	assert.NotNil(t, view.Schedule)
}

func TestBuildViewKeepsStoredChoice(t *testing.T) {
	view := BuildView(&models.SavedTrip{SaveTripRequest: models.SaveTripRequest{
		Flights: []models.FlightCandidate{{Airline: "OZ"}, {Airline: "KE"}},
		RawData: map[string]any{"mcp_fetched_data": map[string]any{
			"flight_quote":     map[string]any{"airline": "7C"},
			"hotel_candidates": []any{map[string]any{"name": "Seaside"}},
		}},
	}})

	assert.Len(t, view.Flights, 1)
	assert.Equal(t, "OZ", view.Flights[0].Airline)
	assert.Equal(t, "Seaside", view.Hotels[0].Name)
}

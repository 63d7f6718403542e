package printout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmind/models"
)

func sampleView() models.TripView {
	return models.TripView{
		TripID:          "t1",
		TripSummary:     "Tokyo 3N4D",
		TotalCost:       1200000,
		PerPersonBudget: 600000,
		StartDate:       "2025-05-01",
		EndDate:         "2025-05-04",
		DurationText:    "3박 4일",
		HeadCount:       2,
		Flights: []models.FlightCandidate{{
			Airline:               "KE",
			Origin:                "ICN",
			Destination:           "NRT",
			OutboundDepartureTime: "2025-05-01T09:00:00",
			OutboundArrivalTime:   "2025-05-01T11:30:00",
		}},
		Hotels: []models.HotelCandidate{{Name: "Shinjuku Inn", Price: 150000}},
		Schedule: []models.ScheduleDay{
			{Day: 1, Date: "2025-05-01", Events: []models.ScheduleEvent{{TimeSlot: "오후", PlaceName: "Asakusa", Description: "temple walk"}}},
		},
	}
}

func TestTripPDF(t *testing.T) {
	out, err := New("").TripPDF(sampleView(), "http://localhost:3000/trip/t1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	bare, err := New("").TripPDF(models.TripView{}, "")
	require.NoError(t, err)
	assert.Less(t, len(bare), len(out))
}

func TestTripPDFMissingFont(t *testing.T) {
	_, err := New("/nonexistent/font.ttf").TripPDF(sampleView(), "")
	assert.Error(t, err)
}

func TestWon(t *testing.T) {
	assert.Equal(t, "0", won(0))
	assert.Equal(t, "999", won(999))
	assert.Equal(t, "1,000", won(1000))
	assert.Equal(t, "1,234,567", won(1234567))
	assert.Equal(t, "-12,000", won(-12000))
}

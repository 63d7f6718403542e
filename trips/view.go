package trips

import (
	"math"
	"strconv"
	"time"

	"tripmind/models"
	"tripmind/normalize"
	"tripmind/schedule"
)

const unknownDuration = "기간 미정"

// BuildView prepares a saved trip for display. The stored choice wins; trips
// saved without one fall back to what the backend quoted in raw_data.
func BuildView(trip *models.SavedTrip) models.TripView {
	headCount := trip.HeadCount
	if headCount < 1 {
		headCount = 1
	}
	summary := trip.TripSummary
	if summary == "" {
		summary = trip.Destination + " 여행"
	}

	flights, hotels := firstFlight(trip.Flights), firstHotel(trip.Hotels)
	if len(flights) == 0 || len(hotels) == 0 {
		qf, qh := normalize.QuotedChoice(map[string]any{"raw_data": trip.RawData})
		if len(flights) == 0 {
			flights = qf
		}
		if len(hotels) == 0 {
			hotels = qh
		}
	}

	days := models.CloneSchedule(trip.Schedule)
	if days == nil {
		days = []models.ScheduleDay{}
	}

	return models.TripView{
		TripID:          trip.TripID,
		TripSummary:     summary,
		TotalCost:       trip.TotalCost,
		PerPersonBudget: math.Round(trip.TotalCost / float64(headCount)),
		StartDate:       trip.StartDate,
		EndDate:         trip.EndDate,
		DurationText:    DurationText(trip.StartDate, trip.EndDate),
		HeadCount:       headCount,
		Flights:         flights,
		Hotels:          hotels,
		Schedule:        days,
	}
}

// DurationText renders a date range as "N박 N+1일".
func DurationText(start, end string) string {
	s, ok := parseDate(start)
	if !ok {
		return unknownDuration
	}
	e, ok := parseDate(end)
	if !ok || e.Before(s) {
		return unknownDuration
	}
	nights := int(math.Ceil(e.Sub(s).Hours() / 24))
	return strconv.Itoa(nights) + "박 " + strconv.Itoa(nights+1) + "일"
}

func parseDate(s string) (time.Time, bool) {
	if len(s) == len("2006-01-02") {
		t, err := time.Parse("2006-01-02", s)
		return t, err == nil
	}
	return schedule.ParseTimestamp(s)
}

func firstFlight(fs []models.FlightCandidate) []models.FlightCandidate {
	if len(fs) == 0 {
		return []models.FlightCandidate{}
	}
	return fs[:1:1]
}

func firstHotel(hs []models.HotelCandidate) []models.HotelCandidate {
	if len(hs) == 0 {
		return []models.HotelCandidate{}
	}
	return hs[:1:1]
}

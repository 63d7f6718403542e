package models

import "time"

// FlightCandidate is one flight offer returned by the planning backend.
// Timestamps are kept as the backend sent them (ISO-8601 or empty).
type FlightCandidate struct {
	Airline               string         `json:"airline" bson:"airline"`
	Origin                string         `json:"origin,omitempty" bson:"origin,omitempty"`
	Destination           string         `json:"destination,omitempty" bson:"destination,omitempty"`
	Price                 float64        `json:"price" bson:"price"`
	Currency              string         `json:"currency,omitempty" bson:"currency,omitempty"`
	Duration              string         `json:"duration,omitempty" bson:"duration,omitempty"`
	OutboundDepartureTime string         `json:"outbound_departure_time,omitempty" bson:"outbound_departure_time,omitempty"`
	OutboundArrivalTime   string         `json:"outbound_arrival_time,omitempty" bson:"outbound_arrival_time,omitempty"`
	InboundDepartureTime  string         `json:"inbound_departure_time,omitempty" bson:"inbound_departure_time,omitempty"`
	InboundArrivalTime    string         `json:"inbound_arrival_time,omitempty" bson:"inbound_arrival_time,omitempty"`
	Raw                   map[string]any `json:"raw,omitempty" bson:"raw,omitempty"`
}

// Label is the airline/route text shown for the candidate.
func (f FlightCandidate) Label() string {
	switch {
	case f.Origin != "" && f.Destination != "":
		return f.Airline + " " + f.Origin + "→" + f.Destination
	case f.Airline != "":
		return f.Airline
	}
	return "-"
}

// HotelCandidate is one hotel offer returned by the planning backend.
type HotelCandidate struct {
	ID        string         `json:"id,omitempty" bson:"id,omitempty"`
	Name      string         `json:"name" bson:"name"`
	Price     float64        `json:"price" bson:"price"`
	Currency  string         `json:"currency,omitempty" bson:"currency,omitempty"`
	Rating    float64        `json:"rating" bson:"rating"`
	Location  string         `json:"location,omitempty" bson:"location,omitempty"`
	Address   string         `json:"address,omitempty" bson:"address,omitempty"`
	Image     string         `json:"image,omitempty" bson:"image,omitempty"`
	Latitude  *float64       `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64       `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Raw       map[string]any `json:"raw,omitempty" bson:"raw,omitempty"`
}

// TripMeta carries the descriptive fields found next to the plan data.
type TripMeta struct {
	Destination string  `json:"destination"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	TripSummary string  `json:"trip_summary,omitempty"`
	TotalCost   float64 `json:"total_cost"`
	HeadCount   int     `json:"head_count,omitempty"`
}

// NormalizedPlan is everything the normalizer could pull out of one backend response.
type NormalizedPlan struct {
	Meta     TripMeta          `json:"meta"`
	Flights  []FlightCandidate `json:"flights"`
	Hotels   []HotelCandidate  `json:"hotels"`
	Schedule []ScheduleDay     `json:"schedule"`
	// entity kinds that came back empty, e.g. "flights"
	Misses []string `json:"misses,omitempty"`
}

// SaveTripRequest is the payload posted to the save endpoint.
type SaveTripRequest struct {
	TripSummary string            `json:"trip_summary" bson:"trip_summary"`
	Destination string            `json:"destination" bson:"destination"`
	StartDate   string            `json:"startDate" bson:"start_date"`
	EndDate     string            `json:"endDate" bson:"end_date"`
	TotalCost   float64           `json:"total_cost" bson:"total_cost"`
	HeadCount   int               `json:"head_count" bson:"head_count"`
	Schedule    []ScheduleDay     `json:"schedule" bson:"schedule"`
	Flights     []FlightCandidate `json:"flights" bson:"flights"`
	Hotels      []HotelCandidate  `json:"hotels" bson:"hotels"`
	RawData     map[string]any    `json:"raw_data" bson:"raw_data"`
}

// SavedTrip is the stored form of a saved plan.
type SavedTrip struct {
	TripID          string    `json:"trip_id" bson:"trip_id"`
	UserID          string    `json:"user_id" bson:"user_id"`
	SaveTripRequest `bson:",inline"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	Deleted         bool      `json:"-" bson:"deleted,omitempty"`
}

// TripSummary is the list row for a saved trip.
type TripSummary struct {
	TripID      string    `json:"trip_id" bson:"trip_id"`
	TripSummary string    `json:"trip_summary" bson:"trip_summary"`
	Destination string    `json:"destination" bson:"destination"`
	StartDate   string    `json:"start_date" bson:"start_date"`
	EndDate     string    `json:"end_date" bson:"end_date"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// TripView is a saved trip prepared for display.
type TripView struct {
	TripID          string            `json:"id"`
	TripSummary     string            `json:"trip_summary"`
	TotalCost       float64           `json:"total_cost"`
	PerPersonBudget float64           `json:"per_person_budget"`
	StartDate       string            `json:"startDate"`
	EndDate         string            `json:"endDate"`
	DurationText    string            `json:"durationText"`
	HeadCount       int               `json:"head_count"`
	Flights         []FlightCandidate `json:"flights"`
	Hotels          []HotelCandidate  `json:"hotels"`
	Schedule        []ScheduleDay     `json:"schedule"`
}

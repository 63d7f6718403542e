package normalize

import (
	"math"
	"strconv"

	"tripmind/models"
)

const defaultDestination = "여행지"

// Entity kinds reported in NormalizedPlan.Misses.
const (
	KindFlights  = "flights"
	KindHotels   = "hotels"
	KindSchedule = "schedule"
)

// ExtractFlights returns the flight candidates of a response, preferring the
// enriched source. The result is never nil.
func ExtractFlights(resp any) []models.FlightCandidate {
	src := MCPSource(resp)
	items := FindDataKey(src, "flight_candidates").Items()
	if len(items) == 0 {
		items = FindDataKey(src, "flight_quote").Items()
	}
	if len(items) == 0 {
		items = FindDataKey(resp, "flights").Items()
	}

	flights := make([]models.FlightCandidate, 0, len(items))
	for _, it := range items {
		if m, ok := asMap(it); ok && len(m) > 0 {
			flights = append(flights, decodeFlight(m))
		}
	}
	return flights
}

// ExtractHotels mirrors ExtractFlights. hotel_quote may be a single record or
// a list depending on the backend version.
func ExtractHotels(resp any) []models.HotelCandidate {
	src := MCPSource(resp)
	items := FindDataKey(src, "hotel_candidates").Items()
	if len(items) == 0 {
		items = FindDataKey(src, "hotel_quote").Items()
	}
	if len(items) == 0 {
		items = FindDataKey(resp, "hotels").Items()
	}

	hotels := make([]models.HotelCandidate, 0, len(items))
	for _, it := range items {
		if m, ok := asMap(it); ok && len(m) > 0 {
			hotels = append(hotels, decodeHotel(m))
		}
	}
	return hotels
}

// QuotedChoice returns the flight and hotel the backend quoted, falling back
// to the first candidate of each. Either result may be empty.
func QuotedChoice(resp any) ([]models.FlightCandidate, []models.HotelCandidate) {
	src := MCPSource(resp)
	flights := make([]models.FlightCandidate, 0, 1)
	for _, key := range []string{"flight_quote", "flight_candidates"} {
		if m, ok := firstRecord(FindDataKey(src, key)); ok {
			flights = append(flights, decodeFlight(m))
			break
		}
	}
	hotels := make([]models.HotelCandidate, 0, 1)
	for _, key := range []string{"hotel_quote", "hotel_candidates"} {
		if m, ok := firstRecord(FindDataKey(src, key)); ok {
			hotels = append(hotels, decodeHotel(m))
			break
		}
	}
	return flights, hotels
}

func firstRecord(l Lookup) (map[string]any, bool) {
	for _, it := range l.Items() {
		if m, ok := asMap(it); ok && len(m) > 0 {
			return m, true
		}
	}
	return nil, false
}

// ExtractSchedule prefers the enriched schedule over the raw LLM one. Lower
// quality fallbacks are only consulted when the enriched source has none.
func ExtractSchedule(resp any) []models.ScheduleDay {
	items := FindDataKey(MCPSource(resp), "schedule").Items()
	if len(items) == 0 {
		items = FindDataKey(resp, "schedule").Items()
	}
	if len(items) == 0 {
		if llm, ok := FindDataKey(resp, "llm_parsed_data").Map(); ok {
			items = Lookup{Value: llm["schedule"], Found: !isEmpty(llm["schedule"])}.Items()
		}
	}

	days := make([]models.ScheduleDay, 0, len(items))
	for i, it := range items {
		if m, ok := asMap(it); ok {
			days = append(days, decodeDay(m, i+1))
		}
	}
	return days
}

// ExtractMeta collects destination, dates and cost fields.
func ExtractMeta(resp any) models.TripMeta {
	meta := models.TripMeta{Destination: defaultDestination}
	if s, ok := FindDataKey(resp, "destination").String(); ok {
		meta.Destination = s
	}
	if s, ok := FindDataKey(resp, "trip_summary").String(); ok {
		meta.TripSummary = s
	}

	meta.StartDate, _ = FindDataKey(resp, "start_date").String()
	meta.EndDate, _ = FindDataKey(resp, "end_date").String()
	if root, ok := asMap(resp); ok {
		if meta.StartDate == "" {
			meta.StartDate = str(root, "startDate")
		}
		if meta.EndDate == "" {
			meta.EndDate = str(root, "endDate")
		}
	}
	if dates, ok := FindDataKey(resp, "dates").Map(); ok {
		if s := str(dates, "start"); s != "" {
			meta.StartDate = s
		}
		if s := str(dates, "end"); s != "" {
			meta.EndDate = s
		}
	}

	for _, k := range []string{"total_cost", "budget"} {
		if l := FindDataKey(resp, k); l.Found {
			if n, ok := toFloat(l.Value); ok && n != 0 {
				meta.TotalCost = n
				break
			}
		}
	}
	for _, k := range []string{"party_size", "head_count"} {
		if l := FindDataKey(resp, k); l.Found {
			if n, ok := toFloat(l.Value); ok {
				if c, ok := positiveInt(n); ok {
					meta.HeadCount = c
					break
				}
			}
		}
	}
	return meta
}

// Normalize extracts every view at once and records which ones came back empty.
func Normalize(resp any) models.NormalizedPlan {
	plan := models.NormalizedPlan{
		Meta:     ExtractMeta(resp),
		Flights:  ExtractFlights(resp),
		Hotels:   ExtractHotels(resp),
		Schedule: ExtractSchedule(resp),
	}
	if len(plan.Flights) == 0 {
		plan.Misses = append(plan.Misses, KindFlights)
	}
	if len(plan.Hotels) == 0 {
		plan.Misses = append(plan.Misses, KindHotels)
	}
	if len(plan.Schedule) == 0 {
		plan.Misses = append(plan.Misses, KindSchedule)
	}
	return plan
}

func decodeFlight(m map[string]any) models.FlightCandidate {
	f := models.FlightCandidate{
		Airline:               str(m, "airline", "carrier", "name"),
		Origin:                str(m, "origin"),
		Destination:           str(m, "destination"),
		Currency:              str(m, "currency"),
		Duration:              str(m, "duration"),
		OutboundDepartureTime: str(m, "outbound_departure_time", "departure_time"),
		OutboundArrivalTime:   str(m, "outbound_arrival_time", "arrival_time"),
		InboundDepartureTime:  str(m, "inbound_departure_time", "return_departure_time"),
		InboundArrivalTime:    str(m, "inbound_arrival_time", "return_arrival_time"),
		Raw:                   copyMap(m),
	}
	f.Price, _ = num(m, "price", "price_total", "price_krw")
	if f.Currency == "" {
		if _, ok := m["price_krw"]; ok {
			f.Currency = "KRW"
		}
	}
	return f
}

func decodeHotel(m map[string]any) models.HotelCandidate {
	h := models.HotelCandidate{
		ID:        str(m, "id", "hotel_id"),
		Name:      str(m, "name", "hotel_name"),
		Currency:  str(m, "currency"),
		Location:  str(m, "location", "area"),
		Address:   str(m, "address"),
		Image:     str(m, "image"),
		Latitude:  numPtr(m, "latitude", "lat"),
		Longitude: numPtr(m, "longitude", "lng"),
		Raw:       copyMap(m),
	}
	h.Price, _ = num(m, "price", "priceTotal", "price_per_night")
	h.Rating, _ = num(m, "rating", "star_rating", "reviews_score")
	return h
}

func decodeDay(m map[string]any, position int) models.ScheduleDay {
	day := models.ScheduleDay{Day: position, Date: str(m, "date")}
	if n, ok := num(m, "day"); ok {
		if d, ok := positiveInt(n); ok {
			day.Day = d
		}
	} else if s := str(m, "day"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			day.Day = n
		}
	}

	raw, _ := asSlice(m["events"])
	day.Events = make([]models.ScheduleEvent, 0, len(raw))
	for _, it := range raw {
		if em, ok := asMap(it); ok {
			day.Events = append(day.Events, decodeEvent(em))
		}
	}
	return day
}

func decodeEvent(m map[string]any) models.ScheduleEvent {
	return models.ScheduleEvent{
		TimeSlot:    str(m, "time_slot", "time"),
		PlaceName:   str(m, "place_name", "title", "name"),
		Description: str(m, "description", "activity"),
		Icon:        str(m, "icon"),
		UserNote:    str(m, "user_note"),
		POIName:     str(m, "poi_name"),
		POIRating:   numPtr(m, "poi_rating"),
		Latitude:    numPtr(m, "latitude", "lat"),
		Longitude:   numPtr(m, "longitude", "lng"),
	}
}

// positiveInt truncates n when it is at least 1 and fits in an int32.
func positiveInt(n float64) (int, bool) {
	if math.IsNaN(n) || n < 1 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

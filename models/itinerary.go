package models

// ScheduleDay is one day of the day-by-day plan. Events are kept in display order.
type ScheduleDay struct {
	Day    int             `json:"day" bson:"day"`
	Date   string          `json:"date" bson:"date"`
	Events []ScheduleEvent `json:"events" bson:"events"`
}

// ScheduleEvent is a single activity placed in a time slot.
type ScheduleEvent struct {
	TimeSlot    string `json:"time_slot" bson:"time_slot"`
	PlaceName   string `json:"place_name" bson:"place_name"`
	Description string `json:"description" bson:"description"`
	Icon        string `json:"icon" bson:"icon"`
	UserNote    string `json:"user_note,omitempty" bson:"user_note,omitempty"`
	// set when the event was filled from a point of interest
	POIName   string   `json:"poi_name,omitempty" bson:"poi_name,omitempty"`
	POIRating *float64 `json:"poi_rating,omitempty" bson:"poi_rating,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}

// Clone returns a copy that shares no memory with e.
func (e ScheduleEvent) Clone() ScheduleEvent {
	e.POIRating = cloneFloat(e.POIRating)
	e.Latitude = cloneFloat(e.Latitude)
	e.Longitude = cloneFloat(e.Longitude)
	return e
}

// Clone returns a deep copy of the day.
func (d ScheduleDay) Clone() ScheduleDay {
	out := ScheduleDay{Day: d.Day, Date: d.Date}
	if d.Events != nil {
		out.Events = make([]ScheduleEvent, len(d.Events))
		for i, ev := range d.Events {
			out.Events[i] = ev.Clone()
		}
	}
	return out
}

// CloneSchedule deep-copies a whole schedule. A nil schedule stays nil.
func CloneSchedule(days []ScheduleDay) []ScheduleDay {
	if days == nil {
		return nil
	}
	out := make([]ScheduleDay, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

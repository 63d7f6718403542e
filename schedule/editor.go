package schedule

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"tripmind/models"
)

var (
	ErrOutOfRange   = errors.New("schedule: day or event index out of range")
	ErrInvalidField = errors.New("schedule: unknown event field")
	ErrInvalidIcon  = errors.New("schedule: unknown icon")
	ErrInvalidSlot  = errors.New("schedule: unknown time slot")
)

// Slots is the display order of time slots.
var Slots = []string{
	SlotMorning, SlotLunch, SlotAfternoon, SlotEvening, SlotNight,
	"08:00", "09:00", "10:00", "11:00",
	"12:00", "13:00", "14:00", "15:00",
	"16:00", "17:00", "18:00", "19:00",
	"20:00", "21:00",
}

// Icons is the fixed icon vocabulary.
var Icons = []string{"camera", "utensils", "coffee", "home", "plane", "car", "shopping-bag", "star"}

// SlotRank is the position of slot in Slots, or -1 when it is not listed.
func SlotRank(slot string) int {
	return slices.Index(Slots, slot)
}

// ValidSlot accepts listed slots and any explicit HH:MM clock time.
func ValidSlot(slot string) bool {
	if SlotRank(slot) >= 0 {
		return true
	}
	_, err := time.Parse("15:04", slot)
	return err == nil && len(slot) == 5
}

// ValidIcon reports whether icon is part of the icon vocabulary.
func ValidIcon(icon string) bool {
	return slices.Contains(Icons, icon)
}

// POI is a point of interest picked to fill an event.
type POI struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
}

func checkEvent(days []models.ScheduleDay, day, idx int) error {
	if day < 0 || day >= len(days) || idx < 0 || idx >= len(days[day].Events) {
		return fmt.Errorf("%w: day %d event %d", ErrOutOfRange, day, idx)
	}
	return nil
}

// MoveEvent moves an event to another day and slot. It lands before the
// first event already in that slot, otherwise after the last event whose
// slot does not rank later.
func MoveEvent(days []models.ScheduleDay, fromDay, fromIdx, toDay int, slot string) ([]models.ScheduleDay, error) {
	if err := checkEvent(days, fromDay, fromIdx); err != nil {
		return nil, err
	}
	if toDay < 0 || toDay >= len(days) {
		return nil, fmt.Errorf("%w: day %d", ErrOutOfRange, toDay)
	}
	if !ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}

	out := models.CloneSchedule(days)
	moved := out[fromDay].Events[fromIdx]
	out[fromDay].Events = slices.Delete(out[fromDay].Events, fromIdx, fromIdx+1)
	moved.TimeSlot = slot

	target := out[toDay].Events
	pos := slices.IndexFunc(target, func(ev models.ScheduleEvent) bool { return ev.TimeSlot == slot })
	if pos < 0 {
		rank := SlotRank(slot)
		pos = 0
		for i, ev := range target {
			if SlotRank(ev.TimeSlot) > rank {
				break
			}
			pos = i + 1
		}
	}
	out[toDay].Events = slices.Insert(target, pos, moved)
	return out, nil
}

// AddEvent appends a placeholder event to a day.
func AddEvent(days []models.ScheduleDay, day int, slot string) ([]models.ScheduleDay, error) {
	if day < 0 || day >= len(days) {
		return nil, fmt.Errorf("%w: day %d", ErrOutOfRange, day)
	}
	if !ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	out := models.CloneSchedule(days)
	out[day].Events = append(out[day].Events, models.ScheduleEvent{
		TimeSlot:    slot,
		PlaceName:   "새 장소",
		Description: "새 활동",
		Icon:        "star",
	})
	return out, nil
}

// UpdateEvent sets one editable field of an event.
func UpdateEvent(days []models.ScheduleDay, day, idx int, field, value string) ([]models.ScheduleDay, error) {
	if err := checkEvent(days, day, idx); err != nil {
		return nil, err
	}
	out := models.CloneSchedule(days)
	ev := &out[day].Events[idx]
	switch field {
	case "time_slot":
		if !ValidSlot(value) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, value)
		}
		ev.TimeSlot = value
	case "place_name":
		ev.PlaceName = value
	case "description":
		ev.Description = value
	case "icon":
		if !ValidIcon(value) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIcon, value)
		}
		ev.Icon = value
	case "user_note":
		ev.UserNote = value
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return out, nil
}

// DeleteEvent removes one event.
func DeleteEvent(days []models.ScheduleDay, day, idx int) ([]models.ScheduleDay, error) {
	if err := checkEvent(days, day, idx); err != nil {
		return nil, err
	}
	out := models.CloneSchedule(days)
	out[day].Events = slices.Delete(out[day].Events, idx, idx+1)
	return out, nil
}

// ApplyPOI fills an event from a point of interest.
func ApplyPOI(days []models.ScheduleDay, day, idx int, poi POI) ([]models.ScheduleDay, error) {
	if err := checkEvent(days, day, idx); err != nil {
		return nil, err
	}
	out := models.CloneSchedule(days)
	ev := &out[day].Events[idx]
	ev.POIName = poi.Name
	ev.PlaceName = poi.Name
	ev.Description = poi.Name
	ev.Latitude = copyFloat(poi.Latitude)
	ev.Longitude = copyFloat(poi.Longitude)
	ev.POIRating = copyFloat(poi.Rating)
	return out, nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

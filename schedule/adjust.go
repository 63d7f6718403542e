// Package schedule rewrites and edits day-by-day trip schedules.
package schedule

import (
	"strings"

	"tripmind/models"
)

// Coarse time slots.
const (
	SlotMorning   = "오전"
	SlotLunch     = "점심"
	SlotAfternoon = "오후"
	SlotEvening   = "저녁"
	SlotNight     = "밤"
)

const (
	placeCheckIn  = "호텔 체크인"
	placeCheckOut = "호텔 체크아웃"
	placeAirport  = "공항 이동"
)

// AdjustWithFlightTimes fits the first and last day of a schedule to the
// chosen flight. The first day follows the outbound arrival time, the last
// day the inbound departure time. The input is never modified; a nil flight
// or an empty schedule is returned as is.
//
// A one-day schedule gets both rewrites, first-day policy first.
func AdjustWithFlightTimes(days []models.ScheduleDay, flight *models.FlightCandidate) []models.ScheduleDay {
	if flight == nil || len(days) == 0 {
		return days
	}

	out := models.CloneSchedule(days)
	if ev, ok := firstDayEvents(out[0].Events, flight.OutboundArrivalTime); ok {
		out[0].Events = ev
	}
	last := len(out) - 1
	if ev, ok := lastDayEvents(out[last].Events, flight.InboundDepartureTime); ok {
		out[last].Events = ev
	}
	return out
}

func firstDayEvents(events []models.ScheduleEvent, arrival string) ([]models.ScheduleEvent, bool) {
	t, ok := ParseTimestamp(arrival)
	if !ok {
		return nil, false
	}
	clock := FormatClock(arrival)
	hour := t.Hour()

	checkIn := func(slot, desc string) models.ScheduleEvent {
		return models.ScheduleEvent{TimeSlot: slot, PlaceName: placeCheckIn, Description: clock + desc, Icon: "home"}
	}

	switch {
	case hour >= 18:
		return []models.ScheduleEvent{checkIn(SlotEvening, " 도착 후 호텔 휴식 및 체크인")}, true
	case hour >= 15:
		kept := keep(events, 2, func(slot string) bool {
			return strings.Contains(slot, SlotEvening)
		})
		return append([]models.ScheduleEvent{checkIn(SlotEvening, " 도착 후 호텔 체크인")}, kept...), true
	case hour >= 12:
		kept := keep(events, 3, func(slot string) bool {
			return strings.Contains(slot, SlotAfternoon) || strings.Contains(slot, SlotEvening)
		})
		return append([]models.ScheduleEvent{checkIn(SlotAfternoon, " 도착 후 호텔 체크인 및 휴식")}, kept...), true
	default:
		kept := keep(events, 4, func(slot string) bool {
			return !strings.Contains(slot, SlotMorning)
		})
		return append([]models.ScheduleEvent{checkIn(SlotLunch, " 도착 후 호텔 체크인")}, kept...), true
	}
}

func lastDayEvents(events []models.ScheduleEvent, departure string) ([]models.ScheduleEvent, bool) {
	t, ok := ParseTimestamp(departure)
	if !ok {
		return nil, false
	}
	clock := FormatClock(departure)
	hour := t.Hour()

	transfer := func(slot, desc string) models.ScheduleEvent {
		return models.ScheduleEvent{TimeSlot: slot, PlaceName: placeAirport, Description: clock + desc, Icon: "plane"}
	}

	switch {
	case hour <= 10:
		return []models.ScheduleEvent{
			{TimeSlot: SlotMorning, PlaceName: placeCheckOut, Description: "짐 정리 및 체크아웃", Icon: "home"},
			transfer(SlotMorning, " 출발편 준비"),
		}, true
	case hour <= 14:
		kept := keep(events, 2, func(slot string) bool {
			return strings.Contains(slot, SlotMorning)
		})
		return append(kept, transfer(SlotLunch, " 출발편 준비 (2시간 전 공항 도착)")), true
	case hour <= 17:
		kept := keep(events, 3, func(slot string) bool {
			return strings.Contains(slot, SlotMorning) || strings.Contains(slot, SlotLunch)
		})
		return append(kept, transfer(SlotAfternoon, " 출발편 준비")), true
	default:
		kept := keep(events, 4, func(slot string) bool {
			return !strings.Contains(slot, SlotEvening)
		})
		return append(kept, transfer(SlotEvening, " 출발편 준비")), true
	}
}

// keep returns up to limit events, in order, whose non-empty slot matches.
func keep(events []models.ScheduleEvent, limit int, match func(slot string) bool) []models.ScheduleEvent {
	out := make([]models.ScheduleEvent, 0, limit+1)
	for _, ev := range events {
		if len(out) == limit {
			break
		}
		if ev.TimeSlot != "" && match(ev.TimeSlot) {
			out = append(out, ev)
		}
	}
	return out
}

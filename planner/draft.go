// Package planner threads one planning session from the backend response
// through flight/hotel selection and schedule edits to the save payload.
package planner

import (
	"errors"
	"fmt"

	"tripmind/models"
	"tripmind/normalize"
	"tripmind/schedule"
)

var ErrBadIndex = errors.New("planner: candidate index out of range")

// Draft accumulates the choices made for one plan. It is not safe for
// concurrent use; each request builds its own.
type Draft struct {
	raw  map[string]any
	plan models.NormalizedPlan

	flight *models.FlightCandidate
	hotel  *models.HotelCandidate

	// schedule after flight adjustment and user edits
	days []models.ScheduleDay
}

// NewDraft normalizes resp and starts a draft with nothing selected.
func NewDraft(resp map[string]any) *Draft {
	plan := normalize.Normalize(resp)
	return &Draft{
		raw:  resp,
		plan: plan,
		days: models.CloneSchedule(plan.Schedule),
	}
}

// Plan returns the normalized views the draft was built from.
func (d *Draft) Plan() models.NormalizedPlan { return d.plan }

// SelectFlight picks a flight candidate and re-derives the schedule from the
// unedited one, so switching flights never stacks adjustments.
func (d *Draft) SelectFlight(i int) error {
	if i < 0 || i >= len(d.plan.Flights) {
		return fmt.Errorf("%w: flight %d of %d", ErrBadIndex, i, len(d.plan.Flights))
	}
	f := d.plan.Flights[i]
	d.flight = &f
	d.days = schedule.AdjustWithFlightTimes(models.CloneSchedule(d.plan.Schedule), d.flight)
	return nil
}

// SkipFlight continues without a flight. The schedule goes back to the
// unadjusted one; edits made so far are dropped.
func (d *Draft) SkipFlight() {
	d.flight = nil
	d.days = models.CloneSchedule(d.plan.Schedule)
}

// SkipHotel continues without a hotel.
func (d *Draft) SkipHotel() {
	d.hotel = nil
}

// SelectHotel picks a hotel candidate.
func (d *Draft) SelectHotel(i int) error {
	if i < 0 || i >= len(d.plan.Hotels) {
		return fmt.Errorf("%w: hotel %d of %d", ErrBadIndex, i, len(d.plan.Hotels))
	}
	h := d.plan.Hotels[i]
	d.hotel = &h
	return nil
}

// Flight is the selected flight or nil.
func (d *Draft) Flight() *models.FlightCandidate { return d.flight }

// Hotel is the selected hotel or nil.
func (d *Draft) Hotel() *models.HotelCandidate { return d.hotel }

// Schedule returns a copy of the current schedule.
func (d *Draft) Schedule() []models.ScheduleDay {
	return models.CloneSchedule(d.days)
}

// EditSchedule applies an editor operation such as schedule.MoveEvent. The
// draft is left unchanged when edit fails.
func (d *Draft) EditSchedule(edit func([]models.ScheduleDay) ([]models.ScheduleDay, error)) error {
	next, err := edit(d.Schedule())
	if err != nil {
		return err
	}
	d.days = next
	return nil
}

// SavePayload builds the body for the save endpoint. A skipped flight or
// hotel is sent as an empty list.
func (d *Draft) SavePayload() models.SaveTripRequest {
	meta := d.plan.Meta
	summary := meta.TripSummary
	if summary == "" {
		summary = meta.Destination + " 여행"
	}
	headCount := meta.HeadCount
	if headCount == 0 {
		headCount = 1
	}
	raw, ok := normalize.FindDataKey(d.raw, "raw_data").Map()
	if !ok {
		raw = map[string]any{}
	}

	flights := []models.FlightCandidate{}
	if d.flight != nil {
		flights = append(flights, *d.flight)
	}
	hotels := []models.HotelCandidate{}
	if d.hotel != nil {
		hotels = append(hotels, *d.hotel)
	}
	return models.SaveTripRequest{
		TripSummary: summary,
		Destination: meta.Destination,
		StartDate:   meta.StartDate,
		EndDate:     meta.EndDate,
		TotalCost:   meta.TotalCost,
		HeadCount:   headCount,
		Schedule:    d.Schedule(),
		Flights:     flights,
		Hotels:      hotels,
		RawData:     raw,
	}
}

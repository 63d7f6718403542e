package schedule

import (
	"errors"
	"fmt"

	"tripmind/models"
)

var ErrUnknownOp = errors.New("schedule: unknown edit op")

// Edit ops.
const (
	OpMove   = "move"
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
	OpPOI    = "poi"
)

// Edit is one editor operation sent by a client. Day and Index are zero
// based positions in the schedule.
type Edit struct {
	Op    string `json:"op"`
	Day   int    `json:"day"`
	Index int    `json:"idx"`
	ToDay int    `json:"to_day"`
	Slot  string `json:"slot,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	POI   *POI   `json:"poi,omitempty"`
}

// Apply runs the edit against days and returns the edited copy.
func (e Edit) Apply(days []models.ScheduleDay) ([]models.ScheduleDay, error) {
	switch e.Op {
	case OpMove:
		return MoveEvent(days, e.Day, e.Index, e.ToDay, e.Slot)
	case OpAdd:
		return AddEvent(days, e.Day, e.Slot)
	case OpUpdate:
		return UpdateEvent(days, e.Day, e.Index, e.Field, e.Value)
	case OpDelete:
		return DeleteEvent(days, e.Day, e.Index)
	case OpPOI:
		if e.POI == nil || e.POI.Name == "" {
			return nil, errors.New("schedule: poi edit needs a named poi")
		}
		return ApplyPOI(days, e.Day, e.Index, *e.POI)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, e.Op)
	}
}

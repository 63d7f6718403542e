package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmind/models"
)

func twoDays() []models.ScheduleDay {
	return []models.ScheduleDay{
		{Day: 1, Events: []models.ScheduleEvent{ev("오전", "a"), ev("점심", "b"), ev("저녁", "c")}},
		{Day: 2, Events: []models.ScheduleEvent{ev("오전", "d"), ev("오후", "e")}},
	}
}

func TestSlotRank(t *testing.T) {
	assert.Equal(t, 0, SlotRank("오전"))
	assert.Equal(t, 4, SlotRank("밤"))
	assert.Equal(t, 5, SlotRank("08:00"))
	assert.Equal(t, -1, SlotRank("07:30"))
	assert.True(t, ValidSlot("07:30"))
	assert.False(t, ValidSlot("7:30"))
	assert.False(t, ValidSlot("새벽"))
}

func TestMoveEventBeforeSameSlot(t *testing.T) {
	days := twoDays()
	got, err := MoveEvent(days, 0, 0, 1, "오후")
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c"}, places(got[0].Events))
	assert.Equal(t, []string{"d", "a", "e"}, places(got[1].Events))
	assert.Equal(t, "오후", got[1].Events[1].TimeSlot)
	// input untouched
	assert.Equal(t, []string{"a", "b", "c"}, places(days[0].Events))
}

func TestMoveEventByRank(t *testing.T) {
	got, err := MoveEvent(twoDays(), 0, 2, 1, "점심")
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "e"}, places(got[1].Events))

	got, err = MoveEvent(twoDays(), 1, 0, 0, "밤")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, places(got[0].Events))
}

func TestMoveEventWithinDay(t *testing.T) {
	got, err := MoveEvent(twoDays(), 0, 2, 0, "오전")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, places(got[0].Events))
}

func TestMoveEventErrors(t *testing.T) {
	_, err := MoveEvent(twoDays(), 3, 0, 0, "오전")
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = MoveEvent(twoDays(), 0, 0, 5, "오전")
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = MoveEvent(twoDays(), 0, 0, 1, "새벽")
	assert.True(t, errors.Is(err, ErrInvalidSlot))
}

func TestAddUpdateDelete(t *testing.T) {
	days := twoDays()

	got, err := AddEvent(days, 1, "밤")
	require.NoError(t, err)
	added := got[1].Events[2]
	assert.Equal(t, models.ScheduleEvent{TimeSlot: "밤", PlaceName: "새 장소", Description: "새 활동", Icon: "star"}, added)
	assert.Len(t, days[1].Events, 2)

	got, err = UpdateEvent(got, 1, 2, "icon", "coffee")
	require.NoError(t, err)
	assert.Equal(t, "coffee", got[1].Events[2].Icon)

	_, err = UpdateEvent(got, 1, 2, "icon", "rocket")
	assert.True(t, errors.Is(err, ErrInvalidIcon))
	_, err = UpdateEvent(got, 1, 2, "price", "1")
	assert.True(t, errors.Is(err, ErrInvalidField))

	got, err = UpdateEvent(got, 1, 2, "user_note", "예약 필요")
	require.NoError(t, err)
	assert.Equal(t, "예약 필요", got[1].Events[2].UserNote)

	got, err = DeleteEvent(got, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "새 장소"}, places(got[1].Events))

	_, err = DeleteEvent(got, 1, 9)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestApplyPOI(t *testing.T) {
	lat, lng, rating := 34.69, 135.5, 4.4
	poi := POI{Name: "오사카성", Latitude: &lat, Longitude: &lng, Rating: &rating}

	got, err := ApplyPOI(twoDays(), 0, 1, poi)
	require.NoError(t, err)

	e := got[0].Events[1]
	assert.Equal(t, "오사카성", e.PlaceName)
	assert.Equal(t, "오사카성", e.Description)
	assert.Equal(t, "오사카성", e.POIName)
	require.NotNil(t, e.Latitude)
	assert.InDelta(t, lat, *e.Latitude, 1e-9)

	lat = 0
	assert.InDelta(t, 34.69, *e.Latitude, 1e-9, "event keeps its own copy")
}

package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditApply(t *testing.T) {
	var edits []Edit
	require.NoError(t, json.Unmarshal([]byte(`[
		{"op": "move", "day": 0, "idx": 0, "to_day": 1, "slot": "오후"},
		{"op": "add", "day": 0, "slot": "밤"},
		{"op": "update", "day": 1, "idx": 0, "field": "user_note", "value": "예약 필수"},
		{"op": "delete", "day": 0, "idx": 0},
		{"op": "poi", "day": 1, "idx": 2, "poi": {"name": "오사카성", "rating": 4.4}}
	]`), &edits))

	days := twoDays()
	for _, e := range edits {
		var err error
		days, err = e.Apply(days)
		require.NoError(t, err, e.Op)
	}

	assert.Equal(t, []string{"c", "새 장소"}, places(days[0].Events))
	assert.Equal(t, []string{"d", "a", "오사카성"}, places(days[1].Events))
	assert.Equal(t, "예약 필수", days[1].Events[0].UserNote)
	require.NotNil(t, days[1].Events[2].POIRating)
	assert.InDelta(t, 4.4, *days[1].Events[2].POIRating, 1e-9)
}

func TestEditApplyErrors(t *testing.T) {
	_, err := Edit{Op: "rename"}.Apply(twoDays())
	assert.ErrorIs(t, err, ErrUnknownOp)

	_, err = Edit{Op: OpPOI, Day: 0, Index: 0}.Apply(twoDays())
	assert.Error(t, err)

	_, err = Edit{Op: OpDelete, Day: 5}.Apply(twoDays())
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Edit{Op: OpUpdate, Field: "price", Value: "1"}.Apply(twoDays())
	assert.ErrorIs(t, err, ErrInvalidField)
}

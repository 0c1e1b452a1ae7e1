package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string {
	return &s
}

func seedDraft() *EditDraft {
	return &EditDraft{
		GuestName: ptr("Asha Verma"),
		Contact:   ptr("9876543210"),
		StayDays:  ptr("2"),
		Advance:   ptr("2000"),
		RoomName:  map[string]string{"doubleBed": "2", "tripleBed": "0"},
		RoomRent:  map[string]string{"doubleBed": "1500", "tripleBed": "0"},
		Discount:  map[string]string{"doubleBed": "0", "tripleBed": "0"},
	}
}

func TestChangedFrom(t *testing.T) {
	t.Run("identical draft is unchanged", func(t *testing.T) {
		assert.False(t, seedDraft().ChangedFrom(seedDraft()))
	})

	t.Run("absent fields never count", func(t *testing.T) {
		draft := &EditDraft{}
		assert.False(t, draft.ChangedFrom(seedDraft()))
	})

	t.Run("scalar change", func(t *testing.T) {
		draft := seedDraft()
		draft.Contact = ptr("1112223334")
		assert.True(t, draft.ChangedFrom(seedDraft()))
	})

	t.Run("room map change", func(t *testing.T) {
		draft := seedDraft()
		draft.RoomName["doubleBed"] = "3"
		assert.True(t, draft.ChangedFrom(seedDraft()))
	})

	t.Run("nil seed counts as changed", func(t *testing.T) {
		assert.True(t, seedDraft().ChangedFrom(nil))
	})
}

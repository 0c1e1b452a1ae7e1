package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/internal/delivery/dto"
)

func ptr(s string) *string {
	return &s
}

func TestValidateDraft(t *testing.T) {
	v := NewValidator()

	t.Run("empty draft is valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(&dto.EditDraft{}))
	})

	t.Run("well-formed draft is valid", func(t *testing.T) {
		draft := &dto.EditDraft{
			CheckIn:  ptr("2024-11-02"),
			StayDays: ptr("2"),
			Status:   ptr("Confirm"),
			Advance:  ptr("2500.50"),
			RoomName: map[string]string{"doubleBed": "2"},
			RoomRent: map[string]string{"doubleBed": "1500"},
		}
		assert.NoError(t, v.Validate(draft))
	})

	t.Run("unknown status", func(t *testing.T) {
		err := v.Validate(&dto.EditDraft{Status: ptr("Cancel")})
		require.Error(t, err)

		fields := v.FormatValidationErrors(err)
		assert.Contains(t, fields["Status"], "must be one of")
	})

	t.Run("malformed date", func(t *testing.T) {
		err := v.Validate(&dto.EditDraft{CheckIn: ptr("02-11-2024")})
		require.Error(t, err)

		fields := v.FormatValidationErrors(err)
		assert.Contains(t, fields["CheckIn"], "2006-01-02")
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		err := v.Validate(&dto.EditDraft{Advance: ptr("lots")})
		require.Error(t, err)

		fields := v.FormatValidationErrors(err)
		assert.Contains(t, fields["Advance"], "non-negative amount")
	})

	t.Run("negative amount", func(t *testing.T) {
		assert.Error(t, v.Validate(&dto.EditDraft{Due: ptr("-10")}))
	})

	t.Run("unknown room category key", func(t *testing.T) {
		assert.Error(t, v.Validate(&dto.EditDraft{RoomName: map[string]string{"penthouse": "1"}}))
	})

	t.Run("non-numeric room count", func(t *testing.T) {
		assert.Error(t, v.Validate(&dto.EditDraft{RoomName: map[string]string{"doubleBed": "two"}}))
	})
}

func TestValidateOpenPanelRequest(t *testing.T) {
	v := NewValidator()

	t.Run("complete identifier", func(t *testing.T) {
		req := &dto.OpenPanelRequest{GuestName: "Asha Verma", HotelName: "Sea View", CheckIn: "2024-11-02"}
		assert.NoError(t, v.Validate(req))
	})

	t.Run("missing hotel", func(t *testing.T) {
		req := &dto.OpenPanelRequest{GuestName: "Asha Verma", CheckIn: "2024-11-02"}
		err := v.Validate(req)
		require.Error(t, err)

		fields := v.FormatValidationErrors(err)
		assert.Contains(t, fields["HotelName"], "required")
	})

	t.Run("malformed check-in date", func(t *testing.T) {
		req := &dto.OpenPanelRequest{GuestName: "Asha Verma", HotelName: "Sea View", CheckIn: "Nov 2"}
		assert.Error(t, v.Validate(req))
	})
}

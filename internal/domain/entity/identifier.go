package entity

// BookingIdentifier is the natural key used to locate a booking before
// it has a durable numeric id. Immutable for the duration of one
// fetch/edit cycle.
type BookingIdentifier struct {
	GuestName string `json:"guestName" validate:"required"`
	HotelName string `json:"hotelName" validate:"required"`
	CheckIn   string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	SheetName string `json:"sheetName,omitempty"`
}

// Equal reports whether two identifiers name the same booking: all
// present fields must match exactly, case-sensitive. SheetName only
// participates when both sides carry it.
func (id BookingIdentifier) Equal(other BookingIdentifier) bool {
	if id.GuestName != other.GuestName || id.HotelName != other.HotelName || id.CheckIn != other.CheckIn {
		return false
	}
	if id.SheetName != "" && other.SheetName != "" && id.SheetName != other.SheetName {
		return false
	}
	return true
}

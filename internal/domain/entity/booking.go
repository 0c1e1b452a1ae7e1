package entity

import (
	"github.com/shopspring/decimal"
)

// RoomCategory identifies one entry of the fixed room inventory set.
type RoomCategory string

const (
	RoomDoubleBed RoomCategory = "doubleBed"
	RoomTripleBed RoomCategory = "tripleBed"
	RoomFourBed   RoomCategory = "fourBed"
	RoomExtraBed  RoomCategory = "extraBed"
	RoomKitchen   RoomCategory = "kitchen"
)

// RoomCategories is the canonical ordering used for payloads and drafts.
var RoomCategories = []RoomCategory{
	RoomDoubleBed,
	RoomTripleBed,
	RoomFourBed,
	RoomExtraBed,
	RoomKitchen,
}

// BookingStatus is the booking lifecycle state. Payment method is a
// separate field; historic records mixed the two in one column and are
// normalized on load.
type BookingStatus string

const (
	BookingStatusConfirm   BookingStatus = "Confirm"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusHold      BookingStatus = "HOLD"
)

// PaymentModeCash is the legacy value that occasionally shows up in the
// status column of old sheet rows.
const PaymentModeCash = "cash"

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirm, BookingStatusCancelled, BookingStatusHold:
		return true
	}
	return false
}

// RoomAllocation holds count, nightly rate and total discount for one
// room category.
type RoomAllocation struct {
	Count    int             `json:"count"`
	Rate     decimal.Decimal `json:"rate"`
	Discount decimal.Decimal `json:"discount"`
}

// BookingRecord is the canonical in-memory shape of one booking. It is
// replaced wholesale on every successful fetch or save and never shared
// between panels.
type BookingRecord struct {
	GuestName string `json:"guestName"`
	Contact   string `json:"contact"`
	HotelName string `json:"hotelName"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	StayDays  int    `json:"stayDays"`
	Pax       int    `json:"pax"`
	Plan      string `json:"plan"`
	Scheme    string `json:"scheme"`

	Status        BookingStatus `json:"status"`
	ModeOfPayment string        `json:"modeOfPayment"`
	ToAccount     string        `json:"toAccount"`

	Rooms map[RoomCategory]RoomAllocation `json:"rooms"`

	// BillAmount from the store is authoritative on load; it is only
	// recomputed when an edit touches a room field or the stay length.
	BillAmount decimal.Decimal `json:"billAmount"`
	Advance    decimal.Decimal `json:"advance"`
	Due        decimal.Decimal `json:"due"`
	CashIn     decimal.Decimal `json:"cashIn"`
	CashOut    decimal.Decimal `json:"cashOut"`
}

// FreshBillAmount derives the bill from inventory:
// sum(count * rate * stayDays) - sum(discount) over all categories.
func FreshBillAmount(rooms map[RoomCategory]RoomAllocation, stayDays int) decimal.Decimal {
	days := decimal.NewFromInt(int64(stayDays))
	total := decimal.Zero
	for _, cat := range RoomCategories {
		alloc, ok := rooms[cat]
		if !ok {
			continue
		}
		rent := decimal.NewFromInt(int64(alloc.Count)).Mul(alloc.Rate).Mul(days)
		total = total.Add(rent).Sub(alloc.Discount)
	}
	return total
}

// LedgerGap reports how far the stored due amount drifts from
// billAmount - advance - cashOut + cashIn. A non-zero gap is a display
// warning, never a save blocker.
func (r *BookingRecord) LedgerGap() decimal.Decimal {
	derived := r.BillAmount.Sub(r.Advance).Sub(r.CashOut).Add(r.CashIn)
	return derived.Sub(r.Due)
}

// DiscountWarnings lists categories whose discount exceeds one night's
// room rent (count * rate). Data-quality concern only.
func (r *BookingRecord) DiscountWarnings() []RoomCategory {
	var out []RoomCategory
	for _, cat := range RoomCategories {
		alloc, ok := r.Rooms[cat]
		if !ok {
			continue
		}
		rent := decimal.NewFromInt(int64(alloc.Count)).Mul(alloc.Rate)
		if alloc.Discount.GreaterThan(rent) {
			out = append(out, cat)
		}
	}
	return out
}

// Clone returns a deep copy; panels own their copies and never alias the
// rooms map across edit sessions.
func (r *BookingRecord) Clone() *BookingRecord {
	cp := *r
	cp.Rooms = make(map[RoomCategory]RoomAllocation, len(r.Rooms))
	for cat, alloc := range r.Rooms {
		cp.Rooms[cat] = alloc
	}
	return &cp
}

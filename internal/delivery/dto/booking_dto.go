package dto

import (
	"github.com/shopspring/decimal"

	"hotel-frontdesk/internal/domain/entity"
)

// Request DTOs

// OpenPanelRequest locates a booking by its natural key.
type OpenPanelRequest struct {
	GuestName string `json:"guestName" validate:"required,max=255"`
	HotelName string `json:"hotelName" validate:"required,max=255"`
	CheckIn   string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	SheetName string `json:"sheetName,omitempty" validate:"omitempty,max=255"`
}

func (r *OpenPanelRequest) Identifier() entity.BookingIdentifier {
	return entity.BookingIdentifier{
		GuestName: r.GuestName,
		HotelName: r.HotelName,
		CheckIn:   r.CheckIn,
		SheetName: r.SheetName,
	}
}

// RawBookingPayload is the flat upstream shape carried through the relay.
// Older sheet rows use `hotel` instead of `hotelName`; both are accepted.
type RawBookingPayload struct {
	GuestName string `json:"guestName"`
	Contact   string `json:"contact"`
	Hotel     string `json:"hotel,omitempty"`
	HotelName string `json:"hotelName,omitempty"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	StayDays  int    `json:"stayDays"`
	Pax       int    `json:"pax"`
	Plan      string `json:"plan"`
	Scheme    string `json:"scheme"`
	Status    string `json:"status"`

	BillAmount decimal.Decimal `json:"billAmount"`
	Advance    decimal.Decimal `json:"advance"`
	Due        decimal.Decimal `json:"due"`
	CashIn     decimal.Decimal `json:"cashIn"`
	CashOut    decimal.Decimal `json:"cashOut"`

	ModeOfPayment string `json:"modeOfPayment"`
	ToAccount     string `json:"toAccount"`

	RoomName map[string]int             `json:"roomName"`
	RoomRent map[string]decimal.Decimal `json:"roomRent"`
	Discount map[string]decimal.Decimal `json:"discount"`
}

// EditDraft is the string-typed edit buffer. Every field is optional;
// nil means "not part of this edit" and is preserved from the prior
// record on merge. An empty string on a numeric field likewise leaves
// the stored value alone, so a cleared input is never coerced to zero.
type EditDraft struct {
	GuestName     *string `json:"guestName,omitempty" validate:"omitempty,max=255"`
	Contact       *string `json:"contact,omitempty" validate:"omitempty,max=64"`
	HotelName     *string `json:"hotelName,omitempty" validate:"omitempty,max=255"`
	CheckIn       *string `json:"checkIn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOut      *string `json:"checkOut,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StayDays      *string `json:"stayDays,omitempty" validate:"omitempty,number"`
	Pax           *string `json:"pax,omitempty" validate:"omitempty,number"`
	Plan          *string `json:"plan,omitempty" validate:"omitempty,max=255"`
	Scheme        *string `json:"scheme,omitempty" validate:"omitempty,max=255"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=Confirm Cancelled HOLD"`
	ModeOfPayment *string `json:"modeOfPayment,omitempty" validate:"omitempty,max=255"`
	ToAccount     *string `json:"toAccount,omitempty" validate:"omitempty,max=255"`

	BillAmount *string `json:"billAmount,omitempty" validate:"omitempty,amount"`
	Advance    *string `json:"advance,omitempty" validate:"omitempty,amount"`
	Due        *string `json:"due,omitempty" validate:"omitempty,amount"`
	CashIn     *string `json:"cashIn,omitempty" validate:"omitempty,amount"`
	CashOut    *string `json:"cashOut,omitempty" validate:"omitempty,amount"`

	RoomName map[string]string `json:"roomName,omitempty" validate:"omitempty,dive,keys,oneof=doubleBed tripleBed fourBed extraBed kitchen,endkeys,omitempty,number"`
	RoomRent map[string]string `json:"roomRent,omitempty" validate:"omitempty,dive,keys,oneof=doubleBed tripleBed fourBed extraBed kitchen,endkeys,omitempty,amount"`
	Discount map[string]string `json:"discount,omitempty" validate:"omitempty,dive,keys,oneof=doubleBed tripleBed fourBed extraBed kitchen,endkeys,omitempty,amount"`
}

// scalarFields maps field name to pointer, in payload order.
func (d *EditDraft) scalarFields() map[string]*string {
	return map[string]*string{
		"guestName":     d.GuestName,
		"contact":       d.Contact,
		"hotelName":     d.HotelName,
		"checkIn":       d.CheckIn,
		"checkOut":      d.CheckOut,
		"stayDays":      d.StayDays,
		"pax":           d.Pax,
		"plan":          d.Plan,
		"scheme":        d.Scheme,
		"status":        d.Status,
		"modeOfPayment": d.ModeOfPayment,
		"toAccount":     d.ToAccount,
		"billAmount":    d.BillAmount,
		"advance":       d.Advance,
		"due":           d.Due,
		"cashIn":        d.CashIn,
		"cashOut":       d.CashOut,
	}
}

// ChangedFrom reports whether any present draft field differs from the
// seed. Absent fields never count as changes.
func (d *EditDraft) ChangedFrom(seed *EditDraft) bool {
	if seed == nil {
		return true
	}
	base := seed.scalarFields()
	for name, ptr := range d.scalarFields() {
		if ptr == nil {
			continue
		}
		basePtr := base[name]
		if basePtr == nil {
			if *ptr != "" {
				return true
			}
			continue
		}
		if *ptr != *basePtr {
			return true
		}
	}
	for _, pair := range []struct{ draft, base map[string]string }{
		{d.RoomName, seed.RoomName},
		{d.RoomRent, seed.RoomRent},
		{d.Discount, seed.Discount},
	} {
		for key, val := range pair.draft {
			if pair.base == nil {
				if val != "" {
					return true
				}
				continue
			}
			if pair.base[key] != val {
				return true
			}
		}
	}
	return false
}

// Response DTOs

// RoomAllocationView mirrors one category of the record for display.
type RoomAllocationView struct {
	Count    int    `json:"count"`
	Rate     string `json:"rate"`
	Discount string `json:"discount"`
}

// BookingView is the presentation form of a record: empty strings are
// substituted with the display sentinel, amounts are printable strings.
type BookingView struct {
	GuestName     string `json:"guestName"`
	Contact       string `json:"contact"`
	HotelName     string `json:"hotelName"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	StayDays      int    `json:"stayDays"`
	Pax           int    `json:"pax"`
	Plan          string `json:"plan"`
	Scheme        string `json:"scheme"`
	Status        string `json:"status"`
	ModeOfPayment string `json:"modeOfPayment"`
	ToAccount     string `json:"toAccount"`

	Rooms map[string]RoomAllocationView `json:"rooms"`

	BillAmount string `json:"billAmount"`
	Advance    string `json:"advance"`
	Due        string `json:"due"`
	CashIn     string `json:"cashIn"`
	CashOut    string `json:"cashOut"`

	// LedgerGap is non-empty when the stored due amount does not
	// reconcile with bill - advance - cashOut + cashIn.
	LedgerGap        string   `json:"ledgerGap,omitempty"`
	DiscountWarnings []string `json:"discountWarnings,omitempty"`
}

// PanelStateResponse is the externally visible state of one edit panel.
type PanelStateResponse struct {
	PanelID    string           `json:"panel_id"`
	Phase      string           `json:"phase"`
	Identifier OpenPanelRequest `json:"identifier"`
	Record     *BookingView     `json:"record,omitempty"`
	Draft      *EditDraft       `json:"draft,omitempty"`
	LastError  string           `json:"last_error,omitempty"`
}

// SubmitResult reports the outcome of a draft submission.
type SubmitResult struct {
	NoChanges bool                `json:"no_changes"`
	Message   string              `json:"message,omitempty"`
	Panel     *PanelStateResponse `json:"panel,omitempty"`
	StaleTags []string            `json:"stale_tags,omitempty"`
}

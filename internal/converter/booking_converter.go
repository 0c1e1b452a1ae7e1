package converter

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-frontdesk/internal/delivery/dto"
	"hotel-frontdesk/internal/domain/entity"
)

// DisplaySentinel substitutes empty string fields in views only; the
// stored record always keeps the empty string.
const DisplaySentinel = "—"

// LoadRecord maps an upstream payload into the canonical record shape.
// Missing numeric fields default to zero, missing strings to "". The
// stored billAmount is taken as-is; nothing is recomputed on load.
func LoadRecord(log *logrus.Logger, raw *dto.RawBookingPayload) *entity.BookingRecord {
	hotelName := raw.HotelName
	if hotelName == "" {
		// Older sheet rows carry a flat `hotel` column.
		hotelName = raw.Hotel
	}

	record := &entity.BookingRecord{
		GuestName:     raw.GuestName,
		Contact:       raw.Contact,
		HotelName:     hotelName,
		CheckIn:       raw.CheckIn,
		CheckOut:      raw.CheckOut,
		StayDays:      raw.StayDays,
		Pax:           raw.Pax,
		Plan:          raw.Plan,
		Scheme:        raw.Scheme,
		ModeOfPayment: raw.ModeOfPayment,
		ToAccount:     raw.ToAccount,
		BillAmount:    raw.BillAmount,
		Advance:       raw.Advance,
		Due:           raw.Due,
		CashIn:        raw.CashIn,
		CashOut:       raw.CashOut,
		Rooms:         make(map[entity.RoomCategory]entity.RoomAllocation, len(entity.RoomCategories)),
	}

	// Historic rows sometimes carry the payment method in the status
	// column. Split the two rather than preserving the mixed value.
	status := entity.BookingStatus(raw.Status)
	switch {
	case status.Valid():
		record.Status = status
	case raw.Status == entity.PaymentModeCash:
		if record.ModeOfPayment == "" {
			record.ModeOfPayment = entity.PaymentModeCash
		}
		log.Warnf("Booking %q/%q has payment method %q in status column, normalized", raw.GuestName, hotelName, raw.Status)
	case raw.Status != "":
		record.Status = status
		log.Warnf("Booking %q/%q has unknown status %q", raw.GuestName, hotelName, raw.Status)
	}

	for _, cat := range entity.RoomCategories {
		record.Rooms[cat] = entity.RoomAllocation{
			Count:    raw.RoomName[string(cat)],
			Rate:     raw.RoomRent[string(cat)],
			Discount: raw.Discount[string(cat)],
		}
	}

	return record
}

// RecordToDraft seeds an edit buffer from a record: every value in its
// printable string form, absent values as empty strings.
func RecordToDraft(record *entity.BookingRecord) *dto.EditDraft {
	draft := &dto.EditDraft{
		GuestName:     strPtr(record.GuestName),
		Contact:       strPtr(record.Contact),
		HotelName:     strPtr(record.HotelName),
		CheckIn:       strPtr(record.CheckIn),
		CheckOut:      strPtr(record.CheckOut),
		StayDays:      strPtr(strconv.Itoa(record.StayDays)),
		Pax:           strPtr(strconv.Itoa(record.Pax)),
		Plan:          strPtr(record.Plan),
		Scheme:        strPtr(record.Scheme),
		Status:        strPtr(string(record.Status)),
		ModeOfPayment: strPtr(record.ModeOfPayment),
		ToAccount:     strPtr(record.ToAccount),
		BillAmount:    strPtr(record.BillAmount.String()),
		Advance:       strPtr(record.Advance.String()),
		Due:           strPtr(record.Due.String()),
		CashIn:        strPtr(record.CashIn.String()),
		CashOut:       strPtr(record.CashOut.String()),
		RoomName:      make(map[string]string, len(entity.RoomCategories)),
		RoomRent:      make(map[string]string, len(entity.RoomCategories)),
		Discount:      make(map[string]string, len(entity.RoomCategories)),
	}

	for _, cat := range entity.RoomCategories {
		alloc := record.Rooms[cat]
		draft.RoomName[string(cat)] = strconv.Itoa(alloc.Count)
		draft.RoomRent[string(cat)] = alloc.Rate.String()
		draft.Discount[string(cat)] = alloc.Discount.String()
	}

	return draft
}

// RoomsTouched reports whether applying the draft would change any room
// count, rate, discount or the stay length. Present-but-equal values do
// not count, so a stored bill is never clobbered by a no-op edit.
func RoomsTouched(record *entity.BookingRecord, draft *dto.EditDraft) bool {
	if draft.StayDays != nil && *draft.StayDays != "" {
		if days, err := strconv.Atoi(*draft.StayDays); err == nil && days != record.StayDays {
			return true
		}
	}
	for key, val := range draft.RoomName {
		if val == "" {
			continue
		}
		if count, err := strconv.Atoi(val); err == nil && count != record.Rooms[entity.RoomCategory(key)].Count {
			return true
		}
	}
	for key, val := range draft.RoomRent {
		if val == "" {
			continue
		}
		if rate, err := decimal.NewFromString(val); err == nil && !rate.Equal(record.Rooms[entity.RoomCategory(key)].Rate) {
			return true
		}
	}
	for key, val := range draft.Discount {
		if val == "" {
			continue
		}
		if disc, err := decimal.NewFromString(val); err == nil && !disc.Equal(record.Rooms[entity.RoomCategory(key)].Discount) {
			return true
		}
	}
	return false
}

// ApplyEdit produces a new record: present draft fields shallow-merged
// over the prior record. Absent fields and empty numeric strings are
// preserved, never zeroed. When the edit touched room inventory or the
// stay length the bill is rederived fresh; otherwise the stored bill
// stays authoritative unless the draft set it explicitly.
func ApplyEdit(record *entity.BookingRecord, draft *dto.EditDraft) (*entity.BookingRecord, error) {
	next := record.Clone()
	if draft == nil {
		return next, nil
	}

	roomsTouched := RoomsTouched(record, draft)

	applyStr(&next.GuestName, draft.GuestName)
	applyStr(&next.Contact, draft.Contact)
	applyStr(&next.HotelName, draft.HotelName)
	applyStr(&next.CheckIn, draft.CheckIn)
	applyStr(&next.CheckOut, draft.CheckOut)
	applyStr(&next.Plan, draft.Plan)
	applyStr(&next.Scheme, draft.Scheme)
	applyStr(&next.ModeOfPayment, draft.ModeOfPayment)
	applyStr(&next.ToAccount, draft.ToAccount)
	if draft.Status != nil && *draft.Status != "" {
		next.Status = entity.BookingStatus(*draft.Status)
	}

	if err := applyCount(&next.StayDays, draft.StayDays, "stayDays"); err != nil {
		return nil, err
	}
	if err := applyCount(&next.Pax, draft.Pax, "pax"); err != nil {
		return nil, err
	}
	if err := applyAmount(&next.Advance, draft.Advance, "advance"); err != nil {
		return nil, err
	}
	if err := applyAmount(&next.Due, draft.Due, "due"); err != nil {
		return nil, err
	}
	if err := applyAmount(&next.CashIn, draft.CashIn, "cashIn"); err != nil {
		return nil, err
	}
	if err := applyAmount(&next.CashOut, draft.CashOut, "cashOut"); err != nil {
		return nil, err
	}

	for key, val := range draft.RoomName {
		if val == "" {
			continue
		}
		count, err := strconv.Atoi(val)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("invalid room count for %s: %q", key, val)
		}
		alloc := next.Rooms[entity.RoomCategory(key)]
		alloc.Count = count
		next.Rooms[entity.RoomCategory(key)] = alloc
	}
	for key, val := range draft.RoomRent {
		if val == "" {
			continue
		}
		rate, err := parseAmount(val)
		if err != nil {
			return nil, fmt.Errorf("invalid room rate for %s: %q", key, val)
		}
		alloc := next.Rooms[entity.RoomCategory(key)]
		alloc.Rate = rate
		next.Rooms[entity.RoomCategory(key)] = alloc
	}
	for key, val := range draft.Discount {
		if val == "" {
			continue
		}
		disc, err := parseAmount(val)
		if err != nil {
			return nil, fmt.Errorf("invalid discount for %s: %q", key, val)
		}
		alloc := next.Rooms[entity.RoomCategory(key)]
		alloc.Discount = disc
		next.Rooms[entity.RoomCategory(key)] = alloc
	}

	if roomsTouched {
		next.BillAmount = entity.FreshBillAmount(next.Rooms, next.StayDays)
	} else if err := applyAmount(&next.BillAmount, draft.BillAmount, "billAmount"); err != nil {
		return nil, err
	}

	return next, nil
}

// BuildWritePayload assembles the persistence body: identifier fields
// plus the draft's present fields in their typed form. When the edit
// touched room inventory the rederived bill from the merged record is
// written too, so the store never keeps a stale total.
func BuildWritePayload(id entity.BookingIdentifier, draft *dto.EditDraft, merged *entity.BookingRecord) (map[string]interface{}, error) {
	payload := map[string]interface{}{
		"guestName": id.GuestName,
		"hotelName": id.HotelName,
		"checkIn":   id.CheckIn,
	}
	if id.SheetName != "" {
		payload["sheetName"] = id.SheetName
	}
	if draft == nil {
		return payload, nil
	}

	setStr := func(key string, ptr *string) {
		if ptr != nil {
			payload[key] = *ptr
		}
	}
	setStr("contact", draft.Contact)
	setStr("checkOut", draft.CheckOut)
	setStr("plan", draft.Plan)
	setStr("scheme", draft.Scheme)
	setStr("status", draft.Status)
	setStr("modeOfPayment", draft.ModeOfPayment)
	setStr("toAccount", draft.ToAccount)
	if draft.GuestName != nil && *draft.GuestName != "" {
		payload["guestName"] = *draft.GuestName
	}
	if draft.HotelName != nil && *draft.HotelName != "" {
		payload["hotelName"] = *draft.HotelName
	}
	if draft.CheckIn != nil && *draft.CheckIn != "" {
		payload["checkIn"] = *draft.CheckIn
	}

	if err := setCount(payload, "stayDays", draft.StayDays); err != nil {
		return nil, err
	}
	if err := setCount(payload, "pax", draft.Pax); err != nil {
		return nil, err
	}
	if err := setAmount(payload, "billAmount", draft.BillAmount); err != nil {
		return nil, err
	}
	if err := setAmount(payload, "advance", draft.Advance); err != nil {
		return nil, err
	}
	if err := setAmount(payload, "due", draft.Due); err != nil {
		return nil, err
	}
	if err := setAmount(payload, "cashIn", draft.CashIn); err != nil {
		return nil, err
	}
	if err := setAmount(payload, "cashOut", draft.CashOut); err != nil {
		return nil, err
	}

	if len(draft.RoomName) > 0 {
		counts := make(map[string]int, len(draft.RoomName))
		for key, val := range draft.RoomName {
			if val == "" {
				continue
			}
			count, err := strconv.Atoi(val)
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid room count for %s: %q", key, val)
			}
			counts[key] = count
		}
		if len(counts) > 0 {
			payload["roomName"] = counts
		}
	}
	for name, m := range map[string]map[string]string{"roomRent": draft.RoomRent, "discount": draft.Discount} {
		if len(m) == 0 {
			continue
		}
		amounts := make(map[string]decimal.Decimal, len(m))
		for key, val := range m {
			if val == "" {
				continue
			}
			amount, err := parseAmount(val)
			if err != nil {
				return nil, fmt.Errorf("invalid %s for %s: %q", name, key, val)
			}
			amounts[key] = amount
		}
		if len(amounts) > 0 {
			payload[name] = amounts
		}
	}

	if merged != nil {
		for _, key := range []string{"roomName", "roomRent", "discount", "stayDays"} {
			if _, present := payload[key]; present {
				payload["billAmount"] = merged.BillAmount
				break
			}
		}
	}

	return payload, nil
}

// RecordToView renders a record for display: empty strings become the
// sentinel, amounts become printable strings, and the soft ledger
// invariant plus discount anomalies surface as annotations.
func RecordToView(record *entity.BookingRecord) *dto.BookingView {
	if record == nil {
		return nil
	}

	view := &dto.BookingView{
		GuestName:     orSentinel(record.GuestName),
		Contact:       orSentinel(record.Contact),
		HotelName:     orSentinel(record.HotelName),
		CheckIn:       orSentinel(record.CheckIn),
		CheckOut:      orSentinel(record.CheckOut),
		StayDays:      record.StayDays,
		Pax:           record.Pax,
		Plan:          orSentinel(record.Plan),
		Scheme:        orSentinel(record.Scheme),
		Status:        orSentinel(string(record.Status)),
		ModeOfPayment: orSentinel(record.ModeOfPayment),
		ToAccount:     orSentinel(record.ToAccount),
		BillAmount:    record.BillAmount.String(),
		Advance:       record.Advance.String(),
		Due:           record.Due.String(),
		CashIn:        record.CashIn.String(),
		CashOut:       record.CashOut.String(),
		Rooms:         make(map[string]dto.RoomAllocationView, len(entity.RoomCategories)),
	}

	for _, cat := range entity.RoomCategories {
		alloc := record.Rooms[cat]
		view.Rooms[string(cat)] = dto.RoomAllocationView{
			Count:    alloc.Count,
			Rate:     alloc.Rate.String(),
			Discount: alloc.Discount.String(),
		}
	}

	if gap := record.LedgerGap(); !gap.IsZero() {
		view.LedgerGap = gap.String()
	}
	for _, cat := range record.DiscountWarnings() {
		view.DiscountWarnings = append(view.DiscountWarnings, string(cat))
	}

	return view
}

func strPtr(s string) *string {
	return &s
}

func orSentinel(s string) string {
	if s == "" {
		return DisplaySentinel
	}
	return s
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative: %s", s)
	}
	return amount, nil
}

func applyStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyCount(dst *int, src *string, field string) error {
	if src == nil || *src == "" {
		return nil
	}
	count, err := strconv.Atoi(*src)
	if err != nil || count < 0 {
		return fmt.Errorf("invalid %s: %q", field, *src)
	}
	*dst = count
	return nil
}

func applyAmount(dst *decimal.Decimal, src *string, field string) error {
	if src == nil || *src == "" {
		return nil
	}
	amount, err := parseAmount(*src)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", field, *src)
	}
	*dst = amount
	return nil
}

func setCount(payload map[string]interface{}, key string, src *string) error {
	if src == nil || *src == "" {
		return nil
	}
	count, err := strconv.Atoi(*src)
	if err != nil || count < 0 {
		return fmt.Errorf("invalid %s: %q", key, *src)
	}
	payload[key] = count
	return nil
}

func setAmount(payload map[string]interface{}, key string, src *string) error {
	if src == nil || *src == "" {
		return nil
	}
	amount, err := parseAmount(*src)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, *src)
	}
	payload[key] = amount
	return nil
}

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"hotel-frontdesk/internal/delivery/dto"
	"hotel-frontdesk/internal/domain/entity"
	"hotel-frontdesk/internal/service"
)

// BookingClient is the typed booking gateway over the relay: it speaks
// the spreadsheet store's flat payload shape so nothing above it has to.
type BookingClient struct {
	relay *service.RelayService
}

func NewBookingClient(relay *service.RelayService) *BookingClient {
	return &BookingClient{relay: relay}
}

func identifierParams(id entity.BookingIdentifier) url.Values {
	params := url.Values{}
	params.Set("guestName", id.GuestName)
	params.Set("hotelName", id.HotelName)
	params.Set("checkIn", id.CheckIn)
	if id.SheetName != "" {
		params.Set("sheetName", id.SheetName)
	}
	return params
}

// FetchBooking looks a booking up by its natural key.
func (c *BookingClient) FetchBooking(ctx context.Context, id entity.BookingIdentifier) (*dto.RawBookingPayload, error) {
	result, err := c.relay.Forward(ctx, http.MethodGet, identifierParams(id), nil, "")
	if err != nil {
		return nil, err
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return nil, fmt.Errorf("booking fetch rejected (%d): %s", result.StatusCode, upstreamMessage(result.Body))
	}

	var payload dto.RawBookingPayload
	if err := json.Unmarshal(result.Body, &payload); err != nil {
		return nil, fmt.Errorf("malformed booking payload: %w", err)
	}
	return &payload, nil
}

// SaveBooking persists a partial write payload; the store resolves
// concurrent writers last-write-wins.
func (c *BookingClient) SaveBooking(ctx context.Context, id entity.BookingIdentifier, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode write payload: %w", err)
	}

	result, err := c.relay.Forward(ctx, http.MethodPost, identifierParams(id), body, "application/json")
	if err != nil {
		return err
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return fmt.Errorf("booking save rejected (%d): %s", result.StatusCode, upstreamMessage(result.Body))
	}
	return nil
}

// upstreamMessage digs a human-readable message out of an upstream error
// body, falling back to the raw body.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	if len(body) == 0 {
		return "no response body"
	}
	return string(body)
}

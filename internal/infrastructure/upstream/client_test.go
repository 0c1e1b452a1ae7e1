package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/internal/domain/entity"
	"hotel-frontdesk/internal/service"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testIdentifier() entity.BookingIdentifier {
	return entity.BookingIdentifier{GuestName: "Asha Verma", HotelName: "Sea View", CheckIn: "2024-11-02"}
}

func TestFetchBooking(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Asha Verma", r.URL.Query().Get("guestName"))
		assert.Equal(t, "Sea View", r.URL.Query().Get("hotelName"))
		assert.Equal(t, "2024-11-02", r.URL.Query().Get("checkIn"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"guestName":"Asha Verma","hotel":"Sea View","stayDays":2,"billAmount":"6000"}`))
	}))
	defer upstream.Close()

	client := NewBookingClient(service.NewRelayService(upstream.URL, testLogger()))

	payload, err := client.FetchBooking(context.Background(), testIdentifier())
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", payload.GuestName)
	assert.Equal(t, "Sea View", payload.Hotel)
	assert.Equal(t, 2, payload.StayDays)
	assert.Equal(t, "6000", payload.BillAmount.String())
}

func TestFetchBookingRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"booking not found"}`))
	}))
	defer upstream.Close()

	client := NewBookingClient(service.NewRelayService(upstream.URL, testLogger()))

	_, err := client.FetchBooking(context.Background(), testIdentifier())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "booking not found")
	assert.Contains(t, err.Error(), "404")
}

func TestFetchBookingMalformedBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer upstream.Close()

	client := NewBookingClient(service.NewRelayService(upstream.URL, testLogger()))

	_, err := client.FetchBooking(context.Background(), testIdentifier())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed booking payload")
}

func TestSaveBooking(t *testing.T) {
	var gotBody map[string]interface{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"message":"saved"}`))
	}))
	defer upstream.Close()

	client := NewBookingClient(service.NewRelayService(upstream.URL, testLogger()))

	err := client.SaveBooking(context.Background(), testIdentifier(), map[string]interface{}{
		"guestName": "Asha Verma",
		"contact":   "1112223334",
	})
	require.NoError(t, err)
	assert.Equal(t, "1112223334", gotBody["contact"])
}

func TestSaveBookingRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"sheet locked"}`))
	}))
	defer upstream.Close()

	client := NewBookingClient(service.NewRelayService(upstream.URL, testLogger()))

	err := client.SaveBooking(context.Background(), testIdentifier(), map[string]interface{}{"contact": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet locked")
}

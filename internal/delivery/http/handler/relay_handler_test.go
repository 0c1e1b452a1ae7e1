package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/internal/service"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newRelayHandler(upstreamURL string) *RelayHandler {
	log := testLogger()
	return NewRelayHandler(service.NewRelayService(upstreamURL, log), log)
}

func TestRelayPassThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Asha Verma", r.URL.Query().Get("guestName"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"guestName":"Asha Verma","billAmount":6000}`))
	}))
	defer upstream.Close()

	h := newRelayHandler(upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api?guestName=Asha+Verma", nil)
	rec := httptest.NewRecorder()
	h.Relay(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"guestName":"Asha Verma","billAmount":6000}`, rec.Body.String())
}

func TestRelayPassesThroughUpstreamRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"sheet locked"}`))
	}))
	defer upstream.Close()

	h := newRelayHandler(upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(`{"advance":"100"}`))
	rec := httptest.NewRecorder()
	h.Relay(rec, req)

	// Status and body reach the caller unchanged.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"sheet locked"}`, rec.Body.String())
}

func TestRelayTransportFailureEnvelope(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	h := newRelayHandler(upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api?guestName=Asha+Verma", strings.NewReader(`{"advance":"100"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Relay(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope["error"])

	details := envelope["details"].(map[string]interface{})
	assert.Equal(t, envelope["error"], details["message"])
	assert.Nil(t, details["response"])
	assert.Nil(t, details["status"])

	config := details["config"].(map[string]interface{})
	assert.Equal(t, http.MethodPost, config["method"])
	assert.Equal(t, upstream.URL, config["url"])

	params := config["params"].(map[string]interface{})
	assert.Equal(t, "Asha Verma", params["guestName"])

	body := config["body"].(map[string]interface{})
	assert.Equal(t, "100", body["advance"])
}

func TestRelayDefaultsResponseContentType(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// An upstream that sets no Content-Type at all.
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	h := newRelayHandler(upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	rec := httptest.NewRecorder()
	h.Relay(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHealth(t *testing.T) {
	h := newRelayHandler("http://localhost:1")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	// Liveness is independent of upstream reachability.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
